package services

import "errors"

var (
	// ErrUnauthorized covers bad login credentials and revoked token
	// subjects. Handlers map it to 401 without further detail.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but lacks the role.
	ErrForbidden = errors.New("forbidden")

	// ErrUnknownTool means the tool identifier is not on the allow-list.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrInvalidFormat means the uploaded filename is not a CSV.
	ErrInvalidFormat = errors.New("csv only")

	// ErrNoSnapshot means no snapshot has been uploaded yet for the tool.
	ErrNoSnapshot = errors.New("no file yet for this tool")
)
