package types

// UploadReceipt reports where an accepted snapshot was stored.
type UploadReceipt struct {
	OK       bool   `json:"ok"`
	StoredAs string `json:"stored_as"`
}

// ReleaseInfo is the client release metadata served at /version.
type ReleaseInfo struct {
	Version     string `json:"version"`
	DownloadURL string `json:"download_url"`
	ReleaseDate string `json:"release_date"`
	Required    bool   `json:"required"`
	Changelog   string `json:"changelog"`
}
