package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/seyaul/hana-auth/internal/auth"
	"github.com/seyaul/hana-auth/internal/services"
	"github.com/seyaul/hana-auth/types"
)

// AdminHandler provides the role-gated user administration endpoints.
type AdminHandler struct {
	userService *services.UserService
}

// NewAdminHandler constructs an AdminHandler with the provided dependencies.
func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// AdminRouter registers user administration routes. Every route requires a
// valid token and the admin role.
func AdminRouter(r chi.Router, handler *AdminHandler, authHandler *AuthHandler) {
	r.Use(authHandler.RequireAuth, authHandler.RequireAdmin)

	r.Get("/users", handler.ListUsers)
	r.Post("/users", handler.CreateUser)
	r.Post("/users/{username}/promote", handler.PromoteUser)
	r.Delete("/users/{username}", handler.DeleteUser)
}

// CreateUser registers a new user with the default role.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	if _, err := h.userService.Create(r.Context(), req.Username, req.Password, types.RoleUser); err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordTooLong):
			writeError(w, http.StatusBadRequest, auth.ErrPasswordTooLong.Error())
		case services.IsConflict(err):
			writeError(w, http.StatusConflict, "user already exists")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Msg: "user added"})
}

// PromoteUser raises a user to admin. A missing user is a no-op.
func (h *AdminHandler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.userService.Promote(r.Context(), username); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to promote user")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Msg: fmt.Sprintf("%s promoted", username)})
}

// DeleteUser removes a user and thereby revokes all their tokens.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.userService.Delete(r.Context(), username); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Msg: "user deleted"})
}

// ListUsers returns id, name, and role for every user.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	items := make([]UserSummary, 0, len(users))
	for _, user := range users {
		items = append(items, UserSummary{
			ID:   user.ID,
			Name: user.Username,
			Role: user.Role,
		})
	}
	writeJSON(w, http.StatusOK, UserListResponse{Users: items})
}

type CreateUserRequest struct {
	Username string `json:"name"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

// UserSummary is the administrative listing row. It deliberately carries
// no credential material.
type UserSummary struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Role types.Role `json:"role"`
}

type UserListResponse struct {
	Users []UserSummary `json:"users"`
}
