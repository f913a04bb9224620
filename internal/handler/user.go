package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/civreg/civreg/internal/domain"
	"github.com/civreg/civreg/internal/service"
)

// UserHandler handles registration and login HTTP requests.
type UserHandler struct {
	auth *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// HandleRegister processes a JSON registration request.
// POST /users/register
// Request:  {"username":"...","password":"...","role":"..."}
// Response: 201 {"message":"User registered"}
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.auth.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("register user", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered"})
}

// HandleLogin processes a JSON login request and returns a bearer token.
// POST /users/login
// Request:  {"username":"...","password":"..."}
// Response: 200 {"token":"..."}
//
// Unknown usernames answer 404 and wrong passwords 401, preserving the
// original wire contract. Both use the same body so the two cases are not
// distinguishable by message.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Invalid username or password")
			return
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
