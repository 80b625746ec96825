package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/maya/media-user-api/internal/api/middleware"
	"github.com/maya/media-user-api/internal/domain"
	"github.com/maya/media-user-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type identityResponse struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	err := h.authService.Register(r.Context(), service.Credentials{
		UserName: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "success")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	result, err := h.authService.Login(r.Context(), service.Credentials{
		UserName: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "success",
		Token:   result.Token,
	})
}

// Me returns the stored account record for the authenticated user. Unlike
// token verification this does hit the store, so a token whose account was
// deleted gets a 404 here.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.GetUser(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, identityResponse{
		ID:       user.ID.String(),
		UserName: user.UserName,
	})
}
