package handlers

import (
	"encoding/json"
	"net/http"

	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/upstream"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	api    *upstream.Client
	locale string
	logger zerolog.Logger
}

func NewAuthHandler(api *upstream.Client, locale string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		api:    api,
		locale: locale,
		logger: logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "validation_failed", "Email and password are required")
		return
	}

	identity, err := h.api.Login(r.Context(), &req)
	if err != nil {
		h.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		respondUpstreamError(w, err, h.locale)
		return
	}
	if identity.Token == "" || identity.User == nil {
		respondWithError(w, http.StatusBadGateway, "upstream_rejected", upstream.GenericMessage(h.locale))
		return
	}

	sess := middleware.SessionFrom(r)
	if err := sess.Login(r.Context(), identity.Token, identity.User); err != nil {
		h.logger.Error().Err(err).Msg("Session install failed")
		respondWithError(w, http.StatusInternalServerError, "session_error", "Could not establish session")
		return
	}

	respondWithJSON(w, http.StatusOK, models.AuthResponse{User: identity.User})
}

// Register validates the confirmation fields locally; a mismatch never
// leaves the process.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "validation_failed", "Name, email and password are required")
		return
	}
	if req.ConfirmPassword != req.Password {
		respondWithError(w, http.StatusBadRequest, "validation_failed", "Password confirmation does not match")
		return
	}

	if err := h.api.Register(r.Context(), &req); err != nil {
		h.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		respondUpstreamError(w, err, h.locale)
		return
	}

	// Registration does not authenticate: the account still needs the
	// admin approval step before the catalog opens up.
	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// RequestEvaluation forwards an approval-gate application. The email
// confirmation is checked here and never reaches the upstream API.
func (h *AuthHandler) RequestEvaluation(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" {
		respondWithError(w, http.StatusBadRequest, "validation_failed", "Full name and email are required")
		return
	}
	if req.Email != req.ConfirmEmail {
		respondWithError(w, http.StatusBadRequest, "validation_failed", "Email confirmation does not match")
		return
	}

	if err := h.api.RequestEvaluation(r.Context(), &req); err != nil {
		h.logger.Warn().Err(err).Str("email", req.Email).Msg("Evaluation request failed")
		respondUpstreamError(w, err, h.locale)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "pending"})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)
	if err := sess.Logout(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Logout cleanup failed")
		respondWithError(w, http.StatusInternalServerError, "session_error", "Could not clear session")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated":        sess.Authenticated(),
		"accessLevel":          sess.Level().String(),
		"canAccessCollections": sess.CanAccessCollections(),
		"user":                 sess.User(),
	})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)
	if !sess.Authenticated() {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "Login required")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	user, err := h.api.UpdateProfile(r.Context(), sess.Token(), &req)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Profile update failed")
		respondUpstreamError(w, err, h.locale)
		return
	}

	if err := sess.SetUser(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Msg("Session user refresh failed")
		respondWithError(w, http.StatusInternalServerError, "session_error", "Could not refresh session")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// Profile answers the gated /profile page probe.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, middleware.SessionFrom(r).User())
}

// PublicPage answers the login/registration page probes once the
// auth-only gate has let the visitor through.
func (h *AuthHandler) PublicPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"page": name})
	}
}
