package server

import (
	"net/http"

	"github.com/taskcart/taskcart/accounts"
)

type registerRequest struct {
	Handle  string `json:"handle"`
	Contact string `json:"contact"`
	Secret  string `json:"secret"`
}

type loginRequest struct {
	Contact string `json:"contact"`
	Secret  string `json:"secret"`
}

type validateSecretRequest struct {
	Secret string `json:"secret"`
}

type validateSecretResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// RegisterHandler creates a new account from handle, contact and secret.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}

		account, err := s.auth.Register(r.Context(), req.Handle, req.Contact, req.Secret)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, account)
	}
}

// LoginHandler exchanges contact and secret for a session token.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}

		session, err := s.auth.Login(r.Context(), req.Contact, req.Secret)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

// MeHandler returns the live account behind the presented token.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		account, err := s.auth.Account(r.Context(), identity.AccountID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, account)
	}
}

// ValidateSecretHandler probes secret strength without creating anything.
func (s *Server) ValidateSecretHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateSecretRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}

		if err := accounts.ValidateSecretStrength(req.Secret); err != nil {
			writeJSON(w, http.StatusOK, validateSecretResponse{Valid: false, Reason: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, validateSecretResponse{Valid: true})
	}
}
