package server

import (
	"encoding/json"
	"net/http"

	"leadscope/internal/auth"
	"leadscope/internal/model"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence disabled")
		return
	}

	var credentials model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if !auth.IsValidEmail(credentials.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if len(credentials.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	hashedPassword, err := auth.HashPassword(credentials.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if _, exists := s.store.UserByEmail(credentials.Email); exists {
		writeError(w, http.StatusConflict, "Email already in use")
		return
	}

	// The first registered account becomes the admin.
	role := auth.RoleUser
	if s.store.CountUsers() == 0 {
		role = auth.RoleAdmin
	}

	user, err := s.store.CreateUser(credentials.Email, hashedPassword, role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := s.auth.GenerateJWT(user.ID, user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token, "role": user.Role})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence disabled")
		return
	}

	var credentials model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	user, ok := s.store.UserByEmail(credentials.Email)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}

	if !auth.CheckPasswordHash(credentials.Password, user.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := s.auth.GenerateJWT(user.ID, user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token, "role": user.Role})
}
