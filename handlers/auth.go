package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"aaponaloi/backend/auth"
	"aaponaloi/backend/models"
)

// IssueToken mints a 7-day session token for the caller. Email ownership is
// assumed established upstream by the federated login; when Firebase
// credentials are configured the request must carry a Firebase ID token
// asserting the same email. A known user always gets their stored role, so
// the asserted role cannot outrank what the database says.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email   string `json:"email"`
		Role    string `json:"role"`
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(req.Email)
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	if auth.FirebaseEnabled() {
		if req.IDToken == "" {
			respondError(w, http.StatusForbidden, "Forbidden: ID token is required")
			return
		}

		verifiedEmail, err := auth.VerifyIDToken(r.Context(), req.IDToken)
		if err != nil {
			log.Printf("Error verifying ID token for %s: %v", req.Email, err)
			respondError(w, http.StatusForbidden, "Forbidden: Invalid ID token")
			return
		}
		if !strings.EqualFold(verifiedEmail, req.Email) {
			respondError(w, http.StatusForbidden, "Forbidden: ID token does not match email")
			return
		}
	}

	role := req.Role
	if !models.ValidRole(role) {
		role = models.RoleUser
	}

	// A known user gets their stored role regardless of what was asserted
	var storedRole string
	err := h.db.QueryRow("SELECT role FROM users WHERE email = ?", req.Email).Scan(&storedRole)
	if err == nil {
		role = storedRole
	} else if err != sql.ErrNoRows {
		log.Printf("Error looking up role for %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Server error issuing token")
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, req.Email, role)
	if err != nil {
		log.Printf("Error generating token for %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Server error issuing token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
