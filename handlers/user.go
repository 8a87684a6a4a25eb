package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"aaponaloi/backend/models"

	"github.com/gorilla/mux"
)

// UpsertUser creates or updates a user profile keyed on email. The role is
// sticky: a new user gets "user" and an existing user keeps whatever role
// they already have, no matter what the request body says. Role changes go
// through the admin endpoints only.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	email := strings.ToLower(vars["email"])

	var req struct {
		Name  string `json:"name"`
		Photo string `json:"photo"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	now := time.Now().UTC()
	_, err := h.db.Exec(`
		INSERT INTO users (email, name, photo, phone, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			photo = excluded.photo,
			phone = excluded.phone,
			updated_at = excluded.updated_at
	`, email, req.Name, req.Photo, req.Phone, models.RoleUser, now, now)
	if err != nil {
		log.Printf("Error upserting user %s: %v", email, err)
		respondError(w, http.StatusInternalServerError, "Server error during user registration")
		return
	}

	user, err := h.getUserByEmail(email)
	if err != nil {
		log.Printf("Error fetching upserted user %s: %v", email, err)
		respondError(w, http.StatusInternalServerError, "Server error fetching user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetUser returns a user profile by email
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	email := strings.ToLower(vars["email"])

	user, err := h.getUserByEmail(email)
	if err == sql.ErrNoRows {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching user %s: %v", email, err)
		respondError(w, http.StatusInternalServerError, "Server error fetching user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetUsers returns all users. Admin only.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query("SELECT email, name, photo, phone, role, created_at, updated_at FROM users ORDER BY email")
	if err != nil {
		log.Printf("Error querying users: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error fetching users")
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Email, &u.Name, &u.Photo, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			log.Printf("Error scanning user: %v", err)
			respondError(w, http.StatusInternalServerError, "Server error fetching users")
			return
		}
		users = append(users, u)
	}

	respondJSON(w, http.StatusOK, users)
}

// MakeAdmin promotes a user to the admin role. Admin only.
func (h *Handler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	email := strings.ToLower(vars["email"])

	result, err := h.db.Exec("UPDATE users SET role = ?, updated_at = ? WHERE email = ?",
		models.RoleAdmin, time.Now().UTC(), email)
	if err != nil {
		log.Printf("Error promoting user %s to admin: %v", email, err)
		respondError(w, http.StatusInternalServerError, "Server error updating user role")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error updating user role")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.getUserByEmail(email)
	if err != nil {
		log.Printf("Error fetching promoted user %s: %v", email, err)
		respondError(w, http.StatusInternalServerError, "Server error fetching user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) getUserByEmail(email string) (models.User, error) {
	var u models.User
	err := h.db.QueryRow(
		"SELECT email, name, photo, phone, role, created_at, updated_at FROM users WHERE email = ?",
		email,
	).Scan(&u.Email, &u.Name, &u.Photo, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
