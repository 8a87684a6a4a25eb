package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"aaponaloi/backend/database"
	"aaponaloi/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// GetAgreementStatus reports whether the given email has applied for an
// apartment, and if so returns the application.
func (h *Handler) GetAgreementStatus(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(r.URL.Query().Get("email"))
	if email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	var a models.Agreement
	err := h.db.QueryRow(`
		SELECT id, email, apartment_no, floor_no, block_name, rent, status, created_at
		FROM agreements WHERE email = ? ORDER BY created_at DESC LIMIT 1
	`, email).Scan(&a.ID, &a.Email, &a.ApartmentNo, &a.FloorNo, &a.BlockName, &a.Rent, &a.Status, &a.CreatedAt)
	if err == sql.ErrNoRows {
		respondJSON(w, http.StatusOK, map[string]interface{}{"hasApplied": false})
		return
	}
	if err != nil {
		log.Printf("Error querying agreement for %s: %v", email, err)
		respondError(w, http.StatusInternalServerError, "Server error fetching agreement")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"hasApplied":       true,
		"appliedApartment": a,
	})
}

// AddAgreement records a rental application. The unique index on
// (email, apartment_no) is the duplicate guard, so a repeat application for
// the same pair comes back as a 409 straight from the insert.
func (h *Handler) AddAgreement(w http.ResponseWriter, r *http.Request) {
	var a models.Agreement
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a.Email = strings.ToLower(a.Email)
	if a.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if a.ApartmentNo == "" {
		respondError(w, http.StatusBadRequest, "apartmentNo is required")
		return
	}

	a.ID = uuid.New().String()
	a.Status = models.StatusPending
	a.CreatedAt = time.Now().UTC()

	_, err := h.db.Exec(`
		INSERT INTO agreements (id, email, apartment_no, floor_no, block_name, rent, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Email, a.ApartmentNo, a.FloorNo, a.BlockName, a.Rent, a.Status, a.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			respondError(w, http.StatusConflict, "You have already applied for this apartment")
			return
		}
		log.Printf("Error inserting agreement for %s: %v", a.Email, err)
		respondError(w, http.StatusInternalServerError, "Server error creating agreement")
		return
	}

	respondJSON(w, http.StatusCreated, a)
}

// RespondAgreement resolves a pending application. Accepting promotes the
// applicant from "user" to "member"; rejecting changes only the status.
// Accepted and rejected are terminal, so responding to a non-pending
// agreement is a conflict. Admin only.
func (h *Handler) RespondAgreement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var req struct {
		Status    string `json:"status"`
		UserEmail string `json:"userEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Status != models.StatusAccepted && req.Status != models.StatusRejected {
		respondError(w, http.StatusBadRequest, "status must be accepted or rejected")
		return
	}

	var a models.Agreement
	err := h.db.QueryRow(`
		SELECT id, email, apartment_no, floor_no, block_name, rent, status, created_at
		FROM agreements WHERE id = ?
	`, id).Scan(&a.ID, &a.Email, &a.ApartmentNo, &a.FloorNo, &a.BlockName, &a.Rent, &a.Status, &a.CreatedAt)
	if err == sql.ErrNoRows {
		respondError(w, http.StatusNotFound, "Agreement not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching agreement %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Server error fetching agreement")
		return
	}

	if a.Status != models.StatusPending {
		respondError(w, http.StatusConflict, "Agreement has already been resolved")
		return
	}

	if _, err := h.db.Exec("UPDATE agreements SET status = ? WHERE id = ?", req.Status, id); err != nil {
		log.Printf("Error updating agreement %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Server error updating agreement")
		return
	}
	a.Status = req.Status

	if req.Status == models.StatusAccepted {
		// Promote the applicant, but never downgrade a member or admin
		_, err := h.db.Exec("UPDATE users SET role = ?, updated_at = ? WHERE email = ? AND role = ?",
			models.RoleMember, time.Now().UTC(), a.Email, models.RoleUser)
		if err != nil {
			log.Printf("Error promoting user %s to member: %v", a.Email, err)
			respondError(w, http.StatusInternalServerError, "Server error updating user role")
			return
		}
	}

	respondJSON(w, http.StatusOK, a)
}
