package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"aaponaloi/backend/database"
	"aaponaloi/backend/models"

	"github.com/google/uuid"
)

// GetPayments returns the payment history for an email, newest first
func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(r.URL.Query().Get("email"))
	if email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, email, apartment_no, month, rent, paid_at
		FROM payments WHERE email = ? ORDER BY paid_at DESC
	`, email)
	if err != nil {
		log.Printf("Error querying payments for %s: %v", email, err)
		respondError(w, http.StatusInternalServerError, "Server error fetching payments")
		return
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Email, &p.ApartmentNo, &p.Month, &p.Rent, &p.PaidAt); err != nil {
			log.Printf("Error scanning payment: %v", err)
			respondError(w, http.StatusInternalServerError, "Server error fetching payments")
			return
		}
		payments = append(payments, p)
	}

	respondJSON(w, http.StatusOK, payments)
}

// AddPayment records a rent payment. One payment per
// (email, apartmentNo, month); the unique index turns a repeat into a 409.
func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p.Email = strings.ToLower(p.Email)
	if p.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if p.ApartmentNo == "" {
		respondError(w, http.StatusBadRequest, "apartmentNo is required")
		return
	}
	if p.Month == "" {
		respondError(w, http.StatusBadRequest, "month is required")
		return
	}
	if p.Rent <= 0 {
		respondError(w, http.StatusBadRequest, "rent must be greater than zero")
		return
	}

	p.ID = uuid.New().String()
	p.PaidAt = time.Now().UTC()

	_, err := h.db.Exec(`
		INSERT INTO payments (id, email, apartment_no, month, rent, paid_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Email, p.ApartmentNo, p.Month, p.Rent, p.PaidAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			respondError(w, http.StatusConflict, "Rent for this month has already been paid")
			return
		}
		log.Printf("Error inserting payment for %s: %v", p.Email, err)
		respondError(w, http.StatusInternalServerError, "Server error recording payment")
		return
	}

	respondJSON(w, http.StatusCreated, p)
}
