package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"aaponaloi/backend/database"
	"aaponaloi/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// GetCoupons lists all coupons, newest first
func (h *Handler) GetCoupons(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, code, discount, description, created_at, updated_at
		FROM coupons ORDER BY created_at DESC
	`)
	if err != nil {
		log.Printf("Error querying coupons: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error fetching coupons")
		return
	}
	defer rows.Close()

	coupons := []models.Coupon{}
	for rows.Next() {
		var c models.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.Discount, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Printf("Error scanning coupon: %v", err)
			respondError(w, http.StatusInternalServerError, "Server error fetching coupons")
			return
		}
		coupons = append(coupons, c)
	}

	respondJSON(w, http.StatusOK, coupons)
}

// GetCouponByCode looks up a coupon by its code. The code column is
// COLLATE NOCASE, so "save10" finds a coupon stored as "SAVE10".
func (h *Handler) GetCouponByCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]

	var c models.Coupon
	err := h.db.QueryRow(`
		SELECT id, code, discount, description, created_at, updated_at
		FROM coupons WHERE code = ?
	`, code).Scan(&c.ID, &c.Code, &c.Discount, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		respondError(w, http.StatusNotFound, "Coupon not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching coupon %s: %v", code, err)
		respondError(w, http.StatusInternalServerError, "Server error fetching coupon")
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// AddCoupon creates a coupon. Codes are unique case-insensitively. Admin
// only.
func (h *Handler) AddCoupon(w http.ResponseWriter, r *http.Request) {
	var c models.Coupon
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if c.Code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}
	if c.Discount <= 0 {
		respondError(w, http.StatusBadRequest, "discount must be greater than zero")
		return
	}

	c.ID = uuid.New().String()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := h.db.Exec(`
		INSERT INTO coupons (id, code, discount, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Code, c.Discount, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			respondError(w, http.StatusConflict, "A coupon with this code already exists")
			return
		}
		log.Printf("Error inserting coupon %s: %v", c.Code, err)
		respondError(w, http.StatusInternalServerError, "Server error creating coupon")
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

// UpdateCoupon updates a coupon's code, discount and description. Admin
// only.
func (h *Handler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var c models.Coupon
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if c.Code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}
	if c.Discount <= 0 {
		respondError(w, http.StatusBadRequest, "discount must be greater than zero")
		return
	}

	result, err := h.db.Exec(`
		UPDATE coupons SET code = ?, discount = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, c.Code, c.Discount, c.Description, time.Now().UTC(), id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			respondError(w, http.StatusConflict, "A coupon with this code already exists")
			return
		}
		log.Printf("Error updating coupon %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Server error updating coupon")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error updating coupon")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "Coupon not found")
		return
	}

	updated, err := h.getCouponByID(id)
	if err != nil {
		log.Printf("Error fetching updated coupon %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Server error fetching coupon")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteCoupon removes a coupon by ID. Admin only.
func (h *Handler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	result, err := h.db.Exec("DELETE FROM coupons WHERE id = ?", id)
	if err != nil {
		log.Printf("Error deleting coupon %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Server error deleting coupon")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error deleting coupon")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "Coupon not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Coupon deleted"})
}

func (h *Handler) getCouponByID(id string) (models.Coupon, error) {
	var c models.Coupon
	err := h.db.QueryRow(`
		SELECT id, code, discount, description, created_at, updated_at
		FROM coupons WHERE id = ?
	`, id).Scan(&c.ID, &c.Code, &c.Discount, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
