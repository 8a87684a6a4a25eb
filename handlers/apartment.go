package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"aaponaloi/backend/database"
	"aaponaloi/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// GetApartments lists apartments with the computed isBooked flag and
// optional rent-range filtering. isBooked is true when any agreement
// references the apartment number; it is never stored.
func (h *Handler) GetApartments(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, apartment_no, floor_no, block_name, rent, image, created_at,
			EXISTS(SELECT 1 FROM agreements WHERE agreements.apartment_no = apartments.apartment_no) AS is_booked
		FROM apartments
		WHERE 1=1
	`
	args := []interface{}{}

	minRent := r.URL.Query().Get("minRent")
	if minRent != "" {
		min, err := strconv.ParseFloat(minRent, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "minRent must be a number")
			return
		}
		query += " AND rent >= ?"
		args = append(args, min)
	}

	maxRent := r.URL.Query().Get("maxRent")
	if maxRent != "" {
		max, err := strconv.ParseFloat(maxRent, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "maxRent must be a number")
			return
		}
		query += " AND rent <= ?"
		args = append(args, max)
	}

	query += " ORDER BY apartment_no"

	rows, err := h.db.Query(query, args...)
	if err != nil {
		log.Printf("Error querying apartments: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error fetching apartments")
		return
	}
	defer rows.Close()

	apartments := []models.Apartment{}
	for rows.Next() {
		var a models.Apartment
		if err := rows.Scan(&a.ID, &a.ApartmentNo, &a.FloorNo, &a.BlockName, &a.Rent, &a.Image, &a.CreatedAt, &a.IsBooked); err != nil {
			log.Printf("Error scanning apartment: %v", err)
			respondError(w, http.StatusInternalServerError, "Server error fetching apartments")
			return
		}
		apartments = append(apartments, a)
	}

	respondJSON(w, http.StatusOK, apartments)
}

// AddApartment creates an apartment. Admin only.
func (h *Handler) AddApartment(w http.ResponseWriter, r *http.Request) {
	var a models.Apartment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if a.ApartmentNo == "" {
		respondError(w, http.StatusBadRequest, "apartmentNo is required")
		return
	}
	if a.Rent <= 0 {
		respondError(w, http.StatusBadRequest, "rent must be greater than zero")
		return
	}

	a.ID = uuid.New().String()
	a.IsBooked = false
	a.CreatedAt = time.Now().UTC()

	_, err := h.db.Exec(`
		INSERT INTO apartments (id, apartment_no, floor_no, block_name, rent, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.ApartmentNo, a.FloorNo, a.BlockName, a.Rent, a.Image, a.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			respondError(w, http.StatusConflict, "An apartment with this number already exists")
			return
		}
		log.Printf("Error inserting apartment %s: %v", a.ApartmentNo, err)
		respondError(w, http.StatusInternalServerError, "Server error creating apartment")
		return
	}

	respondJSON(w, http.StatusCreated, a)
}

// DeleteApartment removes an apartment by ID. Admin only.
func (h *Handler) DeleteApartment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	result, err := h.db.Exec("DELETE FROM apartments WHERE id = ?", id)
	if err != nil {
		log.Printf("Error deleting apartment %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Server error deleting apartment")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error deleting apartment")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "Apartment not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Apartment deleted"})
}
