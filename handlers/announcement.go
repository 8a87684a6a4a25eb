package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"aaponaloi/backend/models"

	"github.com/google/uuid"
)

// GetAnnouncements lists announcements newest first
func (h *Handler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, title, description, created_at
		FROM announcements ORDER BY created_at DESC
	`)
	if err != nil {
		log.Printf("Error querying announcements: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error fetching announcements")
		return
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.CreatedAt); err != nil {
			log.Printf("Error scanning announcement: %v", err)
			respondError(w, http.StatusInternalServerError, "Server error fetching announcements")
			return
		}
		announcements = append(announcements, a)
	}

	respondJSON(w, http.StatusOK, announcements)
}

// AddAnnouncement creates an announcement. Announcements are immutable once
// created; there is no update or delete endpoint. Admin only.
func (h *Handler) AddAnnouncement(w http.ResponseWriter, r *http.Request) {
	var a models.Announcement
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if a.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	a.ID = uuid.New().String()
	a.CreatedAt = time.Now().UTC()

	_, err := h.db.Exec(`
		INSERT INTO announcements (id, title, description, created_at)
		VALUES (?, ?, ?, ?)
	`, a.ID, a.Title, a.Description, a.CreatedAt)
	if err != nil {
		log.Printf("Error inserting announcement: %v", err)
		respondError(w, http.StatusInternalServerError, "Server error creating announcement")
		return
	}

	respondJSON(w, http.StatusCreated, a)
}
