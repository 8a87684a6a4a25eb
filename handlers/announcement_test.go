package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aaponaloi/backend/models"
)

func TestAddAnnouncement(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	req := newJSONRequest("POST", "/announcements", map[string]string{
		"title":       "Water outage",
		"description": "Maintenance on Friday morning",
	})
	w := httptest.NewRecorder()
	h.AddAnnouncement(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, w.Code)
	}

	var a models.Announcement
	if err := json.NewDecoder(w.Body).Decode(&a); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if a.ID == "" {
		t.Error("Expected announcement to have an ID")
	}
	if a.Title != "Water outage" {
		t.Errorf("Expected title 'Water outage', got '%s'", a.Title)
	}
}

func TestAddAnnouncementRequiresTitle(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	req := newJSONRequest("POST", "/announcements", map[string]string{
		"description": "No title here",
	})
	w := httptest.NewRecorder()
	h.AddAnnouncement(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetAnnouncementsNewestFirst(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	// Insert directly so the created_at timestamps are distinct
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	titles := []string{"First", "Second", "Third"}
	for i, title := range titles {
		_, err := db.Exec(`
			INSERT INTO announcements (id, title, description, created_at)
			VALUES (?, ?, ?, ?)
		`, title, title, "", base.AddDate(0, 0, i))
		if err != nil {
			t.Fatal(err)
		}
	}

	req := newJSONRequest("GET", "/announcements", nil)
	w := httptest.NewRecorder()
	h.GetAnnouncements(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var announcements []models.Announcement
	if err := json.NewDecoder(w.Body).Decode(&announcements); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}

	if len(announcements) != 3 {
		t.Fatalf("Expected 3 announcements, got %d", len(announcements))
	}
	for i, title := range []string{"Third", "Second", "First"} {
		if announcements[i].Title != title {
			t.Errorf("Expected announcement %d to be '%s', got '%s'", i, title, announcements[i].Title)
		}
	}
}
