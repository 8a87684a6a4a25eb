package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aaponaloi/backend/models"
)

func addTestCoupon(t *testing.T, h *Handler, code string, discount float64) models.Coupon {
	t.Helper()

	req := newJSONRequest("POST", "/coupons", map[string]interface{}{
		"code":        code,
		"discount":    discount,
		"description": "Test coupon",
	})
	w := httptest.NewRecorder()
	h.AddCoupon(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, w.Code)
	}

	var c models.Coupon
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	return c
}

func TestGetCouponByCodeCaseInsensitive(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	addTestCoupon(t, h, "SAVE10", 10)

	req := newJSONRequest("GET", "/coupons/save10", nil)
	req = withVars(req, map[string]string{"code": "save10"})
	w := httptest.NewRecorder()
	h.GetCouponByCode(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var c models.Coupon
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if c.Code != "SAVE10" {
		t.Errorf("Expected code 'SAVE10', got '%s'", c.Code)
	}
}

func TestGetCouponByCodeNotFound(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	req := newJSONRequest("GET", "/coupons/missing", nil)
	req = withVars(req, map[string]string{"code": "missing"})
	w := httptest.NewRecorder()
	h.GetCouponByCode(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestAddCouponDuplicateCodeCaseInsensitive(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	addTestCoupon(t, h, "SAVE10", 10)

	// Differing only in case still collides
	req := newJSONRequest("POST", "/coupons", map[string]interface{}{
		"code":     "save10",
		"discount": 15.0,
	})
	w := httptest.NewRecorder()
	h.AddCoupon(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestAddCouponValidation(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	testCases := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "Missing code",
			body: map[string]interface{}{"discount": 10.0},
		},
		{
			name: "Zero discount",
			body: map[string]interface{}{"code": "SAVE10"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := newJSONRequest("POST", "/coupons", tc.body)
			w := httptest.NewRecorder()
			h.AddCoupon(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestUpdateCoupon(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	c := addTestCoupon(t, h, "SAVE10", 10)

	req := newJSONRequest("PUT", "/coupons/"+c.ID, map[string]interface{}{
		"code":        "SAVE20",
		"discount":    20.0,
		"description": "Bigger discount",
	})
	req = withVars(req, map[string]string{"id": c.ID})
	w := httptest.NewRecorder()
	h.UpdateCoupon(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var updated models.Coupon
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if updated.Code != "SAVE20" {
		t.Errorf("Expected code 'SAVE20', got '%s'", updated.Code)
	}
	if updated.Discount != 20 {
		t.Errorf("Expected discount 20, got %v", updated.Discount)
	}
}

func TestUpdateCouponNotFound(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	req := newJSONRequest("PUT", "/coupons/missing", map[string]interface{}{
		"code":     "SAVE20",
		"discount": 20.0,
	})
	req = withVars(req, map[string]string{"id": "missing"})
	w := httptest.NewRecorder()
	h.UpdateCoupon(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDeleteCoupon(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	c := addTestCoupon(t, h, "SAVE10", 10)

	req := newJSONRequest("DELETE", "/coupons/"+c.ID, nil)
	req = withVars(req, map[string]string{"id": c.ID})
	w := httptest.NewRecorder()
	h.DeleteCoupon(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	req = newJSONRequest("DELETE", "/coupons/"+c.ID, nil)
	req = withVars(req, map[string]string{"id": c.ID})
	w = httptest.NewRecorder()
	h.DeleteCoupon(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetCoupons(t *testing.T) {
	h, db := newTestHandler()
	defer db.Close()

	addTestCoupon(t, h, "SAVE10", 10)
	addTestCoupon(t, h, "SAVE20", 20)

	req := newJSONRequest("GET", "/coupons", nil)
	w := httptest.NewRecorder()
	h.GetCoupons(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var coupons []models.Coupon
	if err := json.NewDecoder(w.Body).Decode(&coupons); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(coupons) != 2 {
		t.Errorf("Expected 2 coupons, got %d", len(coupons))
	}
}
