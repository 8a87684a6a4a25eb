package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"aaponaloi/backend/database"

	"github.com/gorilla/mux"
)

// TestJWTSecret is the signing secret used across handler tests
const TestJWTSecret = "test-secret"

// newTestHandler creates a handler backed by an in-memory database
func newTestHandler() (*Handler, *sql.DB) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic(err)
	}
	// A second pool connection would see a different in-memory database
	db.SetMaxOpenConns(1)

	if err := database.CreateTables(db); err != nil {
		panic(err)
	}

	return New(db, TestJWTSecret), db
}

// newJSONRequest creates a test request with a JSON body
func newJSONRequest(method, url string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, url, nil)
	}

	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(method, url, bytes.NewBuffer(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withVars attaches mux path variables to a test request
func withVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

// decodeMessage reads the uniform {message} error body
func decodeMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	return body["message"]
}
