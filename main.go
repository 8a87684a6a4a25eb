package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"aaponaloi/backend/auth"
	"aaponaloi/backend/database"
	"aaponaloi/backend/handlers"
	"aaponaloi/backend/middleware"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("Warning: JWT_SECRET not set, using a default secret. This is NOT secure for production!")
		jwtSecret = "default-secret-for-development-only"
	}

	// Initialize database
	db, err := database.InitDB()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize Firebase Admin SDK for ID-token verification (optional)
	if err := auth.InitializeFirebase(); err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Issuing tokens without identity verification!")
	}

	h := handlers.New(db, jwtSecret)

	// Create router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r, h, jwtSecret)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, h, jwtSecret)

	// Unmatched routes get the fixed JSON 404 body
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	// Configure the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router, h *handlers.Handler, jwtSecret string) {
	// Public routes (no auth required)
	r.HandleFunc("/health", h.HealthCheck).Methods("GET", "OPTIONS")
	r.HandleFunc("/auth/jwt", h.IssueToken).Methods("POST", "OPTIONS")
	r.HandleFunc("/apartments", h.GetApartments).Methods("GET")
	r.HandleFunc("/announcements", h.GetAnnouncements).Methods("GET")
	r.HandleFunc("/coupons", h.GetCoupons).Methods("GET")
	r.HandleFunc("/coupons/{code}", h.GetCouponByCode).Methods("GET")
	r.HandleFunc("/users/{email}", h.GetUser).Methods("GET")
	r.HandleFunc("/users/{email}", h.UpsertUser).Methods("PUT")

	// Routes that require a valid session token
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.Auth(jwtSecret))

	protectedRouter.HandleFunc("/agreements", h.GetAgreementStatus).Methods("GET")
	protectedRouter.HandleFunc("/agreements", h.AddAgreement).Methods("POST")
	protectedRouter.HandleFunc("/payments", h.GetPayments).Methods("GET")
	protectedRouter.HandleFunc("/payments", h.AddPayment).Methods("POST")

	// Routes that additionally require the admin role
	adminRouter := r.PathPrefix("").Subrouter()
	adminRouter.Use(middleware.Auth(jwtSecret), middleware.RequireAdmin())

	adminRouter.HandleFunc("/users", h.GetUsers).Methods("GET")
	adminRouter.HandleFunc("/users/admin/{email}", h.MakeAdmin).Methods("PATCH")
	adminRouter.HandleFunc("/apartments", h.AddApartment).Methods("POST")
	adminRouter.HandleFunc("/apartments/{id}", h.DeleteApartment).Methods("DELETE")
	adminRouter.HandleFunc("/agreements/respond/{id}", h.RespondAgreement).Methods("PATCH")
	adminRouter.HandleFunc("/coupons", h.AddCoupon).Methods("POST")
	adminRouter.HandleFunc("/coupons/{id}", h.UpdateCoupon).Methods("PUT")
	adminRouter.HandleFunc("/coupons/{id}", h.DeleteCoupon).Methods("DELETE")
	adminRouter.HandleFunc("/announcements", h.AddAnnouncement).Methods("POST")
}
