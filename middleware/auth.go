package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"aaponaloi/backend/auth"
	"aaponaloi/backend/models"
)

// Define context keys
type contextKey string

const UserEmailKey contextKey = "user_email"
const UserRoleKey contextKey = "user_role"

// Auth verifies session tokens from the Authorization header and attaches
// the decoded identity to the request context. A missing or malformed header
// is 401; a token that fails verification is 403.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip auth for OPTIONS requests (CORS preflight)
			if r.Method == "OPTIONS" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			token := extractToken(authHeader)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				log.Printf("Error verifying token: %v", err)
				writeAuthError(w, http.StatusForbidden, "Forbidden: Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserEmailKey, claims.Email)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole ensures the authenticated user has at least the specified role
func RequireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUserEmailFromContext(r) == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized: No user found")
				return
			}

			if !models.IsRoleAtLeast(GetUserRoleFromContext(r), requiredRole) {
				writeAuthError(w, http.StatusForbidden, "Forbidden: Insufficient role privileges")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin ensures the authenticated user is an admin
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(models.RoleAdmin)
}

// extractToken gets the token from the Authorization header
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetUserEmailFromContext retrieves the user email from the request context
func GetUserEmailFromContext(r *http.Request) string {
	email, ok := r.Context().Value(UserEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}

// GetUserRoleFromContext retrieves the user role from the request context
func GetUserRoleFromContext(r *http.Request) string {
	role, ok := r.Context().Value(UserRoleKey).(string)
	if !ok {
		return ""
	}
	return role
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
