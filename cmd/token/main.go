// This is a **mock token service** for local development: it mints JWTs
// carrying a user id, company id, and role for calling the inventory API.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/auth"
	"github.com/resinworks/jobstock/internal/inventory/models"
)

const (
	defaultPort   = "8081"
	defaultSecret = "jwt_secret"
)

// TokenResponse represents the response structure
type TokenResponse struct {
	Token string `json:"token"`
}

// tokenHandler generates a JWT from query parameters and returns it as JSON.
// ?role=OPERATOR omits the company claim; any other role requires company_id.
func tokenHandler(w http.ResponseWriter, r *http.Request) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = defaultSecret
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "dev-user"
	}
	role := models.Role(r.URL.Query().Get("role"))
	if role == "" {
		role = models.RoleAdmin
	}

	var companyID *uuid.UUID
	if role != models.RoleOperator {
		id, err := uuid.Parse(r.URL.Query().Get("company_id"))
		if err != nil {
			http.Error(w, "company_id required for company roles", http.StatusBadRequest)
			return
		}
		companyID = &id
	}

	token, err := auth.GenerateToken(userID, companyID, role, secret)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	resp := TokenResponse{Token: token}
	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		http.Error(w, "Failed to encode token", http.StatusInternalServerError)
	}
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	http.HandleFunc("/token", tokenHandler)

	log.Printf("Token service running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
