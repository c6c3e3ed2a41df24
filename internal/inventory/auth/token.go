package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/resinworks/jobstock/internal/inventory/models"
)

// GenerateToken mints a signed JWT carrying the caller identity. companyID
// is nil for platform operators.
func GenerateToken(userID string, companyID *uuid.UUID, role models.Role, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
		"iat":  time.Now().Unix(),
	}
	if companyID != nil {
		claims["company_id"] = companyID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseCaller validates the token signature and builds the Caller from its
// claims.
func ParseCaller(tokenString, secret string) (Caller, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Caller{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Caller{}, fmt.Errorf("invalid token claims")
	}

	caller := Caller{}
	if sub, ok := claims["sub"].(string); ok {
		caller.UserID = sub
	}
	if role, ok := claims["role"].(string); ok {
		caller.Role = models.Role(role)
	}
	if raw, ok := claims["company_id"].(string); ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			return Caller{}, fmt.Errorf("invalid company_id claim: %w", err)
		}
		caller.CompanyID = &id
	}
	if caller.UserID == "" || caller.Role == "" {
		return Caller{}, fmt.Errorf("missing identity claims")
	}
	return caller, nil
}
