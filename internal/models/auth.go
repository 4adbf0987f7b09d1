package models

import "github.com/golang-jwt/jwt/v5"

// RegisterRequest holds the payload for creating a new user account.
type RegisterRequest struct {
	Name     string   `json:"nome" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"senha" validate:"required,min=6"`
	Role     UserRole `json:"role" validate:"omitempty,oneof=ADMIN INSTRUTOR ALUNO"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// AuthResponse returns the issued token and user info.
type AuthResponse struct {
	User  UserInfo `json:"usuario"`
	Token string   `json:"token"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID    int64    `json:"id"`
	Name  string   `json:"nome"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// Info projects the user into its response shape.
func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID int64    `json:"id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
