package dto

import "github.com/hongminglow/financas-be/internal/auth"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"nome"`
}

type RegisterResponse struct {
	Message string        `json:"message"`
	User    auth.Identity `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string        `json:"message"`
	User    auth.Identity `json:"user"`
	Session auth.Session  `json:"session"`
}
