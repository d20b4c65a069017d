package domain

import "github.com/golang-jwt/jwt/v5"

// User é o usuário do dashboard. O sistema opera com um único usuário
// administrador definido na configuração.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Claims são as claims do token JWT de sessão
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
