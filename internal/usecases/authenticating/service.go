package authenticating

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/internal/config"
	"github.com/vfg2006/omniconnect-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Authenticator valida o acesso ao painel. O sistema opera com um único
// usuário administrador definido na configuração.
type Authenticator interface {
	Login(email, password string) (string, *domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg          *config.Config
	passwordHash []byte
	admin        domain.User
}

func NewService(cfg *config.Config) (Authenticator, error) {
	// A senha do administrador vem da configuração em texto plano;
	// mantemos apenas o hash em memória
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Dashboard.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:          cfg,
		passwordHash: hash,
		admin: domain.User{
			ID:    "admin-1",
			Email: cfg.Dashboard.AdminEmail,
			Name:  cfg.Dashboard.AdminName,
			Role:  "admin",
		},
	}, nil
}

// Login valida as credenciais e emite um token JWT de sessão
func (s *Service) Login(email, password string) (string, *domain.User, error) {
	if email != s.admin.Email {
		logrus.WithField("email", email).Warn("auth: tentativa de login com e-mail desconhecido")
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("auth: senha incorreta")
		return "", nil, ErrInvalidCredentials
	}

	claims := &domain.Claims{
		UserID: s.admin.ID,
		Email:  s.admin.Email,
		Name:   s.admin.Name,
		Role:   s.admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.Secret))
	if err != nil {
		return "", nil, err
	}

	user := s.admin
	return signed, &user, nil
}

// ValidateToken verifica a assinatura e a validade do token de sessão
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	claims := &domain.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
