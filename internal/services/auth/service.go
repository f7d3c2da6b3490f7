// Package auth authenticates back-office operators for the admin API.
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"disburser/internal/models"
	"disburser/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(ctx context.Context, email, password string) (*models.Operator, string, error)
}

type service struct {
	operators repositories.OperatorRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(operators repositories.OperatorRepository, jwtSecret string) Service {
	return &service{
		operators: operators,
		jwtSecret: jwtSecret,
		tokenTTL:  12 * time.Hour,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*models.Operator, string, error) {
	operator, err := s.operators.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("login failed: operator not found for %s", email)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(password)); err != nil {
		log.Printf("login failed: incorrect password for %s", email)
		return nil, "", ErrInvalidCredentials
	}

	claims := &models.OperatorClaims{
		OperatorID: operator.ID,
		Email:      operator.Email,
		Role:       operator.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		log.Printf("token generation failed: %v", err)
		return nil, "", errors.New("error generating token")
	}

	return operator, token, nil
}
