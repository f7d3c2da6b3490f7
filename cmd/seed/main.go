// Seeds the initial operator account for the admin API.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"disburser/internal/config"
	"disburser/internal/models"
	"disburser/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	email := os.Getenv("OPERATOR_EMAIL")
	password := os.Getenv("OPERATOR_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("OPERATOR_EMAIL and OPERATOR_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	ctx := context.Background()
	operators := repositories.NewOperatorRepository(repositories.DB)

	if _, err := operators.GetByEmail(ctx, email); err == nil {
		log.Println("operator already exists")
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.Fatalf("failed to look up operator: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	operator := &models.Operator{
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := operators.Create(ctx, operator); err != nil {
		log.Fatalf("failed to create operator: %v", err)
	}

	log.Printf("operator %s created", email)
}
