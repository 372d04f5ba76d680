package main

import (
	"context"
	"flag"

	"wallet-import/internal/config"
	"wallet-import/internal/database"
	"wallet-import/internal/models"
	"wallet-import/internal/repository"
	"wallet-import/internal/utils"
)

func main() {
	log := utils.GetLogger()

	username := flag.String("username", "admin", "login name")
	password := flag.String("password", "", "password (required)")
	name := flag.String("name", "Administrator", "display name")
	email := flag.String("email", "", "email address")
	role := flag.String("role", "admin", "user role")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	if *email == "" {
		*email = *username + "@localhost"
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.NewMySQL(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.WithError(err).Fatal("Failed to hash password")
	}

	user := models.User{
		Name:         *name,
		Username:     *username,
		Email:        *email,
		PasswordHash: hash,
		Role:         *role,
		IsActive:     true,
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), &user); err != nil {
		log.WithError(err).Fatal("Failed to create user")
	}

	log.WithField("id", user.ID).WithField("username", user.Username).Info("User created")
}
