package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/Nix128/asisten-pengawasan-apip/internal/entity"
	"github.com/Nix128/asisten-pengawasan-apip/internal/model"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type seedUser struct {
	Username    string
	Email       string
	PasswordEnv string
	Role        string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding dashboard users...")

	seeds := []seedUser{
		{Username: "admin", Email: "admin@apip.local", PasswordEnv: "SEED_ADMIN_PASSWORD", Role: entity.UserRoleAdmin},
		{Username: "auditor", Email: "auditor@apip.local", PasswordEnv: "SEED_AUDITOR_PASSWORD", Role: entity.UserRoleRegular},
		{Username: "guest", Email: "guest@apip.local", PasswordEnv: "SEED_GUEST_PASSWORD", Role: entity.UserRoleGuest},
	}

	for _, s := range seeds {
		var existing model.User
		if err := db.Where("username = ?", s.Username).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", s.Username)
			continue
		}

		password := os.Getenv(s.PasswordEnv)
		if password == "" {
			color.Yellow("Env %s not set, skipping user '%s'", s.PasswordEnv, s.Username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Error: Failed to hash password for '%s': %v", s.Username, err)
		}

		permsJson, _ := json.Marshal(entity.PermissionsForRole(s.Role))

		user := model.User{
			Id:           uuid.New(),
			Username:     s.Username,
			Email:        s.Email,
			PasswordHash: string(hash),
			Role:         s.Role,
			Permissions:  datatypes.JSON(permsJson),
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Error: Failed to create user '%s': %v", s.Username, err)
		}
		color.Green("Created user '%s' (%s)", s.Username, s.Role)
	}

	color.Cyan("Seeding completed")
}
