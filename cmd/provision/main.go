// Утилита для регистрации разрешённых пользователей. Принимает почту и роль,
// создаёт запись с временным паролем и печатает его в консоль. При первом
// входе пользователь обязан сменить пароль.
//
// Пример: go run ./cmd/provision admin@correo.com admin
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"os"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/shipment-tracker/internal/config"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/password"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/shipment-tracker/internal/migrations"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
	"github.com/magabrotheeeer/shipment-tracker/internal/storage/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))

	if len(os.Args) != 3 {
		fmt.Println("Uso: provision <email> <rol>")
		fmt.Printf("Roles permitidos: %s, %s\n", models.RoleAdmin, models.RoleRequester)
		os.Exit(1)
	}

	email := os.Args[1]
	role := os.Args[2]

	if _, err := mail.ParseAddress(email); err != nil {
		fmt.Printf("Correo electrónico no válido: %s\n", email)
		os.Exit(1)
	}
	if role != models.RoleAdmin && role != models.RoleRequester {
		fmt.Printf("Rol no válido: %s (se esperaba %s o %s)\n", role, models.RoleAdmin, models.RoleRequester)
		os.Exit(1)
	}

	cfg := config.MustLoad()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer db.DB.Close()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	initial, err := password.GenerateInitial()
	if err != nil {
		logger.Error("failed to generate initial password", sl.Err(err))
		os.Exit(1)
	}
	hash, err := password.GetHash(initial)
	if err != nil {
		logger.Error("failed to hash initial password", sl.Err(err))
		os.Exit(1)
	}

	user := models.User{
		UID:               uuid.New().String(),
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		IsAuthorized:      true,
		IsPasswordChanged: false,
	}

	uid, err := db.CreateUser(context.Background(), user)
	if err != nil {
		logger.Error("failed to create user", sl.Err(err))
		os.Exit(1)
	}

	fmt.Println("Usuario autorizado creado exitosamente")
	fmt.Printf("  UID:         %s\n", uid)
	fmt.Printf("  Correo:      %s\n", email)
	fmt.Printf("  Rol:         %s\n", role)
	fmt.Printf("  Contraseña:  %s\n", initial)
	fmt.Println("El usuario deberá cambiar la contraseña en su primer inicio de sesión")
}
