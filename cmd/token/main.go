// Command token signs an access token for a directory employee so the API can
// be exercised without the identity provider.
//
//	go run ./cmd/token -employee E100
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/config"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository"
)

func main() {
	employeeID := flag.String("employee", "", "employee id to sign the token for")
	flag.Parse()

	if *employeeID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -employee <id>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	if cfg.App.Env == "production" {
		fmt.Fprintln(os.Stderr, "token is a development tool and refuses to run in production")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repos, closeRepos, err := repository.Open(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "storage", cfg.App.Storage, "error", err)
		os.Exit(1)
	}
	defer closeRepos()

	e, err := repos.Employee.GetByID(ctx, *employeeID)
	if err != nil {
		slog.Error("Failed to look up employee", "employee_id", *employeeID, "error", err)
		os.Exit(1)
	}
	if !e.IsActive() {
		slog.Error("Employee is inactive", "employee_id", e.ID)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(jwt.Identity{
		EmployeeID: e.ID,
		Role:       e.Role,
		Department: e.Department,
	})
	if err != nil {
		slog.Error("Failed to sign token", "error", err)
		os.Exit(1)
	}

	slog.Info("Token issued", "employee_id", e.ID, "role", e.Role, "expires_at", time.Unix(expiresAt, 0).Format(time.RFC3339))
	fmt.Println(token)
}
