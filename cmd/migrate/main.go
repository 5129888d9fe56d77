package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"leadtrack-crm/internal/config"
	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/pkg/logger"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/repository"
	"leadtrack-crm/internal/service/user"
	"leadtrack-crm/migrations"
)

func main() {
	seedAdmin := flag.Bool("seed-admin", false, "Create the first admin user after migrating")
	email := flag.String("admin-email", os.Getenv("ADMIN_EMAIL"), "Admin email (defaults to ADMIN_EMAIL)")
	password := flag.String("admin-password", os.Getenv("ADMIN_PASSWORD"), "Admin password (defaults to ADMIN_PASSWORD)")
	firstName := flag.String("admin-first-name", "Admin", "Admin first name")
	lastName := flag.String("admin-last-name", "User", "Admin last name")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	zapLog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zapLog.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := migrate(ctx, db, zapLog); err != nil {
		zapLog.Fatal("migration failed", zap.Error(err))
	}

	if !*seedAdmin {
		return
	}

	repos := repository.NewRepositories(db)
	users := user.NewService(repos.User, repos.Session, policy.New(), zapLog)
	admin, err := users.CreateAdmin(ctx, domain.CreateUserInput{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      domain.RoleAdmin,
	})
	if err != nil {
		zapLog.Fatal("admin not created", zap.Error(err))
	}
	zapLog.Info("admin created", zap.Int64("user_id", admin.ID), zap.String("email", admin.Email))
}

func migrate(ctx context.Context, db *sqlx.DB, log *zap.Logger) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return err
	}

	all, err := migrations.All()
	if err != nil {
		return err
	}

	for _, m := range all {
		var applied bool
		if err := db.GetContext(ctx, &applied,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, m.Name); err != nil {
			return err
		}
		if applied {
			log.Debug("migration already applied", zap.String("name", m.Name))
			continue
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.Name); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		log.Info("migration applied", zap.String("name", m.Name))
	}
	return nil
}
