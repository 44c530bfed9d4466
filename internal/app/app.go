package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/snapnest/snapnest/internal/config"
	"github.com/snapnest/snapnest/internal/db"
	"github.com/snapnest/snapnest/internal/service"
	"github.com/snapnest/snapnest/internal/storage"
)

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	Storage     storage.Storage
	AuthService *service.AuthService
	UserService *service.UserService
	PinService  *service.PinService
}

// New opens the database, applies migrations, and connects the image host.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	imageStorage, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)

	return Assemble(cfg, database, imageStorage, emailService), nil
}

// Assemble wires services over already opened infrastructure.
func Assemble(cfg *config.Config, database *sqlx.DB, imageStorage storage.Storage, mailer service.Mailer) *App {
	imageService := service.NewImageService(imageStorage, cfg.UploadMaxBytes)
	authService := service.NewAuthService(database, mailer, service.AuthConfig{
		ClientURL:                cfg.ClientURL,
		JWTSecret:                cfg.JWTSecret,
		JWTExpiry:                cfg.JWTExpiry,
		CookieMaxAge:             cfg.CookieMaxAge,
		CookieSecure:             cfg.CookieSecure,
		TokenPasswordResetExpiry: cfg.TokenPasswordResetExpiry,
		TokenOTPExpiry:           cfg.TokenOTPExpiry,
	})

	return &App{
		Cfg:         cfg,
		DB:          database,
		Storage:     imageStorage,
		AuthService: authService,
		UserService: service.NewUserService(database, imageService, mailer),
		PinService:  service.NewPinService(database, imageService),
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
