package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/snapnest/snapnest/internal/apperr"
	"github.com/snapnest/snapnest/internal/db/dbtest"
	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/service"
	"github.com/snapnest/snapnest/internal/service/servicetest"
	"github.com/snapnest/snapnest/internal/storage/storagetest"
	"github.com/stretchr/testify/require"
)

const clientURL = "https://app.snapnest.test"

type fixture struct {
	db      *sqlx.DB
	store   *storagetest.Memory
	mailer  *servicetest.Mailer
	images  *service.ImageService
	auth    *service.AuthService
	users   *service.UserService
	pins    *service.PinService
	authCfg service.AuthConfig
}

func newFixture(t *testing.T, opts ...func(*service.AuthConfig)) *fixture {
	t.Helper()

	cfg := service.AuthConfig{
		ClientURL:                clientURL + "/",
		JWTSecret:                "test-secret",
		JWTExpiry:                24 * time.Hour,
		CookieMaxAge:             15 * 24 * time.Hour,
		TokenPasswordResetExpiry: 5 * time.Minute,
		TokenOTPExpiry:           5 * time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &fixture{
		db:      dbtest.New(t),
		store:   storagetest.NewMemory(),
		mailer:  &servicetest.Mailer{},
		authCfg: cfg,
	}
	f.images = service.NewImageService(f.store, 5<<20)
	f.auth = service.NewAuthService(f.db, f.mailer, cfg)
	f.users = service.NewUserService(f.db, f.images, f.mailer)
	f.pins = service.NewPinService(f.db, f.images)
	return f
}

func (f *fixture) signup(t *testing.T, name string) *model.User {
	t.Helper()
	u, err := f.auth.Signup(context.Background(), name, name+"@x.com", "pw-"+name)
	require.NoError(t, err)
	return u
}

func (f *fixture) createPin(t *testing.T, owner *model.User, title string) *model.Pin {
	t.Helper()
	p, err := f.pins.Create(context.Background(), owner.ID, service.CreatePinInput{
		Title:       title,
		Description: "about " + title,
		Category:    "Art",
		Image:       servicetest.Upload(t, title+".png", servicetest.PNG),
	})
	require.NoError(t, err)
	// created_at orders listings
	time.Sleep(2 * time.Millisecond)
	return p
}

func requireAppErr(t *testing.T, err error, kind apperr.Kind, message string) {
	t.Helper()
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %T: %v", err, err)
	require.Equal(t, kind, e.Kind)
	require.Equal(t, message, e.Message)
}
