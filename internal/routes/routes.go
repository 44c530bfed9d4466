package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/snapnest/snapnest/internal/app"
	"github.com/snapnest/snapnest/internal/handler"
	"github.com/snapnest/snapnest/internal/middleware"
	"github.com/snapnest/snapnest/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.UserService, app.AuthService, app.Cfg.UploadMaxBytes)
	pin := handler.NewPinHandler(app.PinService, app.Cfg.UploadMaxBytes)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Metrics(pattern, h))
	}
	protected := func(pattern string, h http.HandlerFunc) {
		handle(pattern, middleware.RequireAuth(h))
	}

	// ============================================================================
	// OPERATIONS
	// ============================================================================

	handle("GET /healthz", health.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Uploaded images when stored on local disk
	if local, ok := app.Storage.(*storage.LocalStorage); ok {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(local.Root()))))
	}

	// ============================================================================
	// AUTH
	// ============================================================================

	handle("POST /api/auth/signup", auth.Signup)
	handle("POST /api/auth/login", auth.Login)
	handle("POST /api/auth/logout", auth.Logout)
	protected("POST /api/auth/change-password", auth.ChangePassword)

	// Password recovery by link
	handle("POST /api/auth/forgot-password", auth.ForgotPassword)
	handle("POST /api/auth/reset-password", auth.ResetPassword)

	// Password recovery by OTP
	handle("POST /api/auth/forgot-password/otp", auth.ForgotPasswordOtp)
	handle("POST /api/auth/password/verify-otp", auth.VerifyOtp)
	handle("POST /api/auth/otp-reset-password", auth.OtpResetPassword)

	// ============================================================================
	// USERS (session required)
	// ============================================================================

	protected("GET /api/user/me", user.Me)
	protected("GET /api/user/feed", user.Feed)
	protected("GET /api/user/user-profile/{id}", user.Profile)
	protected("POST /api/user/follow/{id}", user.Follow)
	protected("GET /api/user/{id}/{type}", user.Connections)
	protected("PUT /api/user/edit-profile", user.EditProfile)
	protected("DELETE /api/user/delete", user.DeleteAccount)

	// ============================================================================
	// PINS (session required)
	// ============================================================================

	protected("POST /api/pin/create", pin.Create)
	protected("GET /api/pin/all-pins", pin.All)
	protected("GET /api/pin/single-pin/{id}", pin.Single)
	protected("GET /api/pin/user-pins/{id}", pin.UserPins)
	protected("POST /api/pin/comment/{id}", pin.AddComment)
	protected("DELETE /api/pin/comment/{commentId}", pin.DeleteComment)
	protected("DELETE /api/pin/delete-pin/{id}", pin.Delete)
	protected("POST /api/pin/save/{pinId}", pin.ToggleSave)
	protected("DELETE /api/pin/unsave/{pinId}", pin.Unsave)
	protected("GET /api/pin/saved", pin.Saved)
	protected("GET /api/pin/search", pin.Search)

	handle("/", handler.NotFound)

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.ClientURL),
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
