package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/snapnest/snapnest/internal/apperr"
	"github.com/snapnest/snapnest/internal/db"
	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/repository"
	"github.com/snapnest/snapnest/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the session cookie carrying the signed JWT.
const CookieName = "snapNest-jwt"

var ErrInvalidSession = errors.New("invalid session token")

type AuthConfig struct {
	ClientURL                string
	JWTSecret                string
	JWTExpiry                time.Duration
	CookieMaxAge             time.Duration
	CookieSecure             bool
	TokenPasswordResetExpiry time.Duration
	TokenOTPExpiry           time.Duration
}

type AuthService struct {
	db              *sqlx.DB
	userRepository  repository.UserRepository
	tokenRepository repository.TokenRepository
	mailer          Mailer
	cfg             AuthConfig
}

func NewAuthService(database *sqlx.DB, mailer Mailer, cfg AuthConfig) *AuthService {
	return &AuthService{
		db:              database,
		userRepository:  repository.NewUserRepository(database),
		tokenRepository: repository.NewTokenRepository(database),
		mailer:          mailer,
		cfg:             cfg,
	}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	err := validation.ValidateName(name)
	if err != nil {
		return nil, apperr.Validation(capitalize(err.Error()))
	}

	email = validation.NormalizeEmail(email)
	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, apperr.Validation("Please enter a valid email address.")
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(name),
		Email:           email,
		PasswordHash:    hash,
		ProfileImageURL: model.DefaultProfileImageURL,
	}

	err = s.userRepository.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, apperr.Conflict("An account with this email already exists.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up", "user_id", user.ID)

	err = s.mailer.SendWelcomeEmail(ctx, user.Email, user.Name)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepository.ByEmail(ctx, validation.NormalizeEmail(email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperr.Auth("No account found with this email.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, apperr.Auth("The password you entered is incorrect.")
	}

	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepository.ByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return apperr.NotFound("User not found.")
	}
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(oldPassword, user.PasswordHash)
	if err != nil {
		return apperr.Auth("Wrong password.")
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepository.UpdatePassword(ctx, user.ID, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed", "user_id", user.ID)
	return nil
}

// ForgotPasswordByLink emails a reset link. The token is stored only once
// the email has gone out.
func (s *AuthService) ForgotPasswordByLink(ctx context.Context, email string) error {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}

	resetToken, err := s.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.clientURL(), resetToken)
	err = s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, resetURL, s.cfg.TokenPasswordResetExpiry)
	if err != nil {
		return apperr.External("Failed to send reset email", err)
	}

	err = s.replaceToken(ctx, user.ID, model.TokenTypePasswordReset, resetToken, s.cfg.TokenPasswordResetExpiry)
	if err != nil {
		return err
	}

	slog.Info("password reset link issued", "user_id", user.ID)
	return nil
}

func (s *AuthService) ResetPasswordByLink(ctx context.Context, token, password string) error {
	return s.resetPassword(ctx, token, password)
}

// ForgotPasswordByOtp stores the bcrypt hash of a fresh 6-digit code and
// emails the code in plaintext.
func (s *AuthService) ForgotPasswordByOtp(ctx context.Context, email string) error {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash otp: %w", err)
	}

	err = s.replaceToken(ctx, user.ID, model.TokenTypePasswordOTP, string(hash), s.cfg.TokenOTPExpiry)
	if err != nil {
		return err
	}

	err = s.mailer.SendOTPEmail(ctx, user.Email, user.Name, code, s.cfg.TokenOTPExpiry)
	if err != nil {
		return apperr.External("Failed to send OTP email", err)
	}

	slog.Info("password otp issued", "user_id", user.ID)
	return nil
}

// VerifyOtp consumes a matching, unexpired OTP and emails a reset link
// for ResetPasswordWithOtpToken.
func (s *AuthService) VerifyOtp(ctx context.Context, email, code string) error {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}

	otpToken, err := s.tokenRepository.LatestUnused(ctx, user.ID, model.TokenTypePasswordOTP)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return apperr.Token("OTP has expired.")
	}
	if err != nil {
		return fmt.Errorf("failed to get otp: %w", err)
	}
	if otpToken.IsExpired() {
		return apperr.Token("OTP has expired.")
	}

	err = bcrypt.CompareHashAndPassword([]byte(otpToken.Token), []byte(strings.TrimSpace(code)))
	if err != nil {
		return apperr.Token("Invalid OTP.")
	}

	err = s.tokenRepository.MarkUsed(ctx, otpToken.ID)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return apperr.Token("OTP has expired.")
	}
	if err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}

	resetToken, err := s.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	err = s.replaceToken(ctx, user.ID, model.TokenTypePasswordReset, resetToken, s.cfg.TokenPasswordResetExpiry)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/otp/%s", s.clientURL(), resetToken)
	err = s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, resetURL, s.cfg.TokenPasswordResetExpiry)
	if err != nil {
		return apperr.External("Failed to send reset email", err)
	}

	slog.Info("password otp verified", "user_id", user.ID)
	return nil
}

func (s *AuthService) ResetPasswordWithOtpToken(ctx context.Context, token, newPassword string) error {
	return s.resetPassword(ctx, token, newPassword)
}

// resetPassword consumes the reset token and stores the new hash atomically.
func (s *AuthService) resetPassword(ctx context.Context, token, password string) error {
	hash, err := s.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var userID string
	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		t, err := repository.NewTokenRepository(tx).ConsumeToken(ctx, token, model.TokenTypePasswordReset)
		if errors.Is(err, repository.ErrTokenNotFound) {
			return apperr.Token("Invalid or expired token")
		}
		if err != nil {
			return fmt.Errorf("failed to consume token: %w", err)
		}
		userID = t.UserID

		err = repository.NewUserRepository(tx).UpdatePassword(ctx, t.UserID, hash)
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.Token("Invalid or expired token")
		}
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("password reset", "user_id", userID)
	return nil
}

func (s *AuthService) userByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepository.ByEmail(ctx, validation.NormalizeEmail(email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperr.NotFound("User not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// replaceToken drops any outstanding credential of the type before storing
// the new one, so at most one is live per user.
func (s *AuthService) replaceToken(ctx context.Context, userID, tokenType, value string, expiry time.Duration) error {
	return db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		tokens := repository.NewTokenRepository(tx)

		err := tokens.DeleteByUserAndType(ctx, userID, tokenType)
		if err != nil {
			return fmt.Errorf("failed to delete old tokens: %w", err)
		}

		err = tokens.Create(ctx, &model.Token{
			UserID:    userID,
			Type:      tokenType,
			Token:     value,
			ExpiresAt: time.Now().UTC().Add(expiry),
		})
		if err != nil {
			return fmt.Errorf("failed to create token: %w", err)
		}
		return nil
	})
}

func (s *AuthService) clientURL() string {
	return strings.TrimRight(s.cfg.ClientURL, "/")
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) GenerateJWT(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.cfg.JWTExpiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyJWT checks signature and expiry and returns the user_id claim.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidSession
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidSession
	}

	return userID, nil
}

// IssueSession signs a JWT for the user and sets the session cookie.
func (s *AuthService) IssueSession(w http.ResponseWriter, userID string) error {
	token, err := s.GenerateJWT(userID)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	s.SetJWTCookie(w, token)
	return nil
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string) {
	cookie := s.baseCookie()
	cookie.Value = token
	cookie.MaxAge = int(s.cfg.CookieMaxAge.Seconds())
	http.SetCookie(w, cookie)
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	cookie := s.baseCookie()
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

func (s *AuthService) baseCookie() *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	// cross-site SPA origins need SameSite=None, which browsers only accept with Secure
	if s.cfg.CookieSecure {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
