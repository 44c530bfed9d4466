package handler

import (
	"net/http"

	"github.com/snapnest/snapnest/internal/ctxkeys"
	"github.com/snapnest/snapnest/internal/service"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !bind(w, r, &req) {
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.authService.IssueSession(w, user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusCreated, "User created successfully")
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !bind(w, r, &req) {
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.authService.IssueSession(w, user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Logged in successfully")
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	writeMessage(w, http.StatusOK, "Logout successful")
}

func (h *authHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !bind(w, r, &req) {
		return
	}

	user := ctxkeys.User(r.Context())
	err := h.authService.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password changed successfully")
}

func (h *authHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !bind(w, r, &req) {
		return
	}

	err := h.authService.ForgotPasswordByLink(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Reset link sent to your email.")
}

func (h *authHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !bind(w, r, &req) {
		return
	}

	err := h.authService.ResetPasswordByLink(r.Context(), req.Token, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password successfully reset")
}

func (h *authHandler) ForgotPasswordOtp(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !bind(w, r, &req) {
		return
	}

	err := h.authService.ForgotPasswordByOtp(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "OTP sent to your email.")
}

func (h *authHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req verifyOtpRequest
	if !bind(w, r, &req) {
		return
	}

	err := h.authService.VerifyOtp(r.Context(), req.Email, req.Otp)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "OTP verified. Reset link sent to your email.")
}

func (h *authHandler) OtpResetPassword(w http.ResponseWriter, r *http.Request) {
	var req otpResetPasswordRequest
	if !bind(w, r, &req) {
		return
	}

	err := h.authService.ResetPasswordWithOtpToken(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password successfully reset")
}
