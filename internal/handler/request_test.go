package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/snapnest/snapnest/internal/apperr"
	"github.com/snapnest/snapnest/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Messages(t *testing.T) {
	tests := []struct {
		name string
		req  request
		want string
	}{
		{
			name: "signup missing field",
			req:  &signupRequest{Name: "Ann", Email: "ann@x.com", Password: "pw"},
			want: "Please fill in all the required fields.",
		},
		{
			name: "signup whitespace name",
			req:  &signupRequest{Name: "  ", Email: "ann@x.com", Password: "pw", ConfirmPassword: "pw"},
			want: "Please fill in all the required fields.",
		},
		{
			name: "signup mismatch",
			req:  &signupRequest{Name: "Ann", Email: "ann@x.com", Password: "pw", ConfirmPassword: "px"},
			want: "Password do not match.",
		},
		{
			name: "change password",
			req:  &changePasswordRequest{OldPassword: "a"},
			want: "All fields are required.",
		},
		{
			name: "forgot password",
			req:  &emailRequest{Email: " "},
			want: "Email field is required",
		},
		{
			name: "reset mismatch",
			req:  &resetPasswordRequest{Token: "t", Password: "a", ConfirmPassword: "b"},
			want: "Password does not match",
		},
		{
			name: "reset missing confirmation",
			req:  &resetPasswordRequest{Token: "t", Password: "a"},
			want: "Both fields required",
		},
		{
			name: "verify otp",
			req:  &verifyOtpRequest{Email: "ann@x.com"},
			want: "Email and OTP required",
		},
		{
			name: "otp reset missing token",
			req:  &otpResetPasswordRequest{NewPassword: "a", NewConfirmPassword: "a"},
			want: "Missing fields",
		},
		{
			name: "otp reset mismatch",
			req:  &otpResetPasswordRequest{Token: "t", NewPassword: "a", NewConfirmPassword: "b"},
			want: "password does not match",
		},
		{
			name: "blank comment",
			req:  &commentRequest{Comment: "   "},
			want: "Comment cannot be empty.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(tt.req)
			require.Error(t, err)
			e, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindValidation, e.Kind)
			assert.Equal(t, tt.want, e.Message)
		})
	}
}

func TestValidate_PasswordsAreNotTrimmed(t *testing.T) {
	req := &signupRequest{Name: " Ann ", Email: " ann@x.com ", Password: " pw ", ConfirmPassword: " pw "}
	require.NoError(t, validate(req))
	assert.Equal(t, "Ann", req.Name)
	assert.Equal(t, "ann@x.com", req.Email)
	assert.Equal(t, " pw ", req.Password)
}

func TestBind_InvalidJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))

	var body loginRequest
	assert.False(t, bind(rec, req, &body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
}

func TestBind_EmptyBodyReportsMissingFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", http.NoBody)

	var body loginRequest
	assert.False(t, bind(rec, req, &body))
	assert.JSONEq(t, `{"message":"Please fill in all the required fields."}`, rec.Body.String())
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), apperr.Forbidden("Unauthorized to delete this pin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestParseMultipart_TooLarge(t *testing.T) {
	big := bytes.Repeat([]byte{0}, 3<<20)
	body, contentType := servicetest.MultipartBody(t, map[string]string{"title": "T"}, "image", "a.png", big)

	req := httptest.NewRequest(http.MethodPost, "/api/pin/create", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	err := parseMultipart(rec, req, 1<<20)
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "File too large: maximum size is 1 MB", e.Message)
}

func TestFormImage_MissingFileIsNil(t *testing.T) {
	body, contentType := servicetest.MultipartBody(t, map[string]string{"name": "Ann"}, "", "", nil)

	req := httptest.NewRequest(http.MethodPut, "/api/user/edit-profile", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, parseMultipart(httptest.NewRecorder(), req, 1<<20))

	up, err := formImage(req, "profileImage")
	require.NoError(t, err)
	assert.Nil(t, up)
	assert.Equal(t, "Ann", req.FormValue("name"))
}
