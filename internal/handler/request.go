package handler

import (
	"net/http"
	"strings"

	"github.com/snapnest/snapnest/internal/apperr"
	"github.com/snapnest/snapnest/internal/validation"
)

// request is implemented by every JSON request body. normalize trims
// free-text fields; passwords are taken verbatim.
type request interface {
	normalize()
	messages() ruleMessages
}

// ruleMessages maps a failed validator tag to the message the client shows.
type ruleMessages map[string]string

// validate normalizes req and reports the message of the first failed rule,
// with "required" taking precedence over the other rules.
func validate(req request) error {
	req.normalize()

	verr := validation.ValidateStruct(req)
	if verr == nil {
		return nil
	}

	msgs := req.messages()
	if verr.HasTag("required") {
		return apperr.Wrap(apperr.KindValidation, msgs["required"], verr)
	}
	for _, f := range verr.Fields {
		if msg, ok := msgs[f.Tag]; ok {
			return apperr.Wrap(apperr.KindValidation, msg, verr)
		}
	}
	return apperr.Wrap(apperr.KindValidation, msgs["required"], verr)
}

// bind decodes and validates a JSON request, answering 400 itself on failure.
func bind(w http.ResponseWriter, r *http.Request, req request) bool {
	err := decodeJSON(w, r, req)
	if err == nil {
		err = validate(req)
	}
	if err != nil {
		writeError(w, r, err)
		return false
	}
	return true
}

type signupRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (r *signupRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

func (r *signupRequest) messages() ruleMessages {
	return ruleMessages{
		"required": "Please fill in all the required fields.",
		"eqfield":  "Password do not match.",
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r *loginRequest) messages() ruleMessages {
	return ruleMessages{"required": "Please fill in all the required fields."}
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

func (r *changePasswordRequest) normalize() {}

func (r *changePasswordRequest) messages() ruleMessages {
	return ruleMessages{"required": "All fields are required."}
}

type emailRequest struct {
	Email string `json:"email" validate:"required"`
}

func (r *emailRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r *emailRequest) messages() ruleMessages {
	return ruleMessages{"required": "Email field is required"}
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (r *resetPasswordRequest) normalize() {
	r.Token = strings.TrimSpace(r.Token)
}

func (r *resetPasswordRequest) messages() ruleMessages {
	return ruleMessages{
		"required": "Both fields required",
		"eqfield":  "Password does not match",
	}
}

type verifyOtpRequest struct {
	Email string `json:"email" validate:"required"`
	Otp   string `json:"otp" validate:"required"`
}

func (r *verifyOtpRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Otp = strings.TrimSpace(r.Otp)
}

func (r *verifyOtpRequest) messages() ruleMessages {
	return ruleMessages{"required": "Email and OTP required"}
}

type otpResetPasswordRequest struct {
	Token              string `json:"token" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required"`
	NewConfirmPassword string `json:"newConfirmPassword" validate:"required,eqfield=NewPassword"`
}

func (r *otpResetPasswordRequest) normalize() {
	r.Token = strings.TrimSpace(r.Token)
}

func (r *otpResetPasswordRequest) messages() ruleMessages {
	return ruleMessages{
		"required": "Missing fields",
		"eqfield":  "password does not match",
	}
}

type commentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

func (r *commentRequest) normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *commentRequest) messages() ruleMessages {
	return ruleMessages{"required": "Comment cannot be empty."}
}
