package validation

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resetRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(&resetRequest{Token: "t", Password: "a", ConfirmPassword: "a"}))

	verr := ValidateStruct(&resetRequest{Token: "t", Password: "a", ConfirmPassword: "b"})
	require.NotNil(t, verr)
	assert.True(t, verr.HasTag("eqfield"))
	assert.False(t, verr.HasTag("required"))
	assert.Equal(t, "confirmPassword", verr.Fields[0].Field)

	verr = ValidateStruct(&resetRequest{Password: "a", ConfirmPassword: "a"})
	require.NotNil(t, verr)
	assert.True(t, verr.HasTag("required"))
	assert.Contains(t, verr.Error(), "token failed required")
}

func TestNormalizeAndValidateEmail(t *testing.T) {
	assert.Equal(t, "ann@x.com", NormalizeEmail("  Ann@X.COM "))

	assert.NoError(t, ValidateEmail("ann@x.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("Ann <ann@x.com>"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Ann"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(string(bytes.Repeat([]byte("a"), 101))))
}

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	f, h, err := req.FormFile("image")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f, h
}

func TestValidateImage(t *testing.T) {
	f, h := multipartFile(t, "a.png", pngHeader)
	ct, err := ValidateImage(h, f, 5<<20)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	f, h = multipartFile(t, "a.jpg", pngHeader)
	_, err = ValidateImage(h, f, 5<<20)
	assert.ErrorContains(t, err, "invalid file extension")

	f, h = multipartFile(t, "a.png", []byte("plain text, not an image"))
	_, err = ValidateImage(h, f, 5<<20)
	assert.ErrorContains(t, err, "invalid file type")

	f, h = multipartFile(t, "a.png", pngHeader)
	_, err = ValidateImage(h, f, 4)
	assert.ErrorContains(t, err, "file too large")

	f, h = multipartFile(t, "a.png", nil)
	_, err = ValidateImage(h, f, 5<<20)
	assert.ErrorIs(t, err, ErrEmptyFile)
}
