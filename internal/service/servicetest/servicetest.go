// Package servicetest holds fakes and fixtures shared by service and handler tests.
package servicetest

import (
	"bytes"
	"context"
	"mime"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/snapnest/snapnest/internal/service"
	"github.com/stretchr/testify/require"
)

// PNG is the smallest payload sniffed as image/png.
var PNG = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

type Email struct {
	Kind string
	To   string
	Name string
	URL  string
	Code string
}

// Mailer records every email instead of sending it. With Err set every send fails.
type Mailer struct {
	mu   sync.Mutex
	sent []Email
	Err  error
}

var _ service.Mailer = (*Mailer)(nil)

func (m *Mailer) record(e Email) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	return nil
}

func (m *Mailer) SendWelcomeEmail(_ context.Context, to, name string) error {
	return m.record(Email{Kind: "welcome", To: to, Name: name})
}

func (m *Mailer) SendPasswordResetEmail(_ context.Context, to, name, resetURL string, _ time.Duration) error {
	return m.record(Email{Kind: "password_reset", To: to, Name: name, URL: resetURL})
}

func (m *Mailer) SendOTPEmail(_ context.Context, to, name, code string, _ time.Duration) error {
	return m.record(Email{Kind: "password_otp", To: to, Name: name, Code: code})
}

func (m *Mailer) SendAccountDeletedEmail(_ context.Context, to, name string) error {
	return m.record(Email{Kind: "account_deleted", To: to, Name: name})
}

// Last returns the most recent email of the kind.
func (m *Mailer) Last(kind string) (Email, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Kind == kind {
			return m.sent[i], true
		}
	}
	return Email{}, false
}

func (m *Mailer) Count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.sent {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// MultipartBody builds a multipart form with the given fields and, when
// filename is set, a file part named fileField.
func MultipartBody(t testing.TB, fields map[string]string, fileField, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &body, w.FormDataContentType()
}

// Upload returns an opened multipart file as a handler would receive it.
func Upload(t testing.TB, filename string, content []byte) *service.Upload {
	t.Helper()

	body, contentType := MultipartBody(t, nil, "image", filename, content)
	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	header := form.File["image"][0]
	file, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	return &service.Upload{File: file, Header: header}
}
