package mail

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/goccy/go-json"
)

//go:generate mockgen -source=message.go -destination=mocks/mock_sender.go -package=mocks

const ResetSubject = "Password Reset Request"

// ResetEmail is everything needed to tell a user how to finish a reset.
type ResetEmail struct {
	To        string
	Link      string
	Code      string
	ExpiresIn time.Duration
}

// Sender delivers reset emails over some transport.
type Sender interface {
	SendResetEmail(ctx context.Context, msg ResetEmail) error
}

var resetBody = template.Must(template.New("reset").Parse(`Hello!

You requested a password reset.

Reset Link:
{{.Link}}

Security Code (6 digits):
{{.Code}}

This will expire in {{.Minutes}} minutes.

If you did not request this, ignore this email.
`))

// RenderBody renders the plain-text body of a reset email.
func RenderBody(msg ResetEmail) (string, error) {
	minutes := int(msg.ExpiresIn.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	var buf bytes.Buffer
	err := resetBody.Execute(&buf, struct {
		Link    string
		Code    string
		Minutes int
	}{msg.Link, msg.Code, minutes})
	if err != nil {
		return "", fmt.Errorf("failed to render reset email: %w", err)
	}
	return buf.String(), nil
}

// ResetEmailEvent is the queue payload carrying a ResetEmail to the mailer.
type ResetEmailEvent struct {
	Email            string `json:"email"`
	Link             string `json:"link"`
	Code             string `json:"code"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

func EncodeEvent(msg ResetEmail) ([]byte, error) {
	return json.Marshal(ResetEmailEvent{
		Email:            msg.To,
		Link:             msg.Link,
		Code:             msg.Code,
		ExpiresInSeconds: int64(msg.ExpiresIn / time.Second),
	})
}

func DecodeEvent(data []byte) (ResetEmail, error) {
	var evt ResetEmailEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return ResetEmail{}, fmt.Errorf("failed to decode reset email event: %w", err)
	}
	if evt.Email == "" {
		return ResetEmail{}, fmt.Errorf("reset email event has no recipient")
	}
	return ResetEmail{
		To:        evt.Email,
		Link:      evt.Link,
		Code:      evt.Code,
		ExpiresIn: time.Duration(evt.ExpiresInSeconds) * time.Second,
	}, nil
}
