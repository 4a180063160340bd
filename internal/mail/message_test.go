package mail

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-service/internal/config"
)

func sampleEmail() ResetEmail {
	return ResetEmail{
		To:        "a@x.com",
		Link:      "http://localhost:5173/reset-password?token=0b4f1c1e-6d0a-4bb8-9d8b-1b6f2a3c4d5e",
		Code:      "004711",
		ExpiresIn: 10 * time.Minute,
	}
}

func TestRenderBody(t *testing.T) {
	body, err := RenderBody(sampleEmail())
	require.NoError(t, err)

	assert.Contains(t, body, "Reset Link:\nhttp://localhost:5173/reset-password?token=0b4f1c1e-6d0a-4bb8-9d8b-1b6f2a3c4d5e")
	assert.Contains(t, body, "Security Code (6 digits):\n004711")
	assert.Contains(t, body, "This will expire in 10 minutes.")
}

func TestEventRoundTrip(t *testing.T) {
	payload, err := EncodeEvent(sampleEmail())
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"expires_in_seconds":600`)

	decoded, err := DecodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, sampleEmail(), decoded)
}

func TestDecodeEvent_Rejects(t *testing.T) {
	_, err := DecodeEvent([]byte("{not json"))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"link":"x","code":"123456"}`))
	assert.Error(t, err)
}

func TestSMTPSender_BuildMessage(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com", FromName: "Support"})

	msg := string(s.buildMessage("a@x.com", "body"))
	assert.True(t, strings.HasPrefix(msg, "From: Support <no-reply@example.com>\r\n"))
	assert.Contains(t, msg, "To: a@x.com\r\n")
	assert.Contains(t, msg, "Subject: Password Reset Request\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nbody"))
}

func TestSMTPSender_DialFailure(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "127.0.0.1", Port: 1, From: "no-reply@example.com"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := s.SendResetEmail(ctx, sampleEmail())
	assert.Error(t, err)
}

type fakePublisher struct {
	publishFunc func(ctx context.Context, key, value []byte) error
}

func (f *fakePublisher) Publish(ctx context.Context, key, value []byte) error {
	if f.publishFunc != nil {
		return f.publishFunc(ctx, key, value)
	}
	return errors.New("not implemented")
}

func TestKafkaSender(t *testing.T) {
	var gotKey, gotValue []byte
	pub := &fakePublisher{publishFunc: func(_ context.Context, key, value []byte) error {
		gotKey, gotValue = key, value
		return nil
	}}

	require.NoError(t, NewKafkaSender(pub).SendResetEmail(context.Background(), sampleEmail()))
	assert.Equal(t, "a@x.com", string(gotKey))

	decoded, err := DecodeEvent(gotValue)
	require.NoError(t, err)
	assert.Equal(t, "004711", decoded.Code)
}

func TestKafkaSender_PublishError(t *testing.T) {
	pub := &fakePublisher{publishFunc: func(context.Context, []byte, []byte) error {
		return errors.New("broker down")
	}}

	err := NewKafkaSender(pub).SendResetEmail(context.Background(), sampleEmail())
	assert.ErrorContains(t, err, "broker down")
}
