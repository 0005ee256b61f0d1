package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/pkg/email"
)

func validMessage() email.Message {
	return email.Message{
		To:      "student@campus.edu",
		Subject: "Activate your account",
		HTML:    "<p>hi</p>",
		Tag:     "activation",
	}
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*email.Message)
		ok     bool
	}{
		{name: "valid", mutate: func(*email.Message) {}, ok: true},
		{name: "missing recipient", mutate: func(m *email.Message) { m.To = "" }},
		{name: "display name recipient", mutate: func(m *email.Message) { m.To = "Ana <ana@campus.edu>" }},
		{name: "bad recipient", mutate: func(m *email.Message) { m.To = "not-an-email" }},
		{name: "blank subject", mutate: func(m *email.Message) { m.Subject = "  " }},
		{name: "empty body", mutate: func(m *email.Message) { m.HTML = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := validMessage()
			tt.mutate(&msg)
			err := msg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidMessage)
		})
	}
}

func TestDevSender_Send(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "mail")
	sender := email.NewDevSender(dir)

	require.NoError(t, sender.Send(t.Context(), validMessage()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".html"):
			htmlFile = e.Name()
		case strings.HasSuffix(e.Name(), ".json"):
			jsonFile = e.Name()
		}
	}
	assert.Contains(t, htmlFile, "activation")

	body, err := os.ReadFile(filepath.Join(dir, htmlFile))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(body))

	raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
	require.NoError(t, err)
	var meta map[string]string
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "student@campus.edu", meta["to"])
	assert.Equal(t, "activation", meta["tag"])
}

func TestDevSender_SendInvalid(t *testing.T) {
	t.Parallel()

	sender := email.NewDevSender(t.TempDir())
	msg := validMessage()
	msg.To = ""
	assert.ErrorIs(t, sender.Send(t.Context(), msg), email.ErrInvalidMessage)
}

func TestDevSender_SendCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	sender := email.NewDevSender(t.TempDir())
	assert.ErrorIs(t, sender.Send(ctx, validMessage()), context.Canceled)
}

func TestNewSender(t *testing.T) {
	t.Parallel()

	s, err := email.NewSender(email.Config{
		SenderEmail:  "noreply@campus.edu",
		SupportEmail: "help@campus.edu",
		DevDir:       t.TempDir(),
	})
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, s)

	s, err = email.NewSender(email.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "noreply@campus.edu",
		SupportEmail:        "help@campus.edu",
	})
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = email.NewSender(email.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "nope",
		SupportEmail:        "help@campus.edu",
	})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestSenderFunc(t *testing.T) {
	t.Parallel()

	var got email.Message
	s := email.SenderFunc(func(_ context.Context, msg email.Message) error {
		got = msg
		return nil
	})
	require.NoError(t, s.Send(t.Context(), validMessage()))
	assert.Equal(t, "student@campus.edu", got.To)
}
