package mailer

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"

	"github.com/smoralesdev/cartaqr-backend/pkg/config"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
)

func TestNewSMTPRequiresConfig(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	_, err := NewSMTP(config.SMTPConfig{}, logg)
	require.Error(t, err)

	_, err = NewSMTP(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"}, nil)
	require.Error(t, err)

	m, err := NewSMTP(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"}, logg)
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestSendDeliversMessage(t *testing.T) {
	fake := &fakeSender{done: make(chan struct{})}
	m := &SMTPMailer{
		dialer: fake,
		from:   "no-reply@example.com",
		logg:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	}

	m.Send(context.Background(), "owner@example.com", "Invitación a CartaQR", "<p>hola</p>")

	select {
	case <-fake.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	msgs := fake.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"owner@example.com"}, msgs[0].GetHeader("To"))
	assert.Equal(t, []string{"Invitación a CartaQR"}, msgs[0].GetHeader("Subject"))
}

func TestInvitationBody(t *testing.T) {
	subject, body := InvitationBody("La Esquina", "https://cartaqr.app/registro?token=abc", 7)
	assert.Equal(t, "Invitación a CartaQR", subject)
	assert.Contains(t, body, "La Esquina")
	assert.Contains(t, body, "https://cartaqr.app/registro?token=abc")
	assert.Contains(t, body, "7 días")
}

type fakeSender struct {
	mu   sync.Mutex
	msgs []*gomail.Message
	done chan struct{}
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.mu.Lock()
	f.msgs = append(f.msgs, m...)
	f.mu.Unlock()
	close(f.done)
	return nil
}

func (f *fakeSender) sent() []*gomail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*gomail.Message, len(f.msgs))
	copy(out, f.msgs)
	return out
}
