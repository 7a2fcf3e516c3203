package mailer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func TestSendSubscriptionConfirmation(t *testing.T) {
	sender := &fakeSender{}
	m := NewWithSender(sender, "club@example.org", "example.org", "https://club.example.org")

	require.NoError(t, m.SendSubscriptionConfirmation("fan@example.org", "Lucie"))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"fan@example.org"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"club@example.org"}, msg.GetHeader("From"))
	assert.Contains(t, msg.GetHeader("Message-ID")[0], "@example.org>")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Lucie")
}

func TestSendSubscriptionConfirmationError(t *testing.T) {
	m := NewWithSender(&fakeSender{err: errors.New("connection refused")}, "club@example.org", "example.org", "")

	err := m.SendSubscriptionConfirmation("fan@example.org", "")
	assert.ErrorContains(t, err, "connection refused")
}
