package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Mailgun is the worker's Sender.
type Mailgun struct {
	Sender string
	Tag    string
	client *mg.MailgunImpl
}

var _ Sender = (*Mailgun)(nil)

// NewMailgun builds a sender for domain. apiBase overrides the region endpoint when set.
func NewMailgun(domain, apiKey, sender, apiBase string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{Sender: sender, Tag: "linkshort", client: client}
}

// Send delivers one transactional message with click tracking off, so links in the
// mail point at the real URLs rather than a tracking redirect.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	msg.SetTracking(false)
	if m.Tag != "" {
		if err := msg.AddTag(m.Tag); err != nil {
			return fmt.Errorf("mailgun tag: %w", err)
		}
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if _, _, err := m.client.Send(c, msg); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}
