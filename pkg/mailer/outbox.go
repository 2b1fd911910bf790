package mailer

import (
	"context"
	"time"

	"github.com/oksasatya/linkshort/config"
	tpl "github.com/oksasatya/linkshort/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Outbox turns domain events into queued EmailJobs.
type Outbox struct {
	pub Publisher
	cfg *config.Config
}

func NewOutbox(pub Publisher, cfg *config.Config) *Outbox {
	return &Outbox{pub: pub, cfg: cfg}
}

// Welcome enqueues the post-registration email. It is a no-op when mail sending is disabled.
func (o *Outbox) Welcome(ctx context.Context, name, email string) error {
	if o == nil || o.pub == nil || o.cfg == nil || !o.cfg.MailSendEnabled {
		return nil
	}
	data := tpl.NewWelcomeData(o.cfg, name, email, tpl.WithTime(time.Now()))
	return o.pub.PublishJSON(ctx, EmailJob{To: email, Template: tpl.Welcome, Data: data})
}
