package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	tpl "github.com/oksasatya/linkshort/pkg/mailer/templates"
)

// Sender delivers one rendered message. Implemented by Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrPoisonJob marks a message that can never be delivered and must not be requeued.
var ErrPoisonJob = errors.New("mailer: undeliverable job")

// Deliver decodes a queued EmailJob, renders its template if any, and hands it to s.
// Errors wrapping ErrPoisonJob should be dropped; any other error is worth a retry.
func Deliver(ctx context.Context, s Sender, body []byte, timeout time.Duration) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrPoisonJob, err)
	}
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("%w: missing recipient", ErrPoisonJob)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = tpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrPoisonJob, job.Template, err)
		}
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrPoisonJob)
	}

	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.Send(sendCtx, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send to %s: %w", job.To, err)
	}
	return nil
}
