package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Options struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

// SMTPNotifier sends plain-text email over STARTTLS.
type SMTPNotifier struct {
	opts   Options
	logger *zap.Logger
}

func NewSMTPNotifier(opts Options, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{opts: opts, logger: logger}
}

func (n *SMTPNotifier) Message(subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(n.opts.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", n.opts.From, err)
	}
	if err := msg.To(n.opts.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", n.opts.Recipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return msg, nil
}

func (n *SMTPNotifier) Notify(ctx context.Context, subject, body string) error {
	msg, err := n.Message(subject, body)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(
		n.opts.Host,
		gomail.WithPort(n.opts.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.opts.Username),
		gomail.WithPassword(n.opts.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	n.logger.Info("email notify send", zap.String("subject", subject), zap.String("to", n.opts.Recipient))
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
