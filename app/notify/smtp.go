package notify

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/lysyi3m/rent-comb/app/listing"
)

type SMTPOptions struct {
	Server    string
	Port      int
	Username  string
	Password  string
	Recipient string
	// From defaults to Username.
	From string
}

func (o SMTPOptions) validate() error {
	var errs []error
	if o.Server == "" {
		errs = append(errs, errors.New("smtp server is required"))
	}
	if o.Port <= 0 {
		errs = append(errs, fmt.Errorf("invalid smtp port: %d", o.Port))
	}
	if o.Username == "" {
		errs = append(errs, errors.New("smtp username is required"))
	}
	if o.Recipient == "" {
		errs = append(errs, errors.New("recipient is required"))
	}
	return errors.Join(errs...)
}

// SMTPNotifier delivers one email per listing. The connection is upgraded
// with STARTTLS before authenticating and sending fails if the server does
// not offer it.
type SMTPNotifier struct {
	opts   SMTPOptions
	client *mail.Client
}

func NewSMTPNotifier(opts SMTPOptions) (*SMTPNotifier, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.From = cmp.Or(opts.From, opts.Username)

	client, err := mail.NewClient(opts.Server,
		mail.WithPort(opts.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(opts.Username),
		mail.WithPassword(opts.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPNotifier{opts: opts, client: client}, nil
}

func (n *SMTPNotifier) message(l listing.Listing) (*mail.Msg, error) {
	rendered := Compose(l)

	msg := mail.NewMsg()
	if err := msg.From(n.opts.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.opts.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(rendered.Subject)
	msg.SetBodyString(mail.TypeTextPlain, rendered.Body)

	return msg, nil
}

func (n *SMTPNotifier) Notify(ctx context.Context, l listing.Listing) error {
	msg, err := n.message(l)
	if err != nil {
		return err
	}

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
