package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lysyi3m/rent-comb/app/listing"
)

const Subject = "New property added"

type Notifier interface {
	Notify(ctx context.Context, l listing.Listing) error
}

type Message struct {
	Subject string
	Body    string
}

// Compose renders the plain-text notification for a listing.
func Compose(l listing.Listing) Message {
	var b strings.Builder
	b.WriteString("A new property has been added.\n\n")
	fmt.Fprintf(&b, "URL: %s\n", l.URL)
	fmt.Fprintf(&b, "Price: %s\n", l.PriceText)
	fmt.Fprintf(&b, "Bedrooms: %s\n", l.BedroomsText)
	fmt.Fprintf(&b, "Location: %s\n", l.Location)
	fmt.Fprintf(&b, "Source: %s\n", l.Source)

	return Message{Subject: Subject, Body: b.String()}
}

// LogNotifier logs the rendered message instead of delivering it.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, l listing.Listing) error {
	msg := Compose(l)
	n.logger.Info("Notification (not sent)",
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
		zap.String("fingerprint", l.Fingerprint()))
	return nil
}
