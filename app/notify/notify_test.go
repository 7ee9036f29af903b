package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lysyi3m/rent-comb/app/listing"
)

type recorder struct {
	calls []time.Time
}

func (r *recorder) Notify(context.Context, listing.Listing) error {
	r.calls = append(r.calls, time.Now())
	return nil
}

var sampleListing = listing.New("zoopla", "falkirk", "2", "550", "https://www.zoopla.co.uk/to-rent/details/123")

func TestCompose(t *testing.T) {
	msg := Compose(sampleListing)

	assert.Equal(t, "New property added", msg.Subject)
	assert.Contains(t, msg.Body, "URL: https://www.zoopla.co.uk/to-rent/details/123")
	assert.Contains(t, msg.Body, "Price: 550")
	assert.Contains(t, msg.Body, "Bedrooms: 2")
	assert.Contains(t, msg.Body, "Location: falkirk")
	assert.Contains(t, msg.Body, "Source: zoopla")
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), sampleListing))
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, Subject, fields["subject"])
	assert.Equal(t, sampleListing.Fingerprint(), fields["fingerprint"])
}

func TestSMTPOptions_Validate(t *testing.T) {
	_, err := NewSMTPNotifier(SMTPOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "smtp server is required")
	assert.ErrorContains(t, err, "recipient is required")

	n, err := NewSMTPNotifier(SMTPOptions{
		Server:    "smtp.example.com",
		Port:      587,
		Username:  "bot@example.com",
		Password:  "secret",
		Recipient: "me@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "bot@example.com", n.opts.From)

	msg, err := n.message(sampleListing)
	require.NoError(t, err)
	assert.Equal(t, []string{"New property added"}, msg.GetGenHeader("Subject"))
}

func TestSMTPNotifier_InvalidRecipient(t *testing.T) {
	n, err := NewSMTPNotifier(SMTPOptions{
		Server:    "smtp.example.com",
		Port:      587,
		Username:  "bot@example.com",
		Recipient: "not an address",
	})
	require.NoError(t, err)

	err = n.Notify(context.Background(), sampleListing)
	assert.ErrorContains(t, err, "invalid recipient address")
}

func TestPaced_SpacesCalls(t *testing.T) {
	rec := &recorder{}
	p := NewPaced(rec, 50*time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Notify(context.Background(), sampleListing))
	}

	require.Len(t, rec.calls, 3)
	assert.GreaterOrEqual(t, rec.calls[2].Sub(rec.calls[0]), 90*time.Millisecond)
}

func TestPaced_ZeroIntervalIsUnlimited(t *testing.T) {
	rec := &recorder{}
	p := NewPaced(rec, 0)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Notify(context.Background(), sampleListing))
	}
	assert.Len(t, rec.calls, 5)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPaced_Cancelled(t *testing.T) {
	rec := &recorder{}
	p := NewPaced(rec, time.Hour)

	require.NoError(t, p.Notify(context.Background(), sampleListing))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, p.Notify(ctx, sampleListing))
	assert.Len(t, rec.calls, 1)
}
