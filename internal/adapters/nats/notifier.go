package natsadapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

// NotifySubjectPrefix is where outbound notifications are published for
// the push/SMS gateway to deliver.
const NotifySubjectPrefix = "saferoute.notify."

type notification struct {
	Recipient string    `json:"recipient"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

// Notifier implements ports.NotificationService by handing messages to a
// gateway over NATS request/reply, so a missing gateway is an error.
type Notifier struct {
	conn *nats.Conn
}

// NewNotifier wraps an existing connection.
func NewNotifier(conn *nats.Conn) *Notifier {
	return &Notifier{conn: conn}
}

// SendPush publishes the message and waits for the gateway to acknowledge it.
func (n *Notifier) SendPush(ctx context.Context, recipient, title, body string) error {
	data, err := json.Marshal(notification{
		Recipient: recipient,
		Title:     title,
		Body:      body,
		SentAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}
	_, err = n.conn.RequestWithContext(ctx, NotifySubjectPrefix+"push", data)
	return err
}
