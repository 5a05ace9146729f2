package mailer

import "context"

// Message is a rendered email: subject plus HTML and plain-text bodies.
type Message struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer sends one message to one recipient. Implementations must honor
// ctx cancellation so the dispatcher's timeouts can cut a hung send.
type Mailer interface {
	Send(ctx context.Context, to string, msg Message) error
}
