package notification

import "context"

// Message is one transactional email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Sender delivers a Message through an email provider.
type Sender interface {
	// Send delivers the message or returns an error carrying the provider's diagnostic.
	Send(ctx context.Context, msg Message) error
}

// Row is one label/value line in an estimate email.
type Row struct {
	Label string
	Value string
}
