// Package mail provides the outbound mail senders. The concrete sender is
// picked once from configuration and injected into whatever needs it; no
// provider is ever resolved by name at send time.
package mail

import (
	"log"
	"sync"

	"chronicle/internal/domain"
)

// LogSender writes outbound mail to the process log. It stands in for a
// real provider in development and is the default.
type LogSender struct {
	provider string
}

func NewLogSender(provider string) *LogSender {
	if provider == "" {
		provider = "log"
	}
	return &LogSender{provider: provider}
}

func (s *LogSender) Send(to, subject, body string) error {
	log.Printf("mail[%s]: to=%s subject=%q", s.provider, to, subject)
	return nil
}

// Recorder captures sent messages for tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
}

type Message struct {
	To      string
	Subject string
	Body    string
}

func (r *Recorder) Send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Message{To: to, Subject: subject, Body: body})
	return nil
}

func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}

// ForProvider maps a configured provider name to a sender. Unknown names
// fall back to a log sender tagged with the requested name, so a typo in
// configuration is visible in the logs rather than silently dropped.
func ForProvider(name string) domain.EmailSender {
	return NewLogSender(name)
}
