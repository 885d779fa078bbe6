package domain

// EmailSender abstracts the outbound mail provider. The concrete sender is
// chosen once at construction time and injected; it is never looked up by
// name at call time.
type EmailSender interface {
	Send(to, subject, body string) error
}
