package queue

// MessageQueue abstracts the event bus used to announce reports and
// passports to downstream consumers (PDF rendering, notifications).
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}
