package services

// EventPublisher delivers domain events to the message broker.
type EventPublisher interface {
	PublishProductCreated(event map[string]interface{}) error
}
