package kafka

import "errors"

var (
	ErrProducerClosed = errors.New("kafka producer is closed")

	ErrEmptyKey = errors.New("message key cannot be empty")

	// ErrEmptyValue is also returned when the builder failed to encode a value.
	ErrEmptyValue = errors.New("message value cannot be empty")
)
