package kafka

import "errors"

var (
	ErrProducerClosed = errors.New("kafka producer is closed")

	ErrInvalidMessage = errors.New("invalid message")

	ErrEmptyKey = errors.New("message key cannot be empty")

	// ErrEmptyValue is also what a MessageBuilder produces when its value failed to encode.
	ErrEmptyValue = errors.New("message value cannot be empty")
)
