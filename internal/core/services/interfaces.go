package services

import (
	"context"

	"mandoubi/internal/core/domain"
)

// EventPublisher delivers domain events to the message broker
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event domain.RequestStatusChanged) error
}

// TextGenerator produces free-form text from a prompt
type TextGenerator interface {
	Generate(ctx context.Context, instruction, prompt string) (string, error)
}

// SessionCloser terminates the open sessions of a user
type SessionCloser interface {
	CloseUser(ctx context.Context, userID string) (int, error)
}
