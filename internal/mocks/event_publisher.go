package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lost-found/internal/event"
)

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
