package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lost-found/internal/push"
)

type PushSender struct {
	mock.Mock
}

func (m *PushSender) Send(ctx context.Context, msg push.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
