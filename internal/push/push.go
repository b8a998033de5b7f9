// Package push delivers notifications to a device token.
package push

import (
	"context"

	"lost-found/internal/pkg/logger"
)

type Message struct {
	Token  string
	Title  string
	Body   string
	Action string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender only logs. Used when FCM is disabled.
type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	if log == nil {
		log = logger.Nop()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info("Push suppressed", "title", msg.Title, "action", msg.Action)
	return nil
}
