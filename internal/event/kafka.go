package event

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"

	"lost-found/internal/pkg/logger"
)

const (
	headerKind = "event_kind"

	DefaultRetryInitial = 500 * time.Millisecond
	DefaultRetryMax     = 30 * time.Second
)

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
	// RetryInitial and RetryMax bound the backoff between attempts on a failed message.
	RetryInitial time.Duration
	RetryMax     time.Duration
}

// KafkaBus publishes every event kind to one topic with the kind in a header.
// A consumed message is retried in place with exponential backoff until all
// handlers succeed, and only then committed; the partition does not advance
// past a failed event. Every handler runs again on each attempt.
type KafkaBus struct {
	writer *kafka.Writer
	reader *kafka.Reader
	log    *logger.Logger

	retryInitial time.Duration
	retryMax     time.Duration

	mu sync.RWMutex
	h  handlers

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewKafkaBus(cfg KafkaConfig, log *logger.Logger) *KafkaBus {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.RetryInitial <= 0 {
		cfg.RetryInitial = DefaultRetryInitial
	}
	if cfg.RetryMax < cfg.RetryInitial {
		cfg.RetryMax = DefaultRetryMax
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		ErrorLogger:            kafka.LoggerFunc(log.SugaredLogger.Errorf),
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.ConsumerGroup,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        500 * time.Millisecond,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: 0,
		ErrorLogger:    kafka.LoggerFunc(log.SugaredLogger.Errorf),
	})

	return &KafkaBus{
		writer:       writer,
		reader:       reader,
		log:          log.With("topic", cfg.Topic),
		retryInitial: cfg.RetryInitial,
		retryMax:     cfg.RetryMax,
	}
}

func (b *KafkaBus) Publish(ctx context.Context, e Event) error {
	payload, err := Encode(e)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(partitionKey(e)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: headerKind, Value: []byte(e.Kind())},
		},
	}

	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		b.log.Error("Failed to publish event", "kind", e.Kind(), "error", err)
		return fmt.Errorf("publish %s: %w", e.Kind(), err)
	}
	return nil
}

func (b *KafkaBus) OnReportCreated(fn func(ctx context.Context, e ReportCreated) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.h.reportCreated = append(b.h.reportCreated, fn)
}

func (b *KafkaBus) OnReportUpdated(fn func(ctx context.Context, e ReportUpdated) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.h.reportUpdated = append(b.h.reportUpdated, fn)
}

func (b *KafkaBus) OnMatchCreated(fn func(ctx context.Context, e MatchCreated) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.h.matchCreated = append(b.h.matchCreated, fn)
}

// Start runs the consume loop until ctx is cancelled or Close is called.
func (b *KafkaBus) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	b.wg.Add(1)
	go b.consumeLoop(ctx)

	b.log.Info("Kafka consumer started", "group", b.reader.Config().GroupID)
}

func (b *KafkaBus) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	return errors.Join(b.reader.Close(), b.writer.Close())
}

func (b *KafkaBus) consumeLoop(ctx context.Context) {
	defer b.wg.Done()

	for {
		msg, err := b.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			b.log.Error("Failed to fetch message", "error", err)
			continue
		}
		b.processMessage(ctx, msg)
	}
}

func (b *KafkaBus) processMessage(ctx context.Context, msg kafka.Message) {
	log := b.log.With("partition", msg.Partition, "offset", msg.Offset)

	e, err := Decode(msg.Value)
	if err != nil {
		// Poison message: commit so the partition does not stall.
		log.Error("Failed to decode event", "kind", headerValue(msg, headerKind), "error", err)
		b.commit(ctx, log, msg)
		return
	}

	if err := b.handleWithRetry(ctx, log, e); err != nil {
		log.Warn("Stopped retrying event, leaving it uncommitted", "kind", e.Kind(), "error", err)
		return
	}
	b.commit(ctx, log, msg)
}

// handleWithRetry dispatches e until every handler succeeds. It only gives up
// when ctx is done.
func (b *KafkaBus) handleWithRetry(ctx context.Context, log *logger.Logger, e Event) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = b.retryInitial
	bo.MaxInterval = b.retryMax
	bo.MaxElapsedTime = 0

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		b.mu.RLock()
		h := b.h
		b.mu.RUnlock()
		return h.dispatch(ctx, e)
	}, backoff.WithContext(bo, ctx), func(err error, wait time.Duration) {
		log.Error("Event handler failed, retrying", "kind", e.Kind(), "attempt", attempt, "wait", wait, "error", err)
	})
}

func (b *KafkaBus) commit(ctx context.Context, log *logger.Logger, msg kafka.Message) {
	if err := b.reader.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", "error", err)
	}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// partitionKey keeps all events for one report on one partition.
func partitionKey(e Event) string {
	switch v := e.(type) {
	case ReportCreated:
		return v.Report.ID.String()
	case ReportUpdated:
		return v.After.ID.String()
	case MatchCreated:
		return v.Match.OriginalReportID.String()
	}
	return ""
}
