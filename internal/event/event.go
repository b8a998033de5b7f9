// Package event carries report and match lifecycle events between the write
// path and the triggers that react to them.
package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lost-found/internal/domain"
)

type Kind string

const (
	KindReportCreated Kind = "report.created"
	KindReportUpdated Kind = "report.updated"
	KindMatchCreated  Kind = "match.created"
)

type Event interface {
	Kind() Kind
}

type ReportCreated struct {
	Report domain.Report `json:"report"`
}

func (ReportCreated) Kind() Kind { return KindReportCreated }

// ReportUpdated holds the report as it was before and after a write.
type ReportUpdated struct {
	Before domain.Report `json:"before"`
	After  domain.Report `json:"after"`
}

func (ReportUpdated) Kind() Kind { return KindReportUpdated }

type MatchCreated struct {
	Match domain.Match `json:"match"`
}

func (MatchCreated) Kind() Kind { return KindMatchCreated }

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Subscriber interface {
	OnReportCreated(fn func(ctx context.Context, e ReportCreated) error)
	OnReportUpdated(fn func(ctx context.Context, e ReportUpdated) error)
	OnMatchCreated(fn func(ctx context.Context, e MatchCreated) error)
}

type Bus interface {
	Publisher
	Subscriber
}

// Envelope is the wire form of an event.
type Envelope struct {
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

func Encode(e Event) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}
	return json.Marshal(Envelope{Kind: e.Kind(), Payload: payload})
}

func Decode(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return decodePayload(env.Kind, env.Payload)
}

func decodePayload(kind Kind, payload []byte) (Event, error) {
	var (
		e   Event
		err error
	)
	switch kind {
	case KindReportCreated:
		var v ReportCreated
		err = json.Unmarshal(payload, &v)
		e = v
	case KindReportUpdated:
		var v ReportUpdated
		err = json.Unmarshal(payload, &v)
		e = v
	case KindMatchCreated:
		var v MatchCreated
		err = json.Unmarshal(payload, &v)
		e = v
	default:
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return e, nil
}

// handlers is the typed registry shared by the bus implementations.
type handlers struct {
	reportCreated []func(context.Context, ReportCreated) error
	reportUpdated []func(context.Context, ReportUpdated) error
	matchCreated  []func(context.Context, MatchCreated) error
}

func (h *handlers) dispatch(ctx context.Context, e Event) error {
	var errs []error
	switch v := e.(type) {
	case ReportCreated:
		for _, fn := range h.reportCreated {
			errs = append(errs, fn(ctx, v))
		}
	case ReportUpdated:
		for _, fn := range h.reportUpdated {
			errs = append(errs, fn(ctx, v))
		}
	case MatchCreated:
		for _, fn := range h.matchCreated {
			errs = append(errs, fn(ctx, v))
		}
	default:
		return fmt.Errorf("unsupported event %T", e)
	}
	return errors.Join(errs...)
}
