// Package events publishes best-effort user-changed notifications over
// NATS and lets callers subscribe to them. Delivery is not guaranteed;
// consumers must treat events as cache-invalidation hints, not as the
// source of truth.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/nidoham/Social-v2/pkg/logger"
)

const subjectPrefix = "social.users."

// Kind classifies what happened to a user record.
type Kind string

const (
	KindCreated      Kind = "created"
	KindUpdated      Kind = "updated"
	KindDeleted      Kind = "deleted"
	KindRelationship Kind = "relationship"
)

// UserEvent is one change notification for a user.
type UserEvent struct {
	ID     string    `json:"id"`
	UserID string    `json:"user_id"`
	Kind   Kind      `json:"kind"`
	At     time.Time `json:"at"`
}

// Publisher publishes and subscribes to user change events.
type Publisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// Connect dials the NATS server.
func Connect(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &Publisher{conn: conn, logger: logger.Named("events")}, nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	_ = p.conn.Drain()
}

// UserChanged publishes a change notification for the given user.
// Failures are logged and swallowed; publication never fails the
// triggering repository operation. Safe to call on a nil Publisher.
func (p *Publisher) UserChanged(userID string, kind Kind) {
	if p == nil || p.conn == nil {
		return
	}

	event := UserEvent{
		ID:     uuid.NewString(),
		UserID: userID,
		Kind:   kind,
		At:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("Failed to encode user event", zap.Error(err))
		return
	}

	if err := p.conn.Publish(subjectPrefix+userID, payload); err != nil {
		p.logger.Warn("Failed to publish user event",
			zap.String("user_id", userID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

// WatchUser subscribes to change events for one user. The returned
// cancel function unsubscribes and stops delivery; the channel itself
// is never closed, because a handler dispatched just before
// Unsubscribe returns may still be delivering into it.
func (p *Publisher) WatchUser(userID string) (<-chan UserEvent, func(), error) {
	if p == nil || p.conn == nil {
		return nil, nil, fmt.Errorf("events are not configured")
	}

	events := make(chan UserEvent, 16)
	done := make(chan struct{})
	sub, err := p.conn.Subscribe(subjectPrefix+userID, func(msg *nats.Msg) {
		var event UserEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			p.logger.Warn("Failed to decode user event", zap.Error(err))
			return
		}
		select {
		case <-done:
		case events <- event:
		default:
			// Slow consumer; best-effort semantics allow dropping.
		}
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to subscribe to user events: %w", err)
	}

	cancel := func() {
		_ = sub.Unsubscribe()
		close(done)
	}
	return events, cancel, nil
}
