package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// EventJobArgs carries the data needed to process a domain event
// asynchronously. River serializes this as JSON into its job queue
// table. The payload is a snapshot of the entities at the time the
// event was published, so the worker never needs to query the database.
type EventJobArgs struct {
	Event       string `json:"event"`
	TenantID    string `json:"tenant_id,omitempty"`
	Username    string `json:"username,omitempty"`
	SpaceID     string `json:"space_id,omitempty"`
	SpaceNumber string `json:"space_number,omitempty"`
	ApartmentID string `json:"apartment_id,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (EventJobArgs) Kind() string { return "event.published" }

// InsertOpts routes event jobs to the dedicated events queue.
func (EventJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{Queue: queueEvents}
}

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a domain event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.Event, payload domain.EventPayload) error {
	_, err := p.client.Insert(ctx, EventJobArgs{
		Event:       string(event),
		TenantID:    payload.TenantID,
		Username:    payload.Username,
		SpaceID:     payload.SpaceID,
		SpaceNumber: payload.SpaceNumber,
		ApartmentID: payload.ApartmentID,
		Status:      payload.Status,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing event job: %w", err)
	}
	return nil
}
