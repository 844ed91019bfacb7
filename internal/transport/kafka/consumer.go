// Package kafka consumes employee profile mutation events and keeps the
// profile vector cache in step with the employee store.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hrsearch/internal/config"
	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/metrics"
	profileuc "github.com/kailas-cloud/hrsearch/internal/usecase/profile"
)

// Event types.
const (
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Event is the JSON payload of one profile mutation record.
type Event struct {
	EmployeeID int64  `json:"employee_id"`
	Type       string `json:"type"`
}

// ProfileVectors applies mutation events.
type ProfileVectors interface {
	RebuildByID(ctx context.Context, id int64) (profileuc.Outcome, error)
	Delete(ctx context.Context, id int64) error
}

// client is the subset of *kgo.Client the consumer drives.
type client interface {
	PollFetches(ctx context.Context) kgo.Fetches
	CommitUncommittedOffsets(ctx context.Context) error
	Close()
}

var errMalformed = errors.New("malformed event")

// Consumer reads profile events from a single topic in a consumer group.
type Consumer struct {
	client  client
	vectors ProfileVectors
	logger  *zap.Logger
}

// NewConsumer connects a group consumer with tracing hooks. Offsets are
// committed manually after each processed batch.
func NewConsumer(cfg config.EventsConfig, vectors ProfileVectors, logger *zap.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("no seed brokers provided")
	}
	if cfg.GroupID == "" {
		return nil, errors.New("missing required group ID")
	}

	k := kotel.NewKotel(kotel.WithTracer(kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
	)))

	cl, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.GroupID),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.DisableAutoCommit(),
		kgo.WithHooks(k.Hooks()...),
		kgo.DialTimeout(10*time.Second),
		kgo.SessionTimeout(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	logger.Info("Profile event consumer created",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
		zap.String("group_id", cfg.GroupID),
	)
	return newConsumer(cl, vectors, logger), nil
}

func newConsumer(cl client, vectors ProfileVectors, logger *zap.Logger) *Consumer {
	return &Consumer{client: cl, vectors: vectors, logger: logger}
}

// Run polls until ctx is cancelled. Malformed records and failed rebuilds are
// logged and skipped. Offsets are committed once per non-empty batch.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if fetches.IsClientClosed() {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.Warn("Fetch error",
				zap.String("topic", topic),
				zap.Int32("partition", partition),
				zap.Error(err),
			)
		})

		n := 0
		fetches.EachRecord(func(rec *kgo.Record) {
			n++
			c.handle(ctx, rec)
		})
		if n == 0 {
			continue
		}
		if err := c.client.CommitUncommittedOffsets(ctx); err != nil {
			c.logger.Warn("Failed to commit offsets", zap.Error(err))
		}
	}
}

// Close leaves the group and releases the client.
func (c *Consumer) Close() {
	c.client.Close()
}

func (c *Consumer) handle(ctx context.Context, rec *kgo.Record) {
	ev, err := decodeEvent(rec.Value)
	if err != nil {
		metrics.ProfileEventsTotal.WithLabelValues("unknown", "malformed").Inc()
		c.logger.Warn("Skipping malformed profile event",
			zap.Int32("partition", rec.Partition),
			zap.Int64("offset", rec.Offset),
			zap.Error(err),
		)
		return
	}

	err = c.apply(ctx, ev)
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		// Employee vanished between the event and the rebuild; nothing to cache.
		c.logger.Debug("Profile event for missing employee", zap.Int64("employee_id", ev.EmployeeID))
	case err != nil:
		result = "error"
		c.logger.Warn("Failed to apply profile event",
			zap.Int64("employee_id", ev.EmployeeID),
			zap.String("type", ev.Type),
			zap.Error(err),
		)
	}
	metrics.ProfileEventsTotal.WithLabelValues(ev.Type, result).Inc()
}

func (c *Consumer) apply(ctx context.Context, ev Event) error {
	if ev.Type == EventDeleted {
		return c.vectors.Delete(ctx, ev.EmployeeID)
	}
	outcome, err := c.vectors.RebuildByID(ctx, ev.EmployeeID)
	if err != nil {
		return err
	}
	if outcome == profileuc.Failed {
		return errors.New("profile vector rebuild failed")
	}
	return nil
}

func decodeEvent(b []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(b, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %w", errMalformed, err)
	}
	if ev.EmployeeID <= 0 {
		return Event{}, fmt.Errorf("%w: employee_id must be positive", errMalformed)
	}
	switch ev.Type {
	case EventUpdated, EventDeleted:
	default:
		return Event{}, fmt.Errorf("%w: unknown type %q", errMalformed, ev.Type)
	}
	return ev, nil
}
