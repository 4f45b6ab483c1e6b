// Package redisqueue hands contact submissions to a Redis stream for a
// downstream mailer to consume.
package redisqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/km-arc/go-portfolio/contact"
)

// DefaultStream is used when New is given an empty stream key.
const DefaultStream = "contact:submissions"

// Queue is a contact.Submitter that appends to a Redis stream.
type Queue struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

var _ contact.Submitter = (*Queue)(nil)

// New returns a Queue writing to stream. maxLen caps the stream
// approximately; zero leaves it unbounded.
func New(client redis.UniversalClient, stream string, maxLen int64) *Queue {
	if stream == "" {
		stream = DefaultStream
	}
	return &Queue{client: client, stream: stream, maxLen: maxLen}
}

// Stream returns the stream key.
func (q *Queue) Stream() string { return q.stream }

// Submit adds one entry to the stream.
func (q *Queue) Submit(ctx context.Context, sub contact.Submission) error {
	values, err := Values(sub)
	if err != nil {
		return err
	}
	args := &redis.XAddArgs{
		Stream: q.stream,
		Values: values,
	}
	if q.maxLen > 0 {
		args.MaxLen = q.maxLen
		args.Approx = true
	}
	if err := q.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("redisqueue: xadd %s: %w", sub.ID, err)
	}
	return nil
}

// Values is the flat stream entry for a submission. Fields are JSON encoded
// to keep their order.
func Values(sub contact.Submission) (map[string]any, error) {
	fields, err := json.Marshal(sub.Fields)
	if err != nil {
		return nil, fmt.Errorf("redisqueue: encode fields: %w", err)
	}
	return map[string]any{
		"id":           sub.ID,
		"submitted_at": sub.SubmittedAt.UTC().Format(time.RFC3339Nano),
		"user_agent":   sub.UserAgent,
		"remote_ip":    sub.RemoteIP,
		"fields":       string(fields),
	}, nil
}
