// internal/history/history.go
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultQueueName is the Redis list that accepted game actions are pushed to
// for offline consumers (analytics, replay tooling).
const DefaultQueueName = "brawldeck_actions"

// ActionRecord is the minimal envelope a consumer needs to reconstruct what
// happened in a room.
type ActionRecord struct {
	Room      string                 `json:"room"`
	PlayerID  uuid.UUID              `json:"player_id"`
	Action    string                 `json:"action"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Recorder appends action records to a Redis queue, best effort. A nil
// Recorder is valid and drops everything, so callers never branch.
type Recorder struct {
	rdb   *redis.Client
	queue string
	log   *logrus.Logger
}

// Connect dials Redis and returns a live Recorder, or an error when the
// server is unreachable.
func Connect(addr, queue string, logger *logrus.Logger) (*Recorder, error) {
	if queue == "" {
		queue = DefaultQueueName
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &Recorder{rdb: rdb, queue: queue, log: logger}, nil
}

// Record serializes the record and pushes it onto the queue. Failures are
// logged and swallowed; history must never stall game handling.
func (r *Recorder) Record(room string, playerID uuid.UUID, action string, payload map[string]interface{}) {
	if r == nil || r.rdb == nil {
		return
	}
	rec := ActionRecord{
		Room:      room,
		PlayerID:  playerID,
		Action:    action,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		r.log.Warnf("history: failed to marshal action record: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := r.rdb.RPush(ctx, r.queue, data).Err(); err != nil {
			r.log.Warnf("history: failed to push action record: %v", err)
		}
	}()
}

// Close releases the Redis connection.
func (r *Recorder) Close() error {
	if r == nil || r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}
