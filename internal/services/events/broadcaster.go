// Package events publishes game events to Redis Pub/Sub so external
// observers (overlays, bots, debug tooling) can watch the world change.
// The broadcaster is optional; a nil *Broadcaster is safe to call and
// does nothing, and publish failures never fail a turn.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Channel is the Redis Pub/Sub channel game events are published to.
const Channel = "game-events"

// EventType represents the type of event being broadcast.
type EventType string

const (
	EventTypeTurnCompleted    EventType = "turn.completed"
	EventTypeItemGranted      EventType = "item.granted"
	EventTypeMissionCompleted EventType = "mission.completed"
	EventTypeGameCompleted    EventType = "game.completed"
	EventTypeWorldReset       EventType = "world.reset"
)

// Event is the wire structure published to the channel.
type Event struct {
	Type   EventType      `json:"type"`
	TurnID string         `json:"turn_id,omitempty"`
	NPCID  string         `json:"npc_id,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Broadcaster publishes game events to Redis Pub/Sub.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a broadcaster over an existing Redis client.
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishTurnCompleted publishes a turn.completed event.
func (b *Broadcaster) PublishTurnCompleted(ctx context.Context, turnID uuid.UUID, npcID string, gameComplete bool) {
	b.publish(ctx, Event{
		Type:   EventTypeTurnCompleted,
		TurnID: turnID.String(),
		NPCID:  npcID,
		Data: map[string]any{
			"game_complete": gameComplete,
		},
	})
}

// PublishItemGranted publishes an item.granted event.
func (b *Broadcaster) PublishItemGranted(ctx context.Context, turnID uuid.UUID, npcID string, item string) {
	b.publish(ctx, Event{
		Type:   EventTypeItemGranted,
		TurnID: turnID.String(),
		NPCID:  npcID,
		Data: map[string]any{
			"item": item,
		},
	})
}

// PublishMissionCompleted publishes a mission.completed event.
func (b *Broadcaster) PublishMissionCompleted(ctx context.Context, turnID uuid.UUID, npcID string, mission string) {
	b.publish(ctx, Event{
		Type:   EventTypeMissionCompleted,
		TurnID: turnID.String(),
		NPCID:  npcID,
		Data: map[string]any{
			"mission": mission,
		},
	})
}

// PublishGameCompleted publishes a game.completed event.
func (b *Broadcaster) PublishGameCompleted(ctx context.Context, turnID uuid.UUID) {
	b.publish(ctx, Event{
		Type:   EventTypeGameCompleted,
		TurnID: turnID.String(),
	})
}

// PublishWorldReset publishes a world.reset event.
func (b *Broadcaster) PublishWorldReset(ctx context.Context) {
	b.publish(ctx, Event{Type: EventTypeWorldReset})
}

// publish marshals and publishes a single event. Failures are logged,
// never propagated.
func (b *Broadcaster) publish(ctx context.Context, event Event) {
	if b == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return
	}

	if err := b.redisClient.Publish(ctx, Channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event",
			"error", fmt.Errorf("redis publish: %w", err),
			"event_type", event.Type)
		return
	}

	b.logger.Debug("Event published",
		"event_type", event.Type,
		"turn_id", event.TurnID,
		"npc_id", event.NPCID)
}
