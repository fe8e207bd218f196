// Package world publishes gameplay events for the loot lifecycle: items
// spawned by the generator, picked up by a dog, and delivered to an
// office, mirroring the teacher's logging/economy package shape.
package world

import (
	"context"

	"dogrun-server/logging"
)

const (
	// EventItemSpawned is emitted when the loot generator adds a new item.
	EventItemSpawned logging.EventType = "world.item_spawned"
	// EventItemPickedUp is emitted when a dog gathers a lost object.
	EventItemPickedUp logging.EventType = "world.item_picked_up"
	// EventItemDelivered is emitted when a dog's bag is flushed at an office.
	EventItemDelivered logging.EventType = "world.item_delivered"
)

// ItemSpawnedPayload describes a newly generated item.
type ItemSpawnedPayload struct {
	MapID string     `json:"mapId"`
	ID    int        `json:"id"`
	Type  int        `json:"type"`
	Pos   [2]float64 `json:"pos"`
}

// ItemPickedUpPayload describes a successful pickup.
type ItemPickedUpPayload struct {
	MapID string `json:"mapId"`
	ID    int    `json:"id"`
	Type  int    `json:"type"`
}

// ItemDeliveredPayload describes a bag flush at an office.
type ItemDeliveredPayload struct {
	MapID      string `json:"mapId"`
	OfficeID   int    `json:"officeId"`
	ItemCount  int    `json:"itemCount"`
	ScoreAdded int    `json:"scoreAdded"`
}

// ItemSpawned publishes a spawn event.
func ItemSpawned(ctx context.Context, pub logging.Publisher, tick uint64, payload ItemSpawnedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventItemSpawned,
		Tick:     tick,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

// ItemPickedUp publishes a pickup event.
func ItemPickedUp(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemPickedUpPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventItemPickedUp,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

// ItemDelivered publishes a delivery event.
func ItemDelivered(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemDeliveredPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventItemDelivered,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}
