// Package session publishes lifecycle events for players joining, being
// rejected at join, and retiring, mirroring the teacher's per-domain logging packages
// (logging/economy, logging/combat) but for the player/session lifecycle.
package session

import (
	"context"

	"dogrun-server/logging"
)

const (
	// EventJoined is emitted when a new player joins a map's session.
	EventJoined logging.EventType = "session.joined"
	// EventRetired is emitted when a player is retired for inactivity.
	EventRetired logging.EventType = "session.retired"
	// EventRejected is emitted when a join attempt is rejected.
	EventRejected logging.EventType = "session.rejected"
)

// JoinedPayload describes a successful join.
type JoinedPayload struct {
	MapID string    `json:"mapId"`
	Name  string    `json:"name"`
	Pos   [2]float64 `json:"pos"`
}

// RetiredPayload describes a retirement.
type RetiredPayload struct {
	MapID     string  `json:"mapId"`
	Name      string  `json:"name"`
	Score     int     `json:"score"`
	PlayTimeS float64 `json:"playTimeS"`
}

// RejectedPayload describes a failed join attempt.
type RejectedPayload struct {
	MapID  string `json:"mapId"`
	Reason string `json:"reason"`
}

// Joined publishes a join event.
func Joined(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload JoinedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventJoined,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategorySession,
		Payload:  payload,
	})
}

// Retired publishes a retirement event.
func Retired(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload RetiredPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRetired,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategorySession,
		Payload:  payload,
	})
}

// Rejected publishes a failed-join event.
func Rejected(ctx context.Context, pub logging.Publisher, tick uint64, payload RejectedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRejected,
		Tick:     tick,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySession,
		Payload:  payload,
	})
}
