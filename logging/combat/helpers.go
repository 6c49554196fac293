package combat

import (
	"context"

	"wildmark/server/logging"
)

const (
	// EventAttackLanded is emitted when an animal attack connects.
	EventAttackLanded logging.EventType = "combat.attack_landed"
	// EventStatusApplied is emitted when a status effect lands on an actor.
	EventStatusApplied logging.EventType = "combat.status_applied"
	// EventProjectileSpawned is emitted when a spittle projectile launches.
	EventProjectileSpawned logging.EventType = "combat.projectile_spawned"
	// EventSoundFailed is emitted when a fire-and-forget sound emission
	// reports an error.
	EventSoundFailed logging.EventType = "combat.sound_failed"
)

// AttackPayload captures a landed attack.
type AttackPayload struct {
	Species string  `json:"species"`
	Damage  float64 `json:"damage"`
	Ranged  bool    `json:"ranged,omitempty"`
}

func AttackLanded(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload AttackPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAttackLanded,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// StatusPayload captures a status effect application.
type StatusPayload struct {
	StatusEffect string `json:"statusEffect"`
	SourceID     string `json:"sourceId,omitempty"`
	DurationMs   int64  `json:"durationMs,omitempty"`
}

func StatusApplied(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload StatusPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventStatusApplied,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// ProjectilePayload captures a projectile launch.
type ProjectilePayload struct {
	ProjectileID string  `json:"projectileId"`
	TargetID     string  `json:"targetId"`
	Speed        float64 `json:"speed"`
	MaxRange     float64 `json:"maxRange"`
}

func ProjectileSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ProjectilePayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProjectileSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// SoundFailedPayload records a dropped sound emission.
type SoundFailedPayload struct {
	Sound string `json:"sound"`
	Error string `json:"error"`
}

func SoundFailed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SoundFailedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSoundFailed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}
