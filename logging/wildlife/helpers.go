package wildlife

import (
	"context"

	"wildmark/server/logging"
)

const (
	// EventStateChanged is emitted when an animal's AI state tag changes.
	EventStateChanged logging.EventType = "wildlife.state_changed"
	// EventBurrowed is emitted when a viper relocates underground.
	EventBurrowed logging.EventType = "wildlife.burrowed"
	// EventCorpseCreated is emitted when a dead animal is replaced by a corpse.
	EventCorpseCreated logging.EventType = "wildlife.corpse_created"
	// EventPushOutExhausted is emitted when overlap resolution ran out of
	// iterations with overlap still present.
	EventPushOutExhausted logging.EventType = "wildlife.pushout_exhausted"
	// EventCatalogMiss is emitted when a species or effect lookup fails and
	// the optional side effect was skipped.
	EventCatalogMiss logging.EventType = "wildlife.catalog_miss"
)

// StateChangedPayload captures an AI transition.
type StateChangedPayload struct {
	Species  string `json:"species"`
	From     string `json:"from"`
	To       string `json:"to"`
	TargetID string `json:"targetId,omitempty"`
}

func StateChanged(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload StateChangedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventStateChanged,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryWildlife,
		Payload:  payload,
	})
}

// BurrowedPayload captures a burrow teleport.
type BurrowedPayload struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	UntilMs  int64   `json:"untilMs"`
	Distance float64 `json:"distance"`
}

func Burrowed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload BurrowedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventBurrowed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryWildlife,
		Payload:  payload,
	})
}

// CorpseCreatedPayload records the corpse spawned for a dead animal.
type CorpseCreatedPayload struct {
	CorpseID string  `json:"corpseId"`
	Species  string  `json:"species"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

func CorpseCreated(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CorpseCreatedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCorpseCreated,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryWildlife,
		Payload:  payload,
	})
}

// PushOutExhaustedPayload records a non-converged overlap resolution.
type PushOutExhaustedPayload struct {
	Iterations int     `json:"iterations"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

func PushOutExhausted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PushOutExhaustedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPushOutExhausted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryWildlife,
		Payload:  payload,
	})
}

// CatalogMissPayload records a failed species/effect definition lookup.
type CatalogMissPayload struct {
	Lookup string `json:"lookup"`
	Key    string `json:"key"`
}

func CatalogMiss(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CatalogMissPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCatalogMiss,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityError,
		Category: logging.CategoryWildlife,
		Payload:  payload,
	})
}
