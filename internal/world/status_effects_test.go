package world

import (
	"testing"
	"time"
)

func TestBleedTicksAndExpires(t *testing.T) {
	w := newTestWorld(t)
	p := placePlayer(t, w, "p1", 1000, 1000)
	now := time.Unix(100, 0)

	w.applyStatusEffect(p, StatusBleed, nil, now)

	def := w.statusEffectDefs[StatusBleed]
	w.AdvanceStatusEffects(now.Add(def.TickInterval))
	if p.Health != p.MaxHealth-def.DamagePerTick {
		t.Fatalf("health = %v after one tick, want %v", p.Health, p.MaxHealth-def.DamagePerTick)
	}

	// Past the full duration the effect is gone and stops ticking.
	w.AdvanceStatusEffects(now.Add(def.Duration + time.Second))
	if _, ok := p.statusEffects[StatusBleed]; ok {
		t.Fatalf("bleed survived past its duration")
	}
	healthAfterExpiry := p.Health
	w.AdvanceStatusEffects(now.Add(def.Duration + time.Minute))
	if p.Health != healthAfterExpiry {
		t.Fatalf("expired effect still ticking")
	}
}

func TestVenomPersistsUntilCured(t *testing.T) {
	w := newTestWorld(t)
	p := placePlayer(t, w, "p1", 1000, 1000)
	now := time.Unix(100, 0)

	w.applyStatusEffect(p, StatusVenom, nil, now)

	// A month later the venom is still ticking.
	w.AdvanceStatusEffects(now.Add(30 * 24 * time.Hour))
	if _, ok := p.statusEffects[StatusVenom]; !ok {
		t.Fatalf("venom expired on its own")
	}
	if p.Health == p.MaxHealth && !p.Dead {
		t.Fatalf("venom never dealt damage")
	}

	if err := w.CureVenom("p1"); err != nil {
		t.Fatalf("CureVenom: %v", err)
	}
	if _, ok := p.statusEffects[StatusVenom]; ok {
		t.Fatalf("venom survived the cure")
	}
}

func TestCureVenomUnknownPlayer(t *testing.T) {
	w := newTestWorld(t)
	if err := w.CureVenom("ghost"); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestReapplyRefreshesInsteadOfStacking(t *testing.T) {
	w := newTestWorld(t)
	p := placePlayer(t, w, "p1", 1000, 1000)
	now := time.Unix(100, 0)
	def := w.statusEffectDefs[StatusBleed]

	w.applyStatusEffect(p, StatusBleed, nil, now)
	w.applyStatusEffect(p, StatusBleed, nil, now.Add(def.Duration/2))

	if len(p.statusEffects) != 1 {
		t.Fatalf("effects stacked: %d instances", len(p.statusEffects))
	}
	// The refreshed instance outlives the original expiry.
	w.AdvanceStatusEffects(now.Add(def.Duration + time.Second))
	if _, ok := p.statusEffects[StatusBleed]; !ok {
		t.Fatalf("refresh did not extend the effect")
	}
}

func TestUnknownEffectSkippedNotFatal(t *testing.T) {
	pub := &recordingPublisher{}
	w := newTestWorldWithPublisher(t, pub)
	p := placePlayer(t, w, "p1", 1000, 1000)

	w.applyStatusEffect(p, StatusEffectType("curse"), nil, time.Unix(100, 0))
	if len(p.statusEffects) != 0 {
		t.Fatalf("unknown effect was attached")
	}
}

func TestStatusDamageCanKill(t *testing.T) {
	w := newTestWorld(t)
	p := placePlayer(t, w, "p1", 1000, 1000)
	p.Health = 1
	now := time.Unix(100, 0)

	w.applyStatusEffect(p, StatusBleed, nil, now)
	w.AdvanceStatusEffects(now.Add(2 * time.Second))

	if !p.Dead {
		t.Fatalf("lethal status damage did not kill")
	}
	if p.Health != 0 {
		t.Fatalf("health = %v, want clamp at 0", p.Health)
	}
}
