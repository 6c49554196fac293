package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wildmark/server/internal/archive"
	"wildmark/server/internal/sim"
	"wildmark/server/internal/world"
)

// moduleIdentity is the principal the hub drives the scheduler under. No
// other sender can run simulation jobs.
const moduleIdentity sim.Identity = "wildmark.hub"

type subscriber struct {
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
}

// Hub owns the world, the scheduler, and every live connection. All world
// mutation funnels through its mutex: tick jobs and client commands alike.
type Hub struct {
	mu    sync.Mutex
	world *world.World

	scheduler *sim.Scheduler
	archiver  *archive.Writer
	logger    *zap.Logger

	subscribers map[string]*subscriber
	subMu       sync.RWMutex

	nextPlayerID atomic.Uint64
	upgrader     websocket.Upgrader

	soundQueue chan world.SoundEvent
}

func newHub(w *world.World, archiver *archive.Writer, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		world:       w,
		scheduler:   sim.NewScheduler(moduleIdentity),
		archiver:    archiver,
		logger:      logger,
		subscribers: make(map[string]*subscriber),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		soundQueue: make(chan world.SoundEvent, 128),
	}
	h.registerJobs()
	return h
}

// SoundEmitter returns the emitter the world should be constructed with;
// cues fan out to every subscriber as soundMessage frames.
func (h *Hub) SoundEmitter() world.SoundEmitter {
	return world.SoundEmitterFunc(func(event world.SoundEvent) error {
		select {
		case h.soundQueue <- event:
			return nil
		default:
			return errors.New("sound queue full")
		}
	})
}

func (h *Hub) registerJobs() {
	h.scheduler.Register("wildlife.tick", tickInterval, true, func(now time.Time, dt float64) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.world.BeginTick(h.world.CurrentTick() + 1)
		h.world.MovePlayers(now, dt)
		if err := h.world.AdvanceWildlife(now, dt); err != nil {
			return err
		}
		h.world.AdvanceProjectiles(now, dt)
		return nil
	})
	h.scheduler.Register("status-effects.advance", statusEffectInterval, false, func(now time.Time, dt float64) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.world.AdvanceStatusEffects(now)
		return nil
	})
	h.scheduler.Register("players.prune", heartbeatInterval, false, func(now time.Time, dt float64) error {
		h.mu.Lock()
		removed := h.world.PruneStalePlayers(now, disconnectAfter)
		h.mu.Unlock()
		for _, id := range removed {
			h.logger.Info("pruned stale player", zap.String("player", id))
			h.dropSubscriber(id, nil)
		}
		return nil
	})
	if h.archiver != nil {
		h.scheduler.Register("archive.snapshot", archiveInterval, false, func(now time.Time, dt float64) error {
			h.mu.Lock()
			snap := h.world.Snapshot()
			h.mu.Unlock()
			if err := h.archiver.Write(snap.Tick, snap); err != nil {
				h.logger.Warn("snapshot archive failed", zap.Error(err))
			}
			return nil
		})
	}
}

// Run drives the scheduler at the tick cadence and broadcasts a frame after
// every pass, until the context ends.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-h.soundQueue:
			h.broadcast(mustMarshal(soundMessage{Type: "sound", Sound: event}))
		case now := <-ticker.C:
			if err := h.scheduler.RunDue(now, moduleIdentity); err != nil {
				h.logger.Error("tick failed", zap.Error(err))
				continue
			}
			h.mu.Lock()
			snap := h.world.Snapshot()
			h.mu.Unlock()
			h.broadcast(mustMarshal(stateMessage{Type: "state", Snapshot: snap}))
		}
	}
}

// handleJoin allocates a player id, spawns the player, and returns the first
// frame.
func (h *Hub) handleJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := fmt.Sprintf("player-%d", h.nextPlayerID.Add(1))
	now := time.Now()

	h.mu.Lock()
	cfg := h.world.Config()
	h.world.AddPlayer(id, cfg.Width/2, cfg.Height/2, now)
	seed := h.world.Seed()
	snap := h.world.Snapshot()
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(joinResponse{ID: id, Seed: seed, Snapshot: snap}); err != nil {
		h.logger.Warn("join encode failed", zap.Error(err))
	}
}

// handleWS upgrades the connection and pumps messages both ways until the
// client goes away.
func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	h.mu.Lock()
	known := h.world.Player(id) != nil
	h.mu.Unlock()
	if !known {
		http.Error(w, "unknown player", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	sub := &subscriber{
		conn:    conn,
		send:    make(chan []byte, 32),
		limiter: rate.NewLimiter(rate.Limit(commandsPerSecond), commandBurst),
	}
	h.subMu.Lock()
	if prev, ok := h.subscribers[id]; ok {
		close(prev.send)
	}
	h.subscribers[id] = sub
	h.subMu.Unlock()

	go h.writePump(sub)
	h.readPump(id, sub)
}

func (h *Hub) writePump(sub *subscriber) {
	for msg := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	sub.conn.Close()
}

func (h *Hub) readPump(id string, sub *subscriber) {
	defer func() {
		h.dropSubscriber(id, sub)
		sub.conn.Close()
	}()
	sub.conn.SetReadLimit(maxMessageSize)
	for {
		_, raw, err := sub.conn.ReadMessage()
		if err != nil {
			return
		}
		if !sub.limiter.Allow() {
			// Over-rate commands are dropped, not fatal.
			continue
		}
		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Debug("bad client message", zap.String("player", id), zap.Error(err))
			continue
		}
		h.handleCommand(id, msg)
	}
}

func (h *Hub) handleCommand(id string, msg clientMessage) {
	now := time.Now()
	h.mu.Lock()
	defer h.mu.Unlock()
	switch msg.Type {
	case "move":
		h.world.SetPlayerIntent(id, msg.DX, msg.DY, now)
	case "equip":
		h.world.SetPlayerEquipment(id, msg.Item)
	case "attack":
		if err := h.world.PlayerAttackAnimal(id, msg.AnimalID, now); err != nil {
			h.logger.Debug("attack rejected", zap.String("player", id), zap.Error(err))
		}
	case "cure":
		if err := h.world.CureVenom(id); err != nil {
			h.logger.Debug("cure rejected", zap.String("player", id), zap.Error(err))
		}
	case "heartbeat":
		rtt := time.Duration(0)
		if msg.SentAtMs > 0 {
			rtt = now.Sub(time.UnixMilli(msg.SentAtMs))
		}
		h.world.RecordHeartbeat(id, rtt, now)
	default:
		h.logger.Debug("unknown message type", zap.String("player", id), zap.String("type", msg.Type))
	}
}

// diagnostics reports live counters; the logging stats come from the host
// since the hub does not own the router.
func (h *Hub) diagnostics() (tick uint64, players, animals int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.CurrentTick(), h.world.PlayerCount(), h.world.AnimalCount()
}

func (h *Hub) broadcast(msg []byte) {
	h.subMu.RLock()
	defer h.subMu.RUnlock()
	for id, sub := range h.subscribers {
		select {
		case sub.send <- msg:
		default:
			h.logger.Debug("dropping slow subscriber frame", zap.String("player", id))
		}
	}
}

// dropSubscriber removes a registration. A connection torn down after a
// reconnect replaced it passes its own pointer and must not unregister the
// successor; nil drops whatever is currently registered.
func (h *Hub) dropSubscriber(id string, sub *subscriber) {
	h.subMu.Lock()
	current, ok := h.subscribers[id]
	if ok && sub != nil && current != sub {
		ok = false
	}
	if ok {
		delete(h.subscribers, id)
	}
	h.subMu.Unlock()
	if ok {
		close(current.send)
	}
}

func (h *Hub) subscriberCount() int {
	h.subMu.RLock()
	defer h.subMu.RUnlock()
	return len(h.subscribers)
}
