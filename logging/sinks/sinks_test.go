package sinks

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wildmark/server/logging"
)

func sampleEvent(eventType string) logging.Event {
	return logging.Event{
		Type:     logging.EventType(eventType),
		Tick:     7,
		Time:     time.Unix(100, 0),
		Actor:    logging.EntityRef{ID: "animal-1", Kind: logging.EntityKindAnimal},
		Targets:  []logging.EntityRef{{ID: "p1", Kind: logging.EntityKindPlayer}},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryWildlife,
		Payload:  map[string]any{"x": 1.5},
	}
}

func TestMemorySinkRetainsAndResets(t *testing.T) {
	sink := NewMemory()
	require.NoError(t, sink.Write(sampleEvent("a")))
	require.NoError(t, sink.Write(sampleEvent("b")))

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, logging.EventType("a"), events[0].Type)

	// The returned slice is a copy; mutating it must not touch the sink.
	events[0].Type = "mutated"
	assert.Equal(t, logging.EventType("a"), sink.Events()[0].Type)

	sink.Reset()
	assert.Empty(t, sink.Events())
}

func TestSQLiteSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	sink, err := NewSQLite(path)
	require.NoError(t, err)
	defer sink.Close(context.Background())

	require.NoError(t, sink.Write(sampleEvent("wildlife.state_changed")))
	require.NoError(t, sink.Write(sampleEvent("wildlife.state_changed")))
	require.NoError(t, sink.Write(sampleEvent("combat.attack_landed")))

	count, err := sink.CountByType("wildlife.state_changed")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = sink.CountByType("absent.event")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSQLiteSinkRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLite("")
	require.Error(t, err)
}

func TestConsoleSinkHandlesNilLogger(t *testing.T) {
	sink := NewConsole(nil)
	require.NoError(t, sink.Write(sampleEvent("x")))
	require.NoError(t, sink.Close(context.Background()))
}
