package workbench

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethicic/workbench/internal/models"
	"github.com/ethicic/workbench/internal/notify"
)

// recordingTickServer captures every tick write, keyed by symbol.
type recordingTickServer struct {
	mu     sync.Mutex
	writes map[string][]int
}

func (s *recordingTickServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Path shape: /api/securities/{symbol}/tick
		parts := strings.Split(r.URL.Path, "/")
		symbol := parts[3]

		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)

		s.mu.Lock()
		s.writes[symbol] = append(s.writes[symbol], body["score"])
		s.mu.Unlock()

		score := body["score"]
		json.NewEncoder(w).Encode(models.TickScore{Score: &score})
	})
}

func (s *recordingTickServer) scores(symbol string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.writes[symbol]))
	copy(out, s.writes[symbol])
	return out
}

func TestAutosaverCollapsesRapidEdits(t *testing.T) {
	server := &recordingTickServer{writes: make(map[string][]int)}
	c := newTestClient(t, server.handler())
	bus := notify.NewBus()
	defer bus.Close()

	saver := NewAutosaver(c.Tick, bus, 30*time.Millisecond, c.logger)
	defer saver.Stop()

	ch, cancel := bus.Subscribe()
	defer cancel()

	// A burst of edits within the quiet period must produce one write
	// carrying the final value.
	saver.Edit("AAPL", 10)
	saver.Edit("AAPL", 25)
	saver.Edit("AAPL", 60)

	select {
	case n := <-ch:
		assert.Equal(t, notify.LevelSuccess, n.Level)
		assert.Contains(t, n.Message, "60")
		assert.Contains(t, n.Message, "AAPL")
	case <-time.After(2 * time.Second):
		t.Fatal("no save confirmation published")
	}

	assert.Equal(t, []int{60}, server.scores("AAPL"))
}

func TestAutosaverSymbolsAreIndependent(t *testing.T) {
	server := &recordingTickServer{writes: make(map[string][]int)}
	c := newTestClient(t, server.handler())
	bus := notify.NewBus()
	defer bus.Close()

	saver := NewAutosaver(c.Tick, bus, 20*time.Millisecond, c.logger)
	defer saver.Stop()

	ch, cancel := bus.Subscribe()
	defer cancel()

	saver.Edit("AAPL", 40)
	saver.Edit("MSFT", -20)

	confirmed := map[string]bool{}
	for len(confirmed) < 2 {
		select {
		case n := <-ch:
			require.Equal(t, notify.LevelSuccess, n.Level)
			switch {
			case strings.Contains(n.Message, "AAPL"):
				confirmed["AAPL"] = true
			case strings.Contains(n.Message, "MSFT"):
				confirmed["MSFT"] = true
			}
		case <-time.After(2 * time.Second):
			t.Fatal("missing save confirmations")
		}
	}

	assert.Equal(t, []int{40}, server.scores("AAPL"))
	assert.Equal(t, []int{-20}, server.scores("MSFT"))
}

func TestAutosaverReportsFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "symbol is read-only"})
	}))
	bus := notify.NewBus()
	defer bus.Close()

	saver := NewAutosaver(c.Tick, bus, 10*time.Millisecond, c.logger)
	defer saver.Stop()

	ch, cancel := bus.Subscribe()
	defer cancel()

	saver.Edit("AAPL", 30)

	select {
	case n := <-ch:
		assert.Equal(t, notify.LevelError, n.Level)
		assert.Contains(t, n.Message, "AAPL")
	case <-time.After(2 * time.Second):
		t.Fatal("no failure notification published")
	}
}

func TestAutosaverFlushSavesPendingEditNow(t *testing.T) {
	server := &recordingTickServer{writes: make(map[string][]int)}
	c := newTestClient(t, server.handler())
	bus := notify.NewBus()
	defer bus.Close()

	// Long quiet period: only Flush can get the edit out in time.
	saver := NewAutosaver(c.Tick, bus, 10*time.Second, c.logger)
	defer saver.Stop()

	saver.Edit("AAPL", 55)

	done := make(chan struct{})
	go func() {
		saver.Flush()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Flush did not return")
	}

	// Flush returns only after the save completed.
	assert.Equal(t, []int{55}, server.scores("AAPL"))
}

func TestAutosaverFlushWithNothingPendingReturns(t *testing.T) {
	server := &recordingTickServer{writes: make(map[string][]int)}
	c := newTestClient(t, server.handler())
	bus := notify.NewBus()
	defer bus.Close()

	saver := NewAutosaver(c.Tick, bus, 10*time.Millisecond, c.logger)
	defer saver.Stop()

	done := make(chan struct{})
	go func() {
		saver.Flush()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Flush blocked with no pending edits")
	}
	assert.Empty(t, server.scores("AAPL"))
}

func TestAutosaverStopDropsPendingEdits(t *testing.T) {
	server := &recordingTickServer{writes: make(map[string][]int)}
	c := newTestClient(t, server.handler())
	bus := notify.NewBus()
	defer bus.Close()

	saver := NewAutosaver(c.Tick, bus, 500*time.Millisecond, c.logger)

	saver.Edit("AAPL", 10)
	saver.Stop()

	time.Sleep(700 * time.Millisecond)
	assert.Empty(t, server.scores("AAPL"), "pending edit must not be written after Stop")

	// Edits after Stop are ignored.
	saver.Edit("AAPL", 99)
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, server.scores("AAPL"))
}
