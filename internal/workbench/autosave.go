package workbench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ethicic/workbench/internal/debounce"
	"github.com/ethicic/workbench/internal/notify"
)

// tickEdit carries one pending score edit through the debouncer. The
// generation ties a save confirmation back to the edit that issued it.
type tickEdit struct {
	score int
	gen   uint64
}

// Autosaver persists tick score edits after a quiet period. Rapid edits to
// the same symbol collapse into a single write, and a save confirmation is
// dropped when a newer edit was issued after that save started, so the
// last-issued edit always wins regardless of response ordering.
type Autosaver struct {
	svc    *TickService
	bus    *notify.Bus
	logger *logrus.Logger
	delay  time.Duration
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	settled *sync.Cond
	states  map[string]*symbolState
	stopped bool
	wg      sync.WaitGroup
}

type symbolState struct {
	deb *debounce.Debouncer[tickEdit]
	gen uint64
	// savedGen is the generation of the last completed save attempt. The
	// symbol has unfinished work while it trails gen.
	savedGen uint64
}

// NewAutosaver creates an autosaver writing through svc, publishing outcomes
// on bus.
func NewAutosaver(svc *TickService, bus *notify.Bus, delay time.Duration, logger *logrus.Logger) *Autosaver {
	ctx, cancel := context.WithCancel(context.Background())
	a := &Autosaver{
		svc:    svc,
		bus:    bus,
		logger: logger,
		delay:  delay,
		ctx:    ctx,
		cancel: cancel,
		states: make(map[string]*symbolState),
	}
	a.settled = sync.NewCond(&a.mu)
	return a
}

// Edit records a new score for symbol. The write is issued once no further
// edit arrives for the configured delay.
func (a *Autosaver) Edit(symbol string, score int) {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	state, ok := a.states[symbol]
	if !ok {
		state = &symbolState{deb: debounce.New[tickEdit](a.delay)}
		a.states[symbol] = state
		a.wg.Add(1)
		go a.saveLoop(symbol, state)
	}
	state.gen++
	// Armed under the lock so a concurrent Flush never observes a bumped
	// generation with nothing pending in the debouncer.
	state.deb.Set(tickEdit{score: score, gen: state.gen})
	a.mu.Unlock()
}

// Flush forces pending edits to save immediately and blocks until every
// issued save has completed, so a caller can shut down knowing the last edit
// reached the backend (or its failure was reported).
func (a *Autosaver) Flush() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for !a.stopped {
		dirty := false
		for _, state := range a.states {
			if state.savedGen != state.gen {
				dirty = true
				state.deb.Flush()
			}
		}
		if !dirty {
			return
		}
		a.settled.Wait()
	}
}

// Stop cancels pending edits and in-flight saves, then waits for the save
// workers to exit.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.stopped = true
	for _, state := range a.states {
		state.deb.Stop()
	}
	a.settled.Broadcast()
	a.mu.Unlock()

	a.cancel()
	a.wg.Wait()
}

func (a *Autosaver) saveLoop(symbol string, state *symbolState) {
	defer a.wg.Done()
	for {
		select {
		case <-a.ctx.Done():
			return
		case edit, ok := <-state.deb.C():
			if !ok {
				return
			}
			a.save(symbol, state, edit)
		}
	}
}

func (a *Autosaver) save(symbol string, state *symbolState, edit tickEdit) {
	_, err := a.svc.Update(a.ctx, symbol, edit.score)

	a.mu.Lock()
	superseded := state.gen != edit.gen
	if edit.gen > state.savedGen {
		state.savedGen = edit.gen
	}
	a.settled.Broadcast()
	a.mu.Unlock()

	if superseded {
		// A newer edit was issued while this save was in flight; its own
		// save will confirm. Reporting this one would disagree with the
		// analyst's latest input.
		a.logger.WithFields(logrus.Fields{
			"symbol": symbol,
			"score":  edit.score,
		}).Debug("Dropping superseded save confirmation")
		return
	}

	if err != nil {
		a.logger.WithField("symbol", symbol).WithError(err).Error("Failed to save tick score")
		a.bus.Publish(notify.LevelError, fmt.Sprintf("Failed to save tick score for %s: %v", symbol, err))
		return
	}
	a.bus.Publish(notify.LevelSuccess, fmt.Sprintf("Saved tick score %d for %s", edit.score, symbol))
}
