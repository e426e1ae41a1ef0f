package tui

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/balance-runner/internal/audio"
	"github.com/vovakirdan/balance-runner/internal/registry"
	"github.com/vovakirdan/balance-runner/internal/sim"
	"github.com/vovakirdan/balance-runner/internal/storage"
)

// eventSource is implemented by games that publish simulation events.
type eventSource interface {
	Subscribe(s sim.Sink)
}

// HistorySink stores the score and the run record of every finished run.
type HistorySink struct {
	store   *storage.Store
	variant string
	logger  *log.Logger
}

// NewHistorySink creates a sink writing runs of variant to store.
// A nil logger discards save errors.
func NewHistorySink(store *storage.Store, variant string, logger *log.Logger) *HistorySink {
	return &HistorySink{store: store, variant: variant, logger: logger}
}

// Handle saves the run when a GameOver event arrives.
func (h *HistorySink) Handle(ev sim.Event) {
	over, ok := ev.(sim.GameOver)
	if !ok || h.store == nil {
		return
	}

	if over.Score > 0 {
		if _, err := h.store.SaveScore(h.variant, over.Score); err != nil {
			h.warn("cannot save score", err)
		}
	}

	_, err := h.store.SaveRun(storage.RunRecord{
		RunID:           over.RunID,
		Variant:         h.variant,
		Seed:            over.Seed,
		Score:           over.Score,
		Distance:        over.Stats.Distance,
		DurationSecs:    over.Stats.Elapsed,
		TokensCollected: over.Stats.TokensCollected,
		MaxImbalance:    math.Round(over.Stats.MaxImbalance*10) / 10,
		LossReason:      over.Reason.String(),
	})
	if err != nil {
		h.warn("cannot save run", err)
	}
}

func (h *HistorySink) warn(msg string, err error) {
	if h.logger != nil {
		h.logger.Warn(msg, "variant", h.variant, "err", err)
	}
}

// attachSinks subscribes the history and audio sinks to the game when it
// publishes events.
func attachSinks(game registry.Game, store *storage.Store, sound *audio.Sink, logger *log.Logger) {
	src, ok := game.(eventSource)
	if !ok {
		return
	}
	if store != nil {
		src.Subscribe(NewHistorySink(store, game.ID(), logger))
	}
	if sound != nil {
		src.Subscribe(sound)
	}
}
