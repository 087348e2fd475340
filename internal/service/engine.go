package service

import (
	"time"

	"github.com/AdamBeresnev/fc-knockout/internal/utils"
)

// Engine runs every tournament step as a pure transformation: it takes a snapshot and
// returns a new one, the input is never modified.
type Engine struct {
	rng utils.Rand
	now func() time.Time
}

// NewEngine uses the process-wide random source when rng is nil
func NewEngine(rng utils.Rand) *Engine {
	if rng == nil {
		rng = utils.GlobalRand
	}
	return &Engine{rng: rng, now: time.Now}
}
