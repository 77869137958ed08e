package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/eve-pagination/pkg/instrument"
	"github.com/Sternrassler/eve-pagination/pkg/paginate"
)

// maxLineSize bounds a single JSON action line.
const maxLineSize = 1 << 20

// entityID is an identifier read from an action log. Both JSON strings and
// numbers are accepted; numbers keep their literal text.
type entityID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *entityID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = entityID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = entityID(n.String())
	return nil
}

// replayStats summarizes one replay run.
type replayStats struct {
	Lines   int
	Applied int
	Ignored int
	Skipped int
}

// replayer folds a JSON-lines action log through a reducer.
type replayer struct {
	reducer *instrument.Reducer[entityID]
	logger  zerolog.Logger

	// strict turns undecodable lines into errors instead of skipping them.
	strict bool
}

// Run reads one action per line from in and applies it to state. Blank lines
// and lines starting with '#' are ignored. A key error always aborts the run.
func (r *replayer) Run(ctx context.Context, state paginate.State[entityID], in io.Reader) (paginate.State[entityID], replayStats, error) {
	var stats replayStats

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	classify := r.reducer.Unwrap().Classify

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return state, stats, err
		}

		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var action paginate.Action[entityID]
		if err := json.Unmarshal([]byte(line), &action); err != nil {
			if r.strict {
				return state, stats, fmt.Errorf("line %d: decode action: %w", stats.Lines, err)
			}
			r.logger.Warn().
				Err(err).
				Int("line", stats.Lines).
				Msg("Skipping undecodable action")
			stats.Skipped++
			continue
		}

		next, err := r.reducer.Apply(state, action)
		if err != nil {
			return state, stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
		state = next

		if classify(action.Type) == paginate.TransitionNone {
			stats.Ignored++
		} else {
			stats.Applied++
		}
	}

	if err := scanner.Err(); err != nil {
		return state, stats, fmt.Errorf("read actions: %w", err)
	}

	return state, stats, nil
}
