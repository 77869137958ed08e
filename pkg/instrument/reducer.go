// Package instrument wraps a pagination reducer with Prometheus metrics and
// debug logging. The wrapped reducer returns exactly what the underlying
// reducer returns.
package instrument

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/eve-pagination/pkg/paginate"
)

// Reducer is an observed paginate.Reducer.
type Reducer[ID comparable] struct {
	next   *paginate.Reducer[ID]
	logger zerolog.Logger
}

// Wrap returns an observed reducer delegating to next.
func Wrap[ID comparable](next *paginate.Reducer[ID], logger zerolog.Logger) *Reducer[ID] {
	if next == nil {
		panic("reducer cannot be nil")
	}
	return &Reducer[ID]{
		next:   next,
		logger: logger,
	}
}

// Unwrap returns the underlying reducer.
func (r *Reducer[ID]) Unwrap() *paginate.Reducer[ID] {
	return r.next
}

// Apply delegates to paginate.Reducer.Apply and records the outcome.
func (r *Reducer[ID]) Apply(state paginate.State[ID], action paginate.Action[ID]) (paginate.State[ID], error) {
	t := r.next.Classify(action.Type)

	next, err := r.next.Apply(state, action)
	if t == paginate.TransitionNone {
		IgnoredTotal.Inc()
		return next, err
	}

	if err != nil {
		if errors.Is(err, paginate.ErrKey) {
			KeyErrorsTotal.Inc()
		}
		r.logger.Warn().
			Err(err).
			Str("action_type", action.Type).
			Str("transition", t.String()).
			Bool("keyed", r.next.Keyed()).
			Msg("Pagination action rejected")
		return nil, err
	}

	TransitionsTotal.WithLabelValues(t.String()).Inc()

	event := r.logger.Debug().
		Str("action_type", action.Type).
		Str("transition", t.String())

	switch s := next.(type) {
	case paginate.Pages[ID]:
		Buckets.Set(float64(len(s)))
		event = event.Int("buckets", len(s))
		if key, ok := r.next.KeyOf(action); ok {
			page := s[key]
			event = event.
				Str("bucket_key", key).
				Int("page_count", page.PageCount).
				Int("ids", len(page.IDs)).
				Bool("is_fetching", page.IsFetching)
		}
	case *paginate.Page[ID]:
		event = event.
			Int("page_count", s.PageCount).
			Int("ids", len(s.IDs)).
			Bool("is_fetching", s.IsFetching)
	}
	event.Msg("Pagination transition applied")

	return next, nil
}

// Fold applies actions in order starting from state and stops at the first
// error, returning the last good state alongside it.
func (r *Reducer[ID]) Fold(state paginate.State[ID], actions ...paginate.Action[ID]) (paginate.State[ID], error) {
	for _, action := range actions {
		next, err := r.Apply(state, action)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
