package paginate

import "maps"

// Config configures a Reducer.
type Config[ID comparable] struct {
	// Types lists the request, success, failure and create action types.
	Types []string

	// MapActionToKey selects keyed mode when set.
	MapActionToKey KeyFunc[ID]
}

// Reducer computes pagination state transitions. It is immutable once built
// and safe for concurrent use.
type Reducer[ID comparable] struct {
	types Types
	keyOf KeyFunc[ID]
}

// New validates cfg and returns a Reducer. Each call returns an independent
// reducer, even for identical configurations.
func New[ID comparable](cfg Config[ID]) (*Reducer[ID], error) {
	types, err := NewTypes(cfg.Types...)
	if err != nil {
		return nil, err
	}

	return &Reducer[ID]{
		types: types,
		keyOf: cfg.MapActionToKey,
	}, nil
}

// Types returns the action types the reducer responds to.
func (r *Reducer[ID]) Types() Types {
	return r.types
}

// Keyed reports whether a key function was configured.
func (r *Reducer[ID]) Keyed() bool {
	return r.keyOf != nil
}

// KeyOf returns the bucket key for action. It reports false when the
// reducer is not keyed or the key function produced no key.
func (r *Reducer[ID]) KeyOf(action Action[ID]) (string, bool) {
	if r.keyOf == nil {
		return "", false
	}
	return r.keyOf(action)
}

// Classify maps an action type to its transition.
func (r *Reducer[ID]) Classify(actionType string) Transition {
	switch actionType {
	case r.types.Request:
		return TransitionRequest
	case r.types.Success:
		return TransitionSuccess
	case r.types.Failure:
		return TransitionFailure
	case r.types.Create:
		return TransitionCreate
	default:
		return TransitionNone
	}
}

// Apply returns the state following action. In keyed mode state is expected
// to be Pages, otherwise a *Page; a state of the other shape is treated as
// uninitialized. Unrecognized actions return state itself.
func (r *Reducer[ID]) Apply(state State[ID], action Action[ID]) (State[ID], error) {
	t := r.Classify(action.Type)
	if t == TransitionNone {
		return state, nil
	}

	if r.keyOf != nil {
		pages, _ := state.(Pages[ID])
		next, err := r.reduceKeyed(t, pages, action)
		if err != nil {
			return nil, err
		}
		return next, nil
	}

	page, _ := state.(*Page[ID])
	return transition(t, page, action), nil
}

// Reduce applies action to a single bucket, ignoring any key function.
// A nil page is replaced by the default bucket before a recognized
// transition; unrecognized actions return page itself.
func (r *Reducer[ID]) Reduce(page *Page[ID], action Action[ID]) *Page[ID] {
	t := r.Classify(action.Type)
	if t == TransitionNone {
		return page
	}
	return transition(t, page, action)
}

// ReduceKeyed applies action to the bucket selected by the key function.
// The returned map shares every untouched entry with pages.
func (r *Reducer[ID]) ReduceKeyed(pages Pages[ID], action Action[ID]) (Pages[ID], error) {
	t := r.Classify(action.Type)
	if t == TransitionNone {
		return pages, nil
	}
	if r.keyOf == nil {
		return nil, &ConfigError{Field: "mapActionToKey", Reason: "keyed reduce requires a key function"}
	}
	return r.reduceKeyed(t, pages, action)
}

func (r *Reducer[ID]) reduceKeyed(t Transition, pages Pages[ID], action Action[ID]) (Pages[ID], error) {
	key, ok := r.keyOf(action)
	if !ok {
		return nil, &KeyError{ActionType: action.Type}
	}

	next := make(Pages[ID], len(pages)+1)
	maps.Copy(next, pages)
	next[key] = transition(t, pages[key], action)

	return next, nil
}

// transition computes one recognized bucket transition on a fresh copy.
func transition[ID comparable](t Transition, page *Page[ID], action Action[ID]) *Page[ID] {
	next := page.normalized()

	switch t {
	case TransitionRequest:
		next.IsFetching = true
	case TransitionSuccess:
		next.IsFetching = false
		next.IDs = Union(next.IDs, action.result())
		next.NextPageURL = action.nextPageURL()
		next.PageCount++
	case TransitionFailure:
		next.IsFetching = false
	case TransitionCreate:
		// New ids go first.
		next.IDs = Union(action.result(), next.IDs)
	}

	return &next
}
