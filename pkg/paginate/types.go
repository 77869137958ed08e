package paginate

import (
	"fmt"
	"strings"
)

// typeCount is the number of action types a reducer responds to.
const typeCount = 4

// Types names the four action types a reducer responds to.
type Types struct {
	Request string
	Success string
	Failure string
	Create  string
}

// NewTypes builds Types from an ordered list of request, success, failure
// and create identifiers. Exactly four distinct, non-empty identifiers are
// required.
func NewTypes(types ...string) (Types, error) {
	if len(types) != typeCount {
		return Types{}, &ConfigError{
			Field:  "types",
			Reason: fmt.Sprintf("expected exactly %d action types, got %d", typeCount, len(types)),
		}
	}

	seen := make(map[string]int, typeCount)
	for i, t := range types {
		if strings.TrimSpace(t) == "" {
			return Types{}, &ConfigError{
				Field:  "types",
				Reason: fmt.Sprintf("action type at position %d is empty", i),
			}
		}
		if prev, dup := seen[t]; dup {
			return Types{}, &ConfigError{
				Field:  "types",
				Reason: fmt.Sprintf("action type %q repeated at positions %d and %d", t, prev, i),
			}
		}
		seen[t] = i
	}

	return Types{
		Request: types[0],
		Success: types[1],
		Failure: types[2],
		Create:  types[3],
	}, nil
}

// TypesFromValues builds Types from untyped values, as decoded from a
// configuration file. It fails if values is not a sequence or if any
// element is not a string.
func TypesFromValues(values any) (Types, error) {
	switch v := values.(type) {
	case []string:
		return NewTypes(v...)
	case []any:
		types := make([]string, 0, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return Types{}, &ConfigError{
					Field:  "types",
					Reason: fmt.Sprintf("action type at position %d is %T, expected string", i, elem),
				}
			}
			types = append(types, s)
		}
		return NewTypes(types...)
	default:
		return Types{}, &ConfigError{
			Field:  "types",
			Reason: fmt.Sprintf("expected a sequence of strings, got %T", values),
		}
	}
}

// Slice returns the types in request, success, failure, create order.
func (t Types) Slice() []string {
	return []string{t.Request, t.Success, t.Failure, t.Create}
}

// Transition identifies which of the four transitions an action type maps to.
type Transition int

const (
	// TransitionNone is any action type the reducer does not recognize.
	TransitionNone Transition = iota
	TransitionRequest
	TransitionSuccess
	TransitionFailure
	TransitionCreate
)

// String returns the lowercase transition name, used as a metric label.
func (t Transition) String() string {
	switch t {
	case TransitionRequest:
		return "request"
	case TransitionSuccess:
		return "success"
	case TransitionFailure:
		return "failure"
	case TransitionCreate:
		return "create"
	default:
		return "none"
	}
}
