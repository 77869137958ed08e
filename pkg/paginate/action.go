package paginate

import (
	"encoding/json"
	"fmt"
)

// Action is an event driving a pagination transition.
type Action[ID comparable] struct {
	// Type selects the transition.
	Type string `json:"type"`

	// Payload carries the fetched or created identifiers. Optional.
	Payload *Payload[ID] `json:"payload,omitempty"`

	// Meta holds caller fields such as the query an action belongs to.
	// Key functions read from it.
	Meta map[string]string `json:"meta,omitempty"`
}

// Payload is the body of success and create actions.
type Payload[ID comparable] struct {
	// Result is one identifier or a list of identifiers.
	Result IDs[ID] `json:"result,omitempty"`

	// NextPageURL is the cursor for the next fetch (success only).
	NextPageURL string `json:"next_page_url,omitempty"`
}

// IDs is a list of identifiers that also decodes from a single JSON value.
type IDs[ID comparable] []ID

// UnmarshalJSON accepts either an array of identifiers or one identifier.
func (ids *IDs[ID]) UnmarshalJSON(data []byte) error {
	var many []ID
	if err := json.Unmarshal(data, &many); err == nil {
		*ids = many
		return nil
	}

	var one ID
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	*ids = IDs[ID]{one}
	return nil
}

func (a Action[ID]) result() []ID {
	if a.Payload == nil {
		return nil
	}
	return a.Payload.Result
}

func (a Action[ID]) nextPageURL() string {
	if a.Payload == nil {
		return ""
	}
	return a.Payload.NextPageURL
}

// KeyFunc extracts the bucket key from an action. Returning false means the
// action carries no usable key and results in a *KeyError.
type KeyFunc[ID comparable] func(Action[ID]) (string, bool)

// MetaKey returns a KeyFunc reading the named Meta field.
func MetaKey[ID comparable](field string) KeyFunc[ID] {
	return func(a Action[ID]) (string, bool) {
		key, ok := a.Meta[field]
		return key, ok
	}
}
