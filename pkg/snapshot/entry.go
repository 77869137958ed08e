package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sternrassler/eve-pagination/pkg/paginate"
)

// Snapshot is the stored form of a pagination state.
type Snapshot struct {
	// Keyed is true when State holds a keyed Pages map
	Keyed bool `json:"keyed"`

	// State is the JSON encoded *Page or Pages, null when uninitialized
	State json.RawMessage `json:"state"`

	// SavedAt is when the snapshot was taken
	SavedAt time.Time `json:"saved_at"`

	// Expires is when the snapshot should be discarded (zero means never)
	Expires time.Time `json:"expires,omitempty"`
}

// IsExpired returns true if the snapshot has an expiry that has passed.
func (s *Snapshot) IsExpired() bool {
	return !s.Expires.IsZero() && time.Now().After(s.Expires)
}

// TTL returns the time until expiration, 0 if it never expires or already
// expired.
func (s *Snapshot) TTL() time.Duration {
	if s.Expires.IsZero() {
		return 0
	}
	ttl := time.Until(s.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Encode converts a pagination state into a Snapshot.
func Encode[ID comparable](state paginate.State[ID], ttl time.Duration) (*Snapshot, error) {
	var keyed bool
	switch state.(type) {
	case paginate.Pages[ID]:
		keyed = true
	case *paginate.Page[ID], nil:
	default:
		return nil, fmt.Errorf("%w: unsupported state type %T", ErrInvalidSnapshot, state)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}

	now := time.Now()
	snap := &Snapshot{
		Keyed:   keyed,
		State:   data,
		SavedAt: now,
	}
	if ttl > 0 {
		snap.Expires = now.Add(ttl)
	}
	return snap, nil
}

// Decode restores the pagination state held by a Snapshot.
func Decode[ID comparable](snap *Snapshot) (paginate.State[ID], error) {
	if snap == nil || len(snap.State) == 0 || string(snap.State) == "null" {
		return nil, nil
	}

	if snap.Keyed {
		var pages paginate.Pages[ID]
		if err := json.Unmarshal(snap.State, &pages); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		return pages, nil
	}

	var page paginate.Page[ID]
	if err := json.Unmarshal(snap.State, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return &page, nil
}
