package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// keyPrefix is the first segment of every snapshot key.
const keyPrefix = "pagination"

// Key identifies a stored snapshot.
type Key struct {
	// Namespace groups snapshots (e.g. "orders")
	Namespace string

	// Name identifies the reducer state within the namespace (e.g. "by-region")
	Name string

	// Labels narrow the key further (e.g. {"character": "90000001"})
	Labels map[string]string
}

// String generates a deterministic Redis key.
// Format: pagination:namespace:name:label1=val1:label2=val2
//
// Example:
//
//	pagination:orders:by-region:character=90000001
func (k Key) String() string {
	parts := []string{keyPrefix}

	if ns := strings.Trim(k.Namespace, ":"); ns != "" {
		parts = append(parts, ns)
	}
	if name := strings.Trim(k.Name, ":"); name != "" {
		parts = append(parts, name)
	}

	if len(k.Labels) > 0 {
		names := make([]string, 0, len(k.Labels))
		for name := range k.Labels {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, k.Labels[name]))
		}
	}

	return strings.Join(parts, ":")
}

// Validate reports whether the key has a name.
func (k Key) Validate() error {
	if strings.Trim(k.Name, ": ") == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidKey)
	}
	return nil
}
