// Package testutil provides action fixtures for pagination tests.
package testutil

import "github.com/Sternrassler/eve-pagination/pkg/paginate"

// Action types used across tests.
const (
	TypeRequest = "ORDERS_REQUEST"
	TypeSuccess = "ORDERS_SUCCESS"
	TypeFailure = "ORDERS_FAILURE"
	TypeCreate  = "ORDER_CREATE"
	TypeOther   = "UNRELATED"
)

// KeyField is the Meta field keyed fixtures are routed by.
const KeyField = "query"

// Types returns the standard request/success/failure/create types.
func Types() []string {
	return []string{TypeRequest, TypeSuccess, TypeFailure, TypeCreate}
}

// Request builds a request action. An empty key leaves Meta unset.
func Request[ID comparable](key string) paginate.Action[ID] {
	return paginate.Action[ID]{Type: TypeRequest, Meta: meta(key)}
}

// Success builds a success action carrying ids and the next cursor.
func Success[ID comparable](key, nextPageURL string, ids ...ID) paginate.Action[ID] {
	return paginate.Action[ID]{
		Type: TypeSuccess,
		Payload: &paginate.Payload[ID]{
			Result:      ids,
			NextPageURL: nextPageURL,
		},
		Meta: meta(key),
	}
}

// Failure builds a failure action.
func Failure[ID comparable](key string) paginate.Action[ID] {
	return paginate.Action[ID]{Type: TypeFailure, Meta: meta(key)}
}

// Create builds a create action for one or more new ids.
func Create[ID comparable](key string, ids ...ID) paginate.Action[ID] {
	return paginate.Action[ID]{
		Type:    TypeCreate,
		Payload: &paginate.Payload[ID]{Result: ids},
		Meta:    meta(key),
	}
}

// Other builds an action no fixture reducer recognizes.
func Other[ID comparable]() paginate.Action[ID] {
	return paginate.Action[ID]{Type: TypeOther}
}

func meta(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{KeyField: key}
}
