// Package paginate builds pure state-update functions that track paginated
// list fetching.
//
// A Reducer is created once from four action types (request, success,
// failure, create) and an optional key function. Each call to Apply takes the
// previous state and one action and returns the next state. The reducer
// never mutates its inputs, performs no I/O and holds no state of its own.
//
// Two modes are supported:
//
//   - Single bucket: the whole state is one *Page.
//   - Keyed: the state is a Pages map and the key function routes each
//     action to one entry (e.g. one bucket per search query). Entries for
//     other keys are shared, not copied.
//
// Example usage:
//
//	reducer, err := paginate.New(paginate.Config[int64]{
//		Types:          []string{"ORDERS_REQUEST", "ORDERS_SUCCESS", "ORDERS_FAILURE", "ORDER_CREATE"},
//		MapActionToKey: paginate.MetaKey[int64]("region"),
//	})
//	if err != nil {
//		return err
//	}
//
//	var state paginate.State[int64]
//	state, err = reducer.Apply(state, paginate.Action[int64]{
//		Type: "ORDERS_REQUEST",
//		Meta: map[string]string{"region": "10000002"},
//	})
//
// Transitions:
//
//	request  -> is_fetching = true
//	success  -> is_fetching = false, next_page_url from payload, page_count+1, ids appended
//	failure  -> is_fetching = false
//	create   -> ids prepended
//
// Identifiers are merged with Union, so replaying an action never produces
// duplicate ids.
package paginate
