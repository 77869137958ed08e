// Package snapshot persists pagination state in Redis.
//
// The reducer in pkg/paginate never performs I/O; callers that want their
// pagination state to survive a restart save and load it here.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	store := snapshot.NewStore(redisClient, snapshot.DefaultConfig(), logger)
//
//	key := snapshot.Key{
//		Namespace: "orders",
//		Name:      "by-region",
//	}
//
//	// Save the current state
//	if err := snapshot.Save[int64](ctx, store, key, state); err != nil {
//		return err
//	}
//
//	// Load it back
//	state, err := snapshot.Load[int64](ctx, store, key)
//	if errors.Is(err, snapshot.ErrSnapshotMiss) {
//		// start from an empty state
//	}
//
// # Key Format
//
// Keys are deterministic: pagination:<namespace>:<name>[:label=value...]
// with labels sorted by name.
//
// # Metrics
//
// See pkg/metrics for the list of snapshot metrics.
package snapshot
