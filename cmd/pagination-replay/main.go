// Command pagination-replay folds a JSON-lines log of pagination actions
// through a reducer and prints the resulting state.
//
// Usage:
//
//	pagination-replay --config reducer.yaml actions.jsonl
//	cat actions.jsonl | pagination-replay --config reducer.yaml --save orders
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/eve-pagination/pkg/instrument"
	"github.com/Sternrassler/eve-pagination/pkg/logging"
	"github.com/Sternrassler/eve-pagination/pkg/metrics"
	"github.com/Sternrassler/eve-pagination/pkg/paginate"
	"github.com/Sternrassler/eve-pagination/pkg/snapshot"
)

type options struct {
	configPath  string
	redisURL    string
	namespace   string
	load        string
	save        string
	ttl         time.Duration
	strict      bool
	showMetrics bool
	logLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "pagination-replay [actions.jsonl]",
		Short:        "Replay pagination actions and print the resulting state",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open actions: %w", err)
				}
				defer f.Close()
				in = f
			}
			return run(cmd.Context(), opts, in, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "reducer config file (YAML)")
	flags.StringVar(&opts.redisURL, "redis", getEnv("REDIS_URL", "localhost:6379"), "Redis address for --load/--save")
	flags.StringVar(&opts.namespace, "namespace", "replay", "snapshot namespace")
	flags.StringVar(&opts.load, "load", "", "start from the snapshot with this name")
	flags.StringVar(&opts.save, "save", "", "save the final state as a snapshot with this name")
	flags.DurationVar(&opts.ttl, "ttl", 0, "snapshot TTL (0 keeps it until deleted)")
	flags.BoolVar(&opts.strict, "strict", false, "fail on undecodable lines instead of skipping them")
	flags.BoolVar(&opts.showMetrics, "metrics", false, "print pagination metrics after the state")
	flags.StringVar(&opts.logLevel, "log-level", getEnv(logging.EnvLevel, "info"), "log level")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func run(ctx context.Context, opts *options, in io.Reader, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logCfg := logging.ConfigFromEnv()
	logCfg.Level = opts.logLevel
	logCfg.Output = errOut
	logging.Setup(logCfg)
	logger := logging.NewLogger("replay")

	cfg, err := loadReducerConfig(opts.configPath)
	if err != nil {
		logger.Error().Err(err).Str("config", opts.configPath).Msg("Invalid reducer config")
		return err
	}

	reducer, err := newReducer(cfg)
	if err != nil {
		return err
	}

	var store *snapshot.Store
	if opts.load != "" || opts.save != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: opts.redisURL})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", opts.redisURL, err)
		}
		store = snapshot.NewStore(redisClient, snapshot.Config{TTL: opts.ttl}, logging.NewLogger("snapshot"))
	}

	var state paginate.State[entityID]
	if opts.load != "" {
		state, err = snapshot.Load[entityID](ctx, store, snapshotKey(opts, opts.load))
		switch {
		case errors.Is(err, snapshot.ErrSnapshotMiss):
			logger.Info().Str("snapshot", opts.load).Msg("No snapshot found, starting empty")
		case err != nil:
			return err
		}
	}

	r := &replayer{
		reducer: instrument.Wrap(reducer, logging.NewLogger("paginate")),
		logger:  logger,
		strict:  opts.strict,
	}

	start := time.Now()
	logger.Info().
		Strs("types", cfg.Types.Slice()).
		Str("key_field", cfg.KeyField).
		Msg("Starting replay")

	state, stats, err := r.Run(ctx, state, in)
	if err != nil {
		return err
	}

	logger.Info().
		Int("lines", stats.Lines).
		Int("applied", stats.Applied).
		Int("ignored", stats.Ignored).
		Int("skipped", stats.Skipped).
		Dur("duration", time.Since(start)).
		Msg("Replay complete")

	if opts.save != "" {
		if err := snapshot.Save[entityID](ctx, store, snapshotKey(opts, opts.save), state); err != nil {
			return err
		}
		logger.Info().Str("snapshot", opts.save).Msg("Snapshot saved")
	}

	if err := writeState(out, state); err != nil {
		return err
	}

	if opts.showMetrics {
		return writeMetrics(out)
	}
	return nil
}

func snapshotKey(opts *options, name string) snapshot.Key {
	return snapshot.Key{Namespace: opts.namespace, Name: name}
}

func writeState(w io.Writer, state paginate.State[entityID]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return nil
}

// writeMetrics prints the pagination_* metric families in text format.
func writeMetrics(w io.Writer) error {
	families, err := metrics.Gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "pagination_") {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
