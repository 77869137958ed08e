package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sternrassler/eve-pagination/pkg/paginate"
)

// reducerConfig is the YAML reducer definition:
//
//	types: [ORDERS_REQUEST, ORDERS_SUCCESS, ORDERS_FAILURE, ORDER_CREATE]
//	key_field: region
type reducerConfig struct {
	Types    paginate.Types
	KeyField string
}

func loadReducerConfig(path string) (reducerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return reducerConfig{}, fmt.Errorf("open reducer config: %w", err)
	}
	defer f.Close()

	return parseReducerConfig(f)
}

// parseReducerConfig decodes into untyped values first so that malformed
// entries surface as paginate config errors rather than YAML type errors.
func parseReducerConfig(r io.Reader) (reducerConfig, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return reducerConfig{}, &paginate.ConfigError{Field: "types", Reason: "reducer config is empty"}
		}
		return reducerConfig{}, fmt.Errorf("decode reducer config: %w", err)
	}

	types, err := paginate.TypesFromValues(raw["types"])
	if err != nil {
		return reducerConfig{}, err
	}

	cfg := reducerConfig{Types: types}

	if v, ok := raw["key_field"]; ok && v != nil {
		field, ok := v.(string)
		if !ok || field == "" {
			return reducerConfig{}, &paginate.ConfigError{
				Field:  "mapActionToKey",
				Reason: fmt.Sprintf("key_field must be a non-empty string, got %T", v),
			}
		}
		cfg.KeyField = field
	}

	return cfg, nil
}

// newReducer builds the reducer described by cfg.
func newReducer(cfg reducerConfig) (*paginate.Reducer[entityID], error) {
	pcfg := paginate.Config[entityID]{Types: cfg.Types.Slice()}
	if cfg.KeyField != "" {
		pcfg.MapActionToKey = paginate.MetaKey[entityID](cfg.KeyField)
	}
	return paginate.New(pcfg)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
