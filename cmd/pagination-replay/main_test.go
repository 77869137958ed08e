package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/eve-pagination/pkg/instrument"
	"github.com/Sternrassler/eve-pagination/pkg/logging"
	"github.com/Sternrassler/eve-pagination/pkg/paginate"
	"github.com/Sternrassler/eve-pagination/pkg/snapshot"
)

const keyedConfig = `
types: [ORDERS_REQUEST, ORDERS_SUCCESS, ORDERS_FAILURE, ORDER_CREATE]
key_field: region
`

func TestParseReducerConfig(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKey  string
		wantErr  bool
		errField string
	}{
		{
			name:    "keyed",
			input:   keyedConfig,
			wantKey: "region",
		},
		{
			name:  "single bucket",
			input: "types: [A, B, C, D]\n",
		},
		{
			name:     "two types",
			input:    "types: [A, B]\n",
			wantErr:  true,
			errField: "types",
		},
		{
			name:     "non-string type",
			input:    "types: [A, B, C, 1]\n",
			wantErr:  true,
			errField: "types",
		},
		{
			name:     "types not a list",
			input:    "types: A\n",
			wantErr:  true,
			errField: "types",
		},
		{
			name:     "key field not a string",
			input:    "types: [A, B, C, D]\nkey_field: [x]\n",
			wantErr:  true,
			errField: "mapActionToKey",
		},
		{
			name:     "empty document",
			input:    "",
			wantErr:  true,
			errField: "types",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseReducerConfig(strings.NewReader(tt.input))
			if tt.wantErr {
				require.ErrorIs(t, err, paginate.ErrConfig)
				var cfgErr *paginate.ConfigError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.errField, cfgErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, cfg.KeyField)
		})
	}
}

func TestEntityID_UnmarshalJSON(t *testing.T) {
	var ids paginate.IDs[entityID]
	require.NoError(t, json.Unmarshal([]byte(`[1, "two", 3.5]`), &ids))
	assert.Equal(t, paginate.IDs[entityID]{"1", "two", "3.5"}, ids)

	require.NoError(t, json.Unmarshal([]byte(`42`), &ids))
	assert.Equal(t, paginate.IDs[entityID]{"42"}, ids)

	var id entityID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func newTestReplayer(t *testing.T, input string, strict bool) *replayer {
	t.Helper()
	cfg, err := parseReducerConfig(strings.NewReader(input))
	require.NoError(t, err)
	reducer, err := newReducer(cfg)
	require.NoError(t, err)
	return &replayer{
		reducer: instrument.Wrap(reducer, logging.Nop()),
		logger:  logging.Nop(),
		strict:  strict,
	}
}

const actionLog = `
# region 10000002
{"type": "ORDERS_REQUEST", "meta": {"region": "10000002"}}
{"type": "ORDERS_SUCCESS", "meta": {"region": "10000002"}, "payload": {"result": [1, 2], "next_page_url": "p2"}}
{"type": "ORDERS_REQUEST", "meta": {"region": "10000043"}}
{"type": "SOMETHING_ELSE"}
not json
{"type": "ORDER_CREATE", "meta": {"region": "10000002"}, "payload": {"result": 9}}
`

func TestReplayer_Run(t *testing.T) {
	r := newTestReplayer(t, keyedConfig, false)

	state, stats, err := r.Run(context.Background(), nil, strings.NewReader(actionLog))
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Applied)
	assert.Equal(t, 1, stats.Ignored)
	assert.Equal(t, 1, stats.Skipped)

	pages := state.(paginate.Pages[entityID])
	assert.Equal(t, []string{"10000002", "10000043"}, pages.Keys())

	forge := pages["10000002"]
	assert.Equal(t, []entityID{"9", "1", "2"}, forge.IDs)
	assert.Equal(t, "p2", forge.NextPageURL)
	assert.Equal(t, 1, forge.PageCount)
	assert.True(t, pages["10000043"].IsFetching)
}

func TestReplayer_Strict(t *testing.T) {
	r := newTestReplayer(t, keyedConfig, true)

	_, stats, err := r.Run(context.Background(), nil, strings.NewReader(actionLog))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 7")
	assert.Equal(t, 3, stats.Applied)
}

func TestReplayer_KeyErrorAborts(t *testing.T) {
	r := newTestReplayer(t, keyedConfig, false)
	input := `{"type": "ORDERS_REQUEST"}`

	_, _, err := r.Run(context.Background(), nil, strings.NewReader(input))
	require.ErrorIs(t, err, paginate.ErrKey)
	assert.Contains(t, err.Error(), "line 1")
}

func TestReplayer_ContextCancelled(t *testing.T) {
	r := newTestReplayer(t, keyedConfig, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := r.Run(ctx, nil, strings.NewReader(actionLog))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRootCmd_SingleBucket(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "reducer.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("types: [REQ, SUC, FAIL, CREATE]\n"), 0o600))

	input := strings.Join([]string{
		`{"type": "REQ"}`,
		`{"type": "SUC", "payload": {"result": ["a", "b"], "next_page_url": "p2"}}`,
		`{"type": "SUC", "payload": {"result": ["b", "c"]}}`,
	}, "\n")

	stdout := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", configPath, "--metrics", "--log-level", "error"})
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())

	dec := json.NewDecoder(stdout)
	var page paginate.Page[string]
	require.NoError(t, dec.Decode(&page))
	assert.Equal(t, paginate.Page[string]{PageCount: 2, IDs: []string{"a", "b", "c"}}, page)

	assert.Contains(t, stdout.String(), "pagination_transitions_total")
}

func TestRootCmd_RequiresConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "reducer.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("types: [REQ, SUC]\n"), 0o600))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", configPath})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.ErrorIs(t, cmd.Execute(), paginate.ErrConfig)
}

func TestRootCmd_SaveAndResume(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	const namespace = "replay-test"
	key := snapshot.Key{Namespace: namespace, Name: "orders"}
	t.Cleanup(func() { client.Del(context.Background(), key.String()) })

	dir := t.TempDir()
	configPath := filepath.Join(dir, "reducer.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(keyedConfig), 0o600))

	replay := func(input string, extra ...string) paginate.Pages[entityID] {
		t.Helper()

		stdout := &bytes.Buffer{}
		cmd := newRootCmd()
		args := []string{"--config", configPath, "--namespace", namespace, "--log-level", "error"}
		cmd.SetArgs(append(args, extra...))
		cmd.SetIn(strings.NewReader(input))
		cmd.SetOut(stdout)
		cmd.SetErr(&bytes.Buffer{})
		require.NoError(t, cmd.Execute())

		var pages paginate.Pages[entityID]
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &pages))
		return pages
	}

	first := replay(
		`{"type": "ORDERS_SUCCESS", "payload": {"result": [1, 2], "next_page_url": "p2"}, "meta": {"region": "jita"}}`,
		"--save", "orders",
	)
	assert.Equal(t, 1, first.Lookup("jita").PageCount)

	second := replay(
		`{"type": "ORDERS_SUCCESS", "payload": {"result": [2, 3]}, "meta": {"region": "jita"}}`,
		"--load", "orders", "--save", "orders",
	)
	jita := second.Lookup("jita")
	assert.Equal(t, 2, jita.PageCount)
	assert.Equal(t, []entityID{"1", "2", "3"}, jita.IDs)
	assert.False(t, jita.HasNextPage())
}
