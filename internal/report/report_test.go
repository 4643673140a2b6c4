package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/hookbus/internal/event"
)

func TestJSON(t *testing.T) {
	r := &event.Result{
		Before: []any{"pre", 1},
		Event:  []any{"a", map[string]any{"id": "o-1"}, nil},
		After:  []any{true},
	}

	doc, err := JSON("order.created", r, nil)
	require.NoError(t, err)
	require.True(t, gjson.Valid(doc))

	assert.Equal(t, "order.created", gjson.Get(doc, KeyEvent).String())

	before := gjson.Get(doc, KeyBefore)
	assert.True(t, before.IsObject())
	assert.Equal(t, "pre", before.Get("0").String())
	assert.Equal(t, int64(1), before.Get("1").Int())

	results := gjson.Get(doc, KeyResults)
	require.True(t, results.IsArray())
	require.Len(t, results.Array(), 3)
	assert.Equal(t, "a", results.Get("0").String())
	assert.Equal(t, "o-1", results.Get("1.id").String())
	assert.Equal(t, gjson.Null, results.Get("2").Type)

	after := gjson.Get(doc, KeyAfter)
	assert.True(t, after.IsObject())
	assert.True(t, after.Get("0").Bool())

	assert.False(t, gjson.Get(doc, KeyError).Exists())
}

func TestJSON_Empty(t *testing.T) {
	doc, err := JSON("e", nil, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"event": "e",
		"globalBeforeEvent": {},
		"results": [],
		"globalAfterEvent": {}
	}`, doc)
}

func TestJSON_Error(t *testing.T) {
	r := &event.Result{Before: []any{"pre"}}

	doc, err := JSON("missing", r, errors.New("event missing is not registered"))
	require.NoError(t, err)

	assert.Equal(t, "event missing is not registered", gjson.Get(doc, KeyError).String())
	assert.Equal(t, "pre", gjson.Get(doc, KeyBefore+".0").String())
	assert.Empty(t, gjson.Get(doc, KeyResults).Array())
}

func TestJSON_Unencodable(t *testing.T) {
	r := &event.Result{Event: []any{make(chan int)}}

	_, err := JSON("e", r, nil)
	assert.Error(t, err)
}

func TestJSON_FromDispatch(t *testing.T) {
	d := event.New()
	d.Register("e")
	d.ListenGlobalBefore(event.HookFunc(func(ctx context.Context, name string, args ...any) (any, error) {
		return "before:" + name, nil
	}))
	_, err := d.ListenFunc("e", func(ctx context.Context, args ...any) (any, error) {
		return args[0], nil
	})
	require.NoError(t, err)

	res, useErr := d.Use(context.Background(), "e", 42)
	doc, err := JSON("e", res, useErr)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"event": "e",
		"globalBeforeEvent": {"0": "before:e"},
		"results": [42],
		"globalAfterEvent": {}
	}`, doc)
}
