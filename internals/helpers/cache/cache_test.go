package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type payload struct {
	Total int            `json:"total"`
	By    map[string]int `json:"by"`
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := &memKV{data: map[string]string{}}

	var got payload
	assert.False(t, GetJSON(ctx, kv, "k", &got))

	SetJSON(ctx, kv, "k", payload{Total: 3, By: map[string]int{"Parole": 1}}, time.Minute)
	require.True(t, GetJSON(ctx, kv, "k", &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.By["Parole"])

	require.NoError(t, kv.Delete(ctx, "k"))
	assert.False(t, GetJSON(ctx, kv, "k", &got))
}

func TestNilKVIsNoop(t *testing.T) {
	var got payload
	SetJSON(context.Background(), nil, "k", payload{Total: 1}, time.Minute)
	assert.False(t, GetJSON(context.Background(), nil, "k", &got))
}

func TestCorruptValueIsMiss(t *testing.T) {
	kv := &memKV{data: map[string]string{"k": "{not json"}}
	var got payload
	assert.False(t, GetJSON(context.Background(), kv, "k", &got))
}
