package memory

import (
	"context"
	"sync"
)

// KV is a process-local KVStore. The session mirror it holds does not
// survive a restart, which is fine for the dev backend and for tests.
type KV struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewKV() *KV { return &KV{m: make(map[string][]byte)} }

func (k *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (k *KV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	k.m[key] = v
	return nil
}

func (k *KV) Remove(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.m, key)
	return nil
}
