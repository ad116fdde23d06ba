package domain

import (
	"context"
	"encoding/json"
)

// Result is what a transport hands back: the status of the call plus the
// raw payload. Network-level failures are ordinary errors; any HTTP status
// the backend produced passes through here untouched.
type Result struct {
	Status int
	Reason string
	Data   json.RawMessage
}

func (r Result) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Transport is one entity endpoint. Records cross it as loosely typed maps;
// the app layer owns normalization in both directions.
type Transport interface {
	GetAll(ctx context.Context) (Result, error)
	GetByID(ctx context.Context, id string) (Result, error)
	Create(ctx context.Context, record map[string]any) (Result, error)
	Update(ctx context.Context, id string, record map[string]any) (Result, error)
	Delete(ctx context.Context, id string) (Result, error)
}

// KVStore is the durable slot used to mirror the session across restarts.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
