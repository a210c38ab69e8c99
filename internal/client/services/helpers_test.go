package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/packtrack/packtrack/internal/client/repositories/kvstore"
)

// memKV is an in-memory kvstore.Repository for unit tests.
type memKV struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemKV() *memKV { return &memKV{m: make(map[string][]byte)} }

func (k *memKV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (k *memKV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}

func (k *memKV) SetMany(_ context.Context, pairs map[string][]byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key, value := range pairs {
		k.m[key] = value
	}
	return nil
}

func (k *memKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.m, key)
	return nil
}

func (k *memKV) List(_ context.Context) (map[string][]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make(map[string][]byte, len(k.m))
	for key, value := range k.m {
		out[key] = value
	}
	return out, nil
}

func (k *memKV) Clear(_ context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m = make(map[string][]byte)
	return nil
}

var _ kvstore.Repository = (*memKV)(nil)

// fakeGateway implements Gateway with a scripted handler.
type fakeGateway struct {
	mu      sync.Mutex
	calls   []string
	handler func(method, path string, body, out any) error
}

func (f *fakeGateway) Call(_ context.Context, method, path string, body, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, method+" "+path)
	f.mu.Unlock()
	if f.handler == nil {
		return nil
	}
	return f.handler(method, path, body, out)
}

func (f *fakeGateway) Upload(_ context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, "UPLOAD "+path)
	f.mu.Unlock()
	if f.handler == nil {
		return nil
	}
	return f.handler("UPLOAD", path, nil, out)
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var _ Gateway = (*fakeGateway)(nil)

// respond marshals v into out through JSON, mimicking envelope decoding.
func respond(out, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
