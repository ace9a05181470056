package db

import "sync"

// Registry holds the session's single live client. The slot is guarded by a
// mutex acquired for the duration of exactly one operation; connecting always
// clears the slot first, so there is never more than one logical connection.
type Registry struct {
	mu     sync.Mutex
	client Client
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Set installs a new client, closing any previous one.
func (r *Registry) Set(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		_ = r.client.Close()
	}
	r.client = c
}

// Get returns the current client, or ErrNoConnection when the slot is empty.
func (r *Registry) Get() (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		return nil, ErrNoConnection
	}
	return r.client, nil
}

// Connected reports whether the slot holds a live client.
func (r *Registry) Connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.client != nil
}

// Clear empties the slot, closing the client if present.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		_ = r.client.Close()
		r.client = nil
	}
}
