// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package transport

import (
	"maps"
	"slices"
	"sync"
)

// Registry is the concurrency safe mapping of the session ID to the session.
type Registry[T any] struct {
	mu sync.RWMutex
	m  map[string]T
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{m: make(map[string]T)}
}

// Add registers the session.  It returns false if there is already a session
// with the same ID, in which case the registry is not modified.
func (r *Registry[T]) Add(id string, v T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.m[id]; exists {
		return false
	}
	r.m[id] = v
	return true
}

// Get returns the session.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.m[id]
	return v, ok
}

// Remove removes the session and returns it.  ok is false if there was no
// such session.
func (r *Registry[T]) Remove(id string) (v T, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok = r.m[id]
	delete(r.m, id)
	return v, ok
}

// Len returns the number of sessions.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// Drain removes all sessions and returns them.
func (r *Registry[T]) Drain() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Collect(maps.Values(r.m))
	clear(r.m)
	return out
}
