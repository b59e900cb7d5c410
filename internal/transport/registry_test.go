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
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry[int]()
	assert.Equal(t, 0, r.Len())

	require.True(t, r.Add("b", 2))
	require.True(t, r.Add("a", 1))
	assert.False(t, r.Add("a", 100), "duplicate must be rejected")
	assert.Equal(t, 2, r.Len())

	v, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = r.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = r.Get("a")
	assert.False(t, ok)
	_, ok = r.Remove("a")
	assert.False(t, ok)

	assert.Equal(t, []int{2}, r.Drain())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_concurrent(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprint(i)
			r.Add(id, i)
			r.Get(id)
			if i%2 == 0 {
				r.Remove(id)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 25, r.Len())
}
