//  Copyright (c) 2024 The pdgraph Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/google/uuid"

	"github.com/pdgraph/pdgraph/pe"
)

// cacheEntry is one AST-text cache slot. ID is a trace/debug correlation handle, not a lookup
// key: entries are looked up by source hash, never by ID.
type cacheEntry struct {
	id    uuid.UUID
	class *pe.Class
}

// astCache is a bounded FIFO cache from source-text hash to the *pe.Class that source lowered
// to. Entries are never mutated post-insert; eviction is oldest-inserted-first once capacity is
// reached. One mutex guards both the lookup map and the insertion-order queue, mirroring the
// single-lock discipline an ordered map built over a plain Go map needs to keep the two in sync.
type astCache struct {
	mu       sync.Mutex
	capacity int
	order    []string // keys, oldest first
	entries  map[string]cacheEntry
}

func newASTCache(capacity int) *astCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &astCache{capacity: capacity, entries: make(map[string]cacheEntry, capacity)}
}

func hashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// get returns the cached class for source, if present.
func (c *astCache) get(source string) (*pe.Class, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[hashSource(source)]
	if !ok {
		return nil, false
	}
	return e.class, true
}

// put inserts cls for source, evicting the oldest entry if the cache is at capacity. If source is
// already cached (e.g. a racing lowering of the same text), the existing entry is left alone and
// its id is returned so callers can still log which entry serves the request.
func (c *astCache) put(source string, cls *pe.Class) uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := hashSource(source)
	if e, ok := c.entries[key]; ok {
		return e.id
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	id := uuid.New()
	c.entries[key] = cacheEntry{id: id, class: cls}
	c.order = append(c.order, key)
	return id
}

// len reports the number of entries currently cached, for tests.
func (c *astCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
