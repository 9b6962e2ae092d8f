// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package verify

import (
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/collection/hash"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
)

// Number of independently locked shards.
const cacheShards = 16

// CacheConfig determines whether (and for how long) verdicts are cached.
type CacheConfig struct {
	Enabled bool
	// Maximum number of entries retained.
	MaxSize uint
	// Time after which an entry expires.
	TTL time.Duration
}

// CacheStats is a snapshot of the cache counters.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Size   uint
}

// Cache holds prior verdicts, keyed by the structural key of a property (and
// the method used).  Keys are spread across a fixed number of shards, each with
// its own lock, such that lookups for distinct keys rarely contend.  When a
// shard is full, its oldest entry is evicted.
type Cache struct {
	shards   [cacheShards]cacheShard
	capacity uint
	ttl      time.Duration
	hits     atomic.Uint64
	misses   atomic.Uint64
	// Clock, replaceable for testing.
	now func() time.Time
}

type cacheShard struct {
	mutex   sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	verdict verdict.Verdict
	created time.Time
}

// NewCache constructs an empty cache for a given configuration.
func NewCache(config CacheConfig) *Cache {
	c := &Cache{ttl: config.TTL, now: time.Now}
	// Capacity per shard, rounding up
	c.capacity = max(1, (config.MaxSize+cacheShards-1)/cacheShards)
	//
	for i := range c.shards {
		c.shards[i].entries = make(map[string]cacheEntry)
	}
	//
	return c
}

// Get the verdict cached for a given key, if it exists and has not expired.
func (p *Cache) Get(key string) (verdict.Verdict, bool) {
	shard := p.shard(key)
	shard.mutex.Lock()
	defer shard.mutex.Unlock()
	//
	entry, ok := shard.entries[key]
	//
	if ok && p.ttl > 0 && p.now().Sub(entry.created) >= p.ttl {
		delete(shard.entries, key)
		//
		ok = false
	}
	//
	if !ok {
		p.misses.Add(1)
		log.Debugf("cache miss for %s", key)
		//
		return verdict.Verdict{}, false
	}
	//
	p.hits.Add(1)
	log.Debugf("cache hit for %s", key)
	//
	return entry.verdict, true
}

// Put a verdict into the cache, evicting the oldest entry of its shard when
// full.
func (p *Cache) Put(key string, v verdict.Verdict) {
	shard := p.shard(key)
	shard.mutex.Lock()
	defer shard.mutex.Unlock()
	//
	if _, ok := shard.entries[key]; !ok && uint(len(shard.entries)) >= p.capacity {
		var (
			oldest string
			first  = true
			when   time.Time
		)
		//
		for k, e := range shard.entries {
			if first || e.created.Before(when) {
				oldest, when, first = k, e.created, false
			}
		}
		//
		delete(shard.entries, oldest)
	}
	//
	shard.entries[key] = cacheEntry{v, p.now()}
}

// Size returns the number of entries currently held.
func (p *Cache) Size() uint {
	size := uint(0)
	//
	for i := range p.shards {
		p.shards[i].mutex.Lock()
		size += uint(len(p.shards[i].entries))
		p.shards[i].mutex.Unlock()
	}
	//
	return size
}

// Stats returns a snapshot of the cache counters.
func (p *Cache) Stats() CacheStats {
	return CacheStats{p.hits.Load(), p.misses.Load(), p.Size()}
}

func (p *Cache) shard(key string) *cacheShard {
	return &p.shards[hash.NewStringKey(key).Hash()%cacheShards]
}
