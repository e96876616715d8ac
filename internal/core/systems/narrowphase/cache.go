package narrowphase

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/zeusync/narrowphase/internal/core/systems/physics"
	"github.com/zeusync/narrowphase/pkg/generic"
)

var digests = generic.NewPool(xxhash.New, (*xxhash.Digest).Reset)

// Fingerprint is a stable hash of an ordered world-space shape pair. Equal
// geometry gives equal fingerprints across frames and processes.
type Fingerprint uint64

// FingerprintPair hashes kind tags and the exact float bits of both shapes.
func FingerprintPair(a, b Shape) (Fingerprint, error) {
	d := digests.Get()
	defer digests.Put(d)
	if err := writeShape(d, a); err != nil {
		return 0, err
	}
	if err := writeShape(d, b); err != nil {
		return 0, err
	}
	return Fingerprint(d.Sum64()), nil
}

func writeShape(d *xxhash.Digest, s Shape) error {
	var buf [8]byte
	putFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	putVector := func(v physics.Vector2) {
		putFloat(v.X)
		putFloat(v.Y)
	}

	switch v := s.(type) {
	case CircleShape:
		_, _ = d.Write([]byte{byte(KindCircle)})
		putVector(v.Center)
		putFloat(v.Radius)
	case PolygonShape:
		_, _ = d.Write([]byte{byte(KindPolygon)})
		binary.LittleEndian.PutUint64(buf[:], uint64(len(v.Vertices)))
		_, _ = d.Write(buf[:])
		for _, vertex := range v.Vertices {
			putVector(vertex)
		}
		for _, normal := range v.Normals {
			putVector(normal)
		}
	default:
		return errors.Wrapf(ErrUnsupportedShape, "fingerprint %T", s)
	}
	return nil
}

// Cache memoises contact results by Fingerprint. When it reaches capacity
// it is cleared in one step rather than evicting entry by entry.
type Cache struct {
	mu       sync.RWMutex
	entries  map[Fingerprint]physics.ContactInfo
	capacity int

	hits   atomic.Uint64
	misses atomic.Uint64
	resets atomic.Uint64
}

type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
	Resets  uint64
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &Cache{
		entries:  make(map[Fingerprint]physics.ContactInfo, capacity),
		capacity: capacity,
	}
}

func (c *Cache) Get(fp Fingerprint) (physics.ContactInfo, bool) {
	c.mu.RLock()
	info, ok := c.entries[fp]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return info, ok
}

func (c *Cache) Put(fp Fingerprint, info physics.ContactInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[fp]; !exists && len(c.entries) >= c.capacity {
		clear(c.entries)
		c.resets.Add(1)
	}
	c.entries[fp] = info
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Reset() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Resets:  c.resets.Load(),
	}
}
