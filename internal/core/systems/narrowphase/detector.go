package narrowphase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/zeusync/narrowphase/internal/core/observability/log"
	"github.com/zeusync/narrowphase/internal/core/systems/physics"
	"github.com/zeusync/narrowphase/pkg/concurrent"
)

// Result is the outcome of checking one pair.
type Result struct {
	Pair    Pair
	Contact physics.ContactInfo
	// Skipped is set when a body is disabled or the filters reject the pair;
	// Contact is then empty.
	Skipped bool
	Cached  bool
}

type Stats struct {
	Checks     uint64
	Skipped    uint64
	CacheHits  uint64
	Collisions uint64
}

// Detector runs the narrow phase for candidate pairs. It holds no per-pair
// state apart from the optional cache and is safe for concurrent use.
type Detector struct {
	config Config
	logger log.Log
	cache  *Cache

	checks     atomic.Uint64
	skipped    atomic.Uint64
	hits       atomic.Uint64
	collisions atomic.Uint64
}

func NewDetector(config Config, logger log.Log) *Detector {
	if logger == nil {
		logger = log.Provide()
	}
	d := &Detector{
		config: config,
		logger: logger.With(log.String("component", "narrowphase")),
	}
	if config.Cache.Enabled {
		d.cache = NewCache(config.Cache.Capacity)
	}
	return d
}

// Cache returns nil when caching is disabled.
func (d *Detector) Cache() *Cache {
	return d.cache
}

// CheckShapes collides two world-space shapes, consulting the cache first.
// It reports whether the result came from the cache.
func (d *Detector) CheckShapes(a, b Shape) (physics.ContactInfo, bool, error) {
	info, cached, err := d.collide(a, b)
	if err != nil {
		return physics.ContactInfo{}, false, err
	}
	d.checks.Add(1)
	if cached {
		d.hits.Add(1)
	}
	if info.HasCollision {
		d.collisions.Add(1)
	}
	return info, cached, nil
}

func (d *Detector) collide(a, b Shape) (physics.ContactInfo, bool, error) {
	if d.cache == nil {
		info, err := Collide(a, b)
		return info, false, err
	}

	fp, err := FingerprintPair(a, b)
	if err != nil {
		return physics.ContactInfo{}, false, err
	}
	if info, ok := d.cache.Get(fp); ok {
		return info, true, nil
	}
	info, err := Collide(a, b)
	if err != nil {
		return physics.ContactInfo{}, false, err
	}
	d.cache.Put(fp, info)
	return info, false, nil
}

// Check applies the enabled flags and collision filters, then collides the
// bodies' world shapes.
func (d *Detector) Check(a, b *Body) (Result, error) {
	pair := Pair{A: a, B: b}
	if a == nil || b == nil {
		return Result{Pair: pair}, ErrNilBody
	}
	if a.Shape == nil || b.Shape == nil {
		return Result{Pair: pair}, errors.Wrapf(ErrNilShape, "pair %s/%s", a, b)
	}

	if !a.Enabled || !b.Enabled || !a.Filter.ShouldCollide(b.Filter) {
		d.skipped.Add(1)
		return Result{Pair: pair, Skipped: true}, nil
	}

	info, cached, err := d.CheckShapes(a.WorldShape(), b.WorldShape())
	if err != nil {
		d.logger.Warn("Narrow phase check failed",
			log.Stringer("body_a", a),
			log.Stringer("body_b", b),
			log.Error(err))
		return Result{Pair: pair}, errors.Wrapf(err, "pair %s/%s", a, b)
	}
	return Result{Pair: pair, Contact: info, Cached: cached}, nil
}

// DetectAll checks every pair on the worker pool and returns the results in
// input order. It stops at the first error or when ctx is done.
func (d *Detector) DetectAll(ctx context.Context, pairs []Pair) ([]Result, error) {
	start := time.Now()
	results, err := concurrent.Map(ctx, pairs, d.config.Workers, func(_ context.Context, p Pair) (Result, error) {
		return d.Check(p.A, p.B)
	})
	if err != nil {
		return nil, errors.Wrap(err, "detect contacts")
	}

	collided := 0
	for _, r := range results {
		if r.Contact.HasCollision {
			collided++
		}
	}
	d.logger.Debug("Narrow phase complete",
		log.Int("pairs", len(pairs)),
		log.Int("collisions", collided),
		log.Duration("took", time.Since(start)))
	return results, nil
}

func (d *Detector) Stats() Stats {
	return Stats{
		Checks:     d.checks.Load(),
		Skipped:    d.skipped.Load(),
		CacheHits:  d.hits.Load(),
		Collisions: d.collisions.Load(),
	}
}
