package fractal

import "sync"

// MandelbrotKey identifies the inputs of a Mandelbrot buffer. Two frames with
// equal keys produce identical Mandelbrot buffers.
type MandelbrotKey struct {
	Scale  float64
	Offset Point
	Panel  int
}

// JuliaKey identifies the inputs of a Julia buffer. It includes the
// Mandelbrot key because the Julia constant is mapped through the
// Mandelbrot view.
type JuliaKey struct {
	Mandelbrot MandelbrotKey
	Pointer    Pointer
}

// CacheStats reports how often each buffer was rebuilt.
type CacheStats struct {
	// Frames is the number of commits that left both buffers current.
	Frames uint64
	// MandelbrotRenders counts installed Mandelbrot buffers.
	MandelbrotRenders uint64
	// JuliaRenders counts installed Julia buffers.
	JuliaRenders uint64
}

// FrameCache decides, per frame, which buffers must be recomputed.
//
// A buffer is stale exactly when it has never been built or when its key
// differs from the key it was built for. FrameCache is safe for concurrent
// use.
type FrameCache struct {
	mu sync.Mutex

	mkey   MandelbrotKey
	jkey   JuliaKey
	mandel *Pixmap
	julia  *Pixmap

	stats CacheStats
}

// NewFrameCache returns an empty cache. Both buffers start stale.
func NewFrameCache() *FrameCache {
	return &FrameCache{}
}

// Plan reports which buffers are stale for the given keys.
func (c *FrameCache) Plan(mk MandelbrotKey, jk JuliaKey) (mandel, julia bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mandel = c.mandel == nil || c.mkey != mk
	julia = c.julia == nil || c.jkey != jk
	return mandel, julia
}

// Commit installs any freshly rendered buffer. A nil buffer keeps the
// installed one.
//
// Keys are recorded only alongside the buffer they describe: a stale buffer
// that was not replaced keeps its old key and is rebuilt on the next Plan.
// Commit reports whether both installed buffers now match mk and jk; only
// such a commit counts as a frame.
func (c *FrameCache) Commit(mk MandelbrotKey, jk JuliaKey, mandel, julia *Pixmap) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mandel != nil {
		c.mandel = mandel
		c.mkey = mk
		c.stats.MandelbrotRenders++
	}
	if julia != nil {
		c.julia = julia
		c.jkey = jk
		c.stats.JuliaRenders++
	}
	if c.mkey != mk || c.jkey != jk || c.mandel == nil || c.julia == nil {
		return false
	}
	c.stats.Frames++
	return true
}

// Buffers returns the installed buffers. Either may be nil before the first
// commit.
func (c *FrameCache) Buffers() (mandel, julia *Pixmap) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mandel, c.julia
}

// Stats returns the render counters.
func (c *FrameCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Reset drops both buffers so the next Plan reports everything stale.
// Counters are kept.
func (c *FrameCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mandel, c.julia = nil, nil
	c.mkey, c.jkey = MandelbrotKey{}, JuliaKey{}
}
