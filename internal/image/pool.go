package image

import "sync"

// Pool is a thread-safe pool for reusing render-target planes.
//
// Pool groups planes by their dimensions so a pipeline resized back and
// forth, or several pipelines of the same size, reuse allocations.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	colors  map[poolKey][]*ColorPlane
	depths  map[poolKey][]*DepthPlane
	maxSize int // max planes per bucket
}

// poolKey identifies a bucket of identically sized planes.
type poolKey struct {
	width  int
	height int
}

// NewPool creates a new plane pool with the given maximum planes per bucket.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		colors:  make(map[poolKey][]*ColorPlane),
		depths:  make(map[poolKey][]*DepthPlane),
		maxSize: maxPerBucket,
	}
}

// GetColor retrieves a color plane from the pool or creates a new one.
// Reused planes are cleared. Returns nil for invalid dimensions.
func (p *Pool) GetColor(width, height int) *ColorPlane {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.colors[key]
	if n := len(bucket); n > 0 {
		plane := bucket[n-1]
		p.colors[key] = bucket[:n-1]
		p.mu.Unlock()
		plane.Clear()
		return plane
	}
	p.mu.Unlock()

	plane, err := NewColorPlane(width, height)
	if err != nil {
		return nil
	}
	return plane
}

// PutColor returns a color plane to the pool for reuse.
// If plane is nil or the bucket is at max capacity, the plane is discarded.
func (p *Pool) PutColor(plane *ColorPlane) {
	if plane == nil {
		return
	}
	key := poolKey{width: plane.width, height: plane.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.colors[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.colors[key] = append(bucket, plane)
}

// GetDepth retrieves a depth plane from the pool or creates a new one.
// Reused planes are cleared. Returns nil for invalid dimensions.
func (p *Pool) GetDepth(width, height int) *DepthPlane {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.depths[key]
	if n := len(bucket); n > 0 {
		plane := bucket[n-1]
		p.depths[key] = bucket[:n-1]
		p.mu.Unlock()
		plane.Clear()
		return plane
	}
	p.mu.Unlock()

	plane, err := NewDepthPlane(width, height)
	if err != nil {
		return nil
	}
	return plane
}

// PutDepth returns a depth plane to the pool for reuse.
// If plane is nil or the bucket is at max capacity, the plane is discarded.
func (p *Pool) PutDepth(plane *DepthPlane) {
	if plane == nil {
		return
	}
	key := poolKey{width: plane.width, height: plane.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.depths[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.depths[key] = append(bucket, plane)
}

// defaultPool is the package-level pool for convenient usage.
// MSAA targets hold up to 32 planes of each kind per size.
var defaultPool = NewPool(64)

// GetColorFromDefault retrieves a color plane from the default pool.
func GetColorFromDefault(width, height int) *ColorPlane {
	return defaultPool.GetColor(width, height)
}

// PutColorToDefault returns a color plane to the default pool.
func PutColorToDefault(plane *ColorPlane) {
	defaultPool.PutColor(plane)
}

// GetDepthFromDefault retrieves a depth plane from the default pool.
func GetDepthFromDefault(width, height int) *DepthPlane {
	return defaultPool.GetDepth(width, height)
}

// PutDepthToDefault returns a depth plane to the default pool.
func PutDepthToDefault(plane *DepthPlane) {
	defaultPool.PutDepth(plane)
}
