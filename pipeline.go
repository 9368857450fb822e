package rast

import (
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast/internal/parallel"
)

// phase is the position of a Pipeline in its frame cycle.
type phase uint8

const (
	// phaseConfigured: targets match the state, contents undefined.
	phaseConfigured phase = iota
	// phaseCleared: targets hold the clear values.
	phaseCleared
	// phaseRendered: at least one Render since the last Clear.
	phaseRendered
)

// Stats counts the work of the frame since the last Clear.
type Stats struct {
	// Draws is the number of successful Render calls.
	Draws int

	// Triangles is the number of index triples submitted.
	Triangles int

	// Clipped counts triangles that crossed the view volume boundary,
	// ClippedAway those of them with nothing left inside.
	Clipped     int
	ClippedAway int

	// Culled and Degenerate count triangles dropped at setup.
	Culled     int
	Degenerate int

	// Rasterized is the number of triangles handed to the rasterizer,
	// including the pieces of clipped ones.
	Rasterized int

	// PixelsShaded is the number of pixel stage invocations.
	PixelsShaded int64
}

func (s *Stats) add(o Stats) {
	s.Draws += o.Draws
	s.Triangles += o.Triangles
	s.Clipped += o.Clipped
	s.ClippedAway += o.ClippedAway
	s.Culled += o.Culled
	s.Degenerate += o.Degenerate
	s.Rasterized += o.Rasterized
	s.PixelsShaded += o.PixelsShaded
}

// Pipeline renders indexed triangle lists into multisampled render targets.
//
// The frame cycle is SetState (once, or on reconfiguration), then Clear,
// one or more Render calls, and Present. Render requires a Clear since the
// last SetState; Present requires a Render since the last Clear.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	state PipelineState
	opts  pipelineOptions

	vertices []AttributeSet
	indices  []int
	uniforms *Uniforms
	vs       VertexStage
	ps       PixelStage

	targets renderTargets
	phase   phase
	stats   Stats

	// Tile-parallel mode only.
	pool *parallel.WorkerPool
	grid *parallel.TileGrid
}

// NewPipeline creates a pipeline with validated state and allocated
// targets. The targets must be cleared before the first Render.
func NewPipeline(state PipelineState, opts ...PipelineOption) (*Pipeline, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{
		opts:     o,
		uniforms: NewUniforms(),
	}
	if o.workers > 1 {
		p.grid = parallel.NewTileGrid(0, 0)
	}
	if err := p.SetState(state); err != nil {
		return nil, err
	}
	if o.workers > 1 {
		p.pool = parallel.NewWorkerPool(o.workers)
	}
	return p, nil
}

// logger returns the pipeline logger, falling back to the package logger.
func (p *Pipeline) logger() *slog.Logger {
	if p.opts.logger != nil {
		return p.opts.logger
	}
	return Logger()
}

// State returns a copy of the current state.
func (p *Pipeline) State() PipelineState {
	return p.state.clone()
}

// Width returns the render target width.
func (p *Pipeline) Width() int { return p.state.Width }

// Height returns the render target height.
func (p *Pipeline) Height() int { return p.state.Height }

// SetState validates and applies a new state. The targets are reallocated
// when the size or sample count changes. Either way the pipeline must be
// cleared again before rendering.
func (p *Pipeline) SetState(state PipelineState) error {
	if state.DepthCompare == 0 {
		state.DepthCompare = DefaultState().DepthCompare
	}
	if err := state.Validate(); err != nil {
		return err
	}
	p.state = state.clone()

	if p.targets.resize(state.Width, state.Height, state.SampleCount()) {
		p.logger().Debug("rast: render targets allocated",
			"width", state.Width, "height", state.Height, "samples", state.SampleCount())
	}
	if p.grid != nil {
		p.grid.Resize(state.Width, state.Height)
	}
	p.phase = phaseConfigured
	return nil
}

// SetVertexBuffer sets the vertices indexed by the index buffer. The slice
// is read, not copied, by Render.
func (p *Pipeline) SetVertexBuffer(vertices []AttributeSet) {
	p.vertices = vertices
}

// SetIndexBuffer sets the triangle list: every three indices form one
// triangle.
func (p *Pipeline) SetIndexBuffer(indices []int) {
	p.indices = indices
}

// SetShaders sets the vertex and pixel stages.
func (p *Pipeline) SetShaders(vs VertexStage, ps PixelStage) {
	p.vs, p.ps = vs, ps
}

// SetUniforms sets the constants passed to both stages. nil installs empty
// uniforms.
func (p *Pipeline) SetUniforms(u *Uniforms) {
	if u == nil {
		u = NewUniforms()
	}
	p.uniforms = u
}

// Uniforms returns the current uniforms.
func (p *Pipeline) Uniforms() *Uniforms {
	return p.uniforms
}

// Clear fills every sample with color and depth, drops all coverage and
// resets the frame statistics.
func (p *Pipeline) Clear(color f32.Vec4, depth float32) {
	p.targets.clear(color, depth)
	p.stats = Stats{}
	p.phase = phaseCleared
}

// Stats returns the counters of the frame since the last Clear.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Render draws the index buffer into the targets. Draws accumulate until
// the next Clear.
//
// All vertices are processed before anything is drawn, so a contract
// violation leaves the targets untouched.
func (p *Pipeline) Render() error {
	if p.phase == phaseConfigured {
		return ErrNotCleared
	}
	if p.vs == nil || p.ps == nil {
		return ErrNoShaders
	}

	tris, stats, err := p.prepare()
	if err != nil {
		p.logger().Warn("rast: render rejected", "err", err)
		return err
	}
	stats.PixelsShaded = p.rasterize(tris)
	stats.Draws = 1
	p.stats.add(stats)
	p.phase = phaseRendered

	p.logger().Debug("rast: render",
		"triangles", stats.Triangles,
		"rasterized", stats.Rasterized,
		"clipped", stats.Clipped,
		"pixels", stats.PixelsShaded)
	return nil
}

// prepare runs the vertex stage, clipping, division and triangle setup for
// the whole index buffer.
func (p *Pipeline) prepare() ([]setupTriangle, Stats, error) {
	var stats Stats
	if n := len(p.indices); n%3 != 0 {
		return nil, stats, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrIndexOutOfRange, n)
	}
	for i, idx := range p.indices {
		if idx < 0 || idx >= len(p.vertices) {
			return nil, stats, fmt.Errorf("%w: index %d at %d, %d vertices",
				ErrIndexOutOfRange, idx, i, len(p.vertices))
		}
	}

	near, far := p.state.Near, p.state.Far
	tris := make([]setupTriangle, 0, len(p.indices)/3)
	for t := 0; t < len(p.indices); t += 3 {
		var v [3]*AttributeSet
		for k := range v {
			out := &AttributeSet{}
			p.vs.Vertex(p.vertices[p.indices[t+k]], out, p.uniforms, &p.state)
			if _, ok := out.Position(); !ok {
				return nil, stats, fmt.Errorf("%w: triangle %d, vertex %d", ErrMissingPosition, t/3, k)
			}
			v[k] = out
		}
		if !v[0].SameLayout(*v[1]) || !v[0].SameLayout(*v[2]) {
			return nil, stats, fmt.Errorf("%w: triangle %d", ErrAttributeMismatch, t/3)
		}
		stats.Triangles++

		poly := v[:]
		if needsClip(v, near, far) {
			stats.Clipped++
			poly = clipTriangle(v, near, far)
			if len(poly) < 3 {
				stats.ClippedAway++
				continue
			}
		}
		for _, a := range poly {
			perspectiveDivide(a)
		}

		for _, piece := range fan(poly) {
			st, res := newSetupTriangle(piece, p.state.Width, p.state.Height, p.state.CullMode)
			switch res {
			case setupDegenerate:
				stats.Degenerate++
			case setupCulled:
				stats.Culled++
			default:
				stats.Rasterized++
				tris = append(tris, st)
			}
		}
	}
	return tris, stats, nil
}

// rasterize draws the set-up triangles in order and returns the number of
// shaded pixels. In tile-parallel mode every tile draws its own bin; tiles
// own disjoint pixels so the result matches the serial order.
func (p *Pipeline) rasterize(tris []setupTriangle) int64 {
	r := &rasterizer{
		state:    &p.state,
		targets:  &p.targets,
		uniforms: p.uniforms,
		pixel:    p.ps,
	}

	if p.pool == nil || len(tris) == 0 {
		var q quadScratch
		area := evenCeil(image.Rect(0, 0, p.state.Width, p.state.Height))
		var shaded int64
		for i := range tris {
			shaded += int64(r.draw(&tris[i], area, &q))
		}
		return shaded
	}

	p.grid.Reset()
	for i := range tris {
		p.grid.Bin(i, tris[i].bbox)
	}
	tiles := p.grid.Occupied()
	p.logger().Debug("rast: binned",
		"triangles", len(tris),
		"tiles", len(tiles),
		"of", p.grid.TileCount(),
		"workers", p.pool.Workers())

	var shaded atomic.Int64
	p.pool.Run(len(tiles), func(i int) {
		tile := tiles[i]
		var q quadScratch
		area := evenCeil(tile.Rect())
		n := 0
		for _, ti := range tile.Triangles {
			n += r.draw(&tris[ti], area, &q)
		}
		shaded.Add(int64(n))
	})
	return shaded.Load()
}

// Close stops the tile workers and returns the targets to the plane pool.
// The pipeline must not be used after Close.
func (p *Pipeline) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
	p.targets.release()
	p.phase = phaseConfigured
}
