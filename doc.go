// Package rast provides a CPU triangle rasterization pipeline for Go.
//
// # Overview
//
// rast takes a vertex buffer of attribute sets and an index buffer of
// triangles, runs a vertex stage on every vertex, clips what leaves the
// view volume, rasterizes with multisample antialiasing, interpolates every
// vertex attribute with perspective correction, runs a pixel stage on the
// covered pixels and resolves the samples into an 8-bit image.
//
// # Quick Start
//
//	p, err := rast.NewPipeline(rast.PipelineState{
//	    Width: 100, Height: 100,
//	    FOV: 90, Near: 0.1, Far: 64,
//	    SampleOffsets: rast.Pattern4x(),
//	    DepthTest: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.SetVertexBuffer(vertices)
//	p.SetIndexBuffer([]int{0, 2, 1})
//	p.SetShaders(rast.PassThrough, rast.VertexColor)
//	p.Clear(f32.Vec4{0, 0, 0, 1}, 1)
//	if err := p.Render(); err != nil {
//	    log.Fatal(err)
//	}
//	_ = p.SavePNG("triangle.png")
//
// # Coordinate System
//
// Vertex stages output homogeneous clip-space positions. After division
// x and y lie in [-1, 1] and z in [0, 1], with 0 at the near plane.
// Render targets are addressed with x growing right and y growing up:
// pixel (0, 0) is the bottom-left corner. Presented images are upright,
// so their first row is the top of the view.
//
// # Depth
//
// Smaller depth is nearer. The default comparison is
// gputypes.CompareFunctionLess; clear depth to 1 (or more) before drawing.
//
// # Concurrency
//
// A Pipeline is not safe for concurrent use. With WithWorkers(n > 1) the
// rasterizer runs screen tiles in parallel; pixel stages must then be safe
// for concurrent use. The output is identical to the serial path.
package rast
