package rast

import "log/slog"

// PipelineOption configures a Pipeline during creation.
//
// Example:
//
//	// Serial rendering, package logger
//	p, _ := rast.NewPipeline(rast.DefaultState())
//
//	// Tile-parallel rendering on 8 workers with a dedicated logger
//	p, _ := rast.NewPipeline(state, rast.WithWorkers(8), rast.WithLogger(l))
type PipelineOption func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	workers int
	logger  *slog.Logger
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		workers: 1, // serial
		logger:  nil, // package logger
	}
}

// WithWorkers enables tile-parallel rasterization on n workers.
// n <= 1 keeps the serial rasterizer. Pixel stages must be safe for
// concurrent use when n > 1.
func WithWorkers(n int) PipelineOption {
	return func(o *pipelineOptions) {
		o.workers = max(1, n)
	}
}

// WithLogger sets a logger for this pipeline only, overriding SetLogger.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(o *pipelineOptions) {
		o.logger = l
	}
}
