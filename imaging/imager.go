package imaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-sonar/dsp/pulse"
	"github.com/cwbudde/algo-sonar/dsp/window"
)

// Errors returned by the imager.
var (
	ErrInvalidConfig = errors.New("imaging: invalid configuration")
	ErrNoChannels    = errors.New("imaging: no channels")
	ErrWorkerFailure = errors.New("imaging: channel worker failed")
)

// Config holds the propagation and sampling constants.
type Config struct {
	SoundSpeed float64 `yaml:"sound_speed"`
	SampleRate float64 `yaml:"sample_rate"`
}

// Validate checks that both constants are positive and finite.
func (c Config) Validate() error {
	if !(c.SoundSpeed > 0) || math.IsInf(c.SoundSpeed, 0) {
		return fmt.Errorf("%w: sound speed %g", ErrInvalidConfig, c.SoundSpeed)
	}
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %g", ErrInvalidConfig, c.SampleRate)
	}
	return nil
}

// Option configures an Imager.
type Option func(*options)

type options struct {
	workers     int
	pulseWindow window.Type
	dataWindow  window.Type
	progress    func(done, total int)
	logger      *slog.Logger
}

func defaultOptions() options {
	return options{
		workers:     runtime.GOMAXPROCS(0),
		pulseWindow: window.TypeRectangular,
		dataWindow:  window.TypeRectangular,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithWorkers bounds the number of channels imaged concurrently. Values
// below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithPulseWindow tapers the reference pulse before compression.
// TypeRectangular disables tapering.
func WithPulseWindow(t window.Type) Option {
	return func(o *options) {
		o.pulseWindow = t
	}
}

// WithDataWindow tapers every channel recording before compression.
func WithDataWindow(t window.Type) Option {
	return func(o *options) {
		o.dataWindow = t
	}
}

// WithProgress registers a callback invoked after each channel completes.
// Calls are serialised.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithLogger sets the logger for run and progress messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Imager forms delay-and-sum images on a fixed grid.
type Imager struct {
	cfg  Config
	grid Grid
	opts options
}

// NewImager validates cfg and grid and returns an imager.
func NewImager(cfg Config, grid Grid, opts ...Option) (*Imager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if grid.Pixels() == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidGrid)
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Imager{cfg: cfg, grid: grid, opts: o}, nil
}

// Grid returns the pixel grid.
func (im *Imager) Grid() Grid { return im.grid }

// Form images every channel and returns the coherent sum. Any channel
// failure aborts the run with ErrWorkerFailure; no partial image is
// returned. Cancelling ctx stops the run with the context error.
func (im *Imager) Form(ctx context.Context, channels []Channel) (*Image, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	start := time.Now()
	total := len(channels)
	log := im.opts.logger
	log.Debug("imaging started",
		"channels", total,
		"workers", im.opts.workers,
		"pixels", im.grid.Pixels())

	partials := make([]*Image, total)
	prog := &progress{total: total, fn: im.opts.progress}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.opts.workers)

	for i := range channels {
		if gctx.Err() != nil {
			break
		}
		ch := channels[i]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: channel %d: panic: %v", ErrWorkerFailure, ch.Index, r)
				}
			}()

			if err := gctx.Err(); err != nil {
				return err
			}

			p, err := im.ImageChannel(ch)
			if err != nil {
				return fmt.Errorf("%w: channel %d: %w", ErrWorkerFailure, ch.Index, err)
			}
			partials[i] = p

			n := prog.step()
			log.Debug("channel imaged", "channel", ch.Index, "done", n, "total", total)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ErrWorkerFailure) {
			return nil, ctxErr
		}
		log.Debug("imaging failed", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := NewImage(im.grid)
	for _, p := range partials {
		if err := out.Add(p); err != nil {
			return nil, err
		}
	}

	log.Debug("imaging finished",
		"channels", total,
		"elapsed", time.Since(start))
	return out, nil
}

// progress serialises completion callbacks across workers.
type progress struct {
	mu    sync.Mutex
	done  int
	total int
	fn    func(done, total int)
}

func (p *progress) step() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.fn != nil {
		p.fn(p.done, p.total)
	}
	return p.done
}

// ImageChannel returns the partial image of a single channel.
func (im *Imager) ImageChannel(ch Channel) (*Image, error) {
	if len(ch.Reference) == 0 || len(ch.Data) == 0 {
		return nil, fmt.Errorf("%w: channel %d has empty reference or data", ErrInvalidChannel, ch.Index)
	}

	ref := ch.Reference
	if im.opts.pulseWindow != window.TypeRectangular {
		ref = append([]complex128(nil), ref...)
		window.ApplyComplex(im.opts.pulseWindow, ref)
	}
	data := ch.Data
	if im.opts.dataWindow != window.TypeRectangular {
		data = append([]complex128(nil), data...)
		window.ApplyComplex(im.opts.dataWindow, data)
	}

	comp, err := pulse.NewCompressor(ref, len(data))
	if err != nil {
		return nil, err
	}
	compressed, err := comp.Compress(data)
	if err != nil {
		return nil, err
	}

	img := NewImage(im.grid)
	for iy, y := range im.grid.Y {
		row := img.Data[iy]
		for ix, x := range im.grid.X {
			p := Point{X: x, Y: y}
			dist := ch.Tx.Distance(p) + p.Distance(ch.Rx)
			idx := int(math.Round(dist / im.cfg.SoundSpeed * im.cfg.SampleRate))
			if idx < 0 || idx >= len(compressed) {
				continue
			}
			row[ix] = compressed[idx]
		}
	}
	return img, nil
}
