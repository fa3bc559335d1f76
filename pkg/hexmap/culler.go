package hexmap

import (
	"github.com/sirupsen/logrus"
	"github.com/uber/h3-go/v4"

	"github.com/beetlebugorg/hexmap/internal/hexgrid"
)

// PassState is the lifecycle state of a render pass.
type PassState int

const (
	// PassRunning means batches are still being scheduled.
	PassRunning PassState = iota
	// PassCompleted means the feature list was exhausted or the cap reached.
	PassCompleted
	// PassSuperseded means a newer pass started before this one finished.
	PassSuperseded
)

func (s PassState) String() string {
	switch s {
	case PassRunning:
		return "running"
	case PassCompleted:
		return "completed"
	case PassSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// PassResult summarizes a completed pass.
type PassResult struct {
	Generation uint64
	Resolution Resolution
	Visible    int  // cells emitted
	Scanned    int  // features evaluated
	Batches    int  // scheduler turns used
	Capped     bool // stopped at MaxCells
}

// Pass is one render pass over a feature list.
//
// The viewport and resolution are fixed when the pass starts. A Pass is
// only touched from the scheduler goroutine.
type Pass struct {
	generation uint64
	features   []Feature
	viewport   Viewport
	region     Bounds
	resolution Resolution
	log        logrus.FieldLogger

	cursor  int
	visible int
	batches int
	state   PassState
}

// Generation returns the pass generation. Later passes have larger values.
func (p *Pass) Generation() uint64 { return p.generation }

// Resolution returns the resolution cells are indexed at.
func (p *Pass) Resolution() Resolution { return p.resolution }

// Viewport returns the viewport captured at pass start.
func (p *Pass) Viewport() Viewport { return p.viewport }

// State returns the current lifecycle state.
func (p *Pass) State() PassState { return p.state }

// Visible returns the number of cells emitted so far.
func (p *Pass) Visible() int { return p.visible }

func (p *Pass) result(maxCells int) PassResult {
	return PassResult{
		Generation: p.generation,
		Resolution: p.resolution,
		Visible:    p.visible,
		Scanned:    p.cursor,
		Batches:    p.batches,
		Capped:     p.visible >= maxCells,
	}
}

// cellIndexer is the part of *hexgrid.Indexer the culler uses.
type cellIndexer interface {
	CellForPoint(lat, lng float64, res Resolution) (h3.Cell, error)
	Boundary(cell h3.Cell) ([]LatLng, error)
	CacheStats() hexgrid.CacheStats
}

// Culler turns features into hexagon cells for the part of the map that is
// in view.
//
// Each Start begins a new pass with a larger generation. Batches of a pass
// run as separate scheduler tasks; a batch whose generation is no longer
// current returns without doing anything, so at most one pass ever emits
// into the layer.
type Culler struct {
	layer      Layer
	sched      Scheduler
	indexer    cellIndexer
	opts       Options
	log        logrus.FieldLogger
	generation uint64
	current    *Pass
	onComplete []func(PassResult)
}

// NewCuller creates a culler that draws into layer and runs batches on
// sched.
func NewCuller(layer Layer, sched Scheduler, opts Options) *Culler {
	opts = opts.withDefaults()
	return &Culler{
		layer:   layer,
		sched:   sched,
		indexer: opts.newIndexer(),
		opts:    opts,
		log:     opts.Logger,
	}
}

// OnComplete adds a function called when a pass completes. Functions run
// in the order they were added.
func (c *Culler) OnComplete(fn func(PassResult)) {
	c.onComplete = append(c.onComplete, fn)
}

// Generation returns the generation of the most recent pass.
func (c *Culler) Generation() uint64 {
	return c.generation
}

// Current returns the most recent pass, or nil.
func (c *Culler) Current() *Pass {
	return c.current
}

// CacheStats returns the boundary cache statistics.
func (c *Culler) CacheStats() hexgrid.CacheStats {
	return c.indexer.CacheStats()
}

// Start supersedes any running pass, clears the layer and schedules the
// first batch of a new pass.
func (c *Culler) Start(features []Feature, viewport Viewport, res Resolution) *Pass {
	return c.start(features, viewport, res, c.log)
}

func (c *Culler) start(features []Feature, viewport Viewport, res Resolution, log logrus.FieldLogger) *Pass {
	c.supersede()
	c.generation++

	p := &Pass{
		generation: c.generation,
		features:   features,
		viewport:   viewport,
		region:     viewport.Padded(),
		resolution: res,
		state:      PassRunning,
	}
	p.log = log.WithFields(logrus.Fields{
		"generation": p.generation,
		"resolution": int(res),
	})
	c.current = p

	c.layer.Clear()
	c.opts.Metrics.passStarted(res)
	p.log.WithField("features", len(features)).Debug("Starting render pass")

	c.sched.Schedule(func() { c.step(p) })
	return p
}

// Cancel supersedes the running pass without starting a new one. Cells
// already drawn stay on the layer.
func (c *Culler) Cancel() {
	c.supersede()
	c.generation++
}

func (c *Culler) supersede() {
	p := c.current
	if p == nil || p.state != PassRunning {
		return
	}
	p.state = PassSuperseded
	c.opts.Metrics.passSuperseded()
	p.log.WithField("visible", p.visible).Debug("Render pass superseded")
}

// step processes one batch of p.
func (c *Culler) step(p *Pass) {
	if p.generation != c.generation {
		return
	}

	p.batches++
	end := min(p.cursor+c.opts.BatchSize, len(p.features))
	for p.cursor < end && p.visible < c.opts.MaxCells {
		f := p.features[p.cursor]
		p.cursor++
		c.evaluate(p, f)
	}

	if p.cursor < len(p.features) && p.visible < c.opts.MaxCells {
		c.sched.Schedule(func() { c.step(p) })
		return
	}
	c.complete(p)
}

func (c *Culler) evaluate(p *Pass, f Feature) {
	center, ok := Centroid(f)
	if !ok {
		c.opts.Metrics.featureSkipped(skipNoVertices)
		p.log.WithField("feature", f.ID).Debug("Skipping feature without vertices")
		return
	}
	if !p.region.ContainsLatLng(center) {
		c.opts.Metrics.featureSkipped(skipOutside)
		return
	}

	color := NormalizeColor(f.Color)

	h3cell, err := c.indexer.CellForPoint(center.Lat, center.Lng, p.resolution)
	if err != nil {
		c.opts.Metrics.featureSkipped(skipIndexError)
		p.log.WithError(err).WithField("feature", f.ID).Warn("Failed to index feature")
		return
	}
	ring, err := c.indexer.Boundary(h3cell)
	if err != nil {
		c.opts.Metrics.featureSkipped(skipIndexError)
		p.log.WithError(err).WithField("feature", f.ID).Warn("Failed to get cell boundary")
		return
	}

	cell := Cell{
		Index:      h3cell.String(),
		Boundary:   append([]LatLng(nil), ring...),
		Color:      color,
		FeatureID:  f.ID,
		Resolution: p.resolution,
	}
	c.layer.AddCell(cell, c.opts.Style.WithColor(color))
	p.visible++
	c.opts.Metrics.cellEmitted()
}

func (c *Culler) complete(p *Pass) {
	p.state = PassCompleted
	res := p.result(c.opts.MaxCells)
	c.opts.Metrics.passCompleted(res)
	p.log.WithFields(logrus.Fields{
		"visible": res.Visible,
		"scanned": res.Scanned,
		"batches": res.Batches,
		"capped":  res.Capped,
	}).Info("Render pass completed")

	for _, fn := range c.onComplete {
		fn(res)
	}
}
