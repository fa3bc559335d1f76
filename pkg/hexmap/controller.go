package hexmap

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/hexmap/internal/timeutil"
)

// DataSource provides datasets to a Controller. *Store implements it.
type DataSource interface {
	// Current returns the latest dataset, or nil before the first load.
	Current() *Dataset

	// Subscribe delivers each later dataset exactly once.
	Subscribe(fn func(*Dataset)) *Subscription
}

// MapView is the host map widget. Both values are read when a pass starts.
type MapView interface {
	Zoom() int
	Bounds() Bounds
}

// Controller keeps a Layer in sync with the map view and the dataset.
//
// ZoomEnded, MoveEnded, Refresh and Close must be called on the goroutine
// that drives the Scheduler. Moving may be called from anywhere; its
// debounce timer only schedules work.
type Controller struct {
	data   DataSource
	view   MapView
	sched  Scheduler
	culler *Culler
	opts   Options
	log    logrus.FieldLogger

	resolution *Value[Resolution]
	visible    *Value[int]
	sub        *Subscription

	mu        sync.Mutex
	moveTimer timeutil.Timer
	moveSeq   uint64
	closed    bool
}

// NewController wires a controller. Call Start to begin listening for data.
func NewController(data DataSource, view MapView, layer Layer, sched Scheduler, opts Options) *Controller {
	opts = opts.withDefaults()
	c := &Controller{
		data:       data,
		view:       view,
		sched:      sched,
		culler:     NewCuller(layer, sched, opts),
		opts:       opts,
		log:        opts.Logger,
		resolution: newValue(ResolutionForZoom(view.Zoom())),
		visible:    newValue(0),
	}
	c.culler.OnComplete(func(r PassResult) {
		c.visible.set(r.Visible)
	})
	return c
}

// Start subscribes to the data source. Each delivered dataset schedules a
// refresh. If a dataset is already loaded a refresh is scheduled at once.
func (c *Controller) Start() {
	c.sub = c.data.Subscribe(func(*Dataset) {
		c.sched.Schedule(func() { c.Refresh() })
	})
	if c.data.Current() != nil {
		c.sched.Schedule(func() { c.Refresh() })
	}
}

// Resolution is the resolution derived from the current zoom.
func (c *Controller) Resolution() *Value[Resolution] { return c.resolution }

// VisibleCells is the cell count of the last completed pass.
func (c *Controller) VisibleCells() *Value[int] { return c.visible }

// Culler returns the controller's culler.
func (c *Controller) Culler() *Culler { return c.culler }

// ZoomEnded re-derives the resolution and starts a pass.
func (c *Controller) ZoomEnded() *Pass {
	return c.Refresh()
}

// MoveEnded starts a pass for the new viewport.
func (c *Controller) MoveEnded() *Pass {
	return c.Refresh()
}

// Moving signals continuous movement. A pass is scheduled once no further
// Moving call arrives for the debounce interval.
func (c *Controller) Moving() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.moveTimer != nil {
		c.moveTimer.Stop()
	}
	c.moveSeq++
	seq := c.moveSeq
	c.moveTimer = c.opts.Clock.AfterFunc(c.opts.Debounce, func() {
		c.mu.Lock()
		if c.closed || seq != c.moveSeq {
			c.mu.Unlock()
			return
		}
		c.moveTimer = nil
		c.mu.Unlock()
		c.sched.Schedule(func() { c.Refresh() })
	})
}

// Refresh starts a pass for the current dataset, viewport and zoom. It
// returns nil if the controller is closed or no dataset is loaded.
func (c *Controller) Refresh() *Pass {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil
	}

	res := ResolutionForZoom(c.view.Zoom())
	c.resolution.set(res)

	ds := c.data.Current()
	if ds == nil {
		return nil
	}

	viewport := c.Viewport()
	log := c.log.WithField("dataset", ds.ID.String())
	if extent, ok := ds.Extent(); ok && !viewport.Padded().Intersects(extent) {
		log.WithField("extent", extent.String()).Debug("Viewport does not overlap the dataset")
	}
	return c.culler.start(ds.Features, viewport, res, log)
}

// Viewport returns the current map bounds with the configured padding.
func (c *Controller) Viewport() Viewport {
	return Viewport{Bounds: c.view.Bounds(), Padding: c.opts.Padding}
}

// Close cancels the debounce timer, unsubscribes from the data source and
// cancels the running pass. Cells already drawn are left on the layer.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.closed = true
	if c.moveTimer != nil {
		c.moveTimer.Stop()
		c.moveTimer = nil
	}
	c.mu.Unlock()

	c.sub.Unsubscribe()
	c.culler.Cancel()
	c.log.Debug("Controller closed")
	return nil
}
