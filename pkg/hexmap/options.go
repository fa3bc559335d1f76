package hexmap

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/hexmap/internal/hexgrid"
	"github.com/beetlebugorg/hexmap/internal/logging"
	"github.com/beetlebugorg/hexmap/internal/timeutil"
)

const (
	// DefaultBatchSize is the number of features evaluated per scheduler turn.
	DefaultBatchSize = 50

	// DefaultMaxCells caps the cells emitted by a single pass.
	DefaultMaxCells = 1000

	// DefaultPadding grows the viewport by 20% of its span on each side.
	DefaultPadding = 0.2

	// DefaultDebounce is the quiet interval after the last move signal.
	DefaultDebounce = 200 * time.Millisecond

	// NoPadding disables viewport padding. A zero Padding means
	// DefaultPadding.
	NoPadding = -1.0

	// NoDebounce schedules a pass on the next timer tick after Moving. A
	// zero Debounce means DefaultDebounce.
	NoDebounce time.Duration = -1
)

// Clock supplies the timers used to debounce map movement.
type Clock = timeutil.Clock

// Options configures the renderer.
type Options struct {
	// BatchSize is the number of features evaluated per scheduler turn.
	BatchSize int

	// MaxCells caps the number of cells a pass emits.
	MaxCells int

	// Padding is the viewport padding ratio (0.2 = 20% per side). Zero
	// selects DefaultPadding; use NoPadding for none.
	Padding float64

	// Debounce is the quiet interval required after Moving before a pass.
	// Zero selects DefaultDebounce; use NoDebounce for none.
	Debounce time.Duration

	// Style is the base style for emitted cells. Fill and stroke colors are
	// replaced by the feature color.
	Style Style

	// BoundaryCacheBytes bounds the cell boundary cache. Zero disables it.
	BoundaryCacheBytes int64

	// Logger receives pass and load logs. Defaults to a discarding logger.
	Logger logrus.FieldLogger

	// Metrics is optional. A nil value records nothing.
	Metrics *Metrics

	// Clock drives the debounce timer. Defaults to the real clock.
	Clock Clock
}

// DefaultOptions returns the default renderer options.
func DefaultOptions() Options {
	return Options{
		BatchSize:          DefaultBatchSize,
		MaxCells:           DefaultMaxCells,
		Padding:            DefaultPadding,
		Debounce:           DefaultDebounce,
		Style:              DefaultStyle(),
		BoundaryCacheBytes: hexgrid.DefaultCacheSize,
		Logger:             logging.Discard(),
		Clock:              timeutil.RealClock{},
	}
}

// withDefaults replaces zero fields with their defaults and resolves the
// NoPadding and NoDebounce markers, so Options{} behaves like
// DefaultOptions().
func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.MaxCells <= 0 {
		o.MaxCells = DefaultMaxCells
	}
	switch {
	case o.Padding == 0:
		o.Padding = DefaultPadding
	case o.Padding < 0:
		o.Padding = 0
	}
	switch {
	case o.Debounce == 0:
		o.Debounce = DefaultDebounce
	case o.Debounce < 0:
		o.Debounce = 0
	}
	if o.Style == (Style{}) {
		o.Style = DefaultStyle()
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Clock == nil {
		o.Clock = timeutil.RealClock{}
	}
	return o
}

func (o Options) newIndexer() *hexgrid.Indexer {
	if o.BoundaryCacheBytes <= 0 {
		return hexgrid.NewIndexerWithCache(nil)
	}
	return hexgrid.NewIndexerWithCache(hexgrid.NewBoundaryCache(o.BoundaryCacheBytes))
}
