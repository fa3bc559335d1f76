package hexmap

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store loads datasets from a Source and pushes each successful load to
// subscribers.
//
// Loading, Err and Loaded expose the load status for display. A failed load
// keeps the previous dataset.
type Store struct {
	source  Source
	log     logrus.FieldLogger
	metrics *Metrics

	mu      sync.RWMutex
	current *Dataset
	subs    map[*Subscription]func(*Dataset)

	loading *Value[bool]
	err     *Value[string]
	loaded  *Value[bool]
}

// Subscription is returned by Store.Subscribe.
type Subscription struct {
	store *Store
	once  sync.Once
}

// Unsubscribe stops delivery. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.store == nil {
		return
	}
	s.once.Do(func() {
		s.store.mu.Lock()
		delete(s.store.subs, s)
		s.store.mu.Unlock()
	})
}

// NewStore creates a store reading from source. Only Logger and Metrics
// are taken from opts.
func NewStore(source Source, opts Options) *Store {
	opts = opts.withDefaults()
	return &Store{
		source:  source,
		log:     opts.Logger,
		metrics: opts.Metrics,
		subs:    make(map[*Subscription]func(*Dataset)),
		loading: newValue(false),
		err:     newValue(""),
		loaded:  newValue(false),
	}
}

// Current returns the last loaded dataset, or nil before the first load.
func (s *Store) Current() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to receive every future dataset, once per
// successful load. It does not replay the current dataset.
func (s *Store) Subscribe(fn func(*Dataset)) *Subscription {
	sub := &Subscription{store: s}
	s.mu.Lock()
	s.subs[sub] = fn
	s.mu.Unlock()
	return sub
}

// Loading is true while a load is in flight.
func (s *Store) Loading() *Value[bool] { return s.loading }

// Err holds the message of the last failed load, or "" after a success.
func (s *Store) Err() *Value[string] { return s.err }

// Loaded becomes true after the first successful load.
func (s *Store) Loaded() *Value[bool] { return s.loaded }

// Load fetches and parses the dataset and publishes it.
func (s *Store) Load(ctx context.Context) (*Dataset, error) {
	log := s.log.WithField("source", s.source.String())
	s.loading.set(true)
	s.err.set("")

	ds, err := s.fetch(ctx)
	if err != nil {
		s.metrics.datasetFailed()
		s.err.set("failed to load data: " + err.Error())
		s.loading.set(false)
		log.WithError(err).Error("Failed to load dataset")
		return nil, err
	}

	if ds.ColorFallbacks > 0 {
		log.WithField("count", ds.ColorFallbacks).
			Warnf("Replaced invalid feature colors with %s", DefaultColor)
	}
	if !ds.WebMercator() {
		log.WithField("crs", ds.CRS).Warn("Dataset does not declare EPSG:3857; coordinates are used as-is")
	}
	log.WithFields(logrus.Fields{
		"dataset":  ds.ID.String(),
		"features": len(ds.Features),
	}).Info("Loaded dataset")

	s.Publish(ds)
	return ds, nil
}

func (s *Store) fetch(ctx context.Context) (*Dataset, error) {
	data, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.source, err)
	}
	ds, err := ParseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.source, err)
	}
	return ds, nil
}

// Publish makes ds current and delivers it to subscribers.
func (s *Store) Publish(ds *Dataset) {
	s.mu.Lock()
	s.current = ds
	subs := make([]func(*Dataset), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.metrics.datasetLoaded(ds)
	s.loaded.set(true)
	s.loading.set(false)

	for _, fn := range subs {
		fn(ds)
	}
}
