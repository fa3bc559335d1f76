// Package hexmap renders polygon datasets as H3 hexagon bins for the part of
// a web map that is in view.
//
// Each feature is reduced to one point (the mean of its projected vertices),
// features whose point falls outside the padded viewport are skipped, and the
// rest are indexed into H3 cells at a resolution derived from the map zoom.
// The work is split into small batches that run as separate tasks on a
// cooperative Scheduler, so the host stays responsive, and any newer pass
// silently cancels the older one.
//
// # Basic Usage
//
//	store := hexmap.NewStore(hexmap.FileSource{Path: "assets/data.json"}, hexmap.DefaultOptions())
//	if _, err := store.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	layer := hexmap.NewMemoryLayer()
//	loop := hexmap.NewLoop()
//	ctrl := hexmap.NewController(store, view, layer, loop, hexmap.DefaultOptions())
//	ctrl.Start()
//
//	loop.Drain()
//	fmt.Println(ctrl.VisibleCells().Get(), "cells")
//
// # Map Events
//
// The host forwards map events to the controller:
//
//	map.OnZoomEnd(func() { ctrl.ZoomEnded() })
//	map.OnMoveEnd(func() { ctrl.MoveEnded() })
//	map.OnMove(func() { ctrl.Moving() }) // debounced
//
// Every event starts a new pass with a fresh generation. Batches of older
// passes check their generation before doing any work and stop.
//
// # Resolution Mapping
//
//	Zoom ≤ 6    → resolution 3
//	Zoom 7-8    → resolution 4
//	Zoom 9-10   → resolution 5
//	Zoom 11-12  → resolution 6
//	Zoom 13-14  → resolution 7
//	Zoom 15-16  → resolution 8
//	Zoom 17+    → resolution 9
//
// # Limits
//
// A pass evaluates DefaultBatchSize features per turn and stops after
// DefaultMaxCells cells. Features are evaluated in dataset order, so when
// the cap is hit the first qualifying features win.
//
// # Coordinates
//
// Dataset coordinates are EPSG:3857 meters. Cells, bounds and centroids are
// WGS-84 degrees.
package hexmap
