package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/hexmap/internal/config"
	"github.com/beetlebugorg/hexmap/pkg/hexmap"
)

// staticView is a map that never moves.
type staticView struct {
	zoom   int
	bounds hexmap.Bounds
}

func (v staticView) Zoom() int             { return v.zoom }
func (v staticView) Bounds() hexmap.Bounds { return v.bounds }

type renderFlags struct {
	dataPath    string
	dataURL     string
	south       float64
	west        float64
	north       float64
	east        float64
	zoom        int
	out         string
	metricsAddr string
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Bin a dataset for one viewport and write the cells as GeoJSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if f.dataPath != "" {
				cfg.DataPath = f.dataPath
				cfg.DataURL = ""
			}
			if f.dataURL != "" {
				cfg.DataURL = f.dataURL
			}
			if f.metricsAddr != "" {
				cfg.MetricsAddr = f.metricsAddr
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), log, cfg, f)
		},
	}

	cmd.Flags().StringVar(&f.dataPath, "data", "", "dataset file (default $HEXMAP_DATA_PATH)")
	cmd.Flags().StringVar(&f.dataURL, "url", "", "dataset URL (default $HEXMAP_DATA_URL)")
	cmd.Flags().Float64Var(&f.south, "south", 0, "southern edge of the viewport")
	cmd.Flags().Float64Var(&f.west, "west", 0, "western edge of the viewport")
	cmd.Flags().Float64Var(&f.north, "north", 0, "northern edge of the viewport")
	cmd.Flags().Float64Var(&f.east, "east", 0, "eastern edge of the viewport")
	cmd.Flags().IntVar(&f.zoom, "zoom", 10, "map zoom level")
	cmd.Flags().StringVarP(&f.out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve /metrics and /cells on this address after rendering")
	for _, name := range []string{"south", "west", "north", "east"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runRender(ctx context.Context, stdout, stderr io.Writer, log *logrus.Entry, cfg *config.Config, f renderFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.south > f.north || f.west > f.east {
		return fmt.Errorf("invalid viewport %v,%v,%v,%v", f.south, f.west, f.north, f.east)
	}

	reg := prometheus.NewRegistry()

	opts := cfg.Options()
	opts.Logger = log
	opts.Metrics = hexmap.NewMetrics(reg)

	store := hexmap.NewStore(cfg.Source(), opts)
	view := staticView{zoom: f.zoom, bounds: hexmap.NewBounds(f.south, f.west, f.north, f.east)}
	layer := hexmap.NewMemoryLayer()
	loop := hexmap.NewLoop()

	ctrl := hexmap.NewController(store, view, layer, loop, opts)
	ctrl.Start()
	defer ctrl.Close()

	var result hexmap.PassResult
	ctrl.Culler().OnComplete(func(r hexmap.PassResult) { result = r })

	loadCtx := ctx
	if cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, cfg.FetchTimeout*time.Duration(cfg.FetchRetries+1))
		defer cancel()
	}
	ds, err := store.Load(loadCtx)
	if err != nil {
		return err
	}
	loop.Drain()

	region := ctrl.Viewport().Padded()
	fmt.Fprintf(stderr, "padded region %s\n", region)
	if extent, ok := ds.Extent(); ok && !region.Intersects(extent) {
		fmt.Fprintf(stderr, "warning: viewport does not overlap the dataset extent %s\n", extent)
	}

	if err := writeCells(stdout, f.out, layer); err != nil {
		return err
	}

	stats := ctrl.Culler().CacheStats()
	fmt.Fprintf(stderr, "resolution %d: %d cells from %d features in %d batches", ctrl.Resolution().Get(), ctrl.VisibleCells().Get(), result.Scanned, result.Batches)
	if result.Capped {
		fmt.Fprintf(stderr, " (capped at %d)", cfg.MaxCells)
	}
	fmt.Fprintf(stderr, ", boundary cache hit rate %.0f%%\n", stats.HitRate()*100)

	if cfg.MetricsAddr == "" {
		return nil
	}
	return serve(ctx, log, cfg.MetricsAddr, reg, layer)
}

func writeCells(stdout io.Writer, path string, layer *hexmap.MemoryLayer) error {
	data, err := json.MarshalIndent(layer.FeatureCollection(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode cells: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func serve(ctx context.Context, log logrus.FieldLogger, addr string, reg *prometheus.Registry, layer *hexmap.MemoryLayer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/cells", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		_ = json.NewEncoder(w).Encode(layer.FeatureCollection())
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Serving metrics and cells")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
