// Command quaysidectl drives a matching engine from a replay script,
// logging every placement, cancellation and match, and optionally
// exposing Prometheus metrics over HTTP.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quayside/internal/engine"
	"quayside/internal/metrics"
	"quayside/internal/replay"
)

func main() {
	scriptPath := flag.String("script", "", "path to a replay script (defaults to stdin)")
	metricsAddr := flag.String("metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9100 (disabled if empty)")
	verbose := flag.Bool("verbose", false, "enable debug-level logging")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	eng := engine.New()
	eng.RegisterObserver(engine.NewLoggingObserver(log.Logger))

	if *metricsAddr != "" {
		collector := metrics.GetCollector()
		eng.RegisterObserver(metrics.NewObserver(collector))
		go serveMetrics(ctx, *metricsAddr, eng, collector)
	}

	input, closeInput := openScript(*scriptPath)
	defer closeInput()

	harness := replay.NewHarness(eng)
	runCtx := harness.Start(ctx)
	done := harness.Submit(*scriptPath, input)

	select {
	case <-done:
	case <-runCtx.Done():
	}
	harness.Stop()

	if err := harness.Wait(); err != nil {
		log.Error().Err(err).Msg("replay harness exited with error")
		os.Exit(1)
	}
}

func openScript(path string) (*os.File, func()) {
	if path == "" {
		return os.Stdin, func() {}
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("could not open replay script")
	}
	return f, func() { f.Close() }
}

// serveMetrics runs a plain http.Server exposing /metrics, and keeps
// collector's active-order gauge fresh since that figure can't be
// derived from individual engine events (see metrics.Collector.SetActiveOrders).
func serveMetrics(ctx context.Context, addr string, eng *engine.Engine, collector *metrics.Collector) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collector.SetActiveOrders(eng.OrderCount())
			}
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("serving prometheus metrics")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("metrics server failed")
	}
}
