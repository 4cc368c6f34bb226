// Command stripebench drives a stripeset.Set with concurrent
// add/remove workers and reports throughput and resize counts,
// exporting the same numbers as Prometheus metrics for scraping or for
// a one-shot text dump.
package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thebagchi/stripeset"
)

var (
	workers    int
	perWorker  int
	stripes    int32
	seed       int64
	listenAddr string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stripebench",
		Short: "Benchmark driver for a concurrent striped hash set",
		RunE:  runBench,
	}
	flags := cmd.Flags()
	flags.IntVar(&workers, "workers", 8, "number of concurrent add/remove goroutines")
	flags.IntVar(&perWorker, "per-worker", 200_000, "add/remove operations issued per worker")
	flags.Int32Var(&stripes, "stripes", 997, "number of lock stripes")
	flags.Int64Var(&seed, "seed", 1, "base seed; each worker derives seed+workerIndex")
	flags.StringVar(&listenAddr, "listen", "", "if set, serve /metrics on this address instead of exiting after the run")
	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger.Info("stripebench: starting run",
		zap.String("run_id", runID), zap.Int("workers", workers),
		zap.Int("per_worker", perWorker), zap.Int32("stripes", stripes))

	reg := prometheus.NewRegistry()
	opsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "stripebench_ops_total",
		Help:        "Total add/remove operations issued across all workers.",
		ConstLabels: prometheus.Labels{"run_id": runID},
	})
	durationSeconds := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "stripebench_duration_seconds",
		Help:        "Wall-clock duration of the benchmark run.",
		ConstLabels: prometheus.Labels{"run_id": runID},
	})
	finalCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "stripebench_final_count",
		Help:        "Set.Count() after the run completed.",
		ConstLabels: prometheus.Labels{"run_id": runID},
	})
	resizesTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "stripebench_resizes_total",
		Help:        "Number of bucket-table resizes observed during the run.",
		ConstLabels: prometheus.Labels{"run_id": runID},
	})
	reg.MustRegister(opsTotal, durationSeconds, finalCount, resizesTotal)

	set := stripeset.New[uint64](
		stripeset.NewSeededHasher[uint64](),
		stripeset.ComparableEqualer[uint64]{},
		stripeset.WithStripes(stripes),
		stripeset.WithLogger(logger),
	)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerSeed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(workerSeed))
			for i := 0; i < perWorker; i++ {
				v := r.Uint64()
				if r.Intn(2) == 0 {
					set.Add(v)
				} else {
					set.Remove(v)
				}
				opsTotal.Inc()
			}
		}(seed + int64(w))
	}
	wg.Wait()
	elapsed := time.Since(start)

	stats := set.Stats()
	durationSeconds.Set(elapsed.Seconds())
	finalCount.Set(float64(stats.Count))
	resizesTotal.Set(float64(stats.Resizes))

	logger.Info("stripebench: run complete",
		zap.String("run_id", runID), zap.Duration("took", elapsed),
		zap.Int64("final_count", stats.Count), zap.Int64("resizes", stats.Resizes),
		zap.Uint64("slots", stats.Slots))

	if listenAddr == "" {
		dump, err := dumpText(reg)
		if err != nil {
			return err
		}
		fmt.Print(dump)
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("stripebench: serving metrics", zap.String("addr", listenAddr))
	return http.ListenAndServe(listenAddr, mux)
}

func dumpText(gatherer prometheus.Gatherer) (string, error) {
	mfs, err := gatherer.Gather()
	if err != nil {
		return "", err
	}
	var out string
	for _, mf := range mfs {
		out += mf.String() + "\n"
	}
	return out, nil
}
