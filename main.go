package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/flynnfc/bloomlab/bloom"
	"github.com/flynnfc/bloomlab/logger"
	"github.com/flynnfc/bloomlab/simulation"
)

func main() {
	var (
		datasetSize  = flag.Int("n", 100000, "number of synthetic keys to generate")
		bitsPerItem  = flag.Uint64("bits-per-item", 10, "filter bits per inserted key")
		numHashes    = flag.Uint("hashes", 7, "bit probes per key")
		trainPercent = flag.Int("train-percent", 80, "percentage of keys inserted; the rest are held out")
		seed1        = flag.Uint("seed1", 0, "32-bit seed for the standard filter's base hash")
		seed2        = flag.Uint64("seed2", 0, "64-bit seed for the stride and blocked-filter hash")
		sequential   = flag.Bool("sequential", false, "use sequential key_i keys instead of UUIDs")
		csvPath      = flag.String("csv", "", "write per-filter metrics to this CSV file")
		metricsAddr  = flag.String("metrics-addr", "", "serve Prometheus metrics on this address during the run")
		console      = flag.Bool("console", false, "log to stderr instead of the rotating log file")
	)
	flag.Parse()

	runName := time.Now().Format("2006-01-02-15-04-05")
	var log *zap.Logger
	if *console {
		log = logger.InitConsoleLogger()
	} else {
		log = logger.InitLogger(runName + "-bench")
	}
	defer log.Sync()

	if err := run(log, runConfig{
		datasetSize:  *datasetSize,
		bitsPerItem:  *bitsPerItem,
		numHashes:    uint32(*numHashes),
		trainPercent: *trainPercent,
		seed1:        uint32(*seed1),
		seed2:        *seed2,
		sequential:   *sequential,
		csvPath:      *csvPath,
		metricsAddr:  *metricsAddr,
	}); err != nil {
		log.Error("Benchmark failed", zap.Error(err))
		os.Exit(1)
	}
}

type runConfig struct {
	datasetSize  int
	bitsPerItem  uint64
	numHashes    uint32
	trainPercent int
	seed1        uint32
	seed2        uint64
	sequential   bool
	csvPath      string
	metricsAddr  string
}

func run(log *zap.Logger, cfg runConfig) error {
	log.Info("Generating synthetic keys",
		zap.Int("count", cfg.datasetSize),
		zap.Bool("sequential", cfg.sequential),
	)
	var ds *simulation.Dataset
	if cfg.sequential {
		ds = simulation.GenerateSequentialDataset(cfg.datasetSize, cfg.trainPercent, "key")
	} else {
		ds = simulation.GenerateUUIDDataset(cfg.datasetSize, cfg.trainPercent)
	}

	filterBits := uint64(len(ds.Train)) * cfg.bitsPerItem

	std, err := bloom.NewStandard(filterBits, cfg.numHashes, cfg.seed1, cfg.seed2)
	if err != nil {
		return fmt.Errorf("standard filter init: %w", err)
	}
	defer std.Release()

	blk, err := bloom.NewBlocked(filterBits, cfg.numHashes, cfg.seed2)
	if err != nil {
		return fmt.Errorf("blocked filter init: %w", err)
	}
	defer blk.Release()
	if blk.SizeBits() != filterBits {
		log.Info("Blocked filter rounded capacity up",
			zap.Uint64("requested_bits", filterBits),
			zap.Uint64("effective_bits", blk.SizeBits()),
		)
	}

	ref := simulation.NewReference(uint(filterBits), uint(cfg.numHashes))
	defer ref.Release()

	collector := simulation.NewCollector()
	if cfg.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			log.Info("Serving Prometheus metrics", zap.String("addr", cfg.metricsAddr))
			if err := http.ListenAndServe(cfg.metricsAddr, mux); err != nil {
				log.Error("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	runner := &simulation.Runner{
		Logger:    log,
		Collector: collector,
	}

	stdMetrics, err := runner.Run("standard", std, ds)
	if err != nil {
		return err
	}
	blkMetrics, err := runner.Run("blocked", blk, ds)
	if err != nil {
		return err
	}
	refMetrics, err := runner.Run("reference", ref, ds)
	if err != nil {
		return err
	}

	fmt.Printf("Comparison, %d keys (%d%% inserted, %d%% held out), %d bits/item, k=%d\n",
		ds.Size(), cfg.trainPercent, 100-cfg.trainPercent, cfg.bitsPerItem, cfg.numHashes)
	simulation.WriteReport(os.Stdout, stdMetrics, blkMetrics, refMetrics)

	if cfg.csvPath != "" {
		runs := []simulation.Metrics{stdMetrics, blkMetrics, refMetrics}
		if err := simulation.WriteCSV(cfg.csvPath, runs); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		log.Info("Wrote CSV results", zap.String("path", cfg.csvPath))
	}

	return nil
}
