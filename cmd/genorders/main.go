// Command genorders writes a random platform keyed order payload file that
// the dashboard server can load with --data.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tectle/backend/internal/infrastructure/logger"
	"github.com/tectle/backend/internal/infrastructure/sample"
)

func main() {
	var (
		etsy     int
		shopify  int
		seed     uint64
		days     int
		out      string
		logLevel string
	)

	flag.IntVar(&etsy, "etsy", 25, "Number of Etsy receipts to generate")
	flag.IntVar(&shopify, "shopify", 25, "Number of Shopify orders to generate")
	flag.Uint64Var(&seed, "seed", 0, "Random seed; 0 picks a random one")
	flag.IntVar(&days, "days", 30, "Spread creation times over this many days before now")
	flag.StringVar(&out, "out", "", "Output file (default: stdout)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// stdout may carry the payload, so logs go to stderr
	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if etsy < 0 || shopify < 0 || days < 1 {
		log.Fatal("Order counts must be non-negative and days at least 1",
			zap.Int("etsy", etsy), zap.Int("shopify", shopify), zap.Int("days", days))
	}

	end := time.Now().UTC().Truncate(time.Second)
	gen := sample.NewGenerator(seed, sample.WithDateRange(end.AddDate(0, 0, -days), end))
	batches := gen.Batches(etsy, shopify)

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			log.Fatal("Failed to create output file", zap.String("path", out), zap.Error(err))
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(batches); err != nil {
		log.Fatal("Failed to write payloads", zap.Error(err))
	}

	log.Info("Order payloads generated",
		zap.Int("etsy", etsy),
		zap.Int("shopify", shopify),
		zap.Int("total", batches.TotalOrders()),
		zap.Uint64("seed", seed),
		zap.String("out", out),
	)
}
