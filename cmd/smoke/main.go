package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/mmanav02/WeHack/internal/smoke"
	"github.com/mmanav02/WeHack/pkg/logger"
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "base URL of the service")
		teams   = flag.Int("teams", 25, "number of teams to create and submit for")
		judges  = flag.Int("judges", 3, "number of judges scoring every submission")
		workers = flag.Int("workers", runtime.NumCPU()*2, "number of concurrent workers")
		timeout = flag.Duration("timeout", 30*time.Second, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	cfg := &smoke.Config{
		BaseURL: *baseURL,
		Teams:   *teams,
		Judges:  *judges,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	ctx := context.Background()
	if err := smoke.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "scenario failed", logger.Error(err))
		os.Exit(1)
	}
}
