package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/lexrec/internal/loadtest"
	"github.com/okian/lexrec/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumRequests = 1000
	defaultLimit       = 6
	defaultAnonymous   = 0.1
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numReqs    = flag.Int("requests", defaultNumRequests, "Number of recommendation requests")
		limit      = flag.Int("limit", defaultLimit, "Limit sent with every request")
		anonymous  = flag.Float64("anonymous", defaultAnonymous, "Fraction of requests sent without a user")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write a JSON report to this file")
		verbose    = flag.Bool("verbose", false, "Log every failure and violation")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &loadtest.Config{
		BaseURL:        *baseURL,
		NumRequests:    *numReqs,
		Limit:          *limit,
		AnonymousShare: *anonymous,
		Workers:        max(1, *workers),
		Timeout:        *timeout,
		OutputFile:     *outputFile,
		Verbose:        *verbose,
	}

	if _, err := loadtest.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "load test failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
