// Command recommend prints recommendations for a profile given on the
// command line, reading content from a YAML seed file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	app "github.com/okian/lexrec/internal/app"
	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/pkg/logger"
)

var errSeedRequired = errors.New("--seed required")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "recommend:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seed := fs.String("seed", "", "YAML seed file with content items (required)")
	area := fs.String("practice-area", "", "User practice area, e.g. \"Corporate Law\"")
	bio := fs.String("bio", "", "User bio")
	specialization := fs.String("specialization", "", "User law specialization")
	years := fs.Int("years", 0, "Years of experience")
	limit := fs.Int("limit", 0, "Number of items (0 uses the default)")
	trending := fs.Bool("trending", false, "Print trending content instead of recommendations")
	noSimilarity := fs.Bool("no-similarity", false, "Skip the similarity tier")
	anonymous := fs.Bool("anonymous", false, "Recommend for a logged-out visitor")
	verbose := fs.Bool("v", false, "Log to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seed == "" {
		return errSeedRequired
	}

	log := logger.Nop()
	if *verbose {
		if err := logger.InitWithWriter(stderr); err != nil {
			return err
		}
		log = logger.Get()
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithContentSource(app.SourceMemory),
		app.WithSeedFile(*seed),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer svc.Stop()

	var out any
	if *trending {
		items, err := svc.Trending(ctx, *limit)
		if err != nil {
			return err
		}
		out = items
	} else {
		var user *model.UserProfile
		if !*anonymous {
			user = &model.UserProfile{
				ID:                "cli",
				Bio:               *bio,
				PracticeArea:      *area,
				Specialization:    *specialization,
				YearsOfExperience: *years,
			}
		}
		res, err := svc.Recommend(ctx, user, *limit, !*noSimilarity)
		if err != nil {
			return err
		}
		out = res
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
