package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/lexrec/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		convey.Reset(clearConfigEnvVars)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LEXREC_ADDR", ":8080")
			_ = os.Setenv("LEXREC_CONTENT_SOURCE", "sqlite")
			_ = os.Setenv("LEXREC_SQLITE_PATH", "/tmp/x.db")
			_ = os.Setenv("LEXREC_MIN_SIMILARITY", "0.25")
			_ = os.Setenv("LEXREC_CANDIDATE_POOL_MIN", "80")
			_ = os.Setenv("LEXREC_RATE_LIMIT_RPS", "2.5")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ContentSource, convey.ShouldEqual, config.SourceSQLite)
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "/tmp/x.db")
				convey.So(cfg.MinSimilarity, convey.ShouldEqual, 0.25)
				convey.So(cfg.CandidatePoolMin, convey.ShouldEqual, 80)
				convey.So(cfg.RateLimitRPS, convey.ShouldEqual, 2.5)
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# content comes from the platform API
addr: ":9090"
content_source: http
content_api_url: "http://content.internal:8000"
fetch_timeout_ms: 1500
default_limit: 8
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("LEXREC_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep defaults for the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.ContentSource, convey.ShouldEqual, config.SourceHTTP)
				convey.So(cfg.ContentAPIURL, convey.ShouldEqual, "http://content.internal:8000")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 1500)
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 8)
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
			})

			convey.Convey("And env vars are set as well", func() {
				_ = os.Setenv("LEXREC_ADDR", ":7070")
				_ = os.Setenv("LEXREC_DEFAULT_LIMIT", "4")

				cfg, err := config.Load(ctx)

				convey.Convey("Then environment variables should override file values", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
					convey.So(cfg.DefaultLimit, convey.ShouldEqual, 4)
					convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 1500)
				})
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("LEXREC_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("LEXREC_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("LEXREC_MAX_LIMIT", "lots")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("LEXREC_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the http source has no url", func() {
			_ = os.Setenv("LEXREC_CONTENT_SOURCE", "http")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "content_api_url")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"LEXREC_CONFIG",
		"LEXREC_ADDR",
		"LEXREC_CONTENT_SOURCE",
		"LEXREC_SQLITE_PATH",
		"LEXREC_MIN_SIMILARITY",
		"LEXREC_CANDIDATE_POOL_MIN",
		"LEXREC_RATE_LIMIT_RPS",
		"LEXREC_DEFAULT_LIMIT",
		"LEXREC_MAX_LIMIT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "lexrec-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
