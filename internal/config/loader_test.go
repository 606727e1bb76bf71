package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/drillmeet/scoresheet/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DBDriver, convey.ShouldEqual, "memory")
				convey.So(cfg.MaxListLimit, convey.ShouldEqual, 500)
				convey.So(cfg.GeneratorTimeoutMS, convey.ShouldEqual, 30_000)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCORESHEET_ADDR", ":8080")
			_ = os.Setenv("SCORESHEET_DB_DRIVER", "sqlite")
			_ = os.Setenv("SCORESHEET_DB_DSN", "file:scoresheet.db")
			_ = os.Setenv("SCORESHEET_MAX_LIST_LIMIT", "100")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DBDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.DBDSN, convey.ShouldEqual, "file:scoresheet.db")
				convey.So(cfg.MaxListLimit, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
db_driver: memory
max_list_limit: 250
generator_url: "http://localhost:5000/generate"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCORESHEET_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MaxListLimit, convey.ShouldEqual, 250)
				convey.So(cfg.GeneratorURL, convey.ShouldEqual, "http://localhost:5000/generate")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
max_list_limit: 250
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCORESHEET_CONFIG", tmpFile)
			_ = os.Setenv("SCORESHEET_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")       // Overridden by env
				convey.So(cfg.MaxListLimit, convey.ShouldEqual, 250)   // From file
				convey.So(cfg.DBDriver, convey.ShouldEqual, "memory")  // From defaults
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SCORESHEET_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SCORESHEET_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown db driver", func() {
			_ = os.Setenv("SCORESHEET_DB_DRIVER", "oracle")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "db_driver")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a sql driver is selected without a dsn", func() {
			_ = os.Setenv("SCORESHEET_DB_DRIVER", "postgres")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "db_dsn")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SCORESHEET_CONFIG",
		"SCORESHEET_ADDR",
		"SCORESHEET_DB_DRIVER",
		"SCORESHEET_DB_DSN",
		"SCORESHEET_MAX_LIST_LIMIT",
		"SCORESHEET_GENERATOR_URL",
		"SCORESHEET_GENERATOR_TIMEOUT_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "scoresheet-config-*.yaml")
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
