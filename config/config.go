// Package config resolves the portal endpoints and output locations from
// defaults, an optional .env file and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/ka2n/ufvdata/api/paginate"
	"github.com/ka2n/ufvdata/api/timetable"
	"github.com/morikuni/failure/v2"
)

// ErrorCode defines error types for configuration
type ErrorCode string

const (
	// InvalidValue is returned when an environment variable cannot be parsed
	InvalidValue ErrorCode = "InvalidConfigValue"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

type Config struct {
	// FinaidURL is the base of the financial aid self-service app.
	FinaidURL string
	// RegistrationURL is the base of the student registration app.
	RegistrationURL string
	// OutDir is the directory the public JSON files are written to.
	OutDir string
	// SnapshotDir holds raw scrape snapshots. Empty means the user cache dir.
	SnapshotDir string
	// LatestTerms is how many of the most recent terms get a timetable.
	LatestTerms int
	// PageSize is the number of sections requested per search page.
	PageSize int
	// CI enables diagnostic dumps of payloads that fail validation.
	CI bool
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		FinaidURL:       "https://apps.ban.ufv.ca/BcFinaidSelfService",
		RegistrationURL: "https://apps.ban.ufv.ca/StudentRegistrationSsb",
		OutDir:          "public",
		LatestTerms:     timetable.DefaultLatest,
		PageSize:        paginate.PageSize,
	}
}

// Load reads an optional .env file from the working directory and applies
// environment overrides on top of Default. Variables already set in the
// environment win over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, failure.Wrap(err, failure.Message("Failed to load .env file"))
	}

	cfg := Default()
	if v := os.Getenv("UFVDATA_FINAID_URL"); v != "" {
		cfg.FinaidURL = v
	}
	if v := os.Getenv("UFVDATA_REGISTRATION_URL"); v != "" {
		cfg.RegistrationURL = v
	}
	if v := os.Getenv("UFVDATA_OUT"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("UFVDATA_SNAPSHOT_DIR"); v != "" {
		cfg.SnapshotDir = v
	}
	if v := os.Getenv("UFVDATA_LATEST_TERMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, failure.New(InvalidValue,
				failure.Message("UFVDATA_LATEST_TERMS must be a positive integer"),
				failure.Context{"value": v},
			)
		}
		cfg.LatestTerms = n
	}
	cfg.CI = os.Getenv("CI") == "true"
	return cfg, nil
}
