package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		dotenv string
		want   func(*Config)
	}{
		{
			name: "Defaults",
			want: func(*Config) {},
		},
		{
			name: "Environment overrides",
			env: map[string]string{
				"UFVDATA_FINAID_URL":       "http://localhost:1/finaid",
				"UFVDATA_REGISTRATION_URL": "http://localhost:1/reg",
				"UFVDATA_OUT":              "dist",
				"UFVDATA_LATEST_TERMS":     "3",
				"CI":                       "true",
			},
			want: func(c *Config) {
				c.FinaidURL = "http://localhost:1/finaid"
				c.RegistrationURL = "http://localhost:1/reg"
				c.OutDir = "dist"
				c.LatestTerms = 3
				c.CI = true
			},
		},
		{
			name:   "Dotenv file",
			dotenv: "UFVDATA_OUT=from-dotenv\nUFVDATA_SNAPSHOT_DIR=snapshots\n",
			want: func(c *Config) {
				c.OutDir = "from-dotenv"
				c.SnapshotDir = "snapshots"
			},
		},
		{
			name:   "Environment wins over dotenv",
			env:    map[string]string{"UFVDATA_OUT": "from-env"},
			dotenv: "UFVDATA_OUT=from-dotenv\n",
			want: func(c *Config) {
				c.OutDir = "from-env"
			},
		},
		{
			name: "CI must be exactly true",
			env:  map[string]string{"CI": "1"},
			want: func(*Config) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			for _, key := range []string{"UFVDATA_FINAID_URL", "UFVDATA_REGISTRATION_URL", "UFVDATA_OUT", "UFVDATA_SNAPSHOT_DIR", "UFVDATA_LATEST_TERMS", "CI"} {
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.dotenv != "" {
				if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(tt.dotenv), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			got, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			want := Default()
			tt.want(&want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_InvalidLatestTerms(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UFVDATA_LATEST_TERMS", "zero")

	_, err := Load()
	if !failure.Is(err, InvalidValue) {
		t.Errorf("Load() error = %v, want %s", err, InvalidValue)
	}
}
