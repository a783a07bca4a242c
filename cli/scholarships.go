package cli

import (
	"context"
	"path/filepath"

	"github.com/ka2n/ufvdata/api"
	"github.com/ka2n/ufvdata/api/cache"
	"github.com/ka2n/ufvdata/api/scholarship"
	"github.com/ka2n/ufvdata/log"
	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"
)

const snapshotKey = "scholarships/awards"

func newScholarshipsCmd(opts *options) *cobra.Command {
	var (
		snapshot     bool
		fromSnapshot bool
	)

	cmd := &cobra.Command{
		Use:   "scholarships",
		Short: "Scrape the award guide into scholarships.json",
		Long: `Scrape every award in the financial aid award guide and write them to
<out>/scholarships.json in award list order.

With --snapshot the raw scrape is also stored, and --from-snapshot formats
the stored scrape again without contacting the portal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := cache.New[[]scholarship.Raw](opts.cfg.SnapshotDir)

			raws, err := loadAwards(cmd.Context(), opts, store, fromSnapshot)
			if err != nil {
				return err
			}
			if snapshot && !fromSnapshot {
				if err := store.Set(snapshotKey, raws); err != nil {
					return failure.Wrap(err, failure.Message("Failed to store snapshot"))
				}
				log.Info("Stored snapshot", "dir", store.Dir(), "awards", len(raws))
			}

			scholarships, err := scholarship.Build(raws)
			if err != nil {
				return err
			}
			return writeJSON(filepath.Join(opts.cfg.OutDir, "scholarships.json"), scholarships)
		},
	}

	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Store the raw scrape for later --from-snapshot runs")
	cmd.Flags().BoolVar(&fromSnapshot, "from-snapshot", false, "Format the stored scrape instead of contacting the portal")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "from-snapshot")
	return cmd
}

func loadAwards(ctx context.Context, opts *options, store *cache.Cache[[]scholarship.Raw], fromSnapshot bool) ([]scholarship.Raw, error) {
	if fromSnapshot {
		entry, err := store.Get(snapshotKey)
		if err != nil {
			return nil, err
		}
		log.Info("Loaded snapshot", "stored_at", entry.CreatedAt, "awards", len(entry.Value))
		return entry.Value, nil
	}

	s := &scholarship.Scraper{Client: api.NewClient(opts.cfg.FinaidURL)}
	return s.Scrape(ctx)
}
