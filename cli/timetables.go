package cli

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/ka2n/ufvdata/api"
	"github.com/ka2n/ufvdata/api/timetable"
	"github.com/ka2n/ufvdata/log"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newTimetablesCmd(opts *options) *cobra.Command {
	var (
		latest countFlag
		codes  []string
	)

	cmd := &cobra.Command{
		Use:   "timetables",
		Short: "Scrape class search into one timetable per recent term",
		Long: `Scrape every section of the most recent terms from class search and write
<out>/timetables/<term>.json for each, oldest term first.

The number of terms defaults to UFVDATA_LATEST_TERMS or 2. --term selects
terms by code instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			n := cfg.LatestTerms
			if latest.IsSet {
				n = latest.Value
			}

			client := api.NewClient(cfg.RegistrationURL)
			client.DumpInvalid = cfg.CI
			s := &timetable.Scraper{Client: client, PageSize: cfg.PageSize}

			terms, err := s.Terms(cmd.Context())
			if err != nil {
				return err
			}
			selected, err := selectTerms(terms, codes, n)
			if err != nil {
				return err
			}

			// Every term is scraped before any file is written.
			timetables := make([]timetable.Timetable, 0, len(selected))
			for _, term := range selected {
				tt, err := s.Scrape(cmd.Context(), term)
				if err != nil {
					return err
				}
				log.Info("Scraped timetable", "term", term.Code, "courses", len(tt.Courses))
				timetables = append(timetables, tt)
			}
			for i, term := range selected {
				path := filepath.Join(cfg.OutDir, "timetables", term.Code+".json")
				if err := writeJSON(path, timetables[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Var(&latest, "latest", "Number of most recent terms to scrape")
	cmd.Flags().StringSliceVar(&codes, "term", nil, "Term codes to scrape (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("latest", "term")
	return cmd
}

// selectTerms picks the terms named by codes, or the latest n when no codes
// are given. The result is in ascending code order.
func selectTerms(terms []timetable.Term, codes []string, n int) ([]timetable.Term, error) {
	if len(codes) == 0 {
		return timetable.Latest(terms, n), nil
	}

	byCode := lo.KeyBy(terms, func(t timetable.Term) string { return t.Code })
	unknown := lo.Reject(codes, func(code string, _ int) bool {
		_, ok := byCode[code]
		return ok
	})
	if len(unknown) > 0 {
		available := lo.Keys(byCode)
		slices.Sort(available)
		return nil, failure.New(UnknownTerm,
			failure.Message("Class search does not offer term "+strings.Join(unknown, ", ")),
			failure.Context{"available": strings.Join(available, ", ")},
		)
	}

	picked := lo.Map(lo.Uniq(codes), func(code string, _ int) timetable.Term { return byCode[code] })
	return timetable.Latest(picked, len(picked)), nil
}
