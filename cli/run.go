package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/ka2n/ufvdata/config"
	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options are shared by every subcommand.
type options struct {
	cfg config.Config

	out             string
	finaidURL       string
	registrationURL string
}

// load resolves the configuration, letting explicitly given flags win.
func (o *options) load(flags *pflag.FlagSet) error {
	cfg, err := config.Load()
	if err != nil {
		return failure.Wrap(err)
	}
	if flags.Changed("out") {
		cfg.OutDir = o.out
	}
	if flags.Changed("finaid-url") {
		cfg.FinaidURL = o.finaidURL
	}
	if flags.Changed("registration-url") {
		cfg.RegistrationURL = o.registrationURL
	}
	o.cfg = cfg
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "ufvdata",
		Short:         "Scrape scholarships and timetables from the UFV portal",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `ufvdata scrapes public data from the University of the Fraser Valley's
Banner self-service portal, validates every response against a strict shape
and writes the normalized result as JSON.

  ufvdata scholarships   writes <out>/scholarships.json
  ufvdata timetables     writes <out>/timetables/<term>.json for recent terms

Configuration is read from the environment (and an optional .env file):
UFVDATA_FINAID_URL, UFVDATA_REGISTRATION_URL, UFVDATA_OUT,
UFVDATA_SNAPSHOT_DIR, UFVDATA_LATEST_TERMS and CI. Flags take precedence.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.Flags())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.out, "out", "", `Directory the JSON files are written to (default "public")`)
	flags.StringVar(&opts.finaidURL, "finaid-url", "", "Base URL of the financial aid self-service app")
	flags.StringVar(&opts.registrationURL, "registration-url", "", "Base URL of the student registration app")

	cmd.AddCommand(
		newScholarshipsCmd(opts),
		newTimetablesCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Run executes the main CLI functionality
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
