package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"serverpanel/internal/format"
	"serverpanel/internal/store"
	"serverpanel/internal/tui"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string

	cfg *store.GlobalConfig

	// isTerminal is swapped in tests.
	isTerminal func() bool
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{isTerminal: stdioIsTerminal})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serverpanel",
		Short:        "Favorite servers panel (TUI + CLI)",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Open the interactive panel; opening a server prints it as JSON
  serverpanel

  # Scriptable commands
  serverpanel servers list
  serverpanel servers add --hostname 10.0.0.1 --port 4237 --label Home

  # Direct lookup (shortcut for: serverpanel servers show <id>)
  serverpanel 3
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		f, err := format.Normalize(app.Format)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Format = f
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, fmt.Errorf("load config: %w", err))
		}
		app.cfg = cfg
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		glog.Flush()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SERVERPANEL_DIR", ""), "Path to the server store dir (default: dataDir from config, else ~/.serverpanel/data)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SERVERPANEL_FORMAT", "json"), "Output format (json|edn)")
	// glog registers -v, -logtostderr, -log_dir, ... on the Go flag set.
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(newServersCmd(app))
	cmd.AddCommand(newInfoCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	if !app.isTerminal() {
		return writeErr(cmd, errNotTerminal)
	}
	es, s, err := loadEntries(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	chosen, err := tui.Run(cmd.Context(), app.cfg, es, s.Dir)
	if err != nil {
		return writeErr(cmd, err)
	}
	if chosen == nil {
		return nil
	}
	return writeOut(cmd, app, format.Envelope{Data: chosen})
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// resolveDir picks the store dir: --dir / SERVERPANEL_DIR, then config dataDir, then the
// default under the config dir.
func resolveDir(app *App) (string, error) {
	if d := strings.TrimSpace(app.Dir); d != "" {
		return d, nil
	}
	d, err := app.cfg.ResolveDataDir()
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

func loadEntries(ctx context.Context, app *App) (*store.EntryStore, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	s := store.Store{Dir: dir}
	es := store.NewEntryStore(s)
	if _, err := es.Load(ctx); err != nil {
		return nil, s, err
	}
	return es, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
