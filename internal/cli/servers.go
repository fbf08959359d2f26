package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"serverpanel/internal/format"
	"serverpanel/internal/model"
	"serverpanel/internal/store"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func newServersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "servers",
		Aliases: []string{"server"},
		Short:   "Favorite server commands",
	}
	cmd.AddCommand(newServersListCmd(app))
	cmd.AddCommand(newServersShowCmd(app))
	cmd.AddCommand(newServersAddCmd(app))
	cmd.AddCommand(newServersEditCmd(app))
	cmd.AddCommand(newServersRemoveCmd(app))
	cmd.AddCommand(newServersReorderCmd(app))
	cmd.AddCommand(newServersImportCmd(app))
	cmd.AddCommand(newServersExportCmd(app))
	return cmd
}

// mutateServers loads the store, applies fn and writes the result before returning fn's value.
func mutateServers(cmd *cobra.Command, app *App, fn func(es *store.EntryStore) (any, error)) error {
	ctx := cmd.Context()
	es, _, err := loadEntries(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	out, err := fn(es)
	if err != nil {
		return writeErr(cmd, err)
	}
	es.Persist()
	if err := es.FlushNow(ctx); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, format.Envelope{Data: out})
}

func newServersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List servers in panel order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			es, _, err := loadEntries(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := flushBackfill(cmd.Context(), es); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: es.Entries()})
		},
	}
}

func newServersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <server-id>",
		Short: "Show one server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			es, _, err := loadEntries(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e, ok := es.Get(strings.TrimSpace(args[0]))
			if !ok {
				return writeErr(cmd, errNotFound("server", args[0]))
			}
			return writeOut(cmd, app, format.Envelope{Data: e})
		},
	}
}

func newServersAddCmd(app *App) *cobra.Command {
	var hostname, port, label string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a server (gets the next free id)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := app.cfg.AddDefaults()
			if !cmd.Flags().Changed("hostname") {
				hostname = d.Hostname
			}
			if !cmd.Flags().Changed("port") {
				port = d.Port
			}
			return mutateServers(cmd, app, func(es *store.EntryStore) (any, error) {
				e := model.ServerEntry{
					ID:       store.NextID(es.Entries()),
					Hostname: strings.TrimSpace(hostname),
					Port:     model.PortPtr(port),
					Label:    label,
				}
				if err := es.Add(e); err != nil {
					return nil, err
				}
				glog.V(1).Infof("cli: added server %s", e.ID)
				return e, nil
			})
		},
	}

	cmd.Flags().StringVar(&hostname, "hostname", "", "Server hostname (default: defaults.hostname from config, else "+store.DefaultAddHostname+")")
	cmd.Flags().StringVar(&port, "port", "", "Server port; empty for the default port (default: defaults.port from config, else "+store.DefaultAddPort+")")
	cmd.Flags().StringVar(&label, "label", "", "Display label")
	return cmd
}

func newServersEditCmd(app *App) *cobra.Command {
	var hostname, port, label string

	cmd := &cobra.Command{
		Use:   "edit <server-id>",
		Short: "Edit a server's hostname, port or label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return mutateServers(cmd, app, func(es *store.EntryStore) (any, error) {
				cur, ok := es.Get(id)
				if !ok {
					return nil, errNotFound("server", id)
				}
				patch := cur.Patch()
				if cmd.Flags().Changed("hostname") {
					patch.Hostname = strings.TrimSpace(hostname)
				}
				if cmd.Flags().Changed("port") {
					patch.Port = model.PortPtr(port)
				}
				if cmd.Flags().Changed("label") {
					patch.Label = label
				}
				if err := es.Update(id, patch); err != nil {
					return nil, err
				}
				e, _ := es.Get(id)
				return e, nil
			})
		},
	}

	cmd.Flags().StringVar(&hostname, "hostname", "", "New hostname")
	cmd.Flags().StringVar(&port, "port", "", "New port (empty for the default port)")
	cmd.Flags().StringVar(&label, "label", "", "New label")
	return cmd
}

func newServersRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <server-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a server",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return mutateServers(cmd, app, func(es *store.EntryStore) (any, error) {
				if err := es.Remove(id); err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return nil, errNotFound("server", id)
					}
					return nil, err
				}
				return map[string]any{"id": id, "removed": true}, nil
			})
		},
	}
}

func newServersReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <server-id>...",
		Short: "Set the panel order (every id exactly once)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]string, 0, len(args))
			for _, a := range args {
				ids = append(ids, strings.TrimSpace(a))
			}
			return mutateServers(cmd, app, func(es *store.EntryStore) (any, error) {
				if err := es.Reorder(ids); err != nil {
					return nil, err
				}
				return es.IDs(), nil
			})
		},
	}
}

func newServersImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <servers.json>",
		Short: "Append servers from a favoriteServers JSON file",
		Long: strings.TrimSpace(`
Reads {"favoriteServers": [...]} (or a bare array) and appends the servers in file order.
A numeric id that is still free is kept; any other entry gets the next free id.
The current database is copied to servers.sqlite.bak first.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			parsed, err := store.ParseLegacyServers(b)
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			backup, _, err := store.Store{Dir: dir}.Backup(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			return mutateServers(cmd, app, func(es *store.EntryStore) (any, error) {
				ids := make([]string, 0, len(parsed))
				for _, e := range parsed {
					if !importableID(es, e.ID) {
						e.ID = store.NextID(es.Entries())
					}
					if err := es.Add(e); err != nil {
						return nil, err
					}
					ids = append(ids, e.ID)
				}
				glog.Infof("cli: imported %d servers from %s", len(ids), args[0])
				out := map[string]any{"imported": len(ids), "ids": ids}
				if backup != "" {
					out["backup"] = backup
				}
				return out, nil
			})
		},
	}
}

func newServersExportCmd(app *App) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export <servers.json>",
		Short: "Write the servers as a favoriteServers JSON file (readable by import)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			es, _, err := loadEntries(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := flushBackfill(cmd.Context(), es); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.WriteLegacyServers(args[0], es.Entries(), overwrite); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{
				"path":     args[0],
				"exported": es.Len(),
			}})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace the file if it exists")
	return cmd
}

func importableID(es *store.EntryStore, id string) bool {
	if !store.IsNumericID(id) {
		return false
	}
	_, taken := es.Get(id)
	return !taken
}

// flushBackfill writes ids that Load had to assign, so later commands see the same ids.
func flushBackfill(ctx context.Context, es *store.EntryStore) error {
	if !es.Dirty() {
		return nil
	}
	return es.FlushNow(ctx)
}
