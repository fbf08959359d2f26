package cli

import (
	"serverpanel/internal/format"
	"serverpanel/internal/store"

	"github.com/spf13/cobra"
)

type infoResult struct {
	Dir        string `json:"dir"`
	Database   string `json:"database"`
	StoreID    string `json:"storeId"`
	Servers    int    `json:"servers"`
	ConfigPath string `json:"configPath"`
}

func newInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where the servers are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			es, s, err := loadEntries(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			storeID, err := s.StoreID(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			cfgPath, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: infoResult{
				Dir:        s.Dir,
				Database:   s.SQLitePath(),
				StoreID:    storeID,
				Servers:    es.Len(),
				ConfigPath: cfgPath,
			}})
		},
	}
}
