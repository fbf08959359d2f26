package cli

import (
	"fmt"
	"strconv"
	"strings"

	"serverpanel/internal/format"
	"serverpanel/internal/store"

	"github.com/spf13/cobra"
)

var configKeys = []string{"dataDir", "saveDelayMs", "defaults.hostname", "defaults.port", "tui.profile"}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change ~/.serverpanel/config.json",
	}
	cmd.AddCommand(newConfigGetCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print the config, or one key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, format.Envelope{Data: app.cfg})
			}
			v, err := configValue(app.cfg, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{args[0]: v}})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one config key (empty value resets it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			v, _ := configValue(cfg, args[0])
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{args[0]: v}})
		},
	}
}

func configValue(cfg *store.GlobalConfig, key string) (any, error) {
	switch key {
	case "dataDir":
		return cfg.DataDir, nil
	case "saveDelayMs":
		return cfg.SaveDelay().Milliseconds(), nil
	case "defaults.hostname":
		return cfg.AddDefaults().Hostname, nil
	case "defaults.port":
		return cfg.AddDefaults().Port, nil
	case "tui.profile":
		return cfg.Profile(), nil
	default:
		return nil, unknownKeyError{key: key}
	}
}

func setConfigValue(cfg *store.GlobalConfig, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "dataDir":
		cfg.DataDir = value
	case "saveDelayMs":
		if value == "" {
			cfg.SaveDelayMs = 0
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("saveDelayMs: want a non-negative integer, got %q", value)
		}
		cfg.SaveDelayMs = n
	case "defaults.hostname", "defaults.port":
		if cfg.Defaults == nil {
			cfg.Defaults = &store.AddDefaults{}
		}
		if key == "defaults.hostname" {
			cfg.Defaults.Hostname = value
		} else {
			cfg.Defaults.Port = value
		}
	case "tui.profile":
		if cfg.TUI == nil {
			cfg.TUI = &store.TUIConfig{}
		}
		cfg.TUI.Profile = value
	default:
		return unknownKeyError{key: key}
	}
	return nil
}
