package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/redcycle-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage RedCycle configuration settings.

Configuration is loaded from multiple sources with priority:
1. Command-line flags (--profile, --log-level, --eco)
2. User preferences in ~/.redcycle/config.json
3. Environment variables (RC_* prefix)
4. Config file (config.yaml)
5. Default values

Examples:
  redcycle config show
  redcycle config set-eco ultra
  redcycle config set-profile olympus
  redcycle config profiles
  redcycle config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetEcoCommand())
	cmd.AddCommand(newConfigSetProfileCommand())
	cmd.AddCommand(newConfigClearCommand())
	cmd.AddCommand(newConfigProfilesCommand())

	return cmd
}

// configView is the structured form of `config show`
type configView struct {
	UserConfigPath string `json:"userConfigPath" yaml:"userConfigPath"`
	Backend        string `json:"backend" yaml:"backend"`
	Profile        string `json:"profile" yaml:"profile"`
	EcoTier        string `json:"ecoTier" yaml:"ecoTier"`
	Database       string `json:"database" yaml:"database"`
	LogLevel       string `json:"logLevel" yaml:"logLevel"`
	LogFormat      string `json:"logFormat" yaml:"logFormat"`
	LogOutput      string `json:"logOutput" yaml:"logOutput"`
	Metrics        bool   `json:"metrics" yaml:"metrics"`
	Namespace      string `json:"namespace" yaml:"namespace"`
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEffectiveConfig()
			if err != nil {
				return err
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			view := configView{
				UserConfigPath: userConfigHandler.GetConfigPath(),
				Backend:        cfg.Session.Backend,
				Profile:        cfg.Session.Profile,
				EcoTier:        cfg.Session.EcoTier,
				Database:       describeStorage(cfg),
				LogLevel:       cfg.Logging.Level,
				LogFormat:      cfg.Logging.Format,
				LogOutput:      cfg.Logging.Output,
				Metrics:        cfg.Metrics.Enabled,
				Namespace:      cfg.Metrics.Namespace,
			}
			return render(cmd.OutOrStdout(), view, func(w io.Writer) error {
				fmt.Fprintln(w, "RedCycle Configuration")
				fmt.Fprintln(w, "======================")
				fmt.Fprintf(w, "  User config:   %s\n", view.UserConfigPath)

				fmt.Fprintln(w, "\nSession:")
				fmt.Fprintf(w, "  Backend:       %s\n", view.Backend)
				fmt.Fprintf(w, "  Storage:       %s\n", view.Database)
				fmt.Fprintf(w, "  Profile:       %s\n", view.Profile)
				fmt.Fprintf(w, "  Eco tier:      %s\n", view.EcoTier)

				fmt.Fprintln(w, "\nLogging:")
				fmt.Fprintf(w, "  Level:         %s\n", view.LogLevel)
				fmt.Fprintf(w, "  Format:        %s\n", view.LogFormat)
				fmt.Fprintf(w, "  Output:        %s\n", view.LogOutput)

				fmt.Fprintln(w, "\nMetrics:")
				fmt.Fprintf(w, "  Enabled:       %t\n", view.Metrics)
				fmt.Fprintf(w, "  Namespace:     %s\n", view.Namespace)
				return nil
			})
		},
	}
}

func newConfigSetEcoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-eco <off|eco|ultra>",
		Short: "Set the default eco tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultEcoTier(args[0]); err != nil {
				return fmt.Errorf("failed to set default eco tier: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default eco tier set to %s\n", args[0])
			return nil
		},
	}
}

func newConfigSetProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-profile <name>",
		Short: "Set the default session profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultProfile(args[0]); err != nil {
				return fmt.Errorf("failed to set default profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default profile set to %s\n", args[0])
			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear saved user preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.ClearDefaults(); err != nil {
				return fmt.Errorf("failed to clear user config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User preferences cleared")
			return nil
		},
	}
}

func newConfigProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List profiles with a stored session",
		Long:  `List profiles with a stored session. Only database backends keep more than one profile.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				if app.listProfiles == nil {
					if app.sessionFile != "" {
						return fmt.Errorf("the %s backend stores a single session in %s", app.Config.Session.Backend, app.sessionFile)
					}
					return fmt.Errorf("the %s backend stores a single session", app.Config.Session.Backend)
				}
				profiles, err := app.listProfiles(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list profiles: %w", err)
				}
				return render(cmd.OutOrStdout(), profiles, func(w io.Writer) error {
					if len(profiles) == 0 {
						fmt.Fprintln(w, "No stored sessions")
						return nil
					}
					for _, p := range profiles {
						marker := " "
						if p == app.Config.Session.Profile {
							marker = "*"
						}
						fmt.Fprintf(w, "%s %s\n", marker, p)
					}
					return nil
				})
			})
		},
	}
}

func describeStorage(cfg *config.Config) string {
	switch cfg.Session.Backend {
	case "file":
		return cfg.Session.FilePath
	case "postgres":
		if cfg.Database.URL != "" {
			return maskPassword(cfg.Database.URL)
		}
		return fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	default:
		return cfg.Database.Path
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
