package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath   string
	profile      string
	outputFormat string
	logLevel     string
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "redcycle",
		Short: "RedCycle - Mars waste processing and resource accounting",
		Long: `RedCycle tracks a habitat's waste-material inventory, runs processing
batches through the habitat modules and accounts for the energy, water and
crew hours they consume. Session state is saved after every change.

Examples:
  redcycle status
  redcycle inventory list
  redcycle process --module foam --input foam_pack=100
  redcycle process --module recycle --input aluminum_struts=40 --quick --eco ultra
  redcycle crew assign --crew crew1 --module foam
  redcycle stage foam_pack
  redcycle assist
  redcycle reset --yes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case formatText, formatJSON, formatYAML:
				return nil
			default:
				return fmt.Errorf("unsupported output format %q: use text, json or yaml", outputFormat)
			}
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/redcycle)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "",
		"Session profile (overrides config and user default)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", formatText,
		"Output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error")

	// Add command groups
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewInventoryCommand())
	rootCmd.AddCommand(NewPoolCommand())
	rootCmd.AddCommand(NewProductsCommand())
	rootCmd.AddCommand(NewCrewCommand())
	rootCmd.AddCommand(NewResourcesCommand())
	rootCmd.AddCommand(NewAdvanceDayCommand())
	rootCmd.AddCommand(NewProcessCommand())
	rootCmd.AddCommand(NewEstimateCommand())
	rootCmd.AddCommand(NewModulesCommand())
	rootCmd.AddCommand(NewStageCommand())
	rootCmd.AddCommand(NewAssistCommand())
	rootCmd.AddCommand(NewResetCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewMetricsCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
