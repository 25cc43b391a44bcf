package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/redcycle-go/internal/application/session/commands"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
)

// NewResourcesCommand creates the resources command with subcommands
func NewResourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Show or draw down energy, water and crew hours",
		Long: `Show or draw down the mission's energy, water and crew hours. Resources
never drop below zero and nothing replenishes them.

Examples:
  redcycle resources
  redcycle resources consume --energy 10 --water 2.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				state, err := fetchState(cmd.Context(), app)
				if err != nil {
					return err
				}
				return printResources(cmd.OutOrStdout(), state.Resources)
			})
		},
	}

	cmd.AddCommand(newResourcesConsumeCommand())

	return cmd
}

func newResourcesConsumeCommand() *cobra.Command {
	var energy, water, crewHours float64

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Draw down resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				response, err := app.Send(cmd.Context(), &commands.ConsumeResourcesCommand{
					Energy:    energy,
					Water:     water,
					CrewHours: crewHours,
				})
				if err != nil {
					return err
				}
				result, ok := response.(*commands.ResourcesResponse)
				if !ok {
					return fmt.Errorf("unexpected response type: %T", response)
				}
				return printResources(cmd.OutOrStdout(), result.Resources)
			})
		},
	}

	cmd.Flags().Float64Var(&energy, "energy", 0, "Energy to consume (kWh)")
	cmd.Flags().Float64Var(&water, "water", 0, "Water to consume (L)")
	cmd.Flags().Float64Var(&crewHours, "crew-hours", 0, "Crew hours to consume")

	return cmd
}

// NewAdvanceDayCommand creates the advance-day command
func NewAdvanceDayCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "advance-day",
		Short: "Advance the mission day counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				response, err := app.Send(cmd.Context(), &commands.AdvanceDayCommand{Days: days})
				if err != nil {
					return err
				}
				result, ok := response.(*commands.AdvanceDayResponse)
				if !ok {
					return fmt.Errorf("unexpected response type: %T", response)
				}
				view := struct {
					MissionDay int `json:"missionDay" yaml:"missionDay"`
				}{result.MissionDay}
				return render(cmd.OutOrStdout(), view, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Mission day %d\n", result.MissionDay)
					return err
				})
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 1, "Number of days to advance")

	return cmd
}

func printResources(out io.Writer, r mission.Resources) error {
	return render(out, toResourcesView(r), func(w io.Writer) error {
		tw := newTable(w)
		fmt.Fprintln(tw, "Resource\tRemaining")
		fmt.Fprintln(tw, "────────\t─────────")
		fmt.Fprintf(tw, "Energy\t%.1f kWh\n", r.Energy)
		fmt.Fprintf(tw, "Water\t%.1f L\n", r.Water)
		fmt.Fprintf(tw, "Crew hours\t%.1f h\n", r.CrewHours)
		return tw.Flush()
	})
}
