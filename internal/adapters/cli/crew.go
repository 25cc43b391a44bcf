package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/redcycle-go/internal/application/session/commands"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// NewCrewCommand creates the crew command with subcommands
func NewCrewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crew",
		Short: "Post crew members to modules",
		Long: `Post crew members to modules. Each crew member posted at a module cuts the
resource cost of batches run there.

Examples:
  redcycle crew list
  redcycle crew assign --crew crew1 --module foam
  redcycle crew assign --crew crew1          # unassign
  redcycle crew toggle --crew crew2 --module lab`,
	}

	cmd.AddCommand(newCrewListCommand())
	cmd.AddCommand(newCrewAssignCommand())
	cmd.AddCommand(newCrewToggleCommand())

	return cmd
}

func newCrewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List crew posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				state, err := fetchState(cmd.Context(), app)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), toCrewViews(state.Crew), func(w io.Writer) error {
					return printCrew(w, state)
				})
			})
		},
	}
}

func newCrewAssignCommand() *cobra.Command {
	var crewID, module string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Post a crew member to a module, or unassign them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrewCommand(cmd, &commands.AssignCrewCommand{CrewID: crewID, Module: module})
		},
	}

	cmd.Flags().StringVar(&crewID, "crew", "", "Crew member ID (required)")
	cmd.Flags().StringVar(&module, "module", "", "Module ID; omit to unassign")
	cmd.MarkFlagRequired("crew")

	return cmd
}

func newCrewToggleCommand() *cobra.Command {
	var crewID, module string

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Unassign a crew member from a module, or post them there",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrewCommand(cmd, &commands.AssignCrewCommand{CrewID: crewID, Module: module, Toggle: true})
		},
	}

	cmd.Flags().StringVar(&crewID, "crew", "", "Crew member ID (required)")
	cmd.Flags().StringVar(&module, "module", "", "Module ID (required)")
	cmd.MarkFlagRequired("crew")
	cmd.MarkFlagRequired("module")

	return cmd
}

func runCrewCommand(cmd *cobra.Command, command *commands.AssignCrewCommand) error {
	return withApp(cmd.Context(), appOptions{}, func(app *App) error {
		response, err := app.Send(cmd.Context(), command)
		if err != nil {
			return crewHint(err)
		}
		result, ok := response.(*commands.AssignCrewResponse)
		if !ok {
			return fmt.Errorf("unexpected response type: %T", response)
		}

		a := result.Assignment
		view := crewView{Crew: string(a.Crew), Module: a.Module.String()}
		return render(cmd.OutOrStdout(), view, func(w io.Writer) error {
			if a.Assigned() {
				_, err := fmt.Fprintf(w, "%s posted to %s\n", a.Crew, a.Module)
				return err
			}
			_, err := fmt.Fprintf(w, "%s unassigned\n", a.Crew)
			return err
		})
	})
}

func crewHint(err error) error {
	var unknown *shared.UnknownKeyError
	if errors.As(err, &unknown) && unknown.Kind == "crew member" {
		return withHint(err, crewCandidates())
	}
	return withHint(err, moduleCandidates())
}
