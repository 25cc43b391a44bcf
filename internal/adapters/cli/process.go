package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/redcycle-go/internal/application/session/commands"
	"github.com/andrescamacho/redcycle-go/internal/application/session/queries"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

// NewProcessCommand creates the process command
func NewProcessCommand() *cobra.Command {
	var (
		module  string
		inputs  []string
		quick   bool
		ecoTier string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run a processing batch at a module",
		Long: `Run a processing batch at a module.

The batch is priced first: crew posted at the module cut the cost, and the
batch is refused with no change to the session when energy or crew hours
fall short. Staged mass is drawn from the waste pool before inventory, and
unrecovered mass returns to the pool.

Examples:
  redcycle process --module foam --input foam_pack=100
  redcycle process --module habitat --input textiles=20 --input foam_pack=12
  redcycle process --module recycle --input aluminum_struts=30 --quick --eco ultra`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			staged, err := parseInputs(inputs)
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				warnUnknownModule(cmd.ErrOrStderr(), module)

				response, err := app.Send(cmd.Context(), &commands.ProcessModuleCommand{
					Module:  module,
					Inputs:  staged,
					Mode:    modeFlag(quick),
					EcoTier: effectiveEcoTier(app, ecoTier),
				})
				if err != nil {
					return materialHint(cmd.Context(), app, err)
				}
				result, ok := response.(*commands.ProcessModuleResponse)
				if !ok {
					return fmt.Errorf("unexpected response type: %T", response)
				}

				return render(cmd.OutOrStdout(), toBatchView(result), func(w io.Writer) error {
					return printBatch(w, result)
				})
			})
		},
	}

	cmd.Flags().StringVar(&module, "module", "", "Module ID (required)")
	cmd.Flags().StringArrayVar(&inputs, "input", nil, "Staged input as material=kg (repeatable)")
	cmd.Flags().BoolVar(&quick, "quick", false, "Quick processing: cheaper, less efficient")
	cmd.Flags().StringVar(&ecoTier, "eco", "", "Eco tier: off, eco or ultra (default from config)")
	cmd.MarkFlagRequired("module")

	return cmd
}

// NewEstimateCommand creates the estimate command
func NewEstimateCommand() *cobra.Command {
	var (
		module  string
		totalKg float64
		quick   bool
		ecoTier string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Price a batch without running it",
		Long: `Price a batch without running it and report whether current resources
cover it.

Example:
  redcycle estimate --module foam --kg 100 --eco eco`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				warnUnknownModule(cmd.ErrOrStderr(), module)

				response, err := app.Send(cmd.Context(), &queries.EstimateCostQuery{
					Module:  module,
					TotalKg: totalKg,
					Mode:    modeFlag(quick),
					EcoTier: effectiveEcoTier(app, ecoTier),
				})
				if err != nil {
					return err
				}
				result, ok := response.(*queries.EstimateCostResponse)
				if !ok {
					return fmt.Errorf("unexpected response type: %T", response)
				}

				view := estimateView{
					Module:     module,
					TotalKg:    totalKg,
					Cost:       toCostView(result.Cost),
					CrewCount:  result.CrewCount,
					Efficiency: result.Efficiency,
					Affordable: result.Affordable(),
					Shortfall:  result.Shortfall,
					Preferred:  keyStrings(result.Preferred),
				}
				return render(cmd.OutOrStdout(), view, func(w io.Writer) error {
					fmt.Fprintf(w, "Batch of %s at %s\n", formatKg(totalKg), module)
					fmt.Fprintf(w, "Efficiency:  %s\n", formatPercent(result.Efficiency))
					fmt.Fprintf(w, "Cost:        %s (crew at module: %d)\n", formatCost(result.Cost), result.CrewCount)
					if len(result.Preferred) > 0 {
						fmt.Fprintf(w, "Preferred:   %s\n", strings.Join(keyStrings(result.Preferred), ", "))
					}
					if result.Affordable() {
						fmt.Fprintln(w, "Affordable:  yes")
					} else {
						fmt.Fprintf(w, "Affordable:  no, not enough %s\n", result.Shortfall)
					}
					return nil
				})
			})
		},
	}

	cmd.Flags().StringVar(&module, "module", "", "Module ID (required)")
	cmd.Flags().Float64Var(&totalKg, "kg", 0, "Total batch mass in kg (required)")
	cmd.Flags().BoolVar(&quick, "quick", false, "Quick processing")
	cmd.Flags().StringVar(&ecoTier, "eco", "", "Eco tier: off, eco or ultra (default from config)")
	cmd.MarkFlagRequired("module")
	cmd.MarkFlagRequired("kg")

	return cmd
}

// NewStageCommand creates the stage command
func NewStageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stage <material>",
		Short: "Show how much of a material the drop zone would stage",
		Long: `Show how much of a material the drop zone would stage: a fifth of the
available stock, at least 1 kg.

Example:
  redcycle stage foam_pack`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				response, err := app.Send(cmd.Context(), &queries.StageMaterialQuery{Material: args[0]})
				if err != nil {
					return materialHint(cmd.Context(), app, err)
				}
				result, ok := response.(*queries.StageMaterialResponse)
				if !ok {
					return fmt.Errorf("unexpected response type: %T", response)
				}

				view := stageView{
					Material:  result.Material.String(),
					Name:      result.Name,
					Available: result.Available,
					PooledKg:  result.PooledKg,
					StageKg:   result.StageKg,
				}
				return render(cmd.OutOrStdout(), view, func(w io.Writer) error {
					fmt.Fprintf(w, "%s: %s in stock, %s pooled\n", result.Name, formatKg(result.Available), formatKg(result.PooledKg))
					if result.StageKg <= 0 {
						fmt.Fprintln(w, "Nothing to stage")
						return nil
					}
					fmt.Fprintf(w, "Stage: --input %s=%g\n", result.Material, result.StageKg)
					return nil
				})
			})
		},
	}
}

// NewAssistCommand creates the assist command
func NewAssistCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assist",
		Short: "Suggest the next batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				response, err := app.Send(cmd.Context(), &queries.SuggestQuery{})
				if err != nil {
					return err
				}
				suggestion, ok := response.(*processing.Suggestion)
				if !ok {
					return fmt.Errorf("unexpected response type: %T", response)
				}

				view := suggestionView{
					Material: suggestion.Material.String(),
					Kg:       suggestion.Kg,
					Module:   suggestion.Module.String(),
					Message:  suggestion.Message,
				}
				return render(cmd.OutOrStdout(), view, func(w io.Writer) error {
					fmt.Fprintln(w, suggestion.Message)
					if suggestion.HasTarget() {
						fmt.Fprintf(w, "Try: redcycle process --module %s --input %s=%g\n",
							suggestion.Module, suggestion.Material, processing.StageAmount(suggestion.Kg))
					}
					return nil
				})
			})
		},
	}
}

// parseInputs turns repeated material=kg flags into staged inputs
func parseInputs(inputs []string) ([]commands.StagedInput, error) {
	staged := make([]commands.StagedInput, 0, len(inputs))
	for _, in := range inputs {
		key, amount, found := strings.Cut(in, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid input %q: expected material=kg", in)
		}
		kg, err := parseKg(strings.TrimSpace(amount))
		if err != nil {
			return nil, fmt.Errorf("invalid input %q: %w", in, err)
		}
		staged = append(staged, commands.StagedInput{Material: key, Kg: kg})
	}
	return staged, nil
}

func modeFlag(quick bool) string {
	if quick {
		return string(processing.ModeQuick)
	}
	return string(processing.ModeFull)
}

func effectiveEcoTier(app *App, flag string) string {
	if flag != "" {
		return flag
	}
	if app.Config != nil {
		return app.Config.Session.EcoTier
	}
	return string(processing.EcoOff)
}

// warnUnknownModule notes that a module outside the grid runs at default
// efficiency
func warnUnknownModule(w io.Writer, module string) {
	if module == "" || processing.IsKnownModule(processing.ModuleID(module)) {
		return
	}
	fmt.Fprintf(w, "Module %q is not in the grid; using default efficiency%s\n",
		module, didYouMean(module, moduleCandidates()))
}

func materialHint(ctx context.Context, app *App, err error) error {
	state, stateErr := fetchState(ctx, app)
	if stateErr != nil {
		return err
	}
	return withHint(err, materialCandidates(state.Inventory, state.WastePool))
}

func formatCost(c processing.Cost) string {
	return fmt.Sprintf("%.1f kWh, %.1f L, %.1f h", c.Energy, c.Water, c.CrewHours)
}

func printBatch(w io.Writer, resp *commands.ProcessModuleResponse) error {
	r := resp.Result
	mode := string(r.Mode)
	if r.Optimized {
		mode += ", optimized"
	}

	fmt.Fprintf(w, "Batch %s at %s (%s)\n", r.BatchID, r.Module, mode)
	fmt.Fprintf(w, "Input:       %s\n", formatKg(r.TotalIn))
	fmt.Fprintf(w, "Efficiency:  %s\n", formatPercent(r.Efficiency))
	fmt.Fprintf(w, "Recovered:   %s\n", formatKg(r.RecoveredKg))
	fmt.Fprintf(w, "Wasted:      %s\n", formatKg(r.WastedKg))
	fmt.Fprintf(w, "Cost:        %s (crew at module: %d)\n", formatCost(resp.Cost), resp.CrewCount)
	fmt.Fprintf(w, "Remaining:   %.1f kWh, %.1f L, %.1f h\n",
		resp.Resources.Energy, resp.Resources.Water, resp.Resources.CrewHours)

	if len(resp.OutsideSpecialty) > 0 {
		fmt.Fprintf(w, "Note:        %s outside %s's specialty\n",
			strings.Join(keyStrings(resp.OutsideSpecialty), ", "), r.Module)
	}

	fmt.Fprintln(w, "\nOutputs:")
	for _, line := range r.Outputs {
		fmt.Fprintf(w, "  %s\n", line)
	}
	return nil
}
