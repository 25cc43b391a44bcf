package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/redcycle-go/internal/application/session/queries"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the whole session",
		Long: `Show mission day, resources, inventory, waste pool, products, crew posts
and the running recovered/wasted totals.

Example:
  redcycle status --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				state, err := fetchState(cmd.Context(), app)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), toStateView(state), func(w io.Writer) error {
					return printStatus(w, state)
				})
			})
		},
	}
}

// NewPoolCommand creates the pool command
func NewPoolCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pool",
		Short: "List material waiting in the waste pool",
		Long: `List the unrecovered mass returned by earlier batches. Processing draws
from the pool before primary inventory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				state, err := fetchState(cmd.Context(), app)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), toPoolViews(state.WastePool), func(w io.Writer) error {
					return printPool(w, state)
				})
			})
		},
	}
}

// NewProductsCommand creates the products command
func NewProductsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List manufactured products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				state, err := fetchState(cmd.Context(), app)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), toProductViews(state.Products), func(w io.Writer) error {
					return printProducts(w, state)
				})
			})
		},
	}
}

func fetchState(ctx context.Context, app *App) (*queries.GetStateResponse, error) {
	response, err := app.Send(ctx, &queries.GetStateQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	state, ok := response.(*queries.GetStateResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", response)
	}
	return state, nil
}

func printStatus(w io.Writer, state *queries.GetStateResponse) error {
	r := state.Resources
	fmt.Fprintf(w, "Mission Day %d\n", state.MissionDay)
	fmt.Fprintln(w, "==============")
	fmt.Fprintf(w, "Energy:      %.1f kWh\n", r.Energy)
	fmt.Fprintf(w, "Water:       %.1f L\n", r.Water)
	fmt.Fprintf(w, "Crew hours:  %.1f h\n", r.CrewHours)
	fmt.Fprintf(w, "Recovered:   %s\n", formatKg(state.Totals.RecoveredTotal))
	fmt.Fprintf(w, "Wasted:      %s\n", formatKg(state.Totals.WastedTotal))

	fmt.Fprintln(w, "\nInventory:")
	if err := printInventory(w, state); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nWaste pool:")
	if err := printPool(w, state); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nProducts:")
	if err := printProducts(w, state); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nCrew:")
	return printCrew(w, state)
}

func printInventory(w io.Writer, state *queries.GetStateResponse) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Key\tName\tStock")
	fmt.Fprintln(tw, "───\t────\t─────")
	for _, s := range state.Inventory {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Key, s.Name, formatKg(s.Kg))
	}
	fmt.Fprintf(tw, "\t%s\t%s\n", "Total", formatKg(state.InventoryKg))
	return tw.Flush()
}

func printPool(w io.Writer, state *queries.GetStateResponse) error {
	if len(state.WastePool) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "Key\tPooled")
	fmt.Fprintln(tw, "───\t──────")
	for _, e := range state.WastePool {
		fmt.Fprintf(tw, "%s\t%s\n", e.Key, formatKg(e.Kg))
	}
	fmt.Fprintf(tw, "Total\t%s\n", formatKg(state.WastePoolKg))
	return tw.Flush()
}

func printProducts(w io.Writer, state *queries.GetStateResponse) error {
	if len(state.Products) == 0 {
		fmt.Fprintln(w, "  (none yet)")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "Product\tMass\tUnits")
	fmt.Fprintln(tw, "───────\t────\t─────")
	for _, p := range state.Products {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", p.Name, formatKg(p.Kg), p.Qty)
	}
	fmt.Fprintf(tw, "Total\t%s\t\n", formatKg(state.ProductKg))
	return tw.Flush()
}

func printCrew(w io.Writer, state *queries.GetStateResponse) error {
	if len(state.Crew) == 0 {
		fmt.Fprintln(w, "  (no assignments)")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "Crew\tModule")
	fmt.Fprintln(tw, "────\t──────")
	for _, a := range state.Crew {
		module := "(unassigned)"
		if a.Assigned() {
			module = a.Module.String()
		}
		fmt.Fprintf(tw, "%s\t%s\n", a.Crew, module)
	}
	return tw.Flush()
}
