package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/redcycle-go/internal/application/session/commands"
)

// NewInventoryCommand creates the inventory command with subcommands
func NewInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inspect and adjust primary material stocks",
		Long: `Inspect and adjust primary material stocks.

Examples:
  redcycle inventory list
  redcycle inventory set foam_pack 80
  redcycle inventory consume textiles 5.5`,
	}

	cmd.AddCommand(newInventoryListCommand())
	cmd.AddCommand(newInventorySetCommand())
	cmd.AddCommand(newInventoryConsumeCommand())

	return cmd
}

func newInventoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List material stocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				state, err := fetchState(cmd.Context(), app)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), toStockViews(state.Inventory), func(w io.Writer) error {
					return printInventory(w, state)
				})
			})
		},
	}
}

func newInventorySetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <material> <kg>",
		Short: "Set a material's stock, creating it if missing",
		Long: `Set a material's stock. Negative values are stored as zero. A key not in
the catalog is created as a new stock.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := parseKg(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				return runMaterialCommand(cmd, app, args[0], &commands.UpdateMaterialCommand{
					Material: args[0],
					Kg:       kg,
				})
			})
		},
	}
}

func newInventoryConsumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "consume <material> <kg>",
		Short: "Take mass out of a material's stock",
		Long:  `Take mass out of a material's stock. The stock never drops below zero.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := parseKg(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				return runMaterialCommand(cmd, app, args[0], &commands.ConsumeMaterialCommand{
					Material: args[0],
					Kg:       kg,
				})
			})
		},
	}
}

func runMaterialCommand(cmd *cobra.Command, app *App, key string, command interface{}) error {
	response, err := app.Send(cmd.Context(), command)
	if err != nil {
		return err
	}
	result, ok := response.(*commands.MaterialResponse)
	if !ok {
		return fmt.Errorf("unexpected response type: %T", response)
	}

	stock := result.Stock
	if stock.Key == "" {
		state, err := fetchState(cmd.Context(), app)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "No stock named %q, nothing changed%s\n",
			key, didYouMean(key, materialCandidates(state.Inventory, state.WastePool)))
		return nil
	}
	view := stockView{Key: stock.Key.String(), Name: stock.Name, Kg: stock.Kg}
	return render(cmd.OutOrStdout(), view, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s (%s): %s\n", stock.Name, stock.Key, formatKg(stock.Kg))
		return err
	})
}

// parseKg parses a finite kilogram amount
func parseKg(s string) (float64, error) {
	kg, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(kg) || math.IsInf(kg, 0) {
		return 0, fmt.Errorf("invalid amount %q: expected a number of kilograms", s)
	}
	return kg, nil
}
