package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/redcycle-go/internal/application/session/queries"
)

// NewModulesCommand creates the modules command
func NewModulesCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the processing grid",
		Long: `List the processing grid with each module's baseline efficiency, product,
preferred input materials and the crew posted there.

Examples:
  redcycle modules
  redcycle modules --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{}, func(app *App) error {
				response, err := app.Send(cmd.Context(), &queries.ListModulesQuery{})
				if err != nil {
					return err
				}
				result, ok := response.(*queries.ListModulesResponse)
				if !ok {
					return fmt.Errorf("unexpected response type: %T", response)
				}

				views := make([]moduleView, 0, len(result.Modules))
				for _, m := range result.Modules {
					views = append(views, moduleView{
						ID:             m.ID.String(),
						Title:          m.Title,
						Description:    m.Description,
						BaseEfficiency: m.BaseEfficiency,
						Product:        m.Product,
						Preferred:      keyStrings(m.Efficient),
						CrewCount:      m.CrewCount,
					})
				}
				return render(cmd.OutOrStdout(), views, func(w io.Writer) error {
					return printModules(w, views, verbose)
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include module descriptions")

	return cmd
}

func printModules(w io.Writer, modules []moduleView, verbose bool) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Module\tTitle\tEfficiency\tProduct\tPreferred\tCrew")
	fmt.Fprintln(tw, "──────\t─────\t──────────\t───────\t─────────\t────")
	for _, m := range modules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			m.ID, m.Title, formatPercent(m.BaseEfficiency), m.Product, strings.Join(m.Preferred, ", "), m.CrewCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(w)
		for _, m := range modules {
			fmt.Fprintf(w, "%s: %s\n", m.ID, m.Description)
		}
	}
	return nil
}
