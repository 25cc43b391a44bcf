package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	dto "github.com/prometheus/client_model/go"

	"github.com/andrescamacho/redcycle-go/internal/adapters/metrics"
)

// sampleView is one metric sample in structured output
type sampleView struct {
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Value  float64           `json:"value" yaml:"value"`
	Count  uint64            `json:"count,omitempty" yaml:"count,omitempty"`
}

type familyView struct {
	Name    string       `json:"name" yaml:"name"`
	Type    string       `json:"type" yaml:"type"`
	Help    string       `json:"help" yaml:"help"`
	Samples []sampleView `json:"samples" yaml:"samples"`
}

// NewMetricsCommand creates the metrics command
func NewMetricsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print session metrics in Prometheus text format",
		Long: `Print the session gauges (resources, mass balance, stored mass, mission
day, crew) for the active profile. Text output uses the Prometheus
exposition format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), appOptions{forceMetrics: true}, func(app *App) error {
				families, err := metrics.GetRegistry().Gather()
				if err != nil {
					return fmt.Errorf("failed to gather metrics: %w", err)
				}
				sort.Slice(families, func(i, j int) bool {
					return families[i].GetName() < families[j].GetName()
				})

				return render(cmd.OutOrStdout(), toFamilyViews(families), func(w io.Writer) error {
					for _, mf := range families {
						if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}
}

func toFamilyViews(families []*dto.MetricFamily) []familyView {
	views := make([]familyView, 0, len(families))
	for _, mf := range families {
		view := familyView{
			Name: mf.GetName(),
			Type: mf.GetType().String(),
			Help: mf.GetHelp(),
		}
		for _, m := range mf.GetMetric() {
			sample := sampleView{}
			if len(m.GetLabel()) > 0 {
				sample.Labels = make(map[string]string, len(m.GetLabel()))
				for _, lp := range m.GetLabel() {
					sample.Labels[lp.GetName()] = lp.GetValue()
				}
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				sample.Value = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				sample.Value = m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				sample.Value = m.GetHistogram().GetSampleSum()
				sample.Count = m.GetHistogram().GetSampleCount()
			default:
				sample.Value = m.GetUntyped().GetValue()
			}
			view.Samples = append(view.Samples, sample)
		}
		views = append(views, view)
	}
	return views
}
