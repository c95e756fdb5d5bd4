package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/chartsense/internal/report"
	"github.com/KaramelBytes/chartsense/internal/summarize"
)

var strategyDescriptions = map[summarize.Kind]string{
	summarize.KindTrendOverall:   "direction and steadiness of the whole series",
	summarize.KindTrendPartial:   "each increasing, flat or decreasing stretch",
	summarize.KindWeekdayWeekend: "weekday traffic relative to weekend traffic, week by week",
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the available summarization strategies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows [][]string
		for _, k := range summarize.Kinds() {
			s, err := summarize.New(k)
			if err != nil {
				return err
			}
			rows = append(rows, []string{k.String(), s.Title(), strategyDescriptions[k]})
		}
		return report.WriteTable(cmd.OutOrStdout(), []string{"Name", "Group", "Describes"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
