package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/powerplan/core/production"
)

func newCostCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Print the EUR/MWh cost of every plant of a payload file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := readPayload(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			costs, err := production.Costs(p)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PLANT\tTYPE\tEUR/MWh")
			for i, c := range costs {
				fmt.Fprintf(tw, "%s\t%s\t%.3f\n", c.Name, p.PowerPlants[i].Type, c.Cost)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "payload file, - for stdin")
	return cmd
}
