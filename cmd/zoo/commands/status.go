package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"zoo-admin/internal/platform/httpclient"
)

func newStatusCommand() *cobra.Command {
	var (
		server  string
		hour    int
		pattern string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Muestra qué animales están activos o comiendo",
		Example: `  # hora actual del zoo
  zoo status

  # a las 12, solo diurnos
  zoo status --hour 12 --pattern diurnal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := httpclient.New(server, timeout)
			if err != nil {
				return err
			}

			f := httpclient.StatusFilter{ActivityPattern: pattern}
			if cmd.Flags().Changed("hour") {
				f.Hour = &hour
			}

			rows, err := client.Status(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printStatus(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "zoo-admin base URL")
	cmd.Flags().IntVar(&hour, "hour", 0, "hour 0-23 to evaluate (default: server's current hour)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "filter by activity pattern")
	cmd.Flags().DurationVar(&timeout, "timeout", httpclient.DefaultTimeout, "request timeout")

	return cmd
}

func printStatus(out io.Writer, rows []httpclient.AnimalStatus) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSPECIES\tPATTERN\tHOUR\tACTIVE\tEATING")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%02d:00\t%s\t%s\n",
			r.Name, r.Species, r.ActivityPattern, r.Hour, yesNo(r.IsActive), yesNo(r.IsEating))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
