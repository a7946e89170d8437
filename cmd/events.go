package cmd

import (
	"fmt"
	"io"

	"github.com/josephlewis42/sheller/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the shell event log.",
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		config, err := loadConfig()
		if err != nil {
			return err
		}

		if !config.HasEventLog() {
			return fmt.Errorf("no event_log is configured")
		}

		fd, err := config.ReadEventLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		return writeReport(cmd.OutOrStdout(), fd)
	},
}

func writeReport(w io.Writer, log io.Reader) error {
	report := logger.NewReport()
	if err := logger.ReadJSONLinesLog(log, report.Update); err != nil {
		return err
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
}
