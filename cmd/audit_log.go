package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jgranda1999/agentic-sade/pkg/client"
)

var auditLogOpts client.ListAuditsOpts

// auditLogCmd represents the audit log command
var auditLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Retrieve and display audit log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Info().Msg("Fetching audit log...")
		audits, correlation, err := cli.ListAudits(cmd.Context(), auditLogOpts)
		if err != nil {
			return logError(err, correlation, "failed to retrieve audit log")
		}

		log.Info().Msgf("Retrieved %d audit entries", len(audits))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Time", "Correlation", "Pilot", "Drone", "Decision", "Rule", "Error",
		})

		for _, e := range audits {
			lastRule := ""
			if len(e.RuleTrace) > 0 {
				lastRule = e.RuleTrace[len(e.RuleTrace)-1]
			}

			decision := string(e.DecisionType)
			if e.DenialCode != "" {
				decision += "," + e.DenialCode
			}

			t.AppendRow(table.Row{
				e.Time.Format(time.RFC3339),
				truncate(e.ID, 24),
				e.PilotID,
				e.DroneID,
				decision,
				lastRule,
				truncate(strings.ReplaceAll(e.Error, "\n", " "), 40),
			})
		}

		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditLogCmd)

	auditLogCmd.Flags().UintVarP(&auditLogOpts.Limit, "limit", "n", 25, "Number of audit entries to retrieve")
	auditLogCmd.Flags().StringVar(&auditLogOpts.PilotID, "pilot", "", "Filter by pilot ID")
	auditLogCmd.Flags().StringVar(&auditLogOpts.DroneID, "drone", "", "Filter by drone ID")
	auditLogCmd.Flags().StringVar(&auditLogOpts.Decision, "decision", "", "Filter by decision type (e.g. DENIED)")
}
