package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var auditReplayCmd = &cobra.Command{
	Use:   "replay CORRELATION-ID",
	Short: "Recompute a past decision and check it reproduces",
	Long: `Asks the server to rerun the decision pipeline over the signals
	recorded in an audit entry, without contacting any collaborator,
	and reports whether the recomputed verdict matches the stored one.`,
	Example: `  sade audit replay d1kairu66f5c73cvoq3g`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replayID := args[0]
		if replayID == "" {
			return fmt.Errorf("correlation ID cannot be empty")
		}

		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Debug().Msgf("Replaying entry with correlation ID '%s'...", replayID)
		report, correlation, err := cli.Replay(cmd.Context(), replayID)
		if err != nil {
			return logError(err, correlation, "failed to replay audit log entry")
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		printKV := func(key string, val any) {
			fmt.Printf("  %-14s %v\n", faint(key)+":", val)
		}

		fmt.Println(bold("\n── Replay Report ──"))
		printKV("Correlation", report.CorrelationID)
		printKV("Recorded", report.Recorded.SadeMessage)
		printKV("Recomputed", report.Recomputed.SadeMessage)
		if len(report.RecomputedTrace) > 0 {
			printKV("Trace", "")
			for _, rule := range report.RecomputedTrace {
				fmt.Printf("    %s\n", rule)
			}
		}
		if report.Match {
			printKV("Match", green("yes, decision reproduces"))
		} else {
			printKV("Match", red("NO, recomputed decision differs"))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditReplayCmd)
}
