package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jgranda1999/agentic-sade/internal/core"
	"github.com/jgranda1999/agentic-sade/pkg/client"
)

var whyCmd = &cobra.Command{
	Use:   "why CORRELATION-ID",
	Short: "Explain why an entry request was approved or denied",
	Long: `Retrieves the audited decision for a correlation ID and prints the
	ordered rule trace, the collaborator signals that drove it and the
	claims verdict, if one was consulted.

Note: This command requires a SADE server to be running and reachable.
Also note that you need to be authenticated as admin to use this command.`,
	Example: `  # Why was this run denied? Which rule fired?
  sade why d1kairu66f5c73cvoq3g`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		correlationID := args[0]
		if correlationID == "" {
			return fmt.Errorf("correlation ID cannot be empty")
		}

		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Debug().Msgf("Retrieving entry with correlation ID '%s'...", correlationID)
		audits, correlation, err := cli.ListAudits(cmd.Context(), client.ListAuditsOpts{
			Limit:         1,
			CorrelationID: correlationID,
		})
		if err != nil {
			return logError(err, correlation, "failed to retrieve audit log entry")
		}
		if len(audits) == 0 {
			log.Warn().Str("correlation_id", correlationID).Msg("no audit log entries found")
			return nil
		}

		printWhy(audits[0])
		return nil
	},
}

func printWhy(entry core.AuditEntry) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	printKV := func(key string, val any) {
		fmt.Printf("  %-20s %v\n", faint(key)+":", val)
	}

	fmt.Println(bold("\n── Admission Run ──"))
	printKV("Correlation ID", entry.ID)
	printKV("Time", entry.Time.Local().Format(time.RFC1123))
	printKV("Zone", entry.ZoneID)
	printKV("Pilot / Drone", fmt.Sprintf("%s / %s", entry.PilotID, entry.DroneID))
	if entry.Error != "" {
		printKV("Error", red(entry.Error))
	}

	fmt.Println(bold("\n── Rule Trace ──"))
	for i, rule := range entry.RuleTrace {
		icon := cyan("·")
		if i == len(entry.RuleTrace)-1 {
			icon = green("✔")
			if entry.DecisionType == core.DecisionDenied {
				icon = red("✖")
			}
		}
		fmt.Printf("  %s %s\n", icon, rule)
	}

	if entry.ClaimsCalled {
		fmt.Println(bold("\n── Claims Verdict ──"))
		if entry.Result != nil {
			claims := entry.Result.Visibility.Claims
			verdict := red("unsatisfied")
			if claims.Satisfied {
				verdict = green("satisfied")
			}
			printKV("Verdict", verdict)
			for _, a := range claims.UnsatisfiedActions {
				fmt.Printf("    %s %s\n", red("✖"), a)
			}
			for _, why := range claims.Why {
				fmt.Printf("    %s %s\n", faint("↳"), faint(why))
			}
		} else {
			fmt.Printf("  %s\n", faint("(verdict not recorded)"))
		}
	}

	fmt.Println(bold("\n── Outcome ──"))
	switch entry.DecisionType {
	case core.DecisionApproved, core.DecisionApprovedConstraints:
		printKV("Decision", green(string(entry.DecisionType)))
	case core.DecisionActionRequired:
		printKV("Decision", yellow(string(entry.DecisionType)))
		for _, a := range entry.Actions {
			fmt.Printf("    %s\n", a)
		}
	case core.DecisionDenied:
		printKV("Decision", red(string(entry.DecisionType)))
		printKV("Code", red(entry.DenialCode))
	default:
		printKV("Decision", faint("(none recorded)"))
	}
	if entry.Result != nil {
		printKV("Status", entry.Result.Decision.SadeMessage)
		printKV("Reason", entry.Result.Decision.Explanation)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(whyCmd)
}
