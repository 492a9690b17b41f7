package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jgranda1999/agentic-sade/internal/api/middleware"
	"github.com/jgranda1999/agentic-sade/internal/config"
	"github.com/jgranda1999/agentic-sade/internal/core"
)

var decideRequestFile string

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Evaluate a zone entry request",
	Long: `Runs one entry request through the admission pipeline and prints
	the decision. With --server the request is sent to a remote SADE
	server; otherwise the pipeline runs locally from the configuration
	file.`,
	Example: `  # evaluate locally using config.yaml
  sade decide -f entry_request.json

  # evaluate against a running server
  sade decide -f entry_request.json --server http://localhost:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readEntryRequest(decideRequestFile)
		if err != nil {
			return err
		}

		var result *core.Result
		if viper.GetString(SadeAddrKey) != "" {
			result, err = decideRemote(cmd, req)
		} else {
			result, err = decideLocally(cmd, req)
		}
		if err != nil {
			return err
		}

		printDecision(result)
		return nil
	},
}

func readEntryRequest(path string) (*core.EntryRequest, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading entry request: %w", err)
	}

	var req core.EntryRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parsing entry request: %w", err)
	}
	return &req, nil
}

func decideRemote(cmd *cobra.Command, req *core.EntryRequest) (*core.Result, error) {
	cli, err := getClient()
	if err != nil {
		return nil, err
	}

	result, correlation, err := cli.Decide(cmd.Context(), req)
	if err != nil {
		return nil, logError(err, correlation, "failed to get decision from server")
	}
	return result, nil
}

func decideLocally(cmd *cobra.Command, req *core.EntryRequest) (*core.Result, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	svc, auditor, err := buildService(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := auditor.Close(); err != nil {
			log.Warn().Err(err).Msg("closing auditor")
		}
	}()

	// assign a correlation ID so the audited run stays replayable
	correlationID := xid.New().String()
	log.Info().Str("correlation_id", correlationID).Msg("evaluating entry request")
	ctx := middleware.WithCorrelationID(cmd.Context(), correlationID)

	return svc.Decide(ctx, req)
}

func printDecision(result *core.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	d := result.Decision

	var status string
	switch d.Type {
	case core.DecisionApproved, core.DecisionApprovedConstraints:
		status = green(string(d.Type))
	case core.DecisionActionRequired:
		status = yellow(string(d.Type))
	default:
		status = red(string(d.Type))
	}

	fmt.Println(bold("\n── Decision ──"))
	fmt.Printf("  %s:   %s\n", faint("Verdict"), status)
	fmt.Printf("  %s:    %s\n", faint("Status"), d.SadeMessage)
	fmt.Printf("  %s:    %s\n", faint("Reason"), d.Explanation)

	if len(d.Constraints) > 0 {
		fmt.Printf("  %s:\n", faint("Constraints"))
		for _, c := range d.Constraints {
			fmt.Printf("    %s\n", c)
		}
	}
	if d.ActionID != "" {
		fmt.Printf("  %s: %s\n", faint("Action ID"), d.ActionID)
		for _, a := range d.Actions {
			fmt.Printf("    %s\n", a)
		}
	}
	if d.DenialCode != "" {
		fmt.Printf("  %s:      %s\n", faint("Code"), red(d.DenialCode))
	}

	fmt.Printf("\n  %s: %s\n\n", faint("Rule trace"), strings.Join(result.Visibility.RuleTrace, " → "))
}

func init() {
	rootCmd.AddCommand(decideCmd)

	decideCmd.Flags().StringVarP(&decideRequestFile, "request", "f", "",
		"Path to the entry request JSON ('-' for stdin)")
	_ = decideCmd.MarkFlagRequired("request")
}
