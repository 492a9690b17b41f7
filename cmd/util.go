package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/jgranda1999/agentic-sade/pkg/client"
)

// SadeTokenKey resolves to the SADE_TOKEN environment variable via the
// viper env prefix. Admin endpoints require it.
const SadeTokenKey = "token"

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

func getClient() (*client.Client, error) {
	// we need the user to provide some server address first
	server := viper.GetString(SadeAddrKey)
	if server == "" {
		return nil, fmt.Errorf("server address not configured, provide via --server or env")
	}

	token := viper.GetString(SadeTokenKey)

	return client.NewClient(server, client.WithAuthToken(token)), nil
}

func logError(err error, correlationID, msg string) error {
	evt := log.Error().Err(err)
	if correlationID != "" {
		evt = evt.Str("correlation_id", correlationID)
	}
	evt.Msg(msg)
	return err
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
