package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jgranda1999/agentic-sade/internal/api"
	"github.com/jgranda1999/agentic-sade/internal/audit"
	"github.com/jgranda1999/agentic-sade/internal/collab"
	"github.com/jgranda1999/agentic-sade/internal/config"
	"github.com/jgranda1999/agentic-sade/internal/core"
	"github.com/jgranda1999/agentic-sade/internal/decision"
	"github.com/jgranda1999/agentic-sade/internal/service"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the SADE server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		log.Info().Msg("Initializing collaborators...")
		svc, auditor, err := buildService(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := auditor.Close(); err != nil {
				log.Warn().Err(err).Msg("closing auditor")
			}
		}()

		srv := api.NewServer(svc, auditor)

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes([]byte(cfg.Server.AdminSigningKey)),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

// buildService wires collaborators, audit sink and emitter into an
// admission service from a loaded config.
func buildService(cfg *config.Config) (*service.AdmissionService, core.Auditor, error) {
	env, err := collab.BuildEnvironmentSource(cfg.Collaborators.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("building environment collaborator: %w", err)
	}

	rep, err := collab.BuildReputationSource(cfg.Collaborators.Reputation)
	if err != nil {
		return nil, nil, fmt.Errorf("building reputation collaborator: %w", err)
	}

	claims, err := collab.BuildClaimsVerifier(cfg.Collaborators.Claims)
	if err != nil {
		return nil, nil, fmt.Errorf("building claims collaborator: %w", err)
	}

	auditor, err := audit.FromConfig(cfg.Audit)
	if err != nil {
		return nil, nil, fmt.Errorf("building auditor: %w", err)
	}

	emitter := decision.NewEmitter(cfg.ConstraintProfile())

	svc := service.NewAdmissionService(env, rep, claims, auditor, emitter, cfg.Collaborators.Timeout)
	return svc, auditor, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
}
