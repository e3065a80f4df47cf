package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/afmlabs/evaldash/internal/auth"
	"github.com/afmlabs/evaldash/internal/gate"
	"github.com/afmlabs/evaldash/internal/observability"
	"github.com/afmlabs/evaldash/internal/webapi"
	"github.com/afmlabs/evaldash/internal/webserver"
)

type serveOptions struct {
	port           int
	opsAddr        string
	noBrowser      bool
	strict         bool
	seed           uint64
	allowedOrigins []string
}

func newServeCommand(a *app, opts *serveOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		Long: `Start the dashboard web server.

Every route except /login and /api/auth requires the afm-session cookie set
by a successful login. Prometheus metrics are served on a separate
operations listener (--ops-addr, empty to disable).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := buildServer(cmd, a, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&opts.port, "port", 0, "Dashboard port (default from config, 3000)")
	cmd.Flags().StringVar(&opts.opsAddr, "ops-addr", "", "Metrics listener address (default from config, localhost:9090)")
	cmd.Flags().BoolVar(&opts.noBrowser, "no-browser", false, "Do not open a browser")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Require sessions to name the configured user and be younger than 24h")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Fix the random seed so every request sees the same data")
	cmd.Flags().StringSliceVar(&opts.allowedOrigins, "allow-origin", nil, "Origins allowed to call the API cross-site")

	return cmd
}

// buildServer resolves flags over the loaded config and assembles the server.
func buildServer(cmd *cobra.Command, a *app, opts *serveOptions) (*webserver.Server, error) {
	cfg := a.cfg
	flags := cmd.Flags()

	port := cfg.Server.Port
	if flags.Changed("port") {
		port = opts.port
	}
	opsAddr := cfg.Server.OpsAddr
	if flags.Changed("ops-addr") {
		opsAddr = opts.opsAddr
	}
	noBrowser := cfg.Server.NoBrowser != nil && *cfg.Server.NoBrowser
	if flags.Changed("no-browser") {
		noBrowser = opts.noBrowser
	}
	strict := cfg.Auth.Strict != nil && *cfg.Auth.Strict
	if flags.Changed("strict") {
		strict = opts.strict
	}

	anchors, err := a.anchors()
	if err != nil {
		return nil, err
	}
	seed := seedFlag(cmd, opts.seed)
	if seed == nil {
		seed = cfg.Data.Seed
	}

	creds := cfg.Credentials()
	secure := cfg.Production()
	m := observability.New()

	if creds == auth.DefaultCredentials() {
		a.logger.Warn("using default credentials; set AUTH_EMAIL and AUTH_PASSWORD")
	}
	a.logger.Info("configuring server",
		"port", port,
		"ops_addr", opsAddr,
		"environment", cfg.Server.Environment,
		"strict_sessions", strict,
		"fixed_seed", seed != nil,
	)

	srv, err := webserver.New(webserver.Config{
		Port:           port,
		OpsAddr:        opsAddr,
		NoBrowser:      noBrowser,
		Logger:         a.logger,
		Metrics:        m,
		AllowedOrigins: opts.allowedOrigins,
		Gate: gate.New(auth.NewVerifier(creds, strict),
			gate.WithMetrics(m),
			gate.WithSecureCookies(secure),
		),
		API: webapi.Config{
			Source:        webapi.NewGeneratorSource(anchors, seed, m),
			Credentials:   creds,
			SecureCookies: secure,
			Metrics:       m,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	return srv, nil
}

