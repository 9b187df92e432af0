package main

import (
	"github.com/spf13/cobra"

	"github.com/menulens/menulens/internal/config"
	"github.com/menulens/menulens/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the menulens server",
	Long: `Start the menulens HTTP server.

The server provides:
  - POST /menu/extract-text - Extract structured menu data from a PDF or image
  - POST /safe-dishes       - Rank dishes against a diner's allergen profile
  - GET  /health            - Basic server health check
  - GET  /ready             - Readiness check

Examples:
  menulens serve                    # Start on default port 8080
  menulens serve --port 3000        # Start on custom port
  menulens serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		if serveHost != "" {
			cfg.Server.Host = serveHost
		}
		if servePort != "" {
			cfg.Server.Port = servePort
		}

		client := newLLMClient(cfg)
		if client == nil {
			logger.Warn("no LLM API key configured, dish ranking and vision fallback disabled")
		}

		srvCfg := server.Config{
			Host:        cfg.Server.Host,
			Port:        cfg.Server.Port,
			MaxUploadMB: cfg.Server.MaxUploadMB,
			Reader:      newReader(cfg, client, logger),
			Processor:   newProcessor(cfg, client, logger),
			Logger:      logger,
		}
		if ranker := newRanker(cfg, client, logger); ranker != nil {
			srvCfg.Ranker = ranker
		}

		srv, err := server.New(srvCfg)
		if err != nil {
			return err
		}

		cm.WatchConfig()

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
