package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/legalchunk/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Routes:
  POST /chunk           chunk {extractedText, userId, projectId, options}
  GET  /document-types  list the known document types
  GET  /runs            recent runs (when history is enabled)
  GET  /runs/{id}       one run
  GET  /health          liveness
  GET  /metrics         Prometheus metrics

The listen address, rate limit and body size limit come from the
[server] settings; --addr overrides the address.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: server.addr setting)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if chunkingService == nil {
		return errors.New("chunking service not configured")
	}

	settings := currentSettings().Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		settings.Addr = addr
	}

	ports := &httpapi.Ports{Chunking: chunkingService, History: historyService}
	server, err := httpapi.NewServer(ports, settings, httpapi.WithVersion(version))
	if err != nil {
		return err
	}

	cmd.Printf("HTTP API listening on %s\n", server.Addr())
	return server.Run(commandContext(cmd))
}
