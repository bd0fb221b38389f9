package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mindtask/internal/mcpserver"
	"github.com/mark3labs/mindtask/internal/workspace"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workspace as MCP tools over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.MCPAddr
		if serveFlags.addr != "" {
			addr = serveFlags.addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			srv := mcpserver.New(ws, version)
			if _, err := srv.Start(ctx, addr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "MCP endpoint: %s\n", srv.URL())
			if !ws.Persistent() {
				fmt.Fprintln(cmd.OutOrStdout(), "Persistence is off: changes are lost on exit.")
			}

			<-ctx.Done()
			fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "Listen address (overrides config mcp_addr)")
}
