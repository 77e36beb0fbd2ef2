package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/titlescan/internal/adapters/driving/mcp"
	"github.com/custodia-labs/titlescan/internal/core/ports/driving"
	"github.com/custodia-labs/titlescan/internal/logger"
)

var mcpSources SourceOptions

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can request
title packages with the analyze_title tool.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode, searching the local snapshot
  titlescan mcp serve

  # HTTP mode over a JSON export with instrument text
  titlescan mcp serve --port 8080 --records export.json --text-dir ./text`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	addSourceFlags(mcpServeCmd, &mcpSources)
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if factory == nil {
		return errNoFactory
	}

	settingsSvc, err := factory.Settings(configDir)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	title, closer, err := factory.Title(*settings, mcpSources)
	if err != nil {
		return fmt.Errorf("failed to open sources: %w", err)
	}
	closers := []io.Closer{closer}
	defer func() {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		if err := errors.Join(errs...); err != nil {
			logger.Warn("closing sources: %v", err)
		}
	}()

	var records driving.RecordService
	if len(mcpSources.RecordFiles) == 0 {
		rs, rc, err := factory.Records(mcpSources.DBDir)
		if err != nil {
			return fmt.Errorf("failed to open snapshot: %w", err)
		}
		records = rs
		closers = append(closers, rc)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Title:    title,
		Settings: settingsSvc,
		Records:  records,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
