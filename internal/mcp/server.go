// Package mcp exposes the quote extraction engine over the Model Context
// Protocol so agent tooling can run extractions without the batch CLI.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quotelift/quote-extractor/internal/batch"
	"github.com/quotelift/quote-extractor/internal/config"
	"github.com/quotelift/quote-extractor/internal/export"
	"github.com/quotelift/quote-extractor/internal/pdf"
	"github.com/quotelift/quote-extractor/internal/schema"
)

// Server represents the MCP server instance.
type Server struct {
	config    *config.Config
	runner    *batch.Runner
	search    *pdf.Search
	validator *pdf.Validator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	s := &Server{
		config:    cfg,
		runner:    batch.NewRunner(cfg.MaxFileSize),
		search:    pdf.NewSearch(),
		validator: pdf.NewValidator(cfg.MaxFileSize),
		mcpServer: server.NewMCPServer(
			cfg.ServerName,
			cfg.Version,
			server.WithToolCapabilities(false),
		),
	}

	s.registerTools()
	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		"quote_extract_file",
		mcp.WithDescription("Extract structured quote fields and line items from a sales-quote PDF, returned as CSV"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("schema",
			mcp.Description("Schema: 'quote' for the built-in family or a path to a YAML schema file"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleQuoteExtractFile)

	searchTool := mcp.NewTool(
		"quote_search_directory",
		mcp.WithDescription("Search for PDF files in a directory with optional name filtering"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional substring filter on file names"),
		),
	)
	s.mcpServer.AddTool(searchTool, s.handleQuoteSearchDirectory)

	validateTool := mcp.NewTool(
		"quote_validate_file",
		mcp.WithDescription("Validate that a file is a readable PDF before extraction"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleQuoteValidateFile)
}

// Handler functions

func (s *Server) handleQuoteExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	schemaArg := s.config.Schema
	if v, ok := request.GetArguments()["schema"].(string); ok && v != "" {
		schemaArg = v
	}
	target, err := schema.Resolve(schemaArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read file: %v", err)), nil
	}

	result, err := s.runner.Run(ctx, []batch.Input{{Name: filepath.Base(path), Data: data}}, target, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	records := make([]export.Record, len(result.Records))
	for i, r := range result.Records {
		records[i] = r
	}
	if err := export.WriteCSV(&buf, target.Columns, records); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize records: %v", err)), nil
	}

	responseText := fmt.Sprintf("Extracted %d record(s) from %s\n", len(result.Records), path)
	if len(result.Warnings) > 0 {
		responseText += "\nWarnings:\n"
		for _, w := range result.Warnings {
			responseText += fmt.Sprintf("- %s\n", w)
		}
	}
	responseText += "\nCSV:\n" + buf.String()

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleQuoteSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.InputDir
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}
	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	files, err := s.search.SearchDirectory(directory, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(files) == 0 {
		text := fmt.Sprintf("No PDF files found in directory: %s", directory)
		if query != "" {
			text += fmt.Sprintf(" (searched for: %s)", query)
		}
		return mcp.NewToolResultText(text), nil
	}

	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n\nFiles:\n", len(files), directory)
	for i, f := range files {
		text += fmt.Sprintf("%d. %s\n", i+1, f.Name)
		text += fmt.Sprintf("   Path: %s\n", f.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", f.Size)
		text += fmt.Sprintf("   Modified: %s\n", f.ModifiedTime)
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleQuoteValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read file: %v", err)), nil
	}

	result, err := s.validator.Validate(pdf.ValidateRequest{Name: filepath.Base(path), Data: data})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable (%d pages)", path, result.Pages)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

// Run starts the MCP server in the configured mode.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsStdioMode() {
		return s.runStdioMode(ctx)
	}
	// The mark3labs transport serves stdio either way for now.
	log.Printf("Server mode not supported; falling back to stdio mode")
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode.
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting quote extraction MCP server in stdio mode")
		log.Printf("Input directory: %s", s.config.InputDir)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
