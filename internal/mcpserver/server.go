// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Life OS vault tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Leochens/LifeOs-sub001/internal/api"
	"github.com/Leochens/LifeOs-sub001/internal/index"
	"github.com/Leochens/LifeOs-sub001/internal/vault"
)

// Server wraps the MCP server with Life OS tools.
type Server struct {
	mcp    *server.MCPServer
	svc    *api.Service
	loader *vault.Loader
	db     *index.DB
}

// New creates a new MCP server with all vault tools registered.
func New(loader *vault.Loader, db *index.DB) *Server {
	s := &Server{
		svc:    api.NewService(loader, db),
		loader: loader,
		db:     db,
	}

	s.mcp = server.NewMCPServer(
		"LifeOS",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_today_tasks",
		mcp.WithDescription("Get today's day note with its task checklist. "+
			"Creates the note from the template when it does not exist yet."),
	), s.getTodayTasks)

	s.mcp.AddTool(mcp.NewTool("checkin_habit",
		mcp.WithDescription("Toggle the checkin state of a habit for a date."),
		mcp.WithString("habit_id", mcp.Required(), mcp.Description("Habit id from the tracker")),
		mcp.WithString("date", mcp.Description("ISO date (YYYY-MM-DD); today when omitted")),
	), s.checkinHabit)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects with status, priority, and progress."),
		mcp.WithString("status", mcp.Description("Optional status filter (backlog, todo, active, paused, done)")),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("search_vault",
		mcp.WithDescription("Full-text search across every Markdown note in the vault."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchVault)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a vault note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. projects/active/app.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new Markdown note at the specified path. "+
			"Content should carry YAML frontmatter appropriate to the target collection; "+
			"read the lifeos://vault-layout resource for the directory conventions."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path for the new note (must end with .md)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content with frontmatter")),
	), s.createNote)

	// Resource: vault directory conventions.
	s.mcp.AddResource(
		mcp.NewResource("lifeos://vault-layout", "Vault Layout",
			mcp.WithResourceDescription("Directory conventions and note formats of a Life OS vault."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readVaultLayoutResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) getTodayTasks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := s.svc.Today(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(day, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) checkinHabit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("habit_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date := req.GetString("date", "")
	checked, err := s.svc.ToggleHabit(ctx, id, date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state := "checked"
	if !checked {
		state = "unchecked"
	}
	return mcp.NewToolResultText(fmt.Sprintf("habit %s is now %s", id, state)), nil
}

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.svc.Snapshot(ctx)
	if err != nil {
		snap = s.svc.Reload(ctx)
	}
	status := req.GetString("status", "")
	projects := snap.Projects
	if status != "" {
		filtered := projects[:0:0]
		for _, p := range projects {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}
	out, _ := json.MarshalIndent(projects, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.loader.Store().Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, createErr := s.svc.CreateNote(ctx, path, []byte(content))
	if createErr != nil {
		return mcp.NewToolResultError(createErr.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created %s", n.Path)), nil
}

func (s *Server) readVaultLayoutResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     vaultLayoutDoc,
		},
	}, nil
}
