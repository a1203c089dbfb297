// Package mcp exposes Turing machine sessions as Model Context Protocol tools, so an
// agent can configure and run machines with the same commands a human types.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/command"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ProgramsURI is the resource listing stored programs.
const ProgramsURI = "turing://programs"

// ErrUnknownSession is returned when a snapshot is requested for a session never used.
var ErrUnknownSession = errors.New("unknown session")

// CommandArgs are the arguments of the turing_command tool.
type CommandArgs struct {
	SessionID string `json:"session_id"`
	Command   string `json:"command"`
}

// SnapshotArgs are the arguments of the turing_snapshot tool.
type SnapshotArgs struct {
	SessionID string `json:"session_id"`
}

// Server exposes a session manager as an MCP Server.
type Server struct {
	sessions   *session.Manager
	dispatcher *command.Dispatcher
	store      ports.ProgramStore
	logger     *slog.Logger
	mcpServer  *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithStore exposes the program list as a resource.
func WithStore(store ports.ProgramStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(name, version string, sessions *session.Manager, dispatcher *command.Dispatcher, opts ...Option) *Server {
	s := &Server{
		sessions:   sessions,
		dispatcher: dispatcher,
		logger:     logging.NewNop(),
		mcpServer:  server.NewMCPServer(name, version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	commandTool := mcp.NewTool("turing_command",
		mcp.WithDescription("Run one Turing machine command in a session, e.g. "+
			"\"add (S, 0) -> (S, 1, R)\", \"input 0101\", \"step\" or \"run\". "+
			"Use \"help\" to list all commands."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to run the command in; created on first use")),
		mcp.WithString("command", mcp.Required(), mcp.Description("The command line")),
		mcp.WithOutputSchema[command.Reply](),
	)
	s.mcpServer.AddTool(commandTool, mcp.NewStructuredToolHandler(s.handleCommand))

	snapshotTool := mcp.NewTool("turing_snapshot",
		mcp.WithDescription("Get the configuration, tape and head position of a session's machine as JSON."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to inspect")),
	)
	s.mcpServer.AddTool(snapshotTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		snap, err := s.snapshot(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		jsonBytes, _ := json.Marshal(snap)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) registerResources() {
	if s.store == nil {
		return
	}
	s.mcpServer.AddResource(mcp.NewResource(ProgramsURI, "Stored Turing machine programs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.programs(ctx)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ProgramsURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

func (s *Server) handleCommand(ctx context.Context, _ mcp.CallToolRequest, args CommandArgs) (command.Reply, error) {
	if args.SessionID == "" {
		return command.Reply{}, errors.New("session_id is required")
	}

	var reply command.Reply
	err := s.sessions.Do(ctx, args.SessionID, func(ctx context.Context, m *machine.Deterministic) error {
		var err error
		reply, err = s.dispatcher.Dispatch(ctx, m, args.Command)
		return err
	})
	if err != nil {
		var usage *command.UsageError
		if !errors.As(err, &usage) {
			s.logger.Error("MCP command failed", "session_id", args.SessionID, "err", err)
		}
		return command.Reply{}, err
	}
	return reply, nil
}

func (s *Server) snapshot(ctx context.Context, id string) (machine.Snapshot, error) {
	var snap machine.Snapshot
	err := s.sessions.DoExisting(ctx, id, func(_ context.Context, m *machine.Deterministic) error {
		snap = m.Snapshot()
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		return machine.Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return snap, err
}

func (s *Server) programs(ctx context.Context) (string, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list programs: %w", err)
	}
	jsonBytes, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}
