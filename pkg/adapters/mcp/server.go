package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DeckURI is the resource exposing the slide list.
const DeckURI = "slidekit://deck"

// Server exposes a running deck to MCP clients (agents) as tools.
type Server struct {
	deck      ports.Deck
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP server for deck.
func NewServer(deck ports.Deck, version string, opts ...Option) *Server {
	s := &Server{
		deck:      deck,
		mcpServer: server.NewMCPServer("slidekit-mcp", version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio serves on Stdin/Stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPServer returns the underlying server, for transports other than stdio.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

type navigation func(ctx context.Context, args map[string]any) error

func (s *Server) registerTools() {
	simple := []struct {
		name, description string
		fn                func(context.Context) error
	}{
		{"next", "Advance to the next slide. Does nothing on the last slide.", s.deck.Next},
		{"previous", "Go back to the preceding slide. Does nothing on the first slide.", s.deck.Previous},
		{"back", "Return to the most recently visited slide.", s.deck.Back},
		{"force", "Finish the transition in flight without waiting for its animations.", s.deck.Force},
	}
	for _, t := range simple {
		fn := t.fn
		tool := mcp.NewTool(t.name,
			mcp.WithDescription(t.description),
			mcp.WithOutputSchema[domain.DeckState](),
		)
		s.mcpServer.AddTool(tool, mcp.NewStructuredToolHandler(s.navigate(t.name, func(ctx context.Context, _ map[string]any) error {
			return fn(ctx)
		})))
	}

	gotoTool := mcp.NewTool("goto",
		mcp.WithDescription("Jump to the slide at a zero-based index. The current slide is remembered for back."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based slide index")),
		mcp.WithOutputSchema[domain.DeckState](),
	)
	s.mcpServer.AddTool(gotoTool, mcp.NewStructuredToolHandler(s.navigate("goto", s.gotoIndex)))

	completeTool := mcp.NewTool("complete",
		mcp.WithDescription("Report that the animation of a slide has finished."),
		mcp.WithString("slide_id", mcp.Required(), mcp.Description("ID of the slide whose transition ended")),
		mcp.WithOutputSchema[domain.DeckState](),
	)
	s.mcpServer.AddTool(completeTool, mcp.NewStructuredToolHandler(s.navigate("complete", s.complete)))

	stateTool := mcp.NewTool("get_state",
		mcp.WithDescription("Get the current slide, transition phase and history."),
		mcp.WithOutputSchema[domain.DeckState](),
	)
	s.mcpServer.AddTool(stateTool, mcp.NewStructuredToolHandler(s.handleState))
}

func (s *Server) navigate(name string, fn navigation) func(context.Context, mcp.CallToolRequest, map[string]any) (domain.DeckState, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.DeckState, error) {
		if err := fn(ctx, args); err != nil {
			s.logger.Warn("MCP navigation failed", "tool", name, "err", err)
			return domain.DeckState{}, fmt.Errorf("%s failed: %w", name, err)
		}
		return s.deck.State(ctx)
	}
}

func (s *Server) gotoIndex(ctx context.Context, args map[string]any) error {
	raw, ok := args["index"].(float64)
	if !ok {
		return fmt.Errorf("index must be a number")
	}
	index := int(raw)
	if float64(index) != raw {
		return fmt.Errorf("index must be an integer, got %v", raw)
	}
	return s.deck.Goto(ctx, index)
}

func (s *Server) complete(ctx context.Context, args map[string]any) error {
	slideID, _ := args["slide_id"].(string)
	if slideID == "" {
		return fmt.Errorf("slide_id is required")
	}
	return s.deck.Complete(ctx, slideID)
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.DeckState, error) {
	return s.deck.State(ctx)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DeckURI, "Slides of the running deck",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		state, err := s.deck.State(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read deck state: %w", err)
		}
		jsonBytes, err := json.Marshal(state.Slides)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DeckURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
