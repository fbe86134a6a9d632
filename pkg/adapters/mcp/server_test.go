package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/player"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	p, err := player.New([]domain.Slide{{ID: "a"}, {ID: "b"}, {ID: "c"}}, player.WithoutStage())
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))
	t.Cleanup(p.Stop)
	return NewServer(p, "test")
}

func TestServer_Tools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	gotoHandler := s.navigate("goto", s.gotoIndex)
	st, err := gotoHandler(ctx, req, map[string]any{"index": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSync, st.Phase)
	assert.Equal(t, []string{"a", "c"}, st.Awaiting)

	completeHandler := s.navigate("complete", s.complete)
	_, err = completeHandler(ctx, req, map[string]any{"slide_id": "a"})
	require.NoError(t, err)
	st, err = completeHandler(ctx, req, map[string]any{"slide_id": "c"})
	require.NoError(t, err)
	assert.Equal(t, "c", st.CurrentID)
	assert.Equal(t, []string{"a"}, st.History)

	st, err = s.handleState(ctx, req, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, st.CurrentIndex)
}

func TestServer_ToolErrors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	gotoHandler := s.navigate("goto", s.gotoIndex)
	_, err := gotoHandler(ctx, req, map[string]any{"index": float64(9)})
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = gotoHandler(ctx, req, map[string]any{"index": 1.5})
	assert.Error(t, err)

	_, err = gotoHandler(ctx, req, map[string]any{"index": "1"})
	assert.Error(t, err)

	completeHandler := s.navigate("complete", s.complete)
	_, err = completeHandler(ctx, req, map[string]any{})
	assert.Error(t, err)
	_, err = completeHandler(ctx, req, map[string]any{"slide_id": "zz"})
	assert.ErrorIs(t, err, domain.ErrUnknownSlide)
}

func TestServer_Registration(t *testing.T) {
	s := newTestServer(t)

	tools := s.MCPServer().ListTools()
	for _, name := range []string{"next", "previous", "back", "force", "goto", "complete", "get_state"} {
		assert.Contains(t, tools, name)
	}
}
