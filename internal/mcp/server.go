package mcp

import (
	"context"
	"time"

	"riskcast/internal/config"
	"riskcast/internal/metrics"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const (
	serverName    = "riskcast"
	serverVersion = "0.1.0"

	serverInstructions = "riskcast estimates how likely a project is to finish within 120% of its cost and time " +
		"baselines using a triangular Monte-Carlo model. Use 'run_risk_simulation' for explicit baselines, " +
		"'simulate_roadmap' when you have itemized cost estimates, and 'compare_risk_levels' to see how the " +
		"outcome shifts with the risk score. Never estimate probabilities yourself if a tool fails."
)

// Server holds the state for the MCP server.
type Server struct {
	cfg     *config.AppConfig
	metrics *metrics.Metrics
	server  *mcp.Server
	now     func() time.Time
}

// NewServer creates a new MCP server with all simulation tools registered.
// m may be nil when metrics are disabled.
func NewServer(cfg *config.AppConfig, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:     cfg,
		metrics: m,
		now:     time.Now,
		server: mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
			Instructions: serverInstructions,
		}),
	}
	s.registerTools()
	return s
}

// Start serves MCP over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Msg("MCP Server starting Stdio loop")
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Run serves MCP over an arbitrary transport.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}
