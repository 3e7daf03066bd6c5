package mcp

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	toolRunSimulation     = "run_risk_simulation"
	toolSimulateRoadmap   = "simulate_roadmap"
	toolCompareRiskLevels = "compare_risk_levels"

	maxRiskLevels = 50
)

func (s *Server) registerTools() {
	mcp.AddTool(s.server, RunSimulationTool(), s.handleRunSimulation)
	mcp.AddTool(s.server, SimulateRoadmapTool(), s.handleSimulateRoadmap)
	mcp.AddTool(s.server, CompareRiskLevelsTool(), s.handleCompareRiskLevels)
}

// RunSimulationTool defines the MCP tool for a single baseline simulation.
func RunSimulationTool() *mcp.Tool {
	schema := mustSchemaFor[RunSimulationInput]()
	positive(schema, "base_cost")
	positive(schema, "base_time_days")
	atLeast(schema, "risk_factor", 0)
	atLeast(schema, "iterations", 1)
	atLeast(schema, "bins", 1)

	return &mcp.Tool{
		Name: toolRunSimulation,
		Description: "Run a Monte-Carlo simulation of project cost and duration around the given baselines. " +
			"Each draw samples cost and time independently from a triangular distribution (80% of baseline, baseline, " +
			"baseline * (1 + risk_factor/50)). A draw succeeds when both stay within 120% of their baselines.\n\n" +
			"STRICT GUARDRAIL: If this tool fails, report the error. DO NOT invent probabilities or ranges.",
		InputSchema: schema,
	}
}

// SimulateRoadmapTool defines the MCP tool that derives baselines from itemized roadmap costs.
func SimulateRoadmapTool() *mcp.Tool {
	schema := mustSchemaFor[SimulateRoadmapInput]()
	atLeast(schema, "risk_score", 0)
	positive(schema, "horizon_days")
	atLeast(schema, "iterations", 1)

	return &mcp.Tool{
		Name: toolSimulateRoadmap,
		Description: "Simulate a roadmap: the cost baseline is the sum of the items' estimated costs and the time " +
			"baseline is horizon_days (default 90). Use this when the user has a list of planned work items with costs.",
		InputSchema: schema,
	}
}

// CompareRiskLevelsTool defines the MCP tool for a risk sensitivity sweep.
func CompareRiskLevelsTool() *mcp.Tool {
	schema := mustSchemaFor[CompareRiskLevelsInput]()
	positive(schema, "base_cost")
	positive(schema, "base_time_days")
	atLeast(schema, "iterations", 1)
	if p, ok := schema.Properties["risk_factors"]; ok {
		p.MinItems = ptr(1)
		p.MaxItems = ptr(maxRiskLevels)
	}

	return &mcp.Tool{
		Name: toolCompareRiskLevels,
		Description: "Compare the probability of success and expected cost/time of the same baselines across several " +
			"risk factors. Each level is simulated independently with a reproducible seed.",
		InputSchema: schema,
	}
}

func mustSchemaFor[T any]() *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("invalid tool input type: %v", err))
	}
	return schema
}

func positive(schema *jsonschema.Schema, field string) {
	if p, ok := schema.Properties[field]; ok {
		p.ExclusiveMinimum = ptr(0.0)
	}
}

func atLeast(schema *jsonschema.Schema, field string, min float64) {
	if p, ok := schema.Properties[field]; ok {
		p.Minimum = ptr(min)
	}
}

func ptr[T any](v T) *T {
	return &v
}
