package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_title tool.
type AnalyzeInput struct {
	Owner string `json:"owner" jsonschema:"the property owner's name as it appears in the registry"`
	Scan  bool   `json:"scan,omitempty" jsonschema:"extract text signals from recorded instruments before matching"`
}

// AnalyzeOutput is the output schema for the analyze_title tool.
type AnalyzeOutput struct {
	RunID       string              `json:"run_id"`
	Owner       string              `json:"owner"`
	RiskLevel   string              `json:"risk_level"`
	Summary     domain.Summary      `json:"summary"`
	Flags       []FlagOutput        `json:"flags"`
	Chain       []domain.ChainEntry `json:"chain"`
	Mortgages   EncumbranceOutput   `json:"mortgages"`
	Liens       EncumbranceOutput   `json:"liens"`
	ReviewQueue []string            `json:"review_queue"`
}

// FlagOutput is one risk flag.
type FlagOutput struct {
	Severity    string   `json:"severity"`
	Type        string   `json:"type"`
	Message     string   `json:"message"`
	Instruments []string `json:"instruments"`
}

// EncumbranceOutput summarises one matching pass by instrument number.
type EncumbranceOutput struct {
	Mode      string        `json:"mode"`
	Satisfied []MatchOutput `json:"satisfied"`
	Open      []string      `json:"open"`
	Unmatched []string      `json:"unmatched_discharges"`
}

// MatchOutput is one accepted encumbrance-discharge pair.
type MatchOutput struct {
	Encumbrance string   `json:"encumbrance"`
	Discharge   string   `json:"discharge"`
	Score       int      `json:"score"`
	Confidence  string   `json:"confidence"`
	Reasons     []string `json:"reasons"`
}

// CountInput is the input schema for the count_records tool.
type CountInput struct{}

// CountOutput is the output schema for the count_records tool.
type CountOutput struct {
	Count int `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_title",
		Description: "Build a title package for a property owner: chain of title, open and satisfied encumbrances, risk flags and an overall risk level",
	}, s.handleAnalyze)

	if s.ports.Records != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "count_records",
			Description: "Count the registry records held in the local snapshot",
		}, s.handleCount)
	}
}

// handleAnalyze handles the analyze_title tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	pkg, err := s.ports.Title.Analyze(ctx, domain.AnalyzeRequest{Owner: input.Owner, Scan: input.Scan})
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	return nil, toOutput(pkg), nil
}

// handleCount handles the count_records tool invocation.
func (s *Server) handleCount(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CountInput,
) (*mcp.CallToolResult, CountOutput, error) {
	if s.ports.Records == nil {
		return nil, CountOutput{}, errors.New("record snapshot not configured")
	}
	n, err := s.ports.Records.Count(ctx)
	if err != nil {
		return nil, CountOutput{}, err
	}
	return nil, CountOutput{Count: n}, nil
}

func toOutput(pkg *domain.TitlePackage) AnalyzeOutput {
	out := AnalyzeOutput{
		RunID:       pkg.RunID,
		Owner:       pkg.Owner,
		RiskLevel:   string(pkg.Summary.RiskLevel),
		Summary:     pkg.Summary,
		Flags:       make([]FlagOutput, len(pkg.Flags)),
		Chain:       pkg.Chain,
		Mortgages:   toEncumbranceOutput(pkg.Mortgages),
		Liens:       toEncumbranceOutput(pkg.Liens),
		ReviewQueue: pkg.ReviewQueue,
	}
	if out.Chain == nil {
		out.Chain = []domain.ChainEntry{}
	}
	if out.ReviewQueue == nil {
		out.ReviewQueue = []string{}
	}
	for i, f := range pkg.Flags {
		out.Flags[i] = FlagOutput{
			Severity:    string(f.Severity),
			Type:        string(f.Type),
			Message:     f.Message,
			Instruments: instruments(f.Documents),
		}
	}
	return out
}

func toEncumbranceOutput(a domain.EncumbranceAnalysis) EncumbranceOutput {
	out := EncumbranceOutput{
		Mode:      string(a.Mode),
		Satisfied: make([]MatchOutput, len(a.Satisfied)),
		Open:      instruments(a.Open),
		Unmatched: instruments(a.UnmatchedDischarges),
	}
	for i, m := range a.Satisfied {
		discharge := ""
		if m.Discharge != nil {
			discharge = instrumentOf(*m.Discharge)
		}
		reasons := m.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		out.Satisfied[i] = MatchOutput{
			Encumbrance: instrumentOf(m.Encumbrance),
			Discharge:   discharge,
			Score:       m.Score,
			Confidence:  string(m.Confidence),
			Reasons:     reasons,
		}
	}
	return out
}

func instruments(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = instrumentOf(d)
	}
	return out
}

func instrumentOf(d domain.Document) string {
	if d.InstrumentNumber != "" {
		return d.InstrumentNumber
	}
	return d.RecordKey()
}
