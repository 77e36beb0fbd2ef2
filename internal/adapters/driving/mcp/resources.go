package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/titlescan/internal/adapters/driving/report"
	"github.com/custodia-labs/titlescan/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for titlescan resources.
	uriScheme = "titlescan://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the effective settings.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective matcher, extraction, scan and risk settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	// Template for a name-only text report.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "owners/{owner}/report",
		Name:        "owner-report",
		Description: "Plain-text title report for an owner, matched on names only",
		MIMEType:    "text/plain",
	}, s.handleReportResource)
}

// handleSettingsResource returns every setting with its default.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	values := []domain.SettingValue{}
	if s.ports.Settings != nil {
		values = s.ports.Settings.Values()
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleReportResource renders the report for the owner in the URI.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	owner := extractOwner(req.Params.URI)
	if owner == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	pkg, err := s.ports.Title.Analyze(ctx, domain.AnalyzeRequest{Owner: owner})
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", owner, err)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, pkg, report.PlainStyles()); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     buf.String(),
		}},
	}, nil
}

// extractOwner extracts the owner from titlescan://owners/{owner}/report.
func extractOwner(uri string) string {
	const prefix = uriScheme + "owners/"
	const suffix = "/report"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	owner, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(owner)
}
