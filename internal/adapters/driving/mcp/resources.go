package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the URI scheme for search history resources.
	uriScheme = "history://"

	historyListURI = uriScheme + "searches"
)

// historyItem is one line of the history listing.
type historyItem struct {
	Index     int       `json:"index"`
	Label     string    `json:"label"`
	Query     string    `json:"query,omitempty"`
	QueryType string    `json:"query_type"`
	Model     string    `json:"model"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
	URI       string    `json:"uri"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.History == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         historyListURI,
		Name:        "search-history",
		Description: "Searches made in this session, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: historyListURI + "/{index}",
		Name:        "search-history-entry",
		Description: "One past search with its filters, settings and results",
		MIMEType:    "application/json",
	}, s.handleHistoryEntryResource)
}

// handleHistoryResource lists the recorded searches.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries, err := s.ports.History.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	items := make([]historyItem, len(entries))
	for i, e := range entries {
		items[i] = historyItem{
			Index:     i,
			Label:     e.Label(),
			Query:     e.Query,
			QueryType: string(e.QueryType),
			Model:     e.Model.Display(),
			Count:     e.Results.Len(),
			Timestamp: e.Timestamp,
			URI:       historyListURI + "/" + strconv.Itoa(i),
		}
	}
	return jsonResult(req.Params.URI, items)
}

// handleHistoryEntryResource returns one recorded search.
func (s *Server) handleHistoryEntryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	i, ok := extractHistoryIndex(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entry, err := s.ports.History.Get(ctx, i)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, entry)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractHistoryIndex parses the index from history://searches/{index}.
func extractHistoryIndex(uri string) (int, bool) {
	const prefix = historyListURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
