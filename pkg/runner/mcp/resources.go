package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/symptoms/pkg/entry"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCategoriesResource(srv)
	registerRecentResource(srv, svc)
	registerEntryTemplate(srv, svc)
}

func registerCategoriesResource(srv *server.MCPServer) {
	resource := mcp.NewResource(
		"symptoms://categories",
		"Categories",
		mcp.WithResourceDescription("Entry categories with their display label and color."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		type category struct {
			Name string `json:"name"`
			entry.CategoryInfo
			HasSeverity bool `json:"hasSeverity"`
		}
		out := make([]category, 0, len(entry.AllCategories()))
		for _, c := range entry.AllCategories() {
			out = append(out, category{Name: string(c), CategoryInfo: entry.Categories[c], HasSeverity: c.IsSymptom()})
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"categories": out})
	})
}

func registerRecentResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"symptoms://entries/recent",
		"Recent Entries",
		mcp.WithResourceDescription("The ten most recent entries by time."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := svc.RecentEntries(ctx, 0)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"count":   len(entries),
			"entries": entries,
		})
	})
}

func registerEntryTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"symptoms://entries/{id}",
		"Entry Details",
		mcp.WithTemplateDescription("Detailed information about a single entry."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("entry id is required")
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"entry": dto})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
