package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var categoryNames = []string{"eat", "drink", "meds", "other", "symptom"}

func registerTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(logEntriesTool(), logEntriesHandler(svc))
	srv.AddTool(logSymptomTool(), logSymptomHandler(svc))
	srv.AddTool(updateEntryTool(), updateEntryHandler(svc))
	srv.AddTool(deleteEntryTool(), deleteEntryHandler(svc))
	srv.AddTool(searchEntriesTool(), searchEntriesHandler(svc))
	srv.AddTool(recentEntriesTool(), recentEntriesHandler(svc))
	srv.AddTool(suggestLabelsTool(), suggestLabelsHandler(svc))
	srv.AddTool(exportEntriesTool(), exportEntriesHandler(svc))
	srv.AddTool(reportTool(), reportHandler(svc))
}

func logEntriesTool() mcp.Tool {
	return mcp.NewTool(
		"log_entries",
		mcp.WithDescription("Log one or more eat, drink, meds or other entries at the same time."),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category of every entry."),
			mcp.Enum(categoryNames[:4]...),
		),
		mcp.WithArray("labels",
			mcp.Required(),
			mcp.Description("What was eaten, drunk or taken, one entry per item."),
			mcp.WithStringItems(),
		),
		mcp.WithString("at",
			mcp.Description("Optional RFC3339 timestamp or local YYYY-MM-DDTHH:mm. Defaults to now."),
		),
	)
}

func logEntriesHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args LogEntriesOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		created, err := svc.LogEntries(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": created,
			"count":   len(created),
		})
	}
}

func logSymptomTool() mcp.Tool {
	return mcp.NewTool(
		"log_symptom",
		mcp.WithDescription("Log a symptom with a severity from 1 (mild) to 10 (worst)."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Symptom name, for example headache."),
		),
		mcp.WithNumber("severity",
			mcp.Required(),
			mcp.Description("Severity from 1 to 10."),
			mcp.Min(1),
			mcp.Max(10),
		),
		mcp.WithString("at",
			mcp.Description("Optional RFC3339 timestamp or local YYYY-MM-DDTHH:mm. Defaults to now."),
		),
		mcp.WithString("notes",
			mcp.Description("Optional notes."),
		),
	)
}

func logSymptomHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		severity, err := request.RequireInt("severity")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.LogSymptom(ctx, LogSymptomOptions{
			Name:     name,
			Severity: severity,
			At:       request.GetString("at", ""),
			Notes:    request.GetString("notes", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func updateEntryTool() mcp.Tool {
	return mcp.NewTool(
		"update_entry",
		mcp.WithDescription("Change the label, notes, time or severity of an entry. The category can not change."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to update."),
		),
		mcp.WithString("label",
			mcp.Description("New label."),
		),
		mcp.WithString("notes",
			mcp.Description("New notes. An empty string clears them."),
		),
		mcp.WithString("at",
			mcp.Description("New RFC3339 timestamp or local YYYY-MM-DDTHH:mm."),
		),
		mcp.WithNumber("severity",
			mcp.Description("New severity, symptoms only."),
			mcp.Min(1),
			mcp.Max(10),
		),
	)
}

func updateEntryHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args UpdateEntryOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.UpdateEntry(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func deleteEntryTool() mcp.Tool {
	return mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)
}

func deleteEntryHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		deleted, err := svc.DeleteEntry(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"deleted": deleted,
		})
	}
}

func searchEntriesTool() mcp.Tool {
	return mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entry labels and notes, newest first."),
		mcp.WithString("query",
			mcp.Description("Case-insensitive search text. Empty matches everything."),
		),
		mcp.WithString("category",
			mcp.Description("Only return this category."),
			mcp.Enum(categoryNames...),
		),
		mcp.WithString("since",
			mcp.Description("Only return entries inside this window, for example 3d or 1w2d."),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of entries to return (default %d).", DefaultSearchLimit)),
			mcp.Min(1),
			mcp.Max(500),
		),
	)
}

func searchEntriesHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := SearchOptions{
			Query:    request.GetString("query", ""),
			Category: request.GetString("category", ""),
			Since:    request.GetString("since", ""),
			Limit:    request.GetInt("limit", DefaultSearchLimit),
		}
		results, err := svc.SearchEntries(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   opts.Query,
			"limit":   opts.Limit,
			"results": results,
			"count":   len(results),
		})
	}
}

func recentEntriesTool() mcp.Tool {
	return mcp.NewTool(
		"recent_entries",
		mcp.WithDescription("The most recent entries by time, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 10)."),
			mcp.Min(1),
			mcp.Max(500),
		),
	)
}

func recentEntriesHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		results, err := svc.RecentEntries(ctx, request.GetInt("limit", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"results": results,
			"count":   len(results),
		})
	}
}

func suggestLabelsTool() mcp.Tool {
	return mcp.NewTool(
		"suggest_labels",
		mcp.WithDescription("Labels used before in a category, best fuzzy matches first."),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category to draw labels from."),
			mcp.Enum(categoryNames...),
		),
		mcp.WithString("query",
			mcp.Description("Partial label to match. Empty returns the most recently used labels."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of labels (default 5)."),
			mcp.Min(1),
			mcp.Max(50),
		),
	)
}

func suggestLabelsHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := request.RequireString("category")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		query := request.GetString("query", "")
		labels, err := svc.SuggestLabels(ctx, category, query, request.GetInt("limit", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"category": category,
			"query":    query,
			"labels":   labels,
		})
	}
}

func exportEntriesTool() mcp.Tool {
	return mcp.NewTool(
		"export_entries",
		mcp.WithDescription("Export every entry as the versioned JSON backup document."),
	)
}

func exportEntriesHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := svc.ExportEntries(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(doc), nil
	}
}

func reportTool() mcp.Tool {
	return mcp.NewTool(
		"report",
		mcp.WithDescription("Summarize entries per category over a recent window."),
		mcp.WithString("window",
			mcp.Description("Window ending now, for example 3d or 1w (default 1w)."),
		),
	)
}

func reportHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.Report(ctx, request.GetString("window", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
