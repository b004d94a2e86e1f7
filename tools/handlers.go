package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/olgasafonova/reddit-wiki-mcp-server/internal/wiki"
	"github.com/olgasafonova/reddit-wiki-mcp-server/metrics"
	"github.com/olgasafonova/reddit-wiki-mcp-server/tracing"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *wiki.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *wiki.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	h.Register(server, AllTools)
}

// Register registers the given tools with the MCP server.
func (h *HandlerRegistry) Register(server *mcp.Server, specs []ToolSpec) {
	registered := 0
	for _, spec := range specs {
		if h.registerByName(server, spec) {
			registered++
		}
	}
	h.logger.Info("Registered tools", "count", registered)
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) bool {
	tool := h.buildTool(spec)
	c := h.client

	switch spec.Method {
	// Read tools
	case "ListPages":
		register(h, server, tool, spec, c.ListPagesMCP)
	case "GetPage":
		register(h, server, tool, spec, c.GetPageMCP)
	case "GetPageSettings":
		register(h, server, tool, spec, c.GetPageSettingsMCP)

	// History tools
	case "GetPageRevisions":
		register(h, server, tool, spec, c.GetPageRevisionsMCP)
	case "GetRevisions":
		register(h, server, tool, spec, c.GetRevisionsMCP)
	case "GetPageDiscussions":
		register(h, server, tool, spec, c.GetPageDiscussionsMCP)
	case "DiffRevisions":
		register(h, server, tool, spec, c.DiffRevisionsMCP)

	// Write and moderation tools
	case "EditPage":
		register(h, server, tool, spec, c.EditPageMCP)
	case "SetPageSettings":
		register(h, server, tool, spec, c.SetPageSettingsMCP)
	case "HideRevision":
		register(h, server, tool, spec, c.HideRevisionMCP)
	case "RevertPage":
		register(h, server, tool, spec, c.RevertPageMCP)
	case "SetPageEditor":
		register(h, server, tool, spec, c.SetPageEditorMCP)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
		return false
	}
	return true
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if !spec.ReadOnly {
		annotations.DestructiveHint = ptr(spec.Destructive)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (res *mcp.CallToolResult, out Result, err error) {
		defer h.recoverPanic(spec.Name, &err)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category, spec.ReadOnly)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		tracing.Finish(span, err)
		if err != nil {
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers and reports them as tool errors.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	switch a := args.(type) {
	case wiki.GetPageArgs:
		attrs = append(attrs, "page", a.Page, "version", a.Version)
	case wiki.GetPageSettingsArgs:
		attrs = append(attrs, "page", a.Page)
	case wiki.SetPageSettingsArgs:
		attrs = append(attrs, "page", a.Page, "perm_level", a.PermLevel, "listed", a.Listed)
	case wiki.GetPageRevisionsArgs:
		attrs = append(attrs, "page", a.Page, "limit", a.Limit)
	case wiki.GetRevisionsArgs:
		attrs = append(attrs, "limit", a.Limit)
	case wiki.GetPageDiscussionsArgs:
		attrs = append(attrs, "page", a.Page, "limit", a.Limit)
	case wiki.DiffRevisionsArgs:
		attrs = append(attrs, "page", a.Page, "from", a.From, "to", a.To)
	case wiki.EditPageArgs:
		attrs = append(attrs, "page", a.Page, "content_bytes", len(a.Content), "reason", a.Reason)
	case wiki.HideRevisionArgs:
		attrs = append(attrs, "page", a.Page, "revision", a.Revision)
	case wiki.RevertPageArgs:
		attrs = append(attrs, "page", a.Page, "revision", a.Revision)
	case wiki.SetPageEditorArgs:
		attrs = append(attrs, "page", a.Page, "username", a.Username, "allow", a.Allow)
	}

	switch r := result.(type) {
	case wiki.ListPagesResult:
		attrs = append(attrs, "subreddit", r.Subreddit, "pages", r.Count)
	case wiki.GetPageResult:
		attrs = append(attrs, "subreddit", r.Subreddit, "revision_id", r.RevisionID)
	case wiki.PageSettingsResult:
		attrs = append(attrs, "subreddit", r.Subreddit, "editors", len(r.Editors))
	case wiki.RevisionsResult:
		attrs = append(attrs, "subreddit", r.Subreddit, "revisions", r.Count)
	case wiki.DiscussionsResult:
		attrs = append(attrs, "subreddit", r.Subreddit, "posts", r.Count)
	case wiki.DiffResult:
		attrs = append(attrs, "subreddit", r.Subreddit, "changed", r.Changed)
	case wiki.WriteResult:
		attrs = append(attrs, "subreddit", r.Subreddit, "success", r.Success)
	}

	h.logger.Info("Tool executed", attrs...)
}
