package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/matzehuels/cliptower/pkg/editor"
	"github.com/matzehuels/cliptower/pkg/errors"
	tlio "github.com/matzehuels/cliptower/pkg/io"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/placement/snap"
	"github.com/matzehuels/cliptower/pkg/render/dot"
	"github.com/matzehuels/cliptower/pkg/store"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

const (
	timelineArgDesc = "Timeline document as JSON: {\"tracks\": [{\"id\", \"items\": [{\"id\", \"type\", \"from\", \"durationInFrames\", ...}]}]}"
	dragArgDesc     = "Drag script as JSON: {\"itemId\" or \"newItem\", \"grabOffsetX\", \"grabOffsetY\", \"events\": [{\"x\", \"y\"}], \"cancel\"}"
)

type editResult struct {
	Applied  bool            `json:"applied"`
	Action   any             `json:"action,omitempty"`
	Previews any             `json:"previews,omitempty"`
	Timeline json.RawMessage `json:"timeline"`
}

func (s *Server) registerEditTools() {
	s.add(mcp.NewTool("validate_timeline",
		mcp.WithDescription("Check a timeline document for overlapping items, bad frames and duplicate ids."),
		mcp.WithString("timeline", mcp.Required(), mcp.Description(timelineArgDesc)),
	), s.validateTimeline)

	s.add(mcp.NewTool("preview_drag",
		mcp.WithDescription("Compute where a dragged item would land for each pointer event, without changing the timeline."),
		mcp.WithString("timeline", mcp.Required(), mcp.Description(timelineArgDesc)),
		mcp.WithString("drag", mcp.Required(), mcp.Description(dragArgDesc)),
	), s.previewDrag)

	s.add(mcp.NewTool("apply_drag",
		mcp.WithDescription("Replay a drag script and return the resulting timeline and drop action."),
		mcp.WithString("timeline", mcp.Required(), mcp.Description(timelineArgDesc)),
		mcp.WithString("drag", mcp.Required(), mcp.Description(dragArgDesc)),
	), s.applyDrag)

	s.add(mcp.NewTool("split_item",
		mcp.WithDescription("Split an item in two at an absolute frame strictly inside it."),
		mcp.WithString("timeline", mcp.Required(), mcp.Description(timelineArgDesc)),
		mcp.WithString("item_id", mcp.Required(), mcp.Description("Item to split")),
		mcp.WithNumber("frame", mcp.Required(), mcp.Description("Absolute timeline frame of the cut")),
	), s.splitItem)

	s.add(mcp.NewTool("trim_item",
		mcp.WithDescription("Move the left or right edge of an item, snapping and clamping like an interactive trim."),
		mcp.WithString("timeline", mcp.Required(), mcp.Description(timelineArgDesc)),
		mcp.WithString("item_id", mcp.Required(), mcp.Description("Item to trim")),
		mcp.WithString("edge", mcp.Required(), mcp.Enum(string(snap.EdgeLeft), string(snap.EdgeRight)), mcp.Description("Edge to move")),
		mcp.WithNumber("frame", mcp.Required(), mcp.Description("Target frame for the edge")),
	), s.trimItem)

	s.add(mcp.NewTool("render_dot",
		mcp.WithDescription("Render a timeline as Graphviz DOT source for inspection."),
		mcp.WithString("timeline", mcp.Required(), mcp.Description(timelineArgDesc)),
		mcp.WithBoolean("detailed", mcp.Description("Include payload details in item labels")),
	), s.renderDOT)
}

func timelineArg(req mcp.CallToolRequest) (*timeline.Timeline, error) {
	raw, err := req.RequireString("timeline")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "timeline")
	}
	return tlio.UnmarshalTimeline([]byte(raw))
}

func scriptArg(req mcp.CallToolRequest) (*editor.Script, error) {
	raw, err := req.RequireString("drag")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "drag")
	}
	return tlio.UnmarshalScript([]byte(raw))
}

func frameArg(req mcp.CallToolRequest) (int, error) {
	f, err := req.RequireFloat("frame")
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "frame")
	}
	return int(f), nil
}

func encode(tl *timeline.Timeline) (json.RawMessage, error) {
	data, err := tlio.MarshalTimeline(tl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode timeline")
	}
	return data, nil
}

func (s *Server) validateTimeline(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tl, err := timelineArg(req)
	if err != nil {
		return nil, err
	}
	return jsonResult(map[string]int{"tracks": len(tl.Tracks), "items": tl.ItemCount(), "end": tl.End()})
}

func (s *Server) previewDrag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tl, err := timelineArg(req)
	if err != nil {
		return nil, err
	}
	sc, err := scriptArg(req)
	if err != nil {
		return nil, err
	}
	d, err := sc.Drag(tl)
	if err != nil {
		return nil, err
	}
	previews := make([]placement.Preview, len(sc.Events))
	for i, p := range sc.Events {
		previews[i] = s.Editor.Preview(ctx, tl, d, p)
	}
	return jsonResult(previews)
}

func (s *Server) applyDrag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tl, err := timelineArg(req)
	if err != nil {
		return nil, err
	}
	sc, err := scriptArg(req)
	if err != nil {
		return nil, err
	}
	res, err := s.Editor.Replay(ctx, tl, sc)
	if err != nil {
		return nil, err
	}
	body, err := encode(res.Timeline)
	if err != nil {
		return nil, err
	}
	out := editResult{Applied: res.Action != nil, Previews: res.Previews, Timeline: body}
	if res.Action != nil {
		out.Action = res.Action
	}
	return jsonResult(out)
}

func (s *Server) splitItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tl, err := timelineArg(req)
	if err != nil {
		return nil, err
	}
	id, err := req.RequireString("item_id")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "item_id")
	}
	frame, err := frameArg(req)
	if err != nil {
		return nil, err
	}
	next, ok, err := s.Editor.Split(ctx, tl, id, frame)
	if err != nil {
		return nil, err
	}
	body, err := encode(next)
	if err != nil {
		return nil, err
	}
	return jsonResult(editResult{Applied: ok, Timeline: body})
}

func (s *Server) trimItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tl, err := timelineArg(req)
	if err != nil {
		return nil, err
	}
	id, err := req.RequireString("item_id")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "item_id")
	}
	edge := snap.Edge(req.GetString("edge", ""))
	if edge != snap.EdgeLeft && edge != snap.EdgeRight {
		return nil, errors.New(errors.ErrCodeInvalidInput, "edge must be left or right, got %q", edge)
	}
	frame, err := frameArg(req)
	if err != nil {
		return nil, err
	}
	next, ok, err := s.Editor.Trim(ctx, tl, placement.TrimRequest{ItemID: id, Edge: edge, Frame: frame})
	if err != nil {
		return nil, err
	}
	body, err := encode(next)
	if err != nil {
		return nil, err
	}
	return jsonResult(editResult{Applied: ok, Timeline: body})
}

func (s *Server) renderDOT(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tl, err := timelineArg(req)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(dot.ToDOT(tl, dot.Options{Detailed: req.GetBool("detailed", false)})), nil
}

func (s *Server) registerDocumentTools() {
	s.add(mcp.NewTool("list_documents",
		mcp.WithDescription("List stored timeline documents, most recently updated first."),
	), s.listDocuments)

	s.add(mcp.NewTool("load_document",
		mcp.WithDescription("Load a stored timeline document by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
	), s.loadDocument)

	s.add(mcp.NewTool("save_document",
		mcp.WithDescription("Store a timeline document. Omit id to create a new one."),
		mcp.WithString("id", mcp.Description("Document id to replace")),
		mcp.WithString("name", mcp.Description("Display name")),
		mcp.WithString("timeline", mcp.Required(), mcp.Description(timelineArgDesc)),
	), s.saveDocument)
}

func (s *Server) listDocuments(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []store.Summary{}
	}
	return jsonResult(list)
}

func (s *Server) loadDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "id")
	}
	doc, err := s.Store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := tlio.MarshalTimeline(doc.Timeline)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode timeline")
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) saveDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tl, err := timelineArg(req)
	if err != nil {
		return nil, err
	}
	doc := &store.Document{ID: req.GetString("id", ""), Name: req.GetString("name", ""), Timeline: tl}
	if err := s.Store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return jsonResult(map[string]any{"id": doc.ID, "name": doc.Name, "updatedAt": doc.UpdatedAt})
}
