// Package mcp exposes the deck library over the Model Context Protocol so
// agent clients can browse, import, and export decks.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cluedeck/cluedeck/internal/deck"
	"github.com/cluedeck/cluedeck/internal/library"
	"github.com/cluedeck/cluedeck/internal/storage"
)

// Server wraps the MCP server with cluedeck-specific functionality.
type Server struct {
	server *mcp.Server
	store  *storage.SQLite
	lib    *library.Library
}

// NewServer creates a new MCP server instance backed by the configured
// database.
func NewServer() (*Server, error) {
	store, err := storage.OpenSQLite("")
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "cluedeck",
		Version: "0.1.0",
	}, nil)

	s := &Server{
		server: mcpServer,
		store:  store,
		lib:    library.New(store),
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		_ = s.store.Close()
	}()
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cluedeck_list",
		Description: "List all decks in the library with their scores",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cluedeck_info",
		Description: "Get metadata and score statistics for one deck",
	}, s.handleInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cluedeck_import",
		Description: "Import a CSV clue set as a new deck",
	}, s.handleImport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cluedeck_export_marked",
		Description: "Export every review-flagged clue across all decks as CSV",
	}, s.handleExportMarked)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cluedeck_delete",
		Description: "Delete a deck and its library entry",
	}, s.handleDelete)
}

// Input/Output types for each tool

type ListInput struct{}

type ListOutput struct {
	Decks []DeckEntry `json:"decks"`
}

type DeckEntry struct {
	ContentID      string `json:"contentId"`
	Title          string `json:"title"`
	UploadedAt     string `json:"uploadedAt"`
	Total          int    `json:"total"`
	Marked         int    `json:"marked"`
	Correct        int    `json:"correct"`
	NetScore       int    `json:"netScore"`
	LastReviewedAt string `json:"lastReviewedAt,omitempty"`
}

type InfoInput struct {
	ContentID string `json:"contentId" jsonschema:"required,description=The 8-hex-digit deck content id"`
}

type InfoOutput struct {
	DeckEntry
	ShowID   string `json:"showId,omitempty"`
	AirDate  string `json:"airDate,omitempty"`
	GameType string `json:"gameType,omitempty"`
}

type ImportInput struct {
	Content string `json:"content" jsonschema:"required,description=Raw CSV text with topic/money/question/answer columns"`
	Title   string `json:"title,omitempty" jsonschema:"description=Deck title (defaults to the content id)"`
}

type ImportOutput struct {
	Message   string `json:"message"`
	ContentID string `json:"contentId"`
	Total     int    `json:"total"`
}

type ExportMarkedInput struct{}

type ExportMarkedOutput struct {
	CSV    string `json:"csv"`
	Marked int    `json:"marked"`
}

type DeleteInput struct {
	ContentID string `json:"contentId" jsonschema:"required,description=The 8-hex-digit deck content id to delete"`
}

type DeleteOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	summaries, err := s.lib.ListLibrary(ctx)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("failed to list library: %w", err)
	}

	decks := make([]DeckEntry, 0, len(summaries))
	for _, summary := range summaries {
		decks = append(decks, deckEntryFromSummary(summary))
	}

	return nil, ListOutput{Decks: decks}, nil
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest, input InfoInput) (*mcp.CallToolResult, InfoOutput, error) {
	summary, err := s.lib.FindSummary(ctx, input.ContentID)
	if err != nil {
		return nil, InfoOutput{}, fmt.Errorf("failed to read library: %w", err)
	}
	if summary == nil {
		return nil, InfoOutput{}, fmt.Errorf("deck not found: %s", input.ContentID)
	}

	return nil, InfoOutput{
		DeckEntry: deckEntryFromSummary(*summary),
		ShowID:    summary.SourceMeta.ShowID,
		AirDate:   summary.SourceMeta.AirDate,
		GameType:  summary.SourceMeta.GameType,
	}, nil
}

func (s *Server) handleImport(ctx context.Context, req *mcp.CallToolRequest, input ImportInput) (*mcp.CallToolResult, ImportOutput, error) {
	title := input.Title
	if title == "" {
		title = deck.ContentID(input.Content)
	}

	summary, err := s.lib.Import(ctx, input.Content, title, time.Now())
	if err != nil {
		return nil, ImportOutput{}, fmt.Errorf("failed to import deck: %w", err)
	}

	return nil, ImportOutput{
		Message:   fmt.Sprintf("Imported deck '%s'", summary.Title),
		ContentID: summary.ContentID,
		Total:     summary.Stats.Total,
	}, nil
}

func (s *Server) handleExportMarked(ctx context.Context, req *mcp.CallToolRequest, input ExportMarkedInput) (*mcp.CallToolResult, ExportMarkedOutput, error) {
	rows, err := s.lib.MarkedRows(ctx)
	if err != nil {
		return nil, ExportMarkedOutput{}, fmt.Errorf("failed to collect marked clues: %w", err)
	}

	var sb strings.Builder
	if err := deck.WriteMarkedCSV(&sb, rows); err != nil {
		return nil, ExportMarkedOutput{}, fmt.Errorf("failed to render CSV: %w", err)
	}

	return nil, ExportMarkedOutput{
		CSV:    sb.String(),
		Marked: len(rows),
	}, nil
}

func (s *Server) handleDelete(ctx context.Context, req *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	summary, err := s.lib.FindSummary(ctx, input.ContentID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to read library: %w", err)
	}
	if summary == nil {
		return nil, DeleteOutput{}, fmt.Errorf("deck not found: %s", input.ContentID)
	}

	if err := s.lib.DeleteDeck(ctx, input.ContentID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete deck: %w", err)
	}

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted deck '%s'", summary.Title),
	}, nil
}

func deckEntryFromSummary(summary deck.Summary) DeckEntry {
	entry := DeckEntry{
		ContentID:  summary.ContentID,
		Title:      summary.Title,
		UploadedAt: summary.UploadedAt.Format(time.RFC3339),
		Total:      summary.Stats.Total,
		Marked:     summary.Stats.Marked,
		Correct:    summary.Stats.Correct,
		NetScore:   summary.Stats.NetScore,
	}
	if summary.Stats.LastReviewedAt != nil {
		entry.LastReviewedAt = summary.Stats.LastReviewedAt.Format(time.RFC3339)
	}
	return entry
}
