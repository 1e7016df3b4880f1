package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ImportPathInput is the input schema for the import_path tool.
type ImportPathInput struct {
	Path string `json:"path" jsonschema:"absolute path of the file or directory to import"`
}

// ImportPathOutput is the output schema for the import_path tool.
type ImportPathOutput struct {
	Completed int               `json:"completed"`
	Skipped   int               `json:"skipped"`
	Failed    int               `json:"failed"`
	Files     []FileResultOutput `json:"files"`
}

// FileResultOutput is the per-file result of an import.
type FileResultOutput struct {
	Path        string `json:"path"`
	Outcome     string `json:"outcome"`
	ContentHash string `json:"content_hash,omitempty"`
	ChunkCount  int    `json:"chunk_count,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ListImportsInput is the input schema for the list_imports tool.
type ListImportsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 20)"`
}

// ListImportsOutput is the output schema for the list_imports tool.
type ListImportsOutput struct {
	Records []ImportRecordOutput `json:"records"`
	Count   int                  `json:"count"`
}

// ImportRecordOutput represents one import record.
type ImportRecordOutput struct {
	ContentHash string `json:"content_hash"`
	FileName    string `json:"file_name"`
	Format      string `json:"format"`
	Status      string `json:"status"`
	ChunkCount  int    `json:"chunk_count"`
	Error       string `json:"error,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// GetStatusInput is the input schema for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output schema for the get_status tool.
type GetStatusOutput struct {
	CurrentCollection string           `json:"current_collection"`
	CompletedImports  int              `json:"completed_imports"`
	Collections       map[string]int64 `json:"collections"`
}

// CheckoutInput is the input schema for the checkout_collection tool.
type CheckoutInput struct {
	Collection string `json:"collection" jsonschema:"name of the collection to switch to"`
}

// CheckoutOutput is the output schema for the checkout_collection tool.
type CheckoutOutput struct {
	CurrentCollection string `json:"current_collection"`
}

// CountDocumentsInput is the input schema for the count_documents tool.
type CountDocumentsInput struct{}

// CountDocumentsOutput is the output schema for the count_documents tool.
type CountDocumentsOutput struct {
	Collection string `json:"collection"`
	Documents  int    `json:"documents"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_path",
		Description: "Import a file or directory into the current collection",
	}, s.handleImportPath)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_imports",
		Description: "List import records for the current collection, most recent first",
	}, s.handleListImports)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_status",
		Description: "Show the current collection and per-collection statistics",
	}, s.handleGetStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "checkout_collection",
		Description: "Switch the current collection",
	}, s.handleCheckout)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "count_documents",
		Description: "Count completed documents in the current collection",
	}, s.handleCountDocuments)
}

// handleImportPath handles the import_path tool invocation.
func (s *Server) handleImportPath(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportPathInput,
) (*mcp.CallToolResult, ImportPathOutput, error) {
	summary, err := s.ports.Importer.ImportPath(ctx, input.Path)
	if err != nil {
		return nil, ImportPathOutput{}, err
	}

	output := ImportPathOutput{
		Completed: summary.Completed,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
		Files:     make([]FileResultOutput, len(summary.Outcomes)),
	}
	for i, o := range summary.Outcomes {
		result := FileResultOutput{
			Path:        o.Path,
			Outcome:     string(o.Kind),
			ContentHash: o.ContentHash,
			ChunkCount:  o.ChunkCount,
		}
		if o.Err != nil {
			result.Error = o.Err.Error()
		}
		output.Files[i] = result
	}

	return nil, output, nil
}

// handleListImports handles the list_imports tool invocation.
func (s *Server) handleListImports(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListImportsInput,
) (*mcp.CallToolResult, ListImportsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	records, err := s.ports.Importer.ListImports(ctx, limit)
	if err != nil {
		return nil, ListImportsOutput{}, err
	}

	output := ListImportsOutput{
		Records: make([]ImportRecordOutput, len(records)),
		Count:   len(records),
	}
	for i, rec := range records {
		output.Records[i] = ImportRecordOutput{
			ContentHash: rec.ContentHash,
			FileName:    rec.FileName,
			Format:      string(rec.Format),
			Status:      string(rec.Status),
			ChunkCount:  rec.ChunkCount,
			Error:       rec.Error,
			CreatedAt:   rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return nil, output, nil
}

// handleGetStatus handles the get_status tool invocation.
func (s *Server) handleGetStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetStatusInput,
) (*mcp.CallToolResult, GetStatusOutput, error) {
	status, err := s.ports.Collections.Status(ctx)
	if err != nil {
		return nil, GetStatusOutput{}, err
	}

	return nil, GetStatusOutput{
		CurrentCollection: status.Current,
		CompletedImports:  status.CompletedImports,
		Collections:       status.Collections,
	}, nil
}

// handleCheckout handles the checkout_collection tool invocation.
func (s *Server) handleCheckout(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckoutInput,
) (*mcp.CallToolResult, CheckoutOutput, error) {
	if err := s.ports.Collections.Checkout(ctx, input.Collection); err != nil {
		return nil, CheckoutOutput{}, err
	}
	return nil, CheckoutOutput{
		CurrentCollection: s.ports.Collections.Current(ctx),
	}, nil
}

// handleCountDocuments handles the count_documents tool invocation.
func (s *Server) handleCountDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CountDocumentsInput,
) (*mcp.CallToolResult, CountDocumentsOutput, error) {
	status, err := s.ports.Collections.Status(ctx)
	if err != nil {
		return nil, CountDocumentsOutput{}, err
	}
	return nil, CountDocumentsOutput{
		Collection: status.Current,
		Documents:  status.CompletedImports,
	}, nil
}
