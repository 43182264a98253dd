// Package result turns MCP response envelopes into the values returned by
// bound capabilities.
//
// A single text item is unwrapped to its string, everything else (no items,
// several items, a single non-text item) is returned as the content slice
// with each item's concrete type intact.
package result

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool normalizes the result of a tool call. The returned value is either a
// string or a []mcp.Content (never nil).
func Tool(res *mcp.CallToolResult) any {
	if res == nil || len(res.Content) == 0 {
		return []mcp.Content{}
	}
	if len(res.Content) == 1 {
		if text, ok := textOf(res.Content[0]); ok {
			return text
		}
	}
	return res.Content
}

// Resource normalizes the result of a resource read. A single entry yields
// its text, or its blob when it carries no text. Otherwise the contents slice
// is returned (never nil).
func Resource(res *mcp.ReadResourceResult) any {
	if res == nil || len(res.Contents) == 0 {
		return []mcp.ResourceContents{}
	}
	if len(res.Contents) == 1 {
		switch c := res.Contents[0].(type) {
		case mcp.TextResourceContents:
			return c.Text
		case *mcp.TextResourceContents:
			return c.Text
		case mcp.BlobResourceContents:
			return c.Blob
		case *mcp.BlobResourceContents:
			return c.Blob
		}
	}
	return res.Contents
}

// Prompt returns the rendered messages of a prompt (never nil).
func Prompt(res *mcp.GetPromptResult) []mcp.PromptMessage {
	if res == nil || res.Messages == nil {
		return []mcp.PromptMessage{}
	}
	return res.Messages
}

// Text concatenates the text items of a tool result, one per line. It is
// used for error messages of failed tool calls.
func Text(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	var parts []string
	for _, c := range res.Content {
		if text, ok := textOf(c); ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func textOf(c mcp.Content) (string, bool) {
	switch t := c.(type) {
	case mcp.TextContent:
		return t.Text, true
	case *mcp.TextContent:
		return t.Text, true
	}
	return "", false
}
