package mockserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"text/template"
	"time"

	"github.com/giantswarm/mcpbind/pkg/logging"

	"github.com/Masterminds/sprig/v3"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolHandler handles mock tool calls with configurable responses
type ToolHandler struct {
	config ToolConfig
}

// NewToolHandler creates a new mock tool handler
func NewToolHandler(config ToolConfig) *ToolHandler {
	return &ToolHandler{config: config}
}

// HandleCall processes a tool call and returns the configured response
func (h *ToolHandler) HandleCall(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	logging.Debug("MockServer", "tool %s called with args: %v", h.config.Name, args)

	merged := h.mergeWithDefaults(args)

	// Find the first matching response
	var selected *ToolResponse
	for i := range h.config.Responses {
		if h.matchesCondition(h.config.Responses[i].Condition, merged) {
			selected = &h.config.Responses[i]
			break
		}
	}
	if selected == nil {
		return nil, fmt.Errorf("no response configured for tool %s", h.config.Name)
	}

	if selected.Delay != "" {
		if d, err := time.ParseDuration(selected.Delay); err == nil {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if selected.Error != "" {
		msg, err := render(selected.Error, merged)
		if err != nil {
			return nil, fmt.Errorf("failed to render error message: %w", err)
		}
		return mcp.NewToolResultError(msg), nil
	}

	if len(selected.Texts) > 0 {
		res := &mcp.CallToolResult{}
		for _, t := range selected.Texts {
			text, err := render(t, merged)
			if err != nil {
				return nil, fmt.Errorf("failed to render response: %w", err)
			}
			res.Content = append(res.Content, mcp.NewTextContent(text))
		}
		return res, nil
	}

	switch resp := selected.Response.(type) {
	case nil:
		return mcp.NewToolResultText(""), nil
	case string:
		text, err := render(resp, merged)
		if err != nil {
			return nil, fmt.Errorf("failed to render response: %w", err)
		}
		return mcp.NewToolResultText(text), nil
	default:
		data, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("%v", resp)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// mergeWithDefaults merges provided args with default values from input schema
func (h *ToolHandler) mergeWithDefaults(args map[string]any) map[string]any {
	merged := make(map[string]any)

	if properties, ok := h.config.InputSchema["properties"].(map[string]any); ok {
		for name, def := range properties {
			if defMap, ok := def.(map[string]any); ok {
				if v, has := defMap["default"]; has {
					merged[name] = v
				}
			}
		}
	}

	for k, v := range args {
		merged[k] = v
	}
	return merged
}

// matchesCondition checks if the given args match the response condition
func (h *ToolHandler) matchesCondition(condition map[string]any, args map[string]any) bool {
	for key, expected := range condition {
		actual, exists := args[key]
		if !exists || !valuesEqual(expected, actual) {
			return false
		}
	}
	return true
}

// valuesEqual compares two values, treating 5 and 5.0 (YAML vs JSON) as equal.
func valuesEqual(expected, actual any) bool {
	if reflect.DeepEqual(expected, actual) {
		return true
	}
	return fmt.Sprintf("%v", expected) == fmt.Sprintf("%v", actual)
}

// render executes text as a Go template with sprig functions against data.
func render(text string, data map[string]any) (string, error) {
	tmpl, err := template.New("response").Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
