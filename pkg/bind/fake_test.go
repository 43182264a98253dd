package bind

import (
	"context"
	"errors"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
)

type toolCall struct {
	Name string
	Args map[string]any
}

// fakeClient records what the Server sends and answers from canned data.
type fakeClient struct {
	tools     []mcp.Tool
	resources []mcp.Resource
	prompts   []mcp.Prompt

	toolResults map[string]*mcp.CallToolResult
	toolErr     error
	readResults map[string]*mcp.ReadResourceResult
	readErr     error
	listErr     error

	mu          sync.Mutex
	calls       []toolCall
	reads       []string
	promptCalls []toolCall
	closes      int
}

func (f *fakeClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	return f.tools, f.listErr
}

func (f *fakeClient) ListResources(ctx context.Context) ([]mcp.Resource, error) {
	return f.resources, nil
}

func (f *fakeClient) ListPrompts(ctx context.Context) ([]mcp.Prompt, error) {
	return f.prompts, nil
}

func (f *fakeClient) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, toolCall{Name: name, Args: args})
	f.mu.Unlock()
	if f.toolErr != nil {
		return nil, f.toolErr
	}
	if res, ok := f.toolResults[name]; ok {
		return res, nil
	}
	return mcp.NewToolResultText("ok"), nil
}

func (f *fakeClient) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	f.mu.Lock()
	f.reads = append(f.reads, uri)
	f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	if res, ok := f.readResults[uri]; ok {
		return res, nil
	}
	return &mcp.ReadResourceResult{}, nil
}

func (f *fakeClient) GetPrompt(ctx context.Context, name string, args map[string]any) (*mcp.GetPromptResult, error) {
	f.mu.Lock()
	f.promptCalls = append(f.promptCalls, toolCall{Name: name, Args: args})
	f.mu.Unlock()
	return mcp.NewGetPromptResult("", []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent("rendered "+name)),
	}), nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	if f.closes > 1 {
		return errors.New("already closed")
	}
	return nil
}

func (f *fakeClient) recordedCalls() []toolCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]toolCall(nil), f.calls...)
}

func (f *fakeClient) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

// capsClient adds handshake capabilities to fakeClient.
type capsClient struct {
	*fakeClient
	caps mcp.ServerCapabilities
}

func (c *capsClient) ServerCapabilities() mcp.ServerCapabilities { return c.caps }

func rawTool(name, description, schema string) mcp.Tool {
	return mcp.NewToolWithRawSchema(name, description, []byte(schema))
}

func textResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{Contents: []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "text/plain", Text: text},
	}}
}
