package bind

import (
	"context"
	"runtime"

	"github.com/giantswarm/mcpbind/pkg/bridge"
	"github.com/giantswarm/mcpbind/pkg/logging"
	"github.com/giantswarm/mcpbind/pkg/result"
	"github.com/giantswarm/mcpbind/pkg/signature"

	"github.com/mark3labs/mcp-go/mcp"
)

// Member is the outcome of resolving a name on a Server. Exactly one of
// Tool, Resource or Prompt is set, according to Class. For resources the
// value read during resolution is in Value.
type Member struct {
	Class    Class
	Tool     *Tool
	Resource *Resource
	Prompt   *Prompt
	Value    any
}

// Tool is a bound remote tool.
type Tool struct {
	srv   *Server
	entry *toolEntry
}

// Name returns the local name the tool is exposed under.
func (t *Tool) Name() string { return t.entry.local }

// NativeName returns the name the server advertises.
func (t *Tool) NativeName() string { return t.entry.native }

// Description returns the server-provided documentation.
func (t *Tool) Description() string { return t.entry.tool.Description }

// Signature returns the parameters synthesized from the input schema.
func (t *Tool) Signature() *signature.Signature { return t.entry.signature() }

// Definition returns the tool as advertised.
func (t *Tool) Definition() mcp.Tool { return t.entry.tool }

// Call invokes the tool and blocks until the server answers.
//
// Arguments may use native or local parameter names. Nil values are dropped
// before transmission and omitted optional parameters receive their schema
// defaults. A single text result is returned as a string, anything else as
// the []mcp.Content slice.
func (t *Tool) Call(args map[string]any) (any, error) {
	defer runtime.KeepAlive(t.srv)
	d := t.srv.d

	bound, err := t.Signature().Bind(args)
	if err != nil {
		return nil, &ValidationError{Name: t.Name(), Err: err}
	}

	logging.Debug("Dispatcher", "calling tool %s as %s", t.Name(), t.NativeName())
	res, err := bridge.Do(d.bridge, func(ctx context.Context) (*mcp.CallToolResult, error) {
		return d.client.CallTool(ctx, t.NativeName(), bound)
	})
	if err != nil {
		return nil, &ToolError{Name: t.Name(), Err: err}
	}
	if res != nil && res.IsError {
		return nil, &ToolError{Name: t.Name(), Message: result.Text(res)}
	}
	return result.Tool(res), nil
}

// Resource is a bound remote resource.
type Resource struct {
	srv   *Server
	entry *resourceEntry
}

// Name returns the local name the resource is exposed under.
func (r *Resource) Name() string { return r.entry.local }

// NativeName returns the name the server advertises.
func (r *Resource) NativeName() string { return r.entry.native }

// URI returns the resource location.
func (r *Resource) URI() string { return r.entry.resource.URI }

// Description returns the server-provided documentation.
func (r *Resource) Description() string { return r.entry.resource.Description }

// MIMEType returns the advertised MIME type, if any.
func (r *Resource) MIMEType() string { return r.entry.resource.MIMEType }

// Read fetches the resource. Every call goes to the server; values are not
// cached. A single entry is returned as its text (or blob), anything else as
// the []mcp.ResourceContents slice.
func (r *Resource) Read() (any, error) {
	defer runtime.KeepAlive(r.srv)
	d := r.srv.d

	logging.Debug("Dispatcher", "reading resource %s (%s)", r.Name(), r.URI())
	res, err := bridge.Do(d.bridge, func(ctx context.Context) (*mcp.ReadResourceResult, error) {
		return d.client.ReadResource(ctx, r.URI())
	})
	if err != nil {
		return nil, &ResourceError{Name: r.Name(), URI: r.URI(), Err: err}
	}
	return result.Resource(res), nil
}

// Prompt is a bound prompt template.
type Prompt struct {
	srv   *Server
	entry *promptEntry
}

// Name returns the local name the prompt is exposed under.
func (p *Prompt) Name() string { return p.entry.local }

// NativeName returns the name the server advertises.
func (p *Prompt) NativeName() string { return p.entry.native }

// Description returns the server-provided documentation.
func (p *Prompt) Description() string { return p.entry.prompt.Description }

// Signature returns the prompt's arguments, all string typed.
func (p *Prompt) Signature() *signature.Signature { return p.entry.signature() }

// Render asks the server to fill in the template and returns the messages.
func (p *Prompt) Render(args map[string]any) ([]mcp.PromptMessage, error) {
	defer runtime.KeepAlive(p.srv)
	d := p.srv.d

	bound, err := p.Signature().Bind(args)
	if err != nil {
		return nil, &ValidationError{Name: p.Name(), Err: err}
	}

	logging.Debug("Dispatcher", "rendering prompt %s as %s", p.Name(), p.NativeName())
	res, err := bridge.Do(d.bridge, func(ctx context.Context) (*mcp.GetPromptResult, error) {
		return d.client.GetPrompt(ctx, p.NativeName(), bound)
	})
	if err != nil {
		return nil, &PromptError{Name: p.Name(), Err: err}
	}
	return result.Prompt(res), nil
}
