package bind

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/giantswarm/mcpbind/pkg/bridge"
	"github.com/giantswarm/mcpbind/pkg/logging"
	"github.com/giantswarm/mcpbind/pkg/mcpclient"
	"github.com/giantswarm/mcpbind/pkg/shutdown"
	pkgstrings "github.com/giantswarm/mcpbind/pkg/strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"
)

// Client is the part of an MCP client a Server needs. An initialised
// mcpclient.Client satisfies it.
type Client interface {
	ListTools(ctx context.Context) ([]mcp.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
	ListResources(ctx context.Context) ([]mcp.Resource, error)
	ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error)
	ListPrompts(ctx context.Context) ([]mcp.Prompt, error)
	GetPrompt(ctx context.Context, name string, args map[string]any) (*mcp.GetPromptResult, error)
	Close() error
}

// capabilityReporter is implemented by clients that know what the server
// advertised during the handshake.
type capabilityReporter interface {
	ServerCapabilities() mcp.ServerCapabilities
}

type options struct {
	initTimeout      time.Duration
	terminateTimeout time.Duration
	joinTimeout      time.Duration
	shutdownHook     bool
}

// Option configures New and Connect.
type Option func(*options)

// InitTimeout bounds connection and handshake in Connect. A non-positive d
// keeps the default.
func InitTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.initTimeout = d
		}
	}
}

// CloseTimeout bounds both the session shutdown and the wait for outstanding
// calls in Close.
func CloseTimeout(d time.Duration) Option {
	return func(o *options) {
		o.terminateTimeout = d
		o.joinTimeout = d
	}
}

// NoShutdownHook keeps the Server out of the process-wide shutdown hooks.
func NoShutdownHook() Option {
	return func(o *options) { o.shutdownHook = false }
}

func defaultOptions() options {
	return options{
		initTimeout:      mcpclient.DefaultInitTimeout,
		terminateTimeout: bridge.DefaultTerminateTimeout,
		joinTimeout:      bridge.DefaultJoinTimeout,
		shutdownHook:     true,
	}
}

// dispatcher holds everything a Server needs. It never points back at the
// Server so that an unreachable Server can be cleaned up.
type dispatcher struct {
	id     string
	client Client
	bridge *bridge.Bridge

	tools     *catalog[toolEntry]
	resources *catalog[resourceEntry]
	prompts   *catalog[promptEntry]

	hook      *shutdown.Handle
	closeOnce sync.Once
}

func (d *dispatcher) close() {
	d.closeOnce.Do(func() {
		logging.Debug("Dispatcher", "closing session %s", d.id)
		if err := d.bridge.Close(); err != nil {
			logging.Debug("Dispatcher", "closing session %s: %v", d.id, err)
		}
		d.hook.Unregister()
	})
}

// Server is the binding surface of one MCP session. Tools, resources and
// prompts are resolved by name with Get. It is safe for concurrent use.
//
// A Server should be closed with Close or by using With. Servers left open
// are closed at process exit by shutdown.Run and, as a best-effort fallback
// with no timing guarantee, when they become unreachable.
type Server struct {
	d       *dispatcher
	cleanup runtime.Cleanup
}

// Connect creates a client for cfg, initialises the session and binds it.
func Connect(ctx context.Context, cfg mcpclient.Config, opts ...Option) (*Server, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c, err := mcpclient.New(cfg)
	if err != nil {
		return nil, &ConfigError{Message: err.Error(), Err: err}
	}

	initCtx, cancel := context.WithTimeout(ctx, o.initTimeout)
	defer cancel()

	logging.Debug("Dispatcher", "connecting to %s", cfg.Target())
	if err := c.Initialize(initCtx); err != nil {
		_ = c.Close()
		return nil, &ConnectionError{Target: cfg.Target(), Err: err}
	}

	s, err := New(ctx, c, opts...)
	if err != nil {
		var connErr *ConnectionError
		if errors.As(err, &connErr) {
			connErr.Target = cfg.Target()
		}
		return nil, err
	}
	return s, nil
}

// New binds an already initialised client. The tool, resource and prompt
// catalogs are fetched once, concurrently. Classes the server does not
// advertise are left empty. The Server takes ownership of c and closes it on
// failure.
func New(ctx context.Context, c Client, opts ...Option) (*Server, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	tools, resources, prompts, err := fetchCatalogs(ctx, c)
	if err != nil {
		_ = c.Close()
		return nil, &ConnectionError{Target: "server", Err: err}
	}

	d := &dispatcher{
		id:        uuid.NewString(),
		client:    c,
		tools:     buildTools(tools),
		resources: buildResources(resources),
		prompts:   buildPrompts(prompts),
	}
	d.bridge = bridge.New(
		bridge.WithName("session "+d.id),
		bridge.WithTerminate(func(context.Context) error { return c.Close() }),
		bridge.WithTerminateTimeout(o.terminateTimeout),
		bridge.WithJoinTimeout(o.joinTimeout),
	)
	if o.shutdownHook {
		d.hook = shutdown.Register("session "+d.id, d.close)
	}

	s := &Server{d: d}
	s.cleanup = runtime.AddCleanup(s, func(d *dispatcher) {
		logging.Debug("Dispatcher", "session %s was not closed, closing it", d.id)
		// Cleanups share one goroutine and close may block for the
		// terminate and join timeouts.
		go d.close()
	}, d)

	logging.Debug("Dispatcher", "bound session %s: %d tools, %d resources, %d prompts",
		d.id, d.tools.names.Len(), d.resources.names.Len(), d.prompts.names.Len())
	return s, nil
}

func fetchCatalogs(ctx context.Context, c Client) ([]mcp.Tool, []mcp.Resource, []mcp.Prompt, error) {
	wantTools, wantResources, wantPrompts := true, true, true
	if r, ok := c.(capabilityReporter); ok {
		caps := r.ServerCapabilities()
		wantTools = caps.Tools != nil
		wantResources = caps.Resources != nil
		wantPrompts = caps.Prompts != nil
	}

	var (
		tools     []mcp.Tool
		resources []mcp.Resource
		prompts   []mcp.Prompt
	)
	g, gctx := errgroup.WithContext(ctx)
	if wantTools {
		g.Go(func() error {
			var err error
			tools, err = c.ListTools(gctx)
			return tolerateUnsupported(ClassTool, err)
		})
	}
	if wantResources {
		g.Go(func() error {
			var err error
			resources, err = c.ListResources(gctx)
			return tolerateUnsupported(ClassResource, err)
		})
	}
	if wantPrompts {
		g.Go(func() error {
			var err error
			prompts, err = c.ListPrompts(gctx)
			return tolerateUnsupported(ClassPrompt, err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return tools, resources, prompts, nil
}

// tolerateUnsupported turns "method not found" replies into an empty class.
func tolerateUnsupported(class Class, err error) error {
	if err == nil {
		return nil
	}
	if isMethodNotFound(err) {
		logging.Debug("Dispatcher", "server does not support listing %ss", class)
		return nil
	}
	return fmt.Errorf("failed to list %ss: %w", class, err)
}

// isMethodNotFound matches the JSON-RPC -32601 error, also when a transport
// only preserves its message.
func isMethodNotFound(err error) bool {
	if errors.Is(err, mcp.ErrMethodNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "method not found")
}

// With connects to cfg, runs fn and closes the Server afterwards, also when
// fn fails or panics.
func With(ctx context.Context, cfg mcpclient.Config, fn func(*Server) error, opts ...Option) error {
	s, err := Connect(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// Scoped is With for an already initialised client.
func Scoped(ctx context.Context, c Client, fn func(*Server) error, opts ...Option) error {
	s, err := New(ctx, c, opts...)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// ID identifies the session in logs.
func (s *Server) ID() string { return s.d.id }

// Get resolves name to a tool, a resource or a prompt, in that order. Both
// the local name (get_weather) and the native name (getWeather) resolve.
// Resources are read during resolution and the value is returned in the
// Member. Unknown names yield a *NotFoundError without contacting the server.
func (s *Server) Get(name string) (Member, error) {
	defer runtime.KeepAlive(s)

	if e, ok := s.lookupTool(name); ok {
		return Member{Class: ClassTool, Tool: e}, nil
	}
	if r, ok := s.lookupResource(name); ok {
		v, err := r.Read()
		if err != nil {
			return Member{}, err
		}
		return Member{Class: ClassResource, Resource: r, Value: v}, nil
	}
	if p, ok := s.lookupPrompt(name); ok {
		return Member{Class: ClassPrompt, Prompt: p}, nil
	}
	return Member{}, s.notFound(name)
}

// Call resolves name and invokes it: tools are called, prompts rendered and
// resources read. Resources take no arguments.
func (s *Server) Call(name string, args map[string]any) (any, error) {
	if t, ok := s.lookupTool(name); ok {
		return t.Call(args)
	}
	if r, ok := s.lookupResource(name); ok {
		for k, v := range args {
			if v != nil {
				return nil, &ValidationError{Name: r.Name(), Err: fmt.Errorf("resource takes no arguments, got %q", k)}
			}
		}
		return r.Read()
	}
	if p, ok := s.lookupPrompt(name); ok {
		return p.Render(args)
	}
	return nil, s.notFound(name)
}

// Tool resolves name among tools only.
func (s *Server) Tool(name string) (*Tool, error) {
	if t, ok := s.lookupTool(name); ok {
		return t, nil
	}
	return nil, s.notFound(name)
}

// Resource resolves name among resources only, without reading it.
func (s *Server) Resource(name string) (*Resource, error) {
	if r, ok := s.lookupResource(name); ok {
		return r, nil
	}
	return nil, s.notFound(name)
}

// Prompt resolves name among prompts only.
func (s *Server) Prompt(name string) (*Prompt, error) {
	if p, ok := s.lookupPrompt(name); ok {
		return p, nil
	}
	return nil, s.notFound(name)
}

// Tools returns every bound tool in the order the server listed them.
func (s *Server) Tools() []*Tool {
	entries := s.d.tools.ordered()
	out := make([]*Tool, 0, len(entries))
	for _, e := range entries {
		out = append(out, &Tool{srv: s, entry: e})
	}
	return out
}

// Resources returns every bound resource in the order the server listed them.
func (s *Server) Resources() []*Resource {
	entries := s.d.resources.ordered()
	out := make([]*Resource, 0, len(entries))
	for _, e := range entries {
		out = append(out, &Resource{srv: s, entry: e})
	}
	return out
}

// Prompts returns every bound prompt in the order the server listed them.
func (s *Server) Prompts() []*Prompt {
	entries := s.d.prompts.ordered()
	out := make([]*Prompt, 0, len(entries))
	for _, e := range entries {
		out = append(out, &Prompt{srv: s, entry: e})
	}
	return out
}

// Names lists every name that resolves, local and native, by class.
type Names struct {
	Tools     []string `json:"tools" yaml:"tools"`
	Resources []string `json:"resources" yaml:"resources"`
	Prompts   []string `json:"prompts" yaml:"prompts"`
}

// Names returns the resolvable names by class, each list sorted.
func (s *Server) Names() Names {
	return Names{
		Tools:     s.d.tools.names.Names(),
		Resources: s.d.resources.names.Names(),
		Prompts:   s.d.prompts.names.Names(),
	}
}

// Describe returns a one-line description of what name resolves to, without
// contacting the server.
func (s *Server) Describe(name string) (string, error) {
	var line, doc string
	if t, ok := s.lookupTool(name); ok {
		line, doc = t.Signature().String(), t.Description()
	} else if r, ok := s.lookupResource(name); ok {
		line, doc = fmt.Sprintf("%s -> %s", r.Name(), r.URI()), r.Description()
		if r.MIMEType() != "" {
			line += " (" + r.MIMEType() + ")"
		}
	} else if p, ok := s.lookupPrompt(name); ok {
		line, doc = p.Signature().String(), p.Description()
	} else {
		return "", s.notFound(name)
	}
	if doc == "" {
		return line, nil
	}
	return line + " // " + pkgstrings.FirstLine(doc), nil
}

// Close terminates the session. It is safe to call more than once and from
// several goroutines. It always returns nil; teardown failures are logged.
func (s *Server) Close() error {
	s.cleanup.Stop()
	s.d.close()
	return nil
}

// Closed reports whether the session has been closed.
func (s *Server) Closed() bool {
	return s.d.bridge.Closed()
}

func (s *Server) lookupTool(name string) (*Tool, bool) {
	if _, e, ok := s.d.tools.lookup(name); ok {
		return &Tool{srv: s, entry: e}, true
	}
	return nil, false
}

func (s *Server) lookupResource(name string) (*Resource, bool) {
	if _, e, ok := s.d.resources.lookup(name); ok {
		return &Resource{srv: s, entry: e}, true
	}
	return nil, false
}

func (s *Server) lookupPrompt(name string) (*Prompt, bool) {
	if _, e, ok := s.d.prompts.lookup(name); ok {
		return &Prompt{srv: s, entry: e}, true
	}
	return nil, false
}

func (s *Server) notFound(name string) *NotFoundError {
	n := s.Names()
	return &NotFoundError{Name: name, Tools: n.Tools, Resources: n.Resources, Prompts: n.Prompts}
}
