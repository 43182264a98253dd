package bind

import (
	"sync"

	"github.com/giantswarm/mcpbind/pkg/logging"
	"github.com/giantswarm/mcpbind/pkg/naming"
	"github.com/giantswarm/mcpbind/pkg/signature"

	"github.com/mark3labs/mcp-go/mcp"
)

// Class is one of the three capability classes a server advertises.
type Class string

const (
	ClassTool     Class = "tool"
	ClassResource Class = "resource"
	ClassPrompt   Class = "prompt"
)

// catalog holds one capability class as fetched at connection time. It is
// never modified afterwards.
type catalog[E any] struct {
	names   *naming.Mapping
	entries map[string]*E
}

func newCatalog[E any](class Class, items []E, nativeName func(*E) string) *catalog[E] {
	entries := make(map[string]*E, len(items))
	natives := make([]string, 0, len(items))
	for i := range items {
		n := nativeName(&items[i])
		if _, dup := entries[n]; dup {
			logging.Debug("Dispatcher", "ignoring duplicate %s %q", class, n)
			continue
		}
		entries[n] = &items[i]
		natives = append(natives, n)
	}
	return &catalog[E]{names: naming.NewMapping(natives), entries: entries}
}

func (c *catalog[E]) lookup(requested string) (string, *E, bool) {
	native, ok := c.names.Resolve(requested)
	if !ok {
		return "", nil, false
	}
	return native, c.entries[native], true
}

// ordered returns the entries in catalog order.
func (c *catalog[E]) ordered() []*E {
	natives := c.names.Natives()
	out := make([]*E, 0, len(natives))
	for _, n := range natives {
		out = append(out, c.entries[n])
	}
	return out
}

type toolEntry struct {
	native string
	local  string
	tool   mcp.Tool

	sigOnce sync.Once
	sig     *signature.Signature
}

func (e *toolEntry) signature() *signature.Signature {
	e.sigOnce.Do(func() { e.sig = signature.FromTool(e.local, e.tool) })
	return e.sig
}

type resourceEntry struct {
	native   string
	local    string
	resource mcp.Resource
}

type promptEntry struct {
	native string
	local  string
	prompt mcp.Prompt

	sigOnce sync.Once
	sig     *signature.Signature
}

func (e *promptEntry) signature() *signature.Signature {
	e.sigOnce.Do(func() { e.sig = signature.FromPrompt(e.local, e.prompt) })
	return e.sig
}

// resourceName is the key a resource is bound under. Resources without a
// name fall back to their URI.
func resourceName(r mcp.Resource) string {
	if r.Name != "" {
		return r.Name
	}
	return r.URI
}

func buildTools(tools []mcp.Tool) *catalog[toolEntry] {
	entries := make([]toolEntry, len(tools))
	for i, t := range tools {
		entries[i] = toolEntry{native: t.Name, tool: t}
	}
	c := newCatalog(ClassTool, entries, func(e *toolEntry) string { return e.native })
	for _, e := range c.entries {
		e.local = c.names.LocalName(e.native)
	}
	return c
}

func buildResources(resources []mcp.Resource) *catalog[resourceEntry] {
	entries := make([]resourceEntry, len(resources))
	for i, r := range resources {
		entries[i] = resourceEntry{native: resourceName(r), resource: r}
	}
	c := newCatalog(ClassResource, entries, func(e *resourceEntry) string { return e.native })
	for _, e := range c.entries {
		e.local = c.names.LocalName(e.native)
	}
	return c
}

func buildPrompts(prompts []mcp.Prompt) *catalog[promptEntry] {
	entries := make([]promptEntry, len(prompts))
	for i, p := range prompts {
		entries[i] = promptEntry{native: p.Name, prompt: p}
	}
	c := newCatalog(ClassPrompt, entries, func(e *promptEntry) string { return e.native })
	for _, e := range c.entries {
		e.local = c.names.LocalName(e.native)
	}
	return c
}
