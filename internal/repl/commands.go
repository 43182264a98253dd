package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/giantswarm/mcpbind/internal/cli"
	"github.com/giantswarm/mcpbind/internal/formatting"
)

// errExit ends the session.
var errExit = errors.New("exit")

type command struct {
	name        string
	aliases     []string
	usage       string
	description string
	run         func(ctx context.Context, w io.Writer, args []string) error
	// complete returns argument completions, nil for none.
	complete func() []string
}

type registry struct {
	commands map[string]*command
	aliases  map[string]string
}

func newRegistry() *registry {
	return &registry{commands: make(map[string]*command), aliases: make(map[string]string)}
}

func (r *registry) register(c *command) {
	r.commands[c.name] = c
	for _, a := range c.aliases {
		r.aliases[a] = c.name
	}
}

func (r *registry) get(name string) (*command, bool) {
	if c, ok := r.commands[name]; ok {
		return c, true
	}
	if primary, ok := r.aliases[name]; ok {
		return r.commands[primary], true
	}
	return nil, false
}

func (r *registry) sorted() []*command {
	out := make([]*command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (r *REPL) registerCommands() {
	r.registry.register(&command{
		name:        "help",
		aliases:     []string{"?"},
		usage:       "help",
		description: "Show available commands",
		run:         r.help,
	})
	r.registry.register(&command{
		name:        "list",
		aliases:     []string{"ls"},
		usage:       "list [tools|resources|prompts]",
		description: "List the bound tools, resources and prompts",
		run:         r.list,
		complete:    func() []string { return []string{"tools", "resources", "prompts"} },
	})
	r.registry.register(&command{
		name:        "describe",
		aliases:     []string{"desc"},
		usage:       "describe <name>",
		description: "Show the signature and documentation of a member",
		run:         r.describe,
		complete:    r.memberNames,
	})
	r.registry.register(&command{
		name:        "call",
		usage:       "call <name> [key=value ...]",
		description: "Call a tool, read a resource or render a prompt",
		run:         r.call,
		complete:    r.memberNames,
	})
	r.registry.register(&command{
		name:        "exit",
		aliases:     []string{"quit", "q"},
		usage:       "exit",
		description: "Leave the shell",
		run:         func(context.Context, io.Writer, []string) error { return errExit },
	})
}

func (r *REPL) help(_ context.Context, w io.Writer, _ []string) error {
	fmt.Fprintln(w, "Commands:")
	for _, c := range r.registry.sorted() {
		fmt.Fprintf(w, "  %-30s %s\n", c.usage, c.description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A member name on its own is shorthand for 'call <name>'.")
	return nil
}

func (r *REPL) list(_ context.Context, w io.Writer, args []string) error {
	var kind string
	if len(args) > 0 {
		kind = args[0]
	}
	classes, err := cli.ParseClass(kind)
	if err != nil {
		return err
	}
	return r.formatter.Catalog(w, formatting.CatalogFrom(r.name, r.srv).Only(classes...))
}

func (r *REPL) describe(_ context.Context, w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: describe <name>")
	}
	text, err := r.srv.Describe(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}

func (r *REPL) call(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: call <name> [key=value ...]")
	}
	return r.invoke(ctx, w, args[0], args[1:])
}

func (r *REPL) invoke(ctx context.Context, w io.Writer, name string, pairs []string) error {
	type outcome struct {
		v   any
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := cli.Invoke(r.srv, name, "", pairs)
		done <- outcome{v, err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return o.err
		}
		return r.formatter.Result(w, o.v)
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", name, ctx.Err())
	}
}

// memberNames lists the local names of every member, for completion.
func (r *REPL) memberNames() []string {
	var names []string
	for _, t := range r.srv.Tools() {
		names = append(names, t.Name())
	}
	for _, res := range r.srv.Resources() {
		names = append(names, res.Name())
	}
	for _, p := range r.srv.Prompts() {
		names = append(names, p.Name())
	}
	return names
}

// paramCompletions offers "key=" for every parameter of a tool or prompt.
func (r *REPL) paramCompletions(name string) []string {
	var out []string
	if t, err := r.srv.Tool(name); err == nil {
		for _, p := range t.Signature().Params {
			out = append(out, p.DisplayName+"=")
		}
		return out
	}
	if p, err := r.srv.Prompt(name); err == nil {
		for _, param := range p.Signature().Params {
			out = append(out, param.DisplayName+"=")
		}
	}
	return out
}
