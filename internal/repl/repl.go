package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/giantswarm/mcpbind/internal/formatting"
	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/logging"
	"github.com/giantswarm/mcpbind/pkg/mcpclient"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/text"
)

// commandTimeout bounds a single command, long enough for slow tools.
const commandTimeout = 5 * time.Minute

// REPL is an interactive shell over one bound server.
type REPL struct {
	srv       *bind.Server
	name      string
	formatter formatting.Formatter
	registry  *registry
	rl        *readline.Instance

	// HistoryFile is where input history persists. Empty disables history.
	HistoryFile string
}

// New creates a shell for srv. name is shown in the prompt and listings.
func New(srv *bind.Server, name string, formatter formatting.Formatter) *REPL {
	r := &REPL{
		srv:         srv,
		name:        name,
		formatter:   formatter,
		registry:    newRegistry(),
		HistoryFile: defaultHistoryFile(),
	}
	r.registerCommands()
	return r
}

func defaultHistoryFile() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "mcpbind", "history")
	}
	return filepath.Join(os.TempDir(), ".mcpbind_history")
}

func (r *REPL) prompt() string {
	if r.name == "" {
		return "mcpbind> "
	}
	return fmt.Sprintf("mcpbind %s> ", r.name)
}

// Run reads commands until exit, EOF, ctx cancellation or closure of the
// server.
func (r *REPL) Run(ctx context.Context) error {
	if r.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(r.HistoryFile), 0o755); err != nil {
			logging.Debug("REPL", "History disabled: %v", err)
			r.HistoryFile = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            r.prompt(),
		HistoryFile:       r.HistoryFile,
		AutoComplete:      r.createCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	// Unblock Readline when the session is cancelled.
	stop := context.AfterFunc(ctx, func() { _ = rl.Close() })
	defer stop()

	out := rl.Stdout()
	fmt.Fprintf(out, "Bound %d tools, %d resources and %d prompts. Type 'help' for commands, TAB completes.\n\n",
		len(r.srv.Tools()), len(r.srv.Resources()), len(r.srv.Prompts()))

	for {
		if ctx.Err() != nil || r.srv.Closed() {
			return nil
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		} else if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("readline error: %w", err)
		}

		if err := r.executeCommand(ctx, out, line); err != nil {
			if errors.Is(err, errExit) {
				fmt.Fprintln(out, "Goodbye!")
				return nil
			}
			fmt.Fprintln(rl.Stderr(), text.FgRed.Sprint("Error: ")+err.Error())
		}
	}
}

// executeCommand runs one input line. A line starting with a member name
// instead of a command calls that member.
func (r *REPL) executeCommand(ctx context.Context, w io.Writer, input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	name, args, err := mcpclient.ParseCommand(input)
	if err != nil {
		return err
	}

	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	if c, ok := r.registry.get(strings.ToLower(name)); ok {
		return c.run(cmdCtx, w, args)
	}

	// Anything else is a member invocation; unknown names surface as
	// not-found errors listing what is available.
	return r.invoke(cmdCtx, w, name, args)
}
