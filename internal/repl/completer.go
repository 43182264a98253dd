package repl

import (
	"strings"

	"github.com/chzyer/readline"
)

// createCompleter completes command names, member names after commands
// that take one, "key=" parameter prefixes after a member, and member names
// as bare commands.
func (r *REPL) createCompleter() readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, c := range r.registry.sorted() {
		names := append([]string{c.name}, c.aliases...)
		for _, n := range names {
			items = append(items, readline.PcItem(n, r.argItems(c)...))
		}
	}
	items = append(items, readline.PcItemDynamic(func(string) []string {
		return r.memberNames()
	}, readline.PcItemDynamic(r.paramsForLine)))
	return readline.NewPrefixCompleter(items...)
}

func (r *REPL) argItems(c *command) []readline.PrefixCompleterInterface {
	if c.complete == nil {
		return nil
	}
	complete := c.complete
	if c.name == "call" {
		return []readline.PrefixCompleterInterface{
			readline.PcItemDynamic(func(string) []string { return complete() }, readline.PcItemDynamic(r.paramsForLine)),
		}
	}
	return []readline.PrefixCompleterInterface{
		readline.PcItemDynamic(func(string) []string { return complete() }),
	}
}

// paramsForLine returns parameter completions for the member named on line.
func (r *REPL) paramsForLine(line string) []string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := fields[0]
	if strings.EqualFold(name, "call") && len(fields) > 1 {
		name = fields[1]
	}
	return r.paramCompletions(name)
}
