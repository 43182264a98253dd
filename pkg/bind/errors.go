package bind

import (
	"errors"
	"fmt"
	"strings"
)

// ConnectionError reports a failure to establish or initialise the session
// with the remote server, including failures fetching its catalogs.
type ConnectionError struct {
	// Target describes the server, e.g. the command line or URL.
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ToolError reports a failed tool call. Err is set for transport and
// protocol failures; Message is set when the server executed the tool and
// flagged the result as an error.
type ToolError struct {
	Name    string
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tool '%s' failed: %v", e.Name, e.Err)
	}
	if e.Message == "" {
		return fmt.Sprintf("tool '%s' returned an error", e.Name)
	}
	return fmt.Sprintf("tool '%s' returned an error: %s", e.Name, e.Message)
}

func (e *ToolError) Unwrap() error { return e.Err }

// ResourceError reports a failed resource read.
type ResourceError struct {
	Name string
	URI  string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("failed to fetch resource '%s': %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// PromptError reports a failed prompt render.
type PromptError struct {
	Name string
	Err  error
}

func (e *PromptError) Error() string {
	return fmt.Sprintf("failed to execute prompt '%s': %v", e.Name, e.Err)
}

func (e *PromptError) Unwrap() error { return e.Err }

// ValidationError reports arguments rejected before anything was sent. Err
// is usually a *signature.ArgumentError.
type ValidationError struct {
	Name string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ConfigError reports a malformed binding configuration.
//
// The error carries enough context to point the user at the offending file
// and server entry, plus optional hints for fixing it.
type ConfigError struct {
	// Path is the configuration file, empty for flags and environment.
	Path string
	// Server is the server entry at fault, if any.
	Server      string
	Message     string
	Suggestions []string
	Err         error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("invalid configuration")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Server != "" {
		fmt.Fprintf(&b, " for server '%s'", e.Server)
	}
	b.WriteString(": ")
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	}
	for _, s := range e.Suggestions {
		b.WriteString("\n  - ")
		b.WriteString(s)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NotFoundError is returned by Server.Get when a name matches no tool,
// resource or prompt. It lists every name that would have matched, by class.
type NotFoundError struct {
	Name      string
	Tools     []string
	Resources []string
	Prompts   []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("'%s' not found.\nAvailable tools: %s\nAvailable resources: %s\nAvailable prompts: %s",
		e.Name, joinOrNone(e.Tools), joinOrNone(e.Resources), joinOrNone(e.Prompts))
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// IsNotFound checks if an error is or wraps a NotFoundError.
//
// Example:
//
//	m, err := srv.Get("get_weather")
//	if bind.IsNotFound(err) {
//	    fmt.Println(err) // lists the available names
//	}
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation checks if an error is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConnection checks if an error is or wraps a ConnectionError.
func IsConnection(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

// IsConfig checks if an error is or wraps a ConfigError.
func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsTool checks if an error is or wraps a ToolError.
func IsTool(err error) bool {
	var target *ToolError
	return errors.As(err, &target)
}

// IsResource checks if an error is or wraps a ResourceError.
func IsResource(err error) bool {
	var target *ResourceError
	return errors.As(err, &target)
}

// IsPrompt checks if an error is or wraps a PromptError.
func IsPrompt(err error) bool {
	var target *PromptError
	return errors.As(err, &target)
}
