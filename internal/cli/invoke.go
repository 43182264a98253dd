package cli

import (
	"fmt"
	"strings"

	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/signature"
)

// Invoke resolves name on srv, converts the textual arguments against its
// signature and calls it: tools are called, resources read and prompts
// rendered.
func Invoke(srv *bind.Server, name, jsonArgs string, pairs []string) (any, error) {
	args, err := ParseArguments(name, SignatureOf(srv, name), jsonArgs, pairs)
	if err != nil {
		return nil, err
	}
	return srv.Call(name, args)
}

// SignatureOf returns the signature of the member name resolves to,
// following the tool, resource, prompt order of bind.Server.Call. Resources
// and unknown names have none.
func SignatureOf(srv *bind.Server, name string) *signature.Signature {
	if t, err := srv.Tool(name); err == nil {
		return t.Signature()
	}
	if _, err := srv.Resource(name); err == nil {
		return nil
	}
	if p, err := srv.Prompt(name); err == nil {
		return p.Signature()
	}
	return nil
}

// ParseClass accepts a class name in singular or plural form. An empty
// string selects every class.
func ParseClass(s string) ([]bind.Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return nil, nil
	case "tool", "tools":
		return []bind.Class{bind.ClassTool}, nil
	case "resource", "resources":
		return []bind.Class{bind.ClassResource}, nil
	case "prompt", "prompts":
		return []bind.Class{bind.ClassPrompt}, nil
	}
	return nil, fmt.Errorf("unknown kind %q (valid: tools, resources, prompts)", s)
}
