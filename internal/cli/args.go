package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/signature"
)

// ParseArguments turns key=value pairs into an argument map for the
// capability named name. Values of declared parameters are converted to
// the parameter kind. A nil sig treats every parameter as undeclared.
//
// jsonArgs, when non-empty, is decoded as a JSON object first; pairs then
// override its keys.
func ParseArguments(name string, sig *signature.Signature, jsonArgs string, pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))

	if strings.TrimSpace(jsonArgs) != "" {
		dec := json.NewDecoder(strings.NewReader(jsonArgs))
		dec.UseNumber()
		if err := dec.Decode(&args); err != nil {
			return nil, &bind.ValidationError{Name: name, Err: fmt.Errorf("--args must be a JSON object: %w", err)}
		}
		if args == nil {
			args = make(map[string]any)
		}
	}

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &bind.ValidationError{Name: name, Err: fmt.Errorf("argument %q is not in key=value form", pair)}
		}

		value, err := parseValue(sig, key, raw)
		if err != nil {
			return nil, &bind.ValidationError{Name: name, Err: err}
		}
		args[key] = value
	}

	return args, nil
}

func parseValue(sig *signature.Signature, key, raw string) (any, error) {
	if sig != nil {
		if p, ok := sig.Param(key); ok && p.Kind != signature.KindAny {
			return p.Parse(raw)
		}
	}
	return guessValue(raw), nil
}

// guessValue decodes raw as a JSON literal and falls back to the plain
// string.
func guessValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	return v
}
