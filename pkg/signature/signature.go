package signature

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/giantswarm/mcpbind/pkg/naming"

	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
)

// Param is one named parameter of a synthesized signature.
type Param struct {
	// Name is the parameter name as the server declares it. Arguments are
	// always transmitted under this name.
	Name string
	// DisplayName is the snake_case form of Name, accepted as an alias.
	DisplayName string
	Kind        Kind
	Description string
	Required    bool
	// Default is the schema default; only meaningful when HasDefault is set.
	Default    any
	HasDefault bool
	Enum       []any
	// Items is the element kind for array parameters.
	Items Kind
}

// Signature describes how a capability is called.
type Signature struct {
	// Name is the local name the capability is bound under.
	Name string
	// NativeName is the name the server advertises.
	NativeName  string
	Description string
	Params      []Param
	// Strict rejects arguments the signature does not declare.
	Strict bool
}

// FromTool synthesizes the signature of a tool from its input schema.
func FromTool(localName string, tool mcp.Tool) *Signature {
	return FromSchema(localName, tool.Name, tool.Description, toolSchema(tool))
}

// FromPrompt synthesizes the signature of a prompt. Every argument is a
// string and its required flag comes from the argument itself.
func FromPrompt(localName string, prompt mcp.Prompt) *Signature {
	sig := &Signature{
		Name:        localName,
		NativeName:  prompt.Name,
		Description: prompt.Description,
		Strict:      true,
	}

	var optional []Param
	for _, arg := range prompt.Arguments {
		p := Param{
			Name:        arg.Name,
			DisplayName: naming.ToLocal(arg.Name),
			Kind:        KindString,
			Description: arg.Description,
			Required:    arg.Required,
		}
		if p.Required {
			sig.Params = append(sig.Params, p)
		} else {
			optional = append(optional, p)
		}
	}
	sig.Params = append(sig.Params, optional...)
	return sig
}

// FromSchema synthesizes a signature from a decoded JSON Schema object. A nil
// schema yields a signature without parameters that passes any argument
// through.
func FromSchema(localName, nativeName, description string, schema *jsonschema.Schema) *Signature {
	sig := &Signature{
		Name:        localName,
		NativeName:  nativeName,
		Description: description,
	}
	if schema == nil {
		return sig
	}

	required := make(map[string]bool, len(schema.Required))
	for _, r := range schema.Required {
		required[r] = true
	}

	declared := make(map[string]bool)
	var requiredParams, optionalParams []Param

	if schema.Properties != nil {
		for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
			declared[pair.Key] = true
			p := paramFromProperty(pair.Key, pair.Value, required[pair.Key])
			if p.Required {
				requiredParams = append(requiredParams, p)
			} else {
				optionalParams = append(optionalParams, p)
			}
		}
	}

	// Required names without a property declaration still have to be supplied.
	for _, r := range schema.Required {
		if declared[r] {
			continue
		}
		declared[r] = true
		requiredParams = append(requiredParams, Param{
			Name:        r,
			DisplayName: naming.ToLocal(r),
			Kind:        KindAny,
			Required:    true,
		})
	}

	sig.Params = append(requiredParams, optionalParams...)
	sig.Strict = len(sig.Params) > 0 && closed(schema)
	return sig
}

func paramFromProperty(name string, prop *jsonschema.Schema, required bool) Param {
	p := Param{
		Name:        name,
		DisplayName: naming.ToLocal(name),
		Kind:        KindAny,
		Required:    required,
	}
	if prop == nil {
		return p
	}

	p.Kind = KindOf(prop.Type)
	p.Description = prop.Description
	p.Enum = prop.Enum
	if p.Kind == KindArray {
		p.Items = KindAny
		if prop.Items != nil {
			p.Items = KindOf(prop.Items.Type)
		}
	}
	// A required parameter never carries a default: the caller must supply it.
	if !required && prop.Default != nil {
		p.Default = prop.Default
		p.HasDefault = true
	}
	return p
}

// closed reports whether the schema forbids undeclared properties. Only an
// explicit "additionalProperties": false does; an absent keyword allows them.
func closed(schema *jsonschema.Schema) bool {
	ap := schema.AdditionalProperties
	if ap == nil {
		return false
	}
	if ap == jsonschema.FalseSchema {
		return true
	}
	b, err := json.Marshal(ap)
	if err != nil {
		return false
	}
	// A decoded false schema is a copy of FalseSchema and marshals as {"not":{}}.
	return string(b) == "false" || string(b) == `{"not":{}}`
}

// Param looks a parameter up by native or display name.
func (s *Signature) Param(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range s.Params {
		if p.DisplayName == name {
			return p, true
		}
	}
	return Param{}, false
}

// Required returns the native names of the required parameters.
func (s *Signature) Required() []string {
	var out []string
	for _, p := range s.Params {
		if p.Required {
			out = append(out, p.Name)
		}
	}
	return out
}

// Bind checks args against the signature and returns the argument map to
// transmit, keyed by native parameter names. Absent values are dropped,
// omitted optional parameters with a schema default receive that default.
// Failures are reported as *ArgumentError.
func (s *Signature) Bind(args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(args))
	given := make(map[string]string, len(args))

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := args[key]
		p, ok := s.Param(key)
		if !ok {
			if IsAbsent(value) {
				continue
			}
			if s.Strict {
				return nil, s.argErr(key, fmt.Sprintf("unexpected argument (accepted: %s)", strings.Join(s.paramNames(), ", ")))
			}
			out[key] = value
			continue
		}

		if prev, dup := given[p.Name]; dup {
			return nil, s.argErr(p.Name, fmt.Sprintf("given twice (as %q and %q)", prev, key))
		}
		given[p.Name] = key

		if IsAbsent(value) {
			continue
		}
		if !p.Kind.Accepts(value) {
			return nil, s.argErr(p.Name, fmt.Sprintf("expected %s, got %T", p.Kind, value))
		}
		if len(p.Enum) > 0 && !inEnum(value, p.Enum) {
			return nil, s.argErr(p.Name, fmt.Sprintf("value %v is not one of %v", value, p.Enum))
		}
		out[p.Name] = value
	}

	var missing []string
	for _, p := range s.Params {
		if _, ok := out[p.Name]; ok {
			continue
		}
		if p.Required {
			missing = append(missing, p.Name)
			continue
		}
		if p.HasDefault {
			out[p.Name] = p.Default
		}
	}
	if len(missing) > 0 {
		return nil, s.argErr(strings.Join(missing, ", "), "missing required argument")
	}

	return out, nil
}

func (s *Signature) argErr(param, reason string) *ArgumentError {
	return &ArgumentError{Capability: s.Name, Param: param, Reason: reason}
}

func (s *Signature) paramNames() []string {
	names := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		names = append(names, p.Name)
	}
	return names
}

func inEnum(v any, enum []any) bool {
	want := fmt.Sprint(v)
	for _, e := range enum {
		if fmt.Sprint(e) == want {
			return true
		}
	}
	return false
}

// String renders the signature, for example
//
//	get_weather(state string, days integer = 3, [units string])
func (s *Signature) String() string {
	parts := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("%s(%s)", s.Name, strings.Join(parts, ", "))
}

// String renders a single parameter.
func (p Param) String() string {
	typ := string(p.Kind)
	if p.Kind == KindArray && p.Items != "" && p.Items != KindAny {
		typ = "[]" + string(p.Items)
	}
	switch {
	case p.Required:
		return fmt.Sprintf("%s %s", p.DisplayName, typ)
	case p.HasDefault:
		def, err := json.Marshal(p.Default)
		if err != nil {
			def = []byte(fmt.Sprint(p.Default))
		}
		return fmt.Sprintf("%s %s = %s", p.DisplayName, typ, def)
	default:
		return fmt.Sprintf("[%s %s]", p.DisplayName, typ)
	}
}

// Parse converts a textual argument into a value of the parameter's kind.
func (p Param) Parse(raw string) (any, error) {
	v, err := p.Kind.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("argument %s: %w", p.Name, err)
	}
	return v, nil
}
