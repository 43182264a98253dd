package signature

import (
	"bytes"
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// toolSchema decodes the input schema of a tool. The raw schema is preferred
// when the server sent one, since it keeps property order and keywords the
// structured form drops.
func toolSchema(tool mcp.Tool) *jsonschema.Schema {
	var data []byte
	if len(tool.RawInputSchema) > 0 {
		data = tool.RawInputSchema
	} else {
		b, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return nil
		}
		data = b
	}
	return DecodeSchema(data)
}

// DecodeSchema decodes a JSON Schema object. Properties that do not decode
// cleanly (for example draft-04 boolean exclusiveMaximum, or a type union)
// are reduced to their type, description, default and enum instead of
// failing the whole schema. Returns nil when data is not a JSON object.
func DecodeSchema(data []byte) *jsonschema.Schema {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil
	}

	schema := &jsonschema.Schema{}
	if raw, ok := top["type"]; ok {
		schema.Type = decodeType(raw)
	}
	if raw, ok := top["required"]; ok {
		_ = json.Unmarshal(raw, &schema.Required)
	}
	if raw, ok := top["additionalProperties"]; ok {
		switch string(bytes.TrimSpace(raw)) {
		case "false":
			schema.AdditionalProperties = jsonschema.FalseSchema
		case "true":
			schema.AdditionalProperties = jsonschema.TrueSchema
		default:
			schema.AdditionalProperties = decodeProperty(raw)
		}
	}

	raw, ok := top["properties"]
	if !ok {
		return schema
	}

	props := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(raw, props); err != nil {
		return schema
	}

	schema.Properties = orderedmap.New[string, *jsonschema.Schema]()
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		schema.Properties.Set(pair.Key, decodeProperty(pair.Value))
	}
	return schema
}

func decodeProperty(raw json.RawMessage) *jsonschema.Schema {
	var s jsonschema.Schema
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return &jsonschema.Schema{}
	}

	s = jsonschema.Schema{}
	if t, ok := loose["type"]; ok {
		s.Type = decodeType(t)
	}
	if d, ok := loose["description"]; ok {
		_ = json.Unmarshal(d, &s.Description)
	}
	if d, ok := loose["default"]; ok {
		_ = json.Unmarshal(d, &s.Default)
	}
	if e, ok := loose["enum"]; ok {
		_ = json.Unmarshal(e, &s.Enum)
	}
	if i, ok := loose["items"]; ok {
		s.Items = decodeProperty(i)
	}
	return &s
}

// decodeType accepts "type": "x" as well as "type": ["x", "null"].
func decodeType(raw json.RawMessage) string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var union []string
	if err := json.Unmarshal(raw, &union); err == nil {
		for _, t := range union {
			if t != "null" {
				return t
			}
		}
	}
	return ""
}
