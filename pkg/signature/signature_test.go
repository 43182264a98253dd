package signature

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawTool(t *testing.T, name, description, schema string) mcp.Tool {
	t.Helper()
	require.True(t, json.Valid([]byte(schema)), "invalid schema fixture")
	return mcp.NewToolWithRawSchema(name, description, json.RawMessage(schema))
}

const clickSchema = `{
	"type": "object",
	"required": ["selector"],
	"properties": {
		"selector": {"type": "string", "description": "CSS selector for the element to click"},
		"timeout": {"type": "integer", "description": "Timeout in milliseconds", "default": 5000}
	}
}`

func TestFromToolRequiredAndDefaults(t *testing.T) {
	sig := FromTool("click", rawTool(t, "click", "Click on an element", clickSchema))

	require.Len(t, sig.Params, 2)
	assert.Equal(t, "Click on an element", sig.Description)
	assert.False(t, sig.Strict)

	selector := sig.Params[0]
	assert.Equal(t, "selector", selector.Name)
	assert.Equal(t, KindString, selector.Kind)
	assert.True(t, selector.Required)
	assert.False(t, selector.HasDefault)
	assert.Nil(t, selector.Default)

	timeout := sig.Params[1]
	assert.Equal(t, KindInteger, timeout.Kind)
	assert.False(t, timeout.Required)
	assert.True(t, timeout.HasDefault)
	assert.EqualValues(t, 5000, timeout.Default)
}

func TestFromToolOptionalWithoutDefault(t *testing.T) {
	sig := FromTool("t", rawTool(t, "t", "", `{"type":"object","properties":{"value":{"type":"string"}}}`))

	require.Len(t, sig.Params, 1)
	assert.False(t, sig.Params[0].Required)
	assert.False(t, sig.Params[0].HasDefault)
}

func TestKindTable(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {
			"text": {"type": "string"},
			"count": {"type": "integer"},
			"ratio": {"type": "number"},
			"enabled": {"type": "boolean"},
			"items": {"type": "array", "items": {"type": "string"}},
			"config": {"type": "object"},
			"anything": {},
			"nothing": {"type": "null"},
			"maybe": {"type": ["integer", "null"]}
		}
	}`
	sig := FromTool("t", rawTool(t, "t", "", schema))

	want := map[string]Kind{
		"text":     KindString,
		"count":    KindInteger,
		"ratio":    KindNumber,
		"enabled":  KindBoolean,
		"items":    KindArray,
		"config":   KindObject,
		"anything": KindAny,
		"nothing":  KindAny,
		"maybe":    KindInteger,
	}
	for name, kind := range want {
		p, ok := sig.Param(name)
		require.True(t, ok, name)
		assert.Equal(t, kind, p.Kind, name)
	}

	items, _ := sig.Param("items")
	assert.Equal(t, KindString, items.Items)
	assert.Equal(t, "[items []string]", items.String())
}

func TestParamOrderRequiredFirst(t *testing.T) {
	schema := `{
		"type": "object",
		"required": ["query", "sources"],
		"properties": {
			"limit": {"type": "integer", "default": 10},
			"query": {"type": "string"},
			"includeMetadata": {"type": "boolean", "default": false},
			"sources": {"type": "array"}
		}
	}`
	sig := FromTool("search", rawTool(t, "search", "", schema))

	var names []string
	for _, p := range sig.Params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"query", "sources", "limit", "includeMetadata"}, names)

	meta, ok := sig.Param("include_metadata")
	require.True(t, ok)
	assert.Equal(t, "includeMetadata", meta.Name)
	assert.True(t, meta.HasDefault)
	assert.Equal(t, false, meta.Default)
}

func TestEmptySchema(t *testing.T) {
	sig := FromTool("ping", mcp.NewTool("ping"))

	assert.Empty(t, sig.Params)
	assert.False(t, sig.Strict)
	assert.Equal(t, "ping()", sig.String())

	out, err := sig.Bind(map[string]any{"anything": 1, "dropped": nil})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"anything": 1}, out)
}

func TestRequiredWithoutPropertyDeclaration(t *testing.T) {
	sig := FromTool("t", rawTool(t, "t", "", `{"type":"object","required":["id"]}`))

	require.Len(t, sig.Params, 1)
	assert.Equal(t, KindAny, sig.Params[0].Kind)
	assert.True(t, sig.Params[0].Required)
}

func TestFromPrompt(t *testing.T) {
	prompt := mcp.NewPrompt("codeReview",
		mcp.WithPromptDescription("Review code"),
		mcp.WithArgument("language", mcp.ArgumentDescription("Language")),
		mcp.WithArgument("code", mcp.ArgumentDescription("Code to review"), mcp.RequiredArgument()),
	)

	sig := FromPrompt("code_review", prompt)

	require.Len(t, sig.Params, 2)
	assert.Equal(t, "code_review", sig.Name)
	assert.Equal(t, "codeReview", sig.NativeName)
	assert.Equal(t, "Review code", sig.Description)
	assert.True(t, sig.Strict)

	assert.Equal(t, "code", sig.Params[0].Name)
	assert.True(t, sig.Params[0].Required)
	assert.Equal(t, "language", sig.Params[1].Name)
	assert.False(t, sig.Params[1].Required)
	for _, p := range sig.Params {
		assert.Equal(t, KindString, p.Kind)
	}
}

func TestBind(t *testing.T) {
	sig := FromTool("click", rawTool(t, "click", "", clickSchema))

	tests := []struct {
		name    string
		args    map[string]any
		want    map[string]any
		wantErr string
	}{
		{
			name: "fills default",
			args: map[string]any{"selector": "#go"},
			want: map[string]any{"selector": "#go", "timeout": float64(5000)},
		},
		{
			name: "explicit value wins over default",
			args: map[string]any{"selector": "#go", "timeout": 10},
			want: map[string]any{"selector": "#go", "timeout": 10},
		},
		{
			name: "nil optional falls back to default",
			args: map[string]any{"selector": "#go", "timeout": nil},
			want: map[string]any{"selector": "#go", "timeout": float64(5000)},
		},
		{
			name:    "missing required",
			args:    map[string]any{"timeout": 1},
			wantErr: "missing required argument",
		},
		{
			name:    "nil required counts as missing",
			args:    map[string]any{"selector": nil},
			wantErr: "missing required argument",
		},
		{
			name:    "wrong type",
			args:    map[string]any{"selector": 42},
			wantErr: "expected string, got int",
		},
		{
			name:    "fractional integer",
			args:    map[string]any{"selector": "#go", "timeout": 1.5},
			wantErr: "expected integer",
		},
		{
			name: "undeclared argument is forwarded",
			args: map[string]any{"selector": "#go", "bogus": true},
			want: map[string]any{"selector": "#go", "timeout": float64(5000), "bogus": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := sig.Bind(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				var argErr *ArgumentError
				require.ErrorAs(t, err, &argErr)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestBindDropsAbsentValues(t *testing.T) {
	schema := `{"type":"object","required":["message"],"properties":{"message":{"type":"string"},"extra":{"type":"string"}}}`
	sig := FromTool("echo", rawTool(t, "echo", "", schema))

	out, err := sig.Bind(map[string]any{"message": "hi", "extra": nil})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "hi"}, out)

	// Undeclared names carrying no value are dropped rather than rejected.
	out, err = sig.Bind(map[string]any{"message": "hi", "verbose": nil})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "hi"}, out)
}

func TestBindAcceptsDisplayNames(t *testing.T) {
	schema := `{"type":"object","properties":{"maxResults":{"type":"integer"}}}`
	sig := FromTool("search", rawTool(t, "search", "", schema))

	out, err := sig.Bind(map[string]any{"max_results": 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"maxResults": 3}, out)

	_, err = sig.Bind(map[string]any{"max_results": 3, "maxResults": 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "given twice")
}

func TestBindEnum(t *testing.T) {
	schema := `{"type":"object","properties":{"sortBy":{"type":"string","enum":["relevance","date"]}}}`
	sig := FromTool("search", rawTool(t, "search", "", schema))

	_, err := sig.Bind(map[string]any{"sortBy": "date"})
	require.NoError(t, err)

	_, err = sig.Bind(map[string]any{"sortBy": "title"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not one of")
}

func TestAdditionalPropertiesAllowed(t *testing.T) {
	schema := `{"type":"object","properties":{"a":{"type":"string"}},"additionalProperties":true}`
	sig := FromTool("t", rawTool(t, "t", "", schema))
	assert.False(t, sig.Strict)

	out, err := sig.Bind(map[string]any{"a": "x", "b": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "x", "b": 2}, out)

	strict := FromTool("t", rawTool(t, "t", "", `{"type":"object","properties":{"a":{"type":"string"}},"additionalProperties":false}`))
	assert.True(t, strict.Strict)

	_, err = strict.Bind(map[string]any{"a": "x", "b": 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected argument")
}

func TestMissingAdditionalPropertiesAllowsExtras(t *testing.T) {
	schema := `{"type":"object","properties":{"message":{"type":"string"}},"required":["message"]}`
	sig := FromTool("echo", rawTool(t, "echo", "", schema))
	assert.False(t, sig.Strict)

	out, err := sig.Bind(map[string]any{"message": "hi", "extra": "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "hi", "extra": "x"}, out)
}

func TestSignatureString(t *testing.T) {
	sig := FromTool("click", rawTool(t, "click", "", clickSchema))
	assert.Equal(t, "click(selector string, timeout integer = 5000)", sig.String())
}

func TestStructuredInputSchema(t *testing.T) {
	tool := mcp.NewTool("getWeather",
		mcp.WithDescription("Get weather"),
		mcp.WithString("state", mcp.Required(), mcp.Description("Two letter state code")),
		mcp.WithNumber("days", mcp.DefaultNumber(3)),
	)

	sig := FromTool("get_weather", tool)

	state, ok := sig.Param("state")
	require.True(t, ok)
	assert.True(t, state.Required)
	assert.Equal(t, "Two letter state code", state.Description)

	days, ok := sig.Param("days")
	require.True(t, ok)
	assert.Equal(t, KindNumber, days.Kind)
	assert.EqualValues(t, 3, days.Default)
}

func TestParamParse(t *testing.T) {
	tests := []struct {
		kind    Kind
		raw     string
		want    any
		wantErr bool
	}{
		{KindString, "CA", "CA", false},
		{KindInteger, "42", int64(42), false},
		{KindInteger, "4.2", nil, true},
		{KindNumber, "4.5", 4.5, false},
		{KindBoolean, "true", true, false},
		{KindBoolean, "yes", nil, true},
		{KindArray, `["a","b"]`, []any{"a", "b"}, false},
		{KindObject, `{"k":1}`, map[string]any{"k": float64(1)}, false},
		{KindObject, `nope`, nil, true},
		{KindAny, `7`, float64(7), false},
		{KindAny, `plain text`, "plain text", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.raw, func(t *testing.T) {
			got, err := Param{Name: "p", Kind: tt.kind}.Parse(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAbsent(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *string
	s := "x"

	assert.True(t, IsAbsent(nil))
	assert.True(t, IsAbsent(nilMap))
	assert.True(t, IsAbsent(nilPtr))
	assert.False(t, IsAbsent(&s))
	assert.False(t, IsAbsent(""))
	assert.False(t, IsAbsent(0))
	assert.False(t, IsAbsent(false))
}
