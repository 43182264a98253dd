package repl

import (
	"bytes"
	"context"
	"testing"

	"github.com/giantswarm/mcpbind/internal/formatting"
	"github.com/giantswarm/mcpbind/internal/testing/mockserver"
	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/mcpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestREPL(t *testing.T) (*REPL, *mockserver.Server) {
	t.Helper()
	mock, err := mockserver.New(mockserver.Config{
		Name: "weather",
		Tools: []mockserver.ToolConfig{{
			Name:        "getWeather",
			Description: "Get the forecast for a state",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"state": map[string]any{"type": "string"},
					"days":  map[string]any{"type": "integer"},
				},
				"required": []any{"state"},
			},
			Responses: []mockserver.ToolResponse{{Response: "Sunny in {{ .state }}"}},
		}},
		Resources: []mockserver.ResourceConfig{{URI: "weather://stations", Name: "stationList", Text: "SFO,LAX"}},
		Prompts: []mockserver.PromptConfig{{
			Name:      "forecastSummary",
			Arguments: []mockserver.PromptArgument{{Name: "state", Required: true}},
			Template:  "Summarize {{ .state }}",
		}},
	})
	require.NoError(t, err)

	c := mcpclient.NewInProcessClient(mock.MCPServer())
	require.NoError(t, c.Initialize(context.Background()))
	srv, err := bind.New(context.Background(), c, bind.NoShutdownHook())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	f, err := formatting.New(formatting.Options{Format: formatting.FormatText})
	require.NoError(t, err)

	r := New(srv, "weather", f)
	r.HistoryFile = ""
	return r, mock
}

func TestExecuteCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{name: "help", input: "help", contains: []string{"describe <name>", "call <name>", "exit"}},
		{name: "help alias", input: "?", contains: []string{"Commands:"}},
		{name: "list all", input: "list", contains: []string{"get_weather", "station_list", "forecast_summary"}},
		{name: "list tools", input: "ls tools", contains: []string{"get_weather"}, absent: []string{"station_list"}},
		{name: "describe tool", input: "describe get_weather", contains: []string{"get_weather(state string, [days integer])", "Get the forecast"}},
		{name: "call tool", input: "call get_weather state=CA", contains: []string{"Sunny in CA"}},
		{name: "bare member", input: "getWeather state=NV", contains: []string{"Sunny in NV"}},
		{name: "quoted value", input: `get_weather state="New York"`, contains: []string{"Sunny in New York"}},
		{name: "resource", input: "station_list", contains: []string{"SFO,LAX"}},
		{name: "prompt", input: "forecast_summary state=CA", contains: []string{"Summarize CA"}},
		{name: "blank line", input: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestREPL(t)
			var buf bytes.Buffer
			require.NoError(t, r.executeCommand(context.Background(), &buf, tt.input))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestExecuteCommandErrors(t *testing.T) {
	r, mock := newTestREPL(t)
	var buf bytes.Buffer
	ctx := context.Background()

	err := r.executeCommand(ctx, &buf, "get_forecast")
	assert.True(t, bind.IsNotFound(err))
	assert.Contains(t, err.Error(), "Available tools:")

	err = r.executeCommand(ctx, &buf, "call get_weather")
	assert.True(t, bind.IsValidation(err))

	err = r.executeCommand(ctx, &buf, "call")
	assert.ErrorContains(t, err, "usage")

	err = r.executeCommand(ctx, &buf, "describe")
	assert.ErrorContains(t, err, "usage")

	err = r.executeCommand(ctx, &buf, "list widgets")
	assert.ErrorContains(t, err, "widgets")

	err = r.executeCommand(ctx, &buf, `call get_weather state="CA`)
	assert.ErrorContains(t, err, "unterminated quote")

	assert.ErrorIs(t, r.executeCommand(ctx, &buf, "quit"), errExit)
	assert.ErrorIs(t, r.executeCommand(ctx, &buf, "EXIT"), errExit)

	assert.Empty(t, mock.Calls())
}

func TestCompletions(t *testing.T) {
	r, _ := newTestREPL(t)

	assert.ElementsMatch(t, []string{"get_weather", "station_list", "forecast_summary"}, r.memberNames())
	assert.Equal(t, []string{"state=", "days="}, r.paramsForLine("get_weather "))
	assert.Equal(t, []string{"state=", "days="}, r.paramsForLine("call getWeather "))
	assert.Equal(t, []string{"state="}, r.paramsForLine("forecast_summary "))
	assert.Empty(t, r.paramsForLine("station_list "))
	assert.Empty(t, r.paramsForLine(""))
	assert.NotNil(t, r.createCompleter())
}

func TestPrompt(t *testing.T) {
	r, _ := newTestREPL(t)
	assert.Equal(t, "mcpbind weather> ", r.prompt())
	r.name = ""
	assert.Equal(t, "mcpbind> ", r.prompt())
}
