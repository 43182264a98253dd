package cli

import (
	"context"
	"testing"

	"github.com/giantswarm/mcpbind/internal/testing/mockserver"
	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/mcpclient"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherMock(t *testing.T) (*bind.Server, *mockserver.Server) {
	t.Helper()
	mock, err := mockserver.New(mockserver.Config{
		Name: "weather",
		Tools: []mockserver.ToolConfig{{
			Name: "getWeather",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"state": map[string]any{"type": "string"},
					"days":  map[string]any{"type": "integer", "default": 1},
				},
				"required": []any{"state"},
			},
			Responses: []mockserver.ToolResponse{{Response: "Sunny in {{ .state }} for {{ .days }} days"}},
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
	return srv, mock
}

func TestInvoke(t *testing.T) {
	srv, mock := weatherMock(t)

	v, err := Invoke(srv, "get_weather", "", []string{"state=CA", "days=3"})
	require.NoError(t, err)
	assert.Equal(t, "Sunny in CA for 3 days", v)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.EqualValues(t, 3, calls[0].Args["days"])

	v, err = Invoke(srv, "stationList", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "SFO,LAX", v)

	v, err = Invoke(srv, "forecast_summary", `{"state":"NV"}`, nil)
	require.NoError(t, err)
	msgs, ok := v.([]mcp.PromptMessage)
	require.True(t, ok)
	require.Len(t, msgs, 1)
}

func TestInvokeErrors(t *testing.T) {
	srv, mock := weatherMock(t)

	_, err := Invoke(srv, "get_weather", "", []string{"days=soon", "state=CA"})
	assert.True(t, bind.IsValidation(err))

	_, err = Invoke(srv, "get_weather", "", []string{"days=2"})
	assert.True(t, bind.IsValidation(err))

	_, err = Invoke(srv, "station_list", "", []string{"x=1"})
	assert.True(t, bind.IsValidation(err))

	_, err = Invoke(srv, "get_forecast", "", nil)
	assert.True(t, bind.IsNotFound(err))

	assert.Empty(t, mock.Calls())
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		in   string
		want []bind.Class
	}{
		{"", nil},
		{"all", nil},
		{"tools", []bind.Class{bind.ClassTool}},
		{"Resource", []bind.Class{bind.ClassResource}},
		{"prompts", []bind.Class{bind.ClassPrompt}},
	}
	for _, tt := range tests {
		got, err := ParseClass(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseClass("widgets")
	assert.ErrorContains(t, err, "widgets")
}
