// Package mockserver provides a configurable MCP server for tests and demos.
//
// A mock server is described in YAML: a list of tools with canned,
// optionally conditional responses, plus static resources and prompt
// templates. Response texts are Go templates (with sprig functions) rendered
// against the call arguments.
//
//	name: weather
//	tools:
//	  - name: getWeather
//	    description: Get the forecast for a state
//	    input_schema:
//	      type: object
//	      properties:
//	        state: {type: string}
//	      required: [state]
//	    responses:
//	      - condition: {state: CA}
//	        response: "Sunny"
//	      - response: "No forecast for {{ .state }}"
//	resources:
//	  - uri: weather://stations
//	    name: stationList
//	    text: "SFO,LAX"
//	prompts:
//	  - name: forecastSummary
//	    arguments:
//	      - {name: state, required: true}
//	    template: "Summarize the forecast for {{ .state }}"
//
// The server can be used in-process through MCPServer, or served on stdio
// with ServeStdio (see the hidden `mcpbind mock-server` command).
package mockserver
