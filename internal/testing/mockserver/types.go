package mockserver

// Config describes a mock MCP server.
type Config struct {
	Name      string           `yaml:"name"`
	Version   string           `yaml:"version,omitempty"`
	Tools     []ToolConfig     `yaml:"tools,omitempty"`
	Resources []ResourceConfig `yaml:"resources,omitempty"`
	Prompts   []PromptConfig   `yaml:"prompts,omitempty"`
}

// ToolConfig defines configuration for a mock tool
type ToolConfig struct {
	// Name is the unique identifier for the tool
	Name string `yaml:"name"`
	// Description describes what the tool does
	Description string `yaml:"description"`
	// InputSchema defines the expected input schema (JSON Schema)
	InputSchema map[string]any `yaml:"input_schema,omitempty"`
	// Responses defines possible responses for this tool
	Responses []ToolResponse `yaml:"responses"`
}

// ToolResponse defines a conditional response for a mock tool
type ToolResponse struct {
	// Condition defines parameter matching for this response (optional)
	// If empty, this response is used as a fallback
	Condition map[string]any `yaml:"condition,omitempty"`
	// Response is a text template or structured data returned as JSON
	Response any `yaml:"response,omitempty"`
	// Texts returns several text items instead of one
	Texts []string `yaml:"texts,omitempty"`
	// Error makes the tool return an error result with this message
	Error string `yaml:"error,omitempty"`
	// Delay simulates response latency (e.g., "2s", "500ms")
	Delay string `yaml:"delay,omitempty"`
}

// ResourceConfig defines a static resource.
type ResourceConfig struct {
	URI         string `yaml:"uri"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	MIMEType    string `yaml:"mime_type,omitempty"`
	// Text and Blob (base64) are mutually exclusive.
	Text string `yaml:"text,omitempty"`
	Blob string `yaml:"blob,omitempty"`
}

// PromptConfig defines a prompt rendered from a template.
type PromptConfig struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Arguments   []PromptArgument `yaml:"arguments,omitempty"`
	Template    string           `yaml:"template"`
}

// PromptArgument is one declared prompt argument.
type PromptArgument struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
}

// Call is a tool invocation received by the mock server.
type Call struct {
	Tool string
	Args map[string]any
}
