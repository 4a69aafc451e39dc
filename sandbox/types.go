package sandbox

// ToolCallRecord captures a single tool invocation made during a session.
type ToolCallRecord struct {
	// ToolID is the canonical identifier of the tool that was called.
	ToolID string `json:"toolId"`

	// Args contains the arguments passed to the tool.
	Args map[string]any `json:"args,omitempty"`

	// Result contains the result of a successful tool execution.
	Result any `json:"result,omitempty"`

	// Error contains the error message if the tool call failed.
	Error string `json:"error,omitempty"`

	// ErrorOp indicates the operation that failed ("run" or "chain").
	ErrorOp string `json:"errorOp,omitempty"`

	// DurationMs is the execution time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}

// ChainStep is a single step of RunChain.
type ChainStep struct {
	// ToolID is the tool to run, in "namespace:name" form.
	ToolID string `json:"toolId"`

	// Args are the step's arguments.
	Args map[string]any `json:"args,omitempty"`

	// UsePrevious injects the previous step's result as args["previous"].
	UsePrevious bool `json:"usePrevious,omitempty"`
}

// StepResult is the outcome of a single chain step.
type StepResult struct {
	ToolID string `json:"toolId"`
	Result any    `json:"result,omitempty"`
	Err    error  `json:"-"`
}
