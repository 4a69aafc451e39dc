package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolscope/backend"
)

// Tools is the metatool environment exposed to code snippets. It provides
// functions for discovering, documenting, and executing tools.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods must honor cancellation/deadlines and return ctx.Err() when canceled.
// - Errors: execution failures propagate underlying errors (e.g., ErrLimitExceeded).
// - Ownership: args are read-only; returned slices/results are caller-owned snapshots.
type Tools interface {
	// SearchTools searches for tools matching the query, returning up to limit results.
	SearchTools(ctx context.Context, query string, limit int) ([]index.Summary, error)

	// ListNamespaces returns all available tool namespaces.
	ListNamespaces(ctx context.Context) ([]string, error)

	// DescribeTool returns documentation for a tool at the specified detail level.
	DescribeTool(ctx context.Context, id string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error)

	// ListToolExamples returns up to maxExamples usage examples for a tool.
	ListToolExamples(ctx context.Context, id string, maxExamples int) ([]tooldoc.ToolExample, error)

	// RunTool executes a single tool and returns the result.
	// Each call is recorded in the session trace.
	RunTool(ctx context.Context, id string, args map[string]any) (any, error)

	// RunChain executes a sequence of tool calls, where each step can
	// optionally use the previous step's result via UsePrevious.
	RunChain(ctx context.Context, steps []ChainStep) (any, []StepResult, error)

	// Println writes output to the captured stdout buffer.
	Println(args ...any)
}

// Session is the Tools implementation bound to one snippet execution. It
// tracks tool calls and enforces the environment's limits.
type Session struct {
	env           *Environment
	index         index.Index
	docs          tooldoc.Store
	backends      *backend.Aggregator
	logger        Logger
	maxToolCalls  int
	maxChainSteps int

	mu        sync.Mutex
	toolCalls []ToolCallRecord
	stdout    strings.Builder
	callCount int
}

var _ Tools = (*Session)(nil)

func newSession(env *Environment) *Session {
	cfg := &env.cfg
	return &Session{
		env:           env,
		index:         cfg.Index,
		docs:          cfg.Docs,
		backends:      cfg.Backends,
		logger:        cfg.Logger,
		maxToolCalls:  cfg.MaxToolCalls,
		maxChainSteps: cfg.MaxChainSteps,
	}
}

// SearchTools searches the tool index for query, returning at most limit summaries.
func (s *Session) SearchTools(ctx context.Context, query string, limit int) ([]index.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.index.Search(query, limit)
}

// ListNamespaces returns the namespaces known to the tool index.
func (s *Session) ListNamespaces(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.index.ListNamespaces()
}

// DescribeTool returns documentation for the tool id at the given detail level.
func (s *Session) DescribeTool(ctx context.Context, id string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error) {
	if err := ctx.Err(); err != nil {
		return tooldoc.ToolDoc{}, err
	}
	return s.docs.DescribeTool(id, level)
}

// ListToolExamples returns up to maxExamples usage examples for the tool id.
func (s *Session) ListToolExamples(ctx context.Context, id string, maxExamples int) ([]tooldoc.ToolExample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.docs.ListExamples(id, maxExamples)
}

// reserve claims n tool calls against the session limit.
func (s *Session) reserve(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxToolCalls > 0 && s.callCount+n > s.maxToolCalls {
		return fmt.Errorf("%w: max tool calls (%d) exceeded (need %d, have %d remaining)",
			ErrLimitExceeded, s.maxToolCalls, n, s.maxToolCalls-s.callCount)
	}
	s.callCount += n
	return nil
}

func (s *Session) record(r ToolCallRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toolCalls = append(s.toolCalls, r)
}

// RunTool executes the tool id with args and records the call.
// It fails with ErrLimitExceeded once MaxToolCalls is used up.
func (s *Session) RunTool(ctx context.Context, id string, args map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.backends == nil {
		return nil, ErrNoBackends
	}
	if err := s.reserve(1); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.backends.Execute(ctx, id, args)

	rec := ToolCallRecord{
		ToolID:     id,
		Args:       deepCopyArgs(args),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		rec.Error = err.Error()
		rec.ErrorOp = "run"
	} else {
		rec.Result = deepCopyValue(result)
	}
	s.record(rec)

	if s.logger != nil {
		s.logger.Logf("sandbox: ran %s in %dms", id, rec.DurationMs)
	}
	return result, err
}

// RunChain executes steps in order, passing each result to the next step as
// args["previous"] when UsePrevious is set. It stops at the first failing
// step and returns the last successful result with the per-step results.
func (s *Session) RunChain(ctx context.Context, steps []ChainStep) (any, []StepResult, error) {
	if s.maxChainSteps > 0 && len(steps) > s.maxChainSteps {
		return nil, nil, fmt.Errorf("%w: max chain steps (%d) exceeded (got %d)",
			ErrLimitExceeded, s.maxChainSteps, len(steps))
	}
	if s.backends == nil {
		return nil, nil, ErrNoBackends
	}
	if err := s.reserve(len(steps)); err != nil {
		return nil, nil, err
	}

	results := make([]StepResult, 0, len(steps))
	var previous any
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return previous, results, err
		}

		args := make(map[string]any, len(step.Args)+1)
		for k, v := range step.Args {
			args[k] = v
		}
		if step.UsePrevious {
			args["previous"] = previous
		}

		start := time.Now()
		result, err := s.backends.Execute(ctx, step.ToolID, args)
		rec := ToolCallRecord{
			ToolID:     step.ToolID,
			Args:       deepCopyArgs(args),
			DurationMs: time.Since(start).Milliseconds(),
		}
		sr := StepResult{ToolID: step.ToolID, Result: result, Err: err}
		results = append(results, sr)

		if err != nil {
			rec.Error = err.Error()
			rec.ErrorOp = "chain"
			s.record(rec)
			return previous, results, fmt.Errorf("chain step %d (%s): %w", len(results), step.ToolID, err)
		}
		rec.Result = deepCopyValue(result)
		s.record(rec)
		previous = result
	}
	return previous, results, nil
}

// Println appends a line to the session's captured stdout.
func (s *Session) Println(args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(&s.stdout, args...)
}

// ToolCalls returns a copy of all recorded tool calls.
func (s *Session) ToolCalls() []ToolCallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ToolCallRecord(nil), s.toolCalls...)
}

// Stdout returns the captured output.
func (s *Session) Stdout() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stdout.String()
}

// deepCopyArgs copies an args map, normalizing typed maps and slices into
// JSON-native shapes (map[string]any, []any).
func deepCopyArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	result := make(map[string]any, len(args))
	for k, v := range args {
		result[k] = deepCopyValue(v)
	}
	return result
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return deepCopyArgs(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = deepCopyValue(e)
		}
		return out
	case string, bool, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		json.Number:
		return val
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return deepCopyValue(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if out, ok := deepCopyViaJSON(v); ok {
			return out
		}
	}
	return v
}

func deepCopyViaJSON(v any) (any, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}
