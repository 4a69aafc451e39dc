package catalog

// Descriptor describes one leaf binding. It is either a FunctionDescriptor or
// a ValueDescriptor.
type Descriptor interface {
	// TypeName returns the runtime type name of the described binding.
	TypeName() string

	// Callable reports whether the binding can be invoked.
	Callable() bool

	descriptor()
}

// FunctionDescriptor describes a callable binding.
type FunctionDescriptor struct {
	// Type is the runtime type name of the callable.
	Type string `json:"type"`

	// Docs is the callable's documentation; nil when it has none.
	Docs *string `json:"docs"`

	// IsCallable is always true.
	IsCallable bool `json:"is_callable"`

	// IsBuiltin reports whether the callable comes from the standard library.
	IsBuiltin bool `json:"is_builtin"`

	// Signature is the rendered parameter list; nil when it cannot be
	// introspected. Set together with Parent.
	Signature *string `json:"signature,omitempty"`

	// Parent is the dotted path of the containing namespace ("" at the root).
	// Set together with Signature.
	Parent *string `json:"parent,omitempty"`
}

// TypeName implements Descriptor.
func (d FunctionDescriptor) TypeName() string { return d.Type }

// Callable implements Descriptor.
func (d FunctionDescriptor) Callable() bool { return true }

func (FunctionDescriptor) descriptor() {}

// ValueDescriptor describes a plain value binding.
type ValueDescriptor struct {
	// Type is the runtime type name of the value.
	Type string `json:"type"`

	// Value is the value itself for scalar types, otherwise its display string.
	Value any `json:"value"`

	// IsCallable is always false.
	IsCallable bool `json:"is_callable"`
}

// TypeName implements Descriptor.
func (d ValueDescriptor) TypeName() string { return d.Type }

// Callable implements Descriptor.
func (d ValueDescriptor) Callable() bool { return false }

func (ValueDescriptor) descriptor() {}
