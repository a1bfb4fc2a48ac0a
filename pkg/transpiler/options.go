package transpiler

// EmitOptions controls code generation.
type EmitOptions struct {
	// Indent is the indentation string per nesting level (default is four spaces).
	Indent string
	// ParamType is the Rust type given to every function parameter (default is i32).
	ParamType string
}

// Defaults applied by normalize.
const (
	DefaultIndent    = "    "
	DefaultParamType = "i32"
)

// normalize fills in defaults. A nil receiver yields the defaults.
func (o *EmitOptions) normalize() EmitOptions {
	if o == nil {
		return EmitOptions{Indent: DefaultIndent, ParamType: DefaultParamType}
	}

	out := *o
	if out.Indent == "" {
		out.Indent = DefaultIndent
	}
	if out.ParamType == "" {
		out.ParamType = DefaultParamType
	}

	return out
}
