package schema

// ParamKind distinguishes ordinary parameters from variadic catch-alls.
type ParamKind int

const (
	// Positional is an ordinary named parameter.
	Positional ParamKind = iota
	// VarPositional collects extra positional arguments (*args).
	VarPositional
	// VarKeyword collects extra keyword arguments (**kwargs).
	VarKeyword
)

// String returns a human-readable representation of the ParamKind.
func (k ParamKind) String() string {
	switch k {
	case Positional:
		return "positional"
	case VarPositional:
		return "var_positional"
	case VarKeyword:
		return "var_keyword"
	default:
		return "unknown"
	}
}

// Param is one constructor parameter.
//
// Type is the live annotation. When it is nil the parameter was declared
// with annotation text only (Annotation) and must be resolved textually.
// A parameter with neither has no recoverable hint.
type Param struct {
	Name       string
	Type       Type
	Annotation string
	HasDefault bool
	Kind       ParamKind
}

// Deferred reports whether the parameter needs textual resolution.
func (p Param) Deferred() bool {
	return p.Type == nil && p.Annotation != ""
}

// Req declares a required parameter with a live type.
func Req(name string, t Type) Param {
	return Param{Name: name, Type: t}
}

// Opt declares a defaulted parameter with a live type.
func Opt(name string, t Type) Param {
	return Param{Name: name, Type: t, HasDefault: true}
}

// ReqText declares a required parameter with a deferred annotation.
func ReqText(name, annotation string) Param {
	return Param{Name: name, Annotation: annotation}
}

// OptText declares a defaulted parameter with a deferred annotation.
func OptText(name, annotation string) Param {
	return Param{Name: name, Annotation: annotation, HasDefault: true}
}

// Kwargs declares a **kwargs catch-all.
func Kwargs(name string) Param {
	return Param{Name: name, Kind: VarKeyword, HasDefault: true}
}

// Class describes a resource class by its constructor.
type Class struct {
	Name     string
	Module   string
	Abstract bool
	Base     string  // name of the parent class, empty for roots
	Params   []Param // constructor parameters in declaration order
	// Locals is the class namespace: nested enums and aliases visible to
	// the class's own deferred annotations.
	Locals map[string]Type
}

// Param returns the named parameter.
func (c *Class) Param(name string) (Param, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Module groups classes the way a source module does. Its top-level names
// are every class registered in it plus Imports.
type Module struct {
	Name    string
	Imports map[string]Type
}
