package hints

import "fmt"

// UnresolvedNameError reports an annotation name missing from the
// environment. It is a resolution gap for one parameter, never fatal.
type UnresolvedNameError struct {
	Class string
	Param string
	Name  string
}

func (e *UnresolvedNameError) Error() string {
	return fmt.Sprintf("%s.%s: name %q is not defined", e.Class, e.Param, e.Name)
}

// ResolveError wraps a fatal resolution failure with the class and
// parameter it occurred in.
type ResolveError struct {
	Class string
	Param string
	Err   error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %s.%s: %v", e.Class, e.Param, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
