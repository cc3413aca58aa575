// Package hints resolves the constructor type hints of resource classes.
//
// Resolution has two paths. When every parameter of a class carries a live
// type whose class references are all registered, the live types are the
// hints. Otherwise each parameter is resolved on its own: live types are
// used where they resolve, and deferred annotation text is parsed with
// package typeexpr and bound against an environment assembled from
//
//   - builtin names (str, int, float, bool, None, Any, dict, list),
//   - the module's top-level names (its classes and imports),
//   - the auxiliary table of well-known types that class annotations use
//     without importing them at module level,
//   - the class's own namespace (nested enums and aliases).
//
// Later sources shadow earlier ones. A name that cannot be bound drops only
// that parameter from the result; an annotation outside the grammar aborts
// resolution with *typeexpr.UnsupportedAnnotationError.
//
// Classify turns a resolved hint into one Descriptor per union alternative.
package hints
