// Package schema provides the declared descriptors of deployable resource
// classes.
//
// A resource class is described by its constructor: an ordered list of
// parameters, each carrying either a live Type or only the annotation text
// it was declared with (a deferred annotation). Abstract classes are roots
// of polymorphic families; their concrete variants are found through the
// Registry, which replaces inheritance-based discovery with explicit
// registration at process start.
//
// This package contains descriptors and the registry only. It imports
// nothing internal, so every other package can depend on it.
package schema
