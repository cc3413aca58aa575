// Package typeexpr parses constructor annotation text into structured type
// expressions.
//
// Resource classes sourced from outside this repository describe their
// parameters as annotation text ("dict[str, ContainerProperty]",
// "Sequence[ViewId] | None"). This package recognises a closed grammar of
// such annotations and nothing else:
//
//	X | None                  optional suffix, kept as a union with None
//	A | B | C                 vertical union (every segment bracket-balanced)
//	dict[K, V], Mapping[K, V] split on the first top-level comma
//	Optional[X]
//	list[X], tuple[X], Collection[X]
//	Sequence[X], typing.Sequence[X], SequenceNotStr[X]
//	Literal[v1, v2, ...]
//	Name, pkg.Name            plain or dotted identifiers
//	"Name"                    quoted forward reference
//
// Any other shape fails with *UnsupportedAnnotationError. Names are not
// resolved here; binding a parsed expression to concrete types is the job
// of the hints package.
package typeexpr
