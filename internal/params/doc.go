// Package params derives parameter schemas from resource class descriptors.
//
// A Builder walks a root class, and for abstract classes every concrete
// variant, through the hints resolver and flattens the result into a
// SpecSet: one ParameterSpec per addressable leaf or object path, with the
// accepted type names and the required and nullable flags.
//
// Walking is pure. The same root always yields an equal SpecSet, and
// BuildAll may build many roots concurrently.
package params
