// Package vocabulary ships the built-in QR robot vocabulary: the type
// hierarchy, value shapes, object-type constructors, and predicate
// signatures a downstream task-and-motion planning toolchain consumes,
// plus an advisory metadata registry describing each predicate.
//
// Names use qualified "::" notation (qr::pose, qrgeom::body-pose,
// urdf::prop, sim::gravity). The prefix is an opaque part of the
// identifier, not a module system.
//
// Builtin returns the frozen schema; Declarations returns the raw
// declaration list so deployments can Merge their own types and
// predicates on top before loading:
//
//	decls := vocabulary.Declarations().Merge(extra)
//	s, err := schema.Load(decls)
package vocabulary
