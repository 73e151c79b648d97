// Package schema implements the LISDF domain schema: a nominal type
// hierarchy over object and value categories, a catalog of structured
// value shapes, a registry of typed predicate signatures, and an
// object-type constructor catalog.
//
// # Loading
//
// A Schema is built once from an ordered declaration list (the output of
// an external s-expression reader) and frozen:
//
//	s, err := schema.Load(schema.Declarations{
//	    Types: []schema.TypeDecl{
//	        {Name: "qr::body", Category: schema.CategoryObject},
//	        {Name: "qr::pose", Category: schema.CategoryValue,
//	            Shape: &schema.ValueShape{Kind: schema.ShapeTuple, Fields: poseFields}},
//	    },
//	    Predicates: []schema.PredicateDecl{
//	        {Name: "qrgeom::body-pose", Parameters: []schema.Parameter{
//	            {Role: "body", Type: "qr::body"},
//	            {Role: "pose", Type: "qr::pose"},
//	        }},
//	    },
//	})
//
// Declarations must list parents before children. Any load failure
// (duplicate type, unknown parent, cyclic hierarchy, unknown value type,
// duplicate shape, duplicate predicate, unknown parameter type) aborts
// construction; no partially-usable schema is ever returned.
//
// # Concurrency
//
// After Load returns, the Schema is immutable. All query methods are safe
// for unbounded concurrent use without locking.
package schema
