package vocabulary

import (
	"sync"

	"github.com/RAraghavarora/lisdf/schema"
)

// scalarField is shorthand for a tuple field typed qr::scalar.
func scalarField(name string) schema.Field {
	return schema.Field{Name: name, Type: TypeScalar}
}

// Declarations returns a fresh copy of the built-in declaration list.
// Deployments layer extra declarations on top with Merge before loading.
func Declarations() schema.Declarations {
	poseShape := schema.Tuple(
		scalarField("x"), scalarField("y"), scalarField("z"),
		scalarField("roll"), scalarField("pitch"), scalarField("yaw"),
	)
	pose2dShape := schema.Tuple(scalarField("x"), scalarField("y"))
	colorShape := schema.Tuple(
		scalarField("r"), scalarField("g"), scalarField("b"), scalarField("a"),
	)
	inertiaShape := schema.Tuple(
		scalarField("ixx"), scalarField("iyy"), scalarField("izz"),
	)
	chainConfShape := schema.Sequence(TypeScalar)

	return schema.Declarations{
		Types: []schema.TypeDecl{
			// Object types, base before derived.
			{Name: TypeBody, Category: schema.CategoryObject},
			{Name: TypeFrame, Category: schema.CategoryObject, Parent: TypeBody},
			{Name: TypeChain, Category: schema.CategoryObject},
			{Name: TypeJoint, Category: schema.CategoryObject},
			{Name: TypeBox, Category: schema.CategoryObject, Parent: TypeBody},
			{Name: TypeSphere, Category: schema.CategoryObject, Parent: TypeBody},
			{Name: TypeCylinder, Category: schema.CategoryObject, Parent: TypeBody},
			{Name: TypeCapsule, Category: schema.CategoryObject, Parent: TypeBody},
			{Name: TypePlane, Category: schema.CategoryObject, Parent: TypeBody},
			{Name: TypeMesh, Category: schema.CategoryObject, Parent: TypeBody},

			// Value types. Types without a shape are scalar.
			{Name: TypeString, Category: schema.CategoryValue},
			{Name: TypeScalar, Category: schema.CategoryValue},
			{Name: TypeBoolean, Category: schema.CategoryValue},
			{Name: TypePose, Category: schema.CategoryValue, Shape: &poseShape},
			{Name: TypePose2D, Category: schema.CategoryValue, Shape: &pose2dShape},
			{Name: TypeColor, Category: schema.CategoryValue, Shape: &colorShape},
			{Name: TypeInertia, Category: schema.CategoryValue, Shape: &inertiaShape},
			{Name: TypeJointConf, Category: schema.CategoryValue},
			{Name: TypeChainConf, Category: schema.CategoryValue, Shape: &chainConfShape},
		},
		Constructors: []schema.ConstructorDecl{
			{Type: TypeFrame, Label: "world"},
			{Type: TypeBox, Label: "box"},
			{Type: TypeSphere, Label: "sphere"},
			{Type: TypeCylinder, Label: "cylinder"},
			{Type: TypeCapsule, Label: "capsule"},
			{Type: TypePlane, Label: "plane"},
			{Type: TypeMesh, Label: ""},
		},
		Predicates: []schema.PredicateDecl{
			{Name: GeomBodyPose, Parameters: []schema.Parameter{
				{Role: "body", Type: TypeBody},
				{Role: "pose", Type: TypePose},
			}},
			{Name: GeomBodyPose2D, Parameters: []schema.Parameter{
				{Role: "body", Type: TypeBody},
				{Role: "pose", Type: TypePose2D},
			}},
			{Name: GeomBodyColor, Parameters: []schema.Parameter{
				{Role: "body", Type: TypeBody},
				{Role: "color", Type: TypeColor},
			}},
			{Name: GeomBodyMass, Parameters: []schema.Parameter{
				{Role: "body", Type: TypeBody},
				{Role: "mass", Type: TypeScalar},
			}},
			{Name: GeomBodyInertia, Parameters: []schema.Parameter{
				{Role: "body", Type: TypeBody},
				{Role: "inertia", Type: TypeInertia},
			}},
			{Name: GeomBoxSize, Parameters: []schema.Parameter{
				{Role: "box", Type: TypeBox},
				{Role: "width", Type: TypeScalar},
				{Role: "depth", Type: TypeScalar},
				{Role: "height", Type: TypeScalar},
			}},
			{Name: GeomBoxContactModel, Parameters: []schema.Parameter{
				{Role: "box", Type: TypeBox},
				{Role: "model", Type: TypeString},
			}},
			{Name: GeomWeld, Parameters: []schema.Parameter{
				{Role: "parent", Type: TypeFrame},
				{Role: "child", Type: TypeFrame},
				{Role: "pose", Type: TypePose},
			}},
			{Name: GeomAttach, Parameters: []schema.Parameter{
				{Role: "parent", Type: TypeBody},
				{Role: "child", Type: TypeBody},
				{Role: "pose", Type: TypePose},
			}},
			{Name: ConfJoint, Parameters: []schema.Parameter{
				{Role: "joint", Type: TypeJoint},
				{Role: "conf", Type: TypeJointConf},
			}},
			{Name: ConfChain, Parameters: []schema.Parameter{
				{Role: "chain", Type: TypeChain},
				{Role: "conf", Type: TypeChainConf},
			}},
			{Name: URDFProp, Parameters: []schema.Parameter{
				{Role: "body", Type: TypeBody},
				{Role: "name", Type: TypeString},
				{Role: "value", Type: TypeString},
			}},
			{Name: URDFLoadArg, Parameters: []schema.Parameter{
				{Role: "body", Type: TypeBody},
				{Role: "key", Type: TypeString},
				{Role: "value", Type: TypeString},
			}},
			{Name: SimCameraPose, Parameters: []schema.Parameter{
				{Role: "pose", Type: TypePose},
			}},
			{Name: SimGravity, Parameters: []schema.Parameter{
				{Role: "g", Type: TypeScalar},
			}},
			{Name: SimTimestep, Parameters: []schema.Parameter{
				{Role: "dt", Type: TypeScalar},
			}},
			{Name: SimViewer, Parameters: []schema.Parameter{
				{Role: "enabled", Type: TypeBoolean},
			}},
		},
	}
}

var (
	builtinOnce   sync.Once
	builtinSchema *schema.Schema
	builtinErr    error
)

// Builtin returns the frozen schema for the built-in vocabulary. The
// schema is loaded once and shared; it cannot fail unless the declaration
// tables in this package are inconsistent, which the package tests pin.
func Builtin() (*schema.Schema, error) {
	builtinOnce.Do(func() {
		builtinSchema, builtinErr = schema.Load(Declarations())
	})
	return builtinSchema, builtinErr
}
