package vocabulary

// Type names using qualified "::" notation. The prefix is part of the
// identifier: qr:: carries the core kinematic vocabulary, qrgeom:: the
// geometry primitives.
//
// Object types describe instantiable things in a scene; value types
// describe the structured values facts attach to them. Base types are
// listed before derived types, matching the loader's parent-before-child
// requirement.

// Object types

const (
	// TypeBody is a rigid body in the scene.
	TypeBody = "qr::body"
	// TypeFrame is a coordinate frame, itself a body.
	TypeFrame = "qr::frame"
	// TypeChain is a kinematic chain of joints.
	TypeChain = "qr::chain"
	// TypeJoint is a single articulated joint.
	TypeJoint = "qr::joint"

	// TypeBox is a rectangular solid primitive.
	TypeBox = "qrgeom::box"
	// TypeSphere is a sphere primitive.
	TypeSphere = "qrgeom::sphere"
	// TypeCylinder is a cylinder primitive.
	TypeCylinder = "qrgeom::cylinder"
	// TypeCapsule is a capsule primitive.
	TypeCapsule = "qrgeom::capsule"
	// TypePlane is an infinite plane primitive.
	TypePlane = "qrgeom::plane"
	// TypeMesh is a triangle mesh loaded from a resource file.
	TypeMesh = "qrgeom::mesh"
)

// Value types

const (
	// TypeString is an unconstrained string value.
	TypeString = "qr::string"
	// TypeScalar is a plain numeric value.
	TypeScalar = "qr::scalar"
	// TypeBoolean is a true/false value.
	TypeBoolean = "qr::boolean"

	// TypePose is a 6-field spatial pose: x, y, z, roll, pitch, yaw.
	TypePose = "qr::pose"
	// TypePose2D is a planar position: x, y.
	TypePose2D = "qr::pose2d"
	// TypeColor is an RGBA color: r, g, b, a in [0,1].
	TypeColor = "qr::color"
	// TypeInertia is a diagonal inertia: ixx, iyy, izz.
	TypeInertia = "qr::inertia"

	// TypeJointConf is a single joint position. Modeled as a scalar, not
	// a 1-field tuple: the source declares no field list for it.
	TypeJointConf = "qr::joint-conf"
	// TypeChainConf is a joint configuration for a whole chain, one
	// scalar per chain joint. Length is fixed only at validation time.
	TypeChainConf = "qr::chain-conf"
)
