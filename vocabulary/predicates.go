package vocabulary

// Predicate vocabulary using qualified "::" notation: namespace::name.
// The namespace prefix is an opaque part of the flat identifier, not a
// module system; two predicates differing only by prefix are distinct.
//
// Predicate naming conventions:
//   - qrgeom:: geometry and attachment facts
//   - qr::     kinematic configuration facts
//   - urdf::   robot-description pass-through properties
//   - sim::    simulation and viewer settings
//
// Each predicate's parameter list is declared in builtin.go; constants
// here give callers compile-checked names.

// Geometry predicates

const (
	// GeomBodyPose is (body: qr::body, pose: qr::pose).
	GeomBodyPose = "qrgeom::body-pose"
	// GeomBodyPose2D is (body: qr::body, pose: qr::pose2d).
	GeomBodyPose2D = "qrgeom::body-pose2d"
	// GeomBodyColor is (body: qr::body, color: qr::color).
	GeomBodyColor = "qrgeom::body-color"
	// GeomBodyMass is (body: qr::body, mass: qr::scalar), kilograms.
	GeomBodyMass = "qrgeom::body-mass"
	// GeomBodyInertia is (body: qr::body, inertia: qr::inertia).
	GeomBodyInertia = "qrgeom::body-inertia"

	// GeomBoxSize is (box: qrgeom::box, width, depth, height: qr::scalar), meters.
	GeomBoxSize = "qrgeom::box-size"
	// GeomBoxContactModel is (box: qrgeom::box, model: qr::string).
	// The source documents "point" and "hydroelastic" as the expected
	// values, but types the parameter as an unconstrained string; the
	// enum is advisory only and not validated.
	GeomBoxContactModel = "qrgeom::box-contact-model"

	// GeomWeld is (parent: qr::frame, child: qr::frame, pose: qr::pose),
	// a rigid attachment between two frames.
	GeomWeld = "qrgeom::weld"
	// GeomAttach is (parent: qr::body, child: qr::body, pose: qr::pose),
	// a detachable attachment between two bodies.
	GeomAttach = "qrgeom::attach"
)

// Kinematic configuration predicates

const (
	// ConfJoint is (joint: qr::joint, conf: qr::joint-conf).
	ConfJoint = "qr::conf-joint"
	// ConfChain is (chain: qr::chain, conf: qr::chain-conf).
	ConfChain = "qr::conf-chain"
)

// URDF pass-through predicates. The core only type-checks these; reading
// and writing robot-description files belongs to downstream tooling.

const (
	// URDFProp is (body: qr::body, name: qr::string, value: qr::string).
	URDFProp = "urdf::prop"
	// URDFLoadArg is (body: qr::body, key: qr::string, value: qr::string).
	URDFLoadArg = "urdf::load-arg"
)

// Simulation predicates. Only the scalar values are type-checked here;
// camera and viewer semantics belong to the simulator.

const (
	// SimCameraPose is (pose: qr::pose).
	SimCameraPose = "sim::camera-pose"
	// SimGravity is (g: qr::scalar), m/s².
	SimGravity = "sim::gravity"
	// SimTimestep is (dt: qr::scalar), seconds.
	SimTimestep = "sim::timestep"
	// SimViewer is (enabled: qr::boolean).
	SimViewer = "sim::viewer"
)
