package vocabulary

// Metadata registration for the built-in predicates. Descriptions, units,
// and ranges are advisory documentation surfaced by tooling; validation
// only ever consults the schema declarations in builtin.go.

func init() {
	Register(GeomBodyPose,
		WithDescription("Spatial pose of a rigid body: x, y, z, roll, pitch, yaw"),
		WithUnits("meters, radians"))

	Register(GeomBodyPose2D,
		WithDescription("Planar position of a rigid body: x, y"),
		WithUnits("meters"))

	Register(GeomBodyColor,
		WithDescription("Display color of a rigid body: r, g, b, a"),
		WithRange("0-1 per channel"))

	Register(GeomBodyMass,
		WithDescription("Mass of a rigid body"),
		WithUnits("kg"),
		WithRange("positive"))

	Register(GeomBodyInertia,
		WithDescription("Diagonal rotational inertia of a rigid body: ixx, iyy, izz"),
		WithUnits("kg·m²"))

	Register(GeomBoxSize,
		WithDescription("Extents of a box primitive: width, depth, height"),
		WithUnits("meters"),
		WithRange("positive"))

	Register(GeomBoxContactModel,
		WithDescription("Contact model a simulator should use for a box"),
		WithRange("point|hydroelastic (advisory)"))

	Register(GeomWeld,
		WithDescription("Rigid attachment of a child frame to a parent frame at a fixed pose"))

	Register(GeomAttach,
		WithDescription("Detachable attachment of a child body to a parent body at a pose"))

	Register(ConfJoint,
		WithDescription("Position of a single joint"),
		WithUnits("radians or meters, per joint type"))

	Register(ConfChain,
		WithDescription("Configuration of a kinematic chain, one scalar per joint"),
		WithUnits("radians or meters, per joint type"))

	Register(URDFProp,
		WithDescription("Named robot-description property passed through to URDF tooling"))

	Register(URDFLoadArg,
		WithDescription("Loader argument passed through to URDF tooling"))

	Register(SimCameraPose,
		WithDescription("Initial camera pose for the simulation viewer"),
		WithUnits("meters, radians"))

	Register(SimGravity,
		WithDescription("Gravitational acceleration magnitude"),
		WithUnits("m/s²"))

	Register(SimTimestep,
		WithDescription("Fixed simulation timestep"),
		WithUnits("seconds"),
		WithRange("positive"))

	Register(SimViewer,
		WithDescription("Whether the simulation viewer is enabled"))
}
