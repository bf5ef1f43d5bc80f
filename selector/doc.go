// Package selector solves a package-version selection problem: given a set
// of packages, each with a discrete range of candidate versions, and a set
// of version-conditional dependency constraints between them, it chooses a
// version for each package (or marks the package disabled) such that all
// dependencies are satisfied and a lexicographic cost vector is minimized.
//
// The model is built in four stages, mirroring the flow of a Problem's
// lifetime: a Problem is constructed and populated with packages and
// constraints (Builder phase, see AddPackage and AddVersionConstraint); it
// is finalized exactly once, which materializes the objective variables and
// posts the branching schedule (see Finalize); it is solved by a restart
// branch-and-bound search (see Solve); and the result is read back out
// through the methods in readout.go.
//
// The finite-domain primitives the model is built from - integer and
// boolean decision variables, reified equality/membership, linear
// equalities, and a clonable restart branch-and-bound search - live in the
// fd subpackage, which plays the role of the external constraint engine
// that a production system would otherwise link against.
package selector
