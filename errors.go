package parbst

import "errors"

var (
	// ErrInvalidConfig signals an invalid build configuration.
	ErrInvalidConfig = errors.New("parbst: invalid configuration")
	// ErrNoTree signals that a verification was requested for a tree which has
	// never been built (or has already been released).
	ErrNoTree = errors.New("parbst: no tree was built")
	// ErrCorruptTree signals a violation of the ordering invariant. It always
	// indicates broken synchronization during the build.
	ErrCorruptTree = errors.New("parbst: tree structure is corrupt")
	// ErrCountMismatch signals lost or duplicated insertions.
	ErrCountMismatch = errors.New("parbst: number of nodes is not equal to number of values")
	// ErrBuildFailed signals that a worker has been aborted while inserting.
	ErrBuildFailed = errors.New("parbst: build failed")
	// ErrTreeTooLarge signals that a debugging output has been requested for a tree
	// with too many nodes.
	ErrTreeTooLarge = errors.New("parbst: tree too large")
)
