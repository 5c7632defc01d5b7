package attacktree

import "errors"

var (
	// ErrStructure is returned for malformed trees, e.g. an AND/OR node without children.
	ErrStructure = errors.New("invalid attack tree structure")
	// ErrReference is returned when a referenced tree or control is not registered.
	ErrReference = errors.New("unresolved reference")
	// ErrCycle is returned when evaluation revisits a node it is still evaluating.
	ErrCycle = errors.New("reference cycle detected")
	// ErrDepthExceeded is returned when evaluation recurses deeper than the configured bound.
	ErrDepthExceeded = errors.New("maximum evaluation depth exceeded")
)
