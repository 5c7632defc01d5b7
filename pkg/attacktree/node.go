// Package attacktree models attack trees and computes their feasibility,
// including the overlay of security-control circumvention trees.
package attacktree

import (
	"fmt"

	"github.com/smith-xyz/golang-tara/pkg/models"
)

// Kind tags the node variant.
type Kind int

const (
	KindAnd Kind = iota
	KindOr
	KindLeaf
	KindReference
	// KindCircumvention only appears in resolved trees, for a circumvention
	// tree that is shown as a link instead of being expanded.
	KindCircumvention
)

func (k Kind) String() string {
	switch k {
	case KindAnd:
		return "AND"
	case KindOr:
		return "OR"
	case KindLeaf:
		return "LEAF"
	case KindReference:
		return "REF"
	case KindCircumvention:
		return "CIRC"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Node is one step of an attack tree. Children are owned by the node;
// ReferenceID and ControlIDs are resolved through the registry.
type Node struct {
	Name       string
	Reasoning  string
	Comment    string
	Kind       Kind
	Children   []*Node
	ControlIDs []string

	// Feasibility is the intrinsic rating of a LEAF node.
	Feasibility models.Feasibility
	// ReferenceID is the target tree ID of a REF node.
	ReferenceID string
}

// NewAndNode creates a node whose children must all succeed.
func NewAndNode(name string, children ...*Node) *Node {
	return &Node{Name: name, Kind: KindAnd, Children: children}
}

// NewOrNode creates a node where any one child suffices.
func NewOrNode(name string, children ...*Node) *Node {
	return &Node{Name: name, Kind: KindOr, Children: children}
}

// NewLeafNode creates a rated attack step.
func NewLeafNode(name string, f models.Feasibility) *Node {
	return &Node{Name: name, Kind: KindLeaf, Feasibility: f}
}

// NewReferenceNode creates a link to the root of another tree.
func NewReferenceNode(name, treeID string) *Node {
	return &Node{Name: name, Kind: KindReference, ReferenceID: treeID}
}

// AddChild appends child and returns n.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// WithControls attaches security control IDs and returns n.
func (n *Node) WithControls(ids ...string) *Node {
	n.ControlIDs = append(n.ControlIDs, ids...)
	return n
}

// Walk visits n and its owned descendants in pre-order. Returning false
// from fn skips the children of the visited node. References are not followed.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}

// Tree is an attack tree registered under its ID.
type Tree struct {
	ID          string
	Description string
	Root        *Node
}

func (t *Tree) ObjectID() string { return t.ID }

// TreeID returns the ID of the primary attack tree of an asset property.
func TreeID(assetID string, property models.SecurityProperty) string {
	return fmt.Sprintf("AT_%s_%s", assetID, property.AttackCode())
}

// CircumventionTreeID returns the ID of the tree describing how a control is defeated.
func CircumventionTreeID(controlID string) string {
	return "CIRC_" + controlID
}
