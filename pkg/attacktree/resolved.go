package attacktree

import (
	"fmt"
	"strings"

	"github.com/smith-xyz/golang-tara/pkg/models"
)

// ResolvedNode is a reporting snapshot of a node with its rating computed.
type ResolvedNode struct {
	Name        string             `json:"name" yaml:"name"`
	Kind        Kind               `json:"kind" yaml:"kind"`
	Feasibility models.Feasibility `json:"feasibility" yaml:"feasibility"`
	Reasoning   string             `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	Comment     string             `json:"comment,omitempty" yaml:"comment,omitempty"`
	Children    []*ResolvedNode    `json:"children,omitempty" yaml:"children,omitempty"`
	// Controls are the active controls applied at this node.
	Controls []string `json:"controls,omitempty" yaml:"controls,omitempty"`
	// TreeID is the linked tree of REF and CIRC nodes.
	TreeID string `json:"tree_id,omitempty" yaml:"tree_id,omitempty"`
}

// Anchor returns the document anchor of the linked tree.
func (r *ResolvedNode) Anchor() string {
	return strings.ToLower(r.TreeID)
}

// Walk visits r and its descendants in pre-order.
func (r *ResolvedNode) Walk(fn func(node *ResolvedNode, depth int)) {
	r.walk(0, fn)
}

func (r *ResolvedNode) walk(depth int, fn func(*ResolvedNode, int)) {
	fn(r, depth)
	for _, child := range r.Children {
		child.walk(depth+1, fn)
	}
}

// ResolvedTree is a reporting snapshot of an attack tree.
type ResolvedTree struct {
	ID          string        `json:"id" yaml:"id"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Root        *ResolvedNode `json:"root" yaml:"root"`
}

// Resolve builds the snapshot of t with controls honoured. A node with
// active controls becomes a "Controlled <name>" AND node over the node
// itself and one CIRC node per active control. REF and CIRC nodes link to
// their tree and are never expanded.
func (e *Evaluator) Resolve(t *Tree) (*ResolvedTree, error) {
	return e.resolveTree(t, true)
}

// ResolveWithoutControls builds the snapshot of t with all controls ignored.
func (e *Evaluator) ResolveWithoutControls(t *Tree) (*ResolvedTree, error) {
	return e.resolveTree(t, false)
}

func (e *Evaluator) resolveTree(t *Tree, honorControls bool) (*ResolvedTree, error) {
	if t.Root == nil {
		return nil, fmt.Errorf("%w: attack tree %s has no root node", ErrStructure, t.ID)
	}
	root, err := e.resolve(t.Root, honorControls)
	if err != nil {
		return nil, fmt.Errorf("resolving attack tree %s: %w", t.ID, err)
	}
	return &ResolvedTree{ID: t.ID, Description: t.Description, Root: root}, nil
}

func (e *Evaluator) resolve(n *Node, honorControls bool) (*ResolvedNode, error) {
	var active []string
	if honorControls {
		var err error
		if active, err = e.ActiveControls(n); err != nil {
			return nil, err
		}
	}
	if len(active) == 0 {
		return e.resolveStripped(n, honorControls)
	}

	f, err := e.Evaluate(n, true)
	if err != nil {
		return nil, err
	}
	stripped, err := e.resolveStripped(n, true)
	if err != nil {
		return nil, err
	}
	wrapper := &ResolvedNode{
		Name:        "Controlled " + n.Name,
		Kind:        KindAnd,
		Feasibility: f,
		Children:    []*ResolvedNode{stripped},
		Controls:    active,
	}
	for _, controlID := range active {
		circ, err := e.lookupTree(CircumventionTreeID(controlID), n)
		if err != nil {
			return nil, err
		}
		cf, err := e.Evaluate(circ.Root, true)
		if err != nil {
			return nil, err
		}
		wrapper.Children = append(wrapper.Children, &ResolvedNode{
			Name:        circ.Root.Name,
			Kind:        KindCircumvention,
			Feasibility: cf,
			Reasoning:   circ.Root.Reasoning,
			Comment:     circ.Root.Comment,
			TreeID:      circ.ID,
		})
	}
	return wrapper, nil
}

// resolveStripped mirrors n without its own controls.
func (e *Evaluator) resolveStripped(n *Node, honorControls bool) (*ResolvedNode, error) {
	f, err := e.BaseRating(n, honorControls)
	if err != nil {
		return nil, err
	}
	out := &ResolvedNode{
		Name:        n.Name,
		Kind:        n.Kind,
		Feasibility: f,
		Reasoning:   n.Reasoning,
		Comment:     n.Comment,
	}
	switch n.Kind {
	case KindReference:
		out.TreeID = n.ReferenceID
	case KindAnd, KindOr:
		for _, child := range n.Children {
			rc, err := e.resolve(child, honorControls)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, rc)
		}
	case KindLeaf:
	default:
		return nil, fmt.Errorf("%w: cannot resolve %s node %q", ErrStructure, n.Kind, n.Name)
	}
	return out, nil
}
