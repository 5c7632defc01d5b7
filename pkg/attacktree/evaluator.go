package attacktree

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/smith-xyz/golang-tara/pkg/models"
	"github.com/smith-xyz/golang-tara/pkg/registry"
)

// DefaultMaxDepth bounds the recursion of a single evaluation.
const DefaultMaxDepth = 512

// view selects whether a node's own controls are applied.
type view int

const (
	viewControlled view = iota
	viewStripped
)

type evalKey struct {
	node          *Node
	honorControls bool
	view          view
}

// Evaluator computes feasibility ratings of attack tree nodes. Results are
// memoized per (node, honorControls, view) until invalidated. An Evaluator
// is not safe for concurrent use.
type Evaluator struct {
	registry *registry.Registry
	logger   *slog.Logger
	maxDepth int

	memo       map[evalKey]models.Feasibility
	inProgress map[evalKey]struct{}
	path       []string
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxDepth sets the recursion bound. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(e *Evaluator) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// NewEvaluator creates an evaluator resolving trees and controls through reg.
func NewEvaluator(reg *registry.Registry, logger *slog.Logger, opts ...Option) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Evaluator{
		registry:   reg,
		logger:     logger,
		maxDepth:   DefaultMaxDepth,
		memo:       make(map[evalKey]models.Feasibility),
		inProgress: make(map[evalKey]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the feasibility of n. With honorControls, every node on
// the way, n included, is combined with the circumvention trees of its
// active controls.
func (e *Evaluator) Evaluate(n *Node, honorControls bool) (models.Feasibility, error) {
	return e.rating(n, honorControls, viewControlled)
}

// BaseRating returns the feasibility of n with its own controls ignored.
// Controls of descendants still apply when honorControls is set.
func (e *Evaluator) BaseRating(n *Node, honorControls bool) (models.Feasibility, error) {
	return e.rating(n, honorControls, viewStripped)
}

// EvaluateTree evaluates the root of t.
func (e *Evaluator) EvaluateTree(t *Tree, honorControls bool) (models.Feasibility, error) {
	if t.Root == nil {
		return models.Feasibility{}, fmt.Errorf("%w: attack tree %s has no root node", ErrStructure, t.ID)
	}
	return e.Evaluate(t.Root, honorControls)
}

// ActiveControls returns the IDs of the controls attached to n that are
// currently active. An attached ID that is not a registered control is an
// ErrReference.
func (e *Evaluator) ActiveControls(n *Node) ([]string, error) {
	var active []string
	for _, id := range n.ControlIDs {
		control, ok := registry.Lookup[*models.SecurityControl](e.registry, id)
		if !ok {
			e.logger.Error("Security control not found", "control", id, "node", n.Name)
			return nil, fmt.Errorf("%w: security control %s attached to %q", ErrReference, id, n.Name)
		}
		if control.IsActive {
			active = append(active, id)
		}
	}
	return active, nil
}

// Invalidate drops every memoized rating. Call it after control states or
// registry contents change.
func (e *Evaluator) Invalidate() {
	clear(e.memo)
}

// InvalidateNode drops the memoized ratings of n and its owned descendants.
func (e *Evaluator) InvalidateNode(n *Node) {
	Walk(n, func(node *Node, _ int) bool {
		for _, honor := range []bool{true, false} {
			delete(e.memo, evalKey{node, honor, viewControlled})
			delete(e.memo, evalKey{node, honor, viewStripped})
		}
		return true
	})
}

func (e *Evaluator) rating(n *Node, honorControls bool, v view) (models.Feasibility, error) {
	if n == nil {
		return models.Feasibility{}, fmt.Errorf("%w: nil node", ErrStructure)
	}
	if !honorControls {
		v = viewStripped
	}
	key := evalKey{node: n, honorControls: honorControls, view: v}
	if f, ok := e.memo[key]; ok {
		return f, nil
	}

	if _, busy := e.inProgress[key]; busy {
		return models.Feasibility{}, fmt.Errorf("%w: %s -> %s", ErrCycle, strings.Join(e.path, " -> "), n.Name)
	}
	if len(e.path) >= e.maxDepth {
		return models.Feasibility{}, fmt.Errorf("%w: %d levels at %q", ErrDepthExceeded, e.maxDepth, n.Name)
	}
	e.inProgress[key] = struct{}{}
	e.path = append(e.path, n.Name)
	defer func() {
		delete(e.inProgress, key)
		e.path = e.path[:len(e.path)-1]
	}()

	var (
		f   models.Feasibility
		err error
	)
	if v == viewControlled {
		f, err = e.controlled(n)
	} else {
		f, err = e.base(n, honorControls)
	}
	if err != nil {
		return models.Feasibility{}, err
	}
	e.memo[key] = f
	return f, nil
}

// controlled is AND(base rating, circumvention of every active control).
func (e *Evaluator) controlled(n *Node) (models.Feasibility, error) {
	active, err := e.ActiveControls(n)
	if err != nil {
		return models.Feasibility{}, err
	}
	f, err := e.rating(n, true, viewStripped)
	if err != nil {
		return models.Feasibility{}, err
	}
	for _, controlID := range active {
		circ, err := e.lookupTree(CircumventionTreeID(controlID), n)
		if err != nil {
			return models.Feasibility{}, err
		}
		cf, err := e.rating(circ.Root, true, viewControlled)
		if err != nil {
			return models.Feasibility{}, err
		}
		f = f.And(cf)
	}
	return f, nil
}

func (e *Evaluator) base(n *Node, honorControls bool) (models.Feasibility, error) {
	switch n.Kind {
	case KindLeaf:
		return n.Feasibility, nil
	case KindAnd, KindOr:
		if len(n.Children) == 0 {
			return models.Feasibility{}, fmt.Errorf("%w: %s node %q has no children", ErrStructure, n.Kind, n.Name)
		}
		f, err := e.rating(n.Children[0], honorControls, viewControlled)
		if err != nil {
			return models.Feasibility{}, err
		}
		for _, child := range n.Children[1:] {
			cf, err := e.rating(child, honorControls, viewControlled)
			if err != nil {
				return models.Feasibility{}, err
			}
			if n.Kind == KindAnd {
				f = f.And(cf)
			} else {
				f = f.Or(cf)
			}
		}
		return f, nil
	case KindReference:
		target, err := e.lookupTree(n.ReferenceID, n)
		if err != nil {
			return models.Feasibility{}, err
		}
		return e.rating(target.Root, honorControls, viewControlled)
	case KindCircumvention:
		return models.Feasibility{}, fmt.Errorf("%w: %s is a presentation kind (node %q)", ErrStructure, n.Kind, n.Name)
	default:
		return models.Feasibility{}, fmt.Errorf("%w: unknown node kind %d (node %q)", ErrStructure, int(n.Kind), n.Name)
	}
}

func (e *Evaluator) lookupTree(id string, from *Node) (*Tree, error) {
	tree, ok := registry.Lookup[*Tree](e.registry, id)
	if !ok {
		e.logger.Error("Referenced attack tree not found", "tree", id, "node", from.Name)
		return nil, fmt.Errorf("%w: attack tree %s referenced by %q", ErrReference, id, from.Name)
	}
	if tree.Root == nil {
		return nil, fmt.Errorf("%w: attack tree %s has no root node", ErrStructure, id)
	}
	return tree, nil
}
