package semantic

import (
	"iter"

	"github.com/yaklabco/gojs/pkg/ast"
)

// NodeID indexes the node arena. The program is always node 0.
type NodeID uint32

// Node is an arena entry: the syntax node plus its parent link and the scope
// it appears in. Parent links are ids, never pointers.
type Node struct {
	ID     NodeID
	Kind   ast.Node
	Parent NodeID
	Scope  ScopeID
}

// Nodes is the arena of every syntax node in source order.
type Nodes struct {
	list  []Node
	index map[ast.Node]NodeID
}

func newNodes(capacity int) *Nodes {
	return &Nodes{
		list:  make([]Node, 0, capacity),
		index: make(map[ast.Node]NodeID, capacity),
	}
}

func (n *Nodes) add(kind ast.Node, parent NodeID, scope ScopeID) NodeID {
	id := NodeID(len(n.list))
	if id == 0 {
		parent = 0
	}
	n.list = append(n.list, Node{ID: id, Kind: kind, Parent: parent, Scope: scope})
	n.index[kind] = id
	return id
}

// Len returns the number of nodes.
func (n *Nodes) Len() int {
	return len(n.list)
}

// Get returns the node with the given id.
func (n *Nodes) Get(id NodeID) *Node {
	return &n.list[id]
}

// Lookup finds the arena id of a syntax node.
func (n *Nodes) Lookup(kind ast.Node) (NodeID, bool) {
	id, ok := n.index[kind]
	return id, ok
}

// Parent returns the parent of id. The program has no parent.
func (n *Nodes) Parent(id NodeID) (*Node, bool) {
	if id == 0 || int(id) >= len(n.list) {
		return nil, false
	}
	return &n.list[n.list[id].Parent], true
}

// All iterates every node in source order.
func (n *Nodes) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for i := range n.list {
			if !yield(&n.list[i]) {
				return
			}
		}
	}
}

// Ancestors iterates the parents of id from nearest to the program.
func (n *Nodes) Ancestors(id NodeID) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for {
			parent, ok := n.Parent(id)
			if !ok || !yield(parent) {
				return
			}
			id = parent.ID
		}
	}
}
