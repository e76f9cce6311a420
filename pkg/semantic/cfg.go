package semantic

import (
	"slices"

	"github.com/yaklabco/gojs/pkg/ast"
)

// ControlFlowGraph records which statements can execute. It is a structural
// analysis: a statement is unreachable when every path to it passes through a
// return, throw, break or continue, or a loop that never exits.
type ControlFlowGraph struct {
	unreachable map[NodeID]struct{}
	roots       []NodeID
}

// IsReachable reports whether the statement with the given id can execute.
// Nodes that are not statements are always reachable.
func (g *ControlFlowGraph) IsReachable(id NodeID) bool {
	_, dead := g.unreachable[id]
	return !dead
}

// Unreachable returns the outermost unreachable statements in source order.
// Statements nested inside one of them are not repeated.
func (g *ControlFlowGraph) Unreachable() []NodeID {
	return g.roots
}

type jumpTarget struct {
	label     string
	loop      bool
	breakable bool
	broken    bool
	continued bool
}

type cfgBuilder struct {
	nodes     *Nodes
	graph     *ControlFlowGraph
	targets   []*jumpTarget
	deadDepth int
	label     string
}

func buildCFG(program *ast.Program, nodes *Nodes) *ControlFlowGraph {
	c := &cfgBuilder{
		nodes: nodes,
		graph: &ControlFlowGraph{unreachable: make(map[NodeID]struct{})},
	}
	c.body(program.Body)

	for node := range nodes.All() {
		switch n := node.Kind.(type) {
		case *ast.Function:
			if n.Body != nil {
				c.body(n.Body.Statements)
			}
		case *ast.ArrowFunctionExpression:
			if !n.Expression && n.Body != nil {
				c.body(n.Body.Statements)
			}
		case *ast.StaticBlock:
			c.body(n.Body)
		}
	}

	slices.Sort(c.graph.roots)
	return c.graph
}

// body analyzes one function-level statement list with fresh jump targets.
func (c *cfgBuilder) body(list []ast.Statement) {
	saved := c.targets
	c.targets = nil
	c.statements(list, true)
	c.targets = saved
}

func (c *cfgBuilder) statements(list []ast.Statement, reachable bool) bool {
	for _, s := range list {
		reachable = c.statement(s, reachable)
	}
	return reachable
}

func (c *cfgBuilder) statement(s ast.Statement, reachable bool) bool {
	if s == nil {
		return reachable
	}
	if !reachable && !isHoisted(s) {
		if id, ok := c.nodes.Lookup(s); ok {
			c.graph.unreachable[id] = struct{}{}
			if c.deadDepth == 0 {
				c.graph.roots = append(c.graph.roots, id)
			}
		}
		c.deadDepth++
		defer func() { c.deadDepth-- }()
	}

	label := c.label
	c.label = ""

	switch n := s.(type) {
	case *ast.BlockStatement:
		return c.statements(n.Body, reachable)

	case *ast.ReturnStatement, *ast.ThrowStatement:
		return false

	case *ast.BreakStatement:
		if t := c.breakTarget(n.Label); t != nil && reachable {
			t.broken = true
		}
		return false

	case *ast.ContinueStatement:
		if t := c.continueTarget(n.Label); t != nil && reachable {
			t.continued = true
		}
		return false

	case *ast.IfStatement:
		consequent := c.statement(n.Consequent, reachable)
		if n.Alternate == nil {
			return reachable
		}
		alternate := c.statement(n.Alternate, reachable)
		return consequent || alternate

	case *ast.WhileStatement:
		t := c.push(label, true)
		c.statement(n.Body, reachable)
		c.pop()
		return (reachable && !isAlwaysTrue(n.Test)) || t.broken

	case *ast.ForStatement:
		t := c.push(label, true)
		c.statement(n.Body, reachable)
		c.pop()
		infinite := n.Test == nil || isAlwaysTrue(n.Test)
		return (reachable && !infinite) || t.broken

	case *ast.DoWhileStatement:
		t := c.push(label, true)
		end := c.statement(n.Body, reachable)
		c.pop()
		return ((end || t.continued) && !isAlwaysTrue(n.Test)) || t.broken

	case *ast.ForInStatement:
		t := c.push(label, true)
		c.statement(n.Body, reachable)
		c.pop()
		return reachable || t.broken

	case *ast.ForOfStatement:
		t := c.push(label, true)
		c.statement(n.Body, reachable)
		c.pop()
		return reachable || t.broken

	case *ast.LabeledStatement:
		t := c.push(n.Label.Name, false)
		c.label = n.Label.Name
		end := c.statement(n.Body, reachable)
		c.label = ""
		c.pop()
		return end || t.broken

	case *ast.SwitchStatement:
		t := c.push(label, false)
		t.breakable = true
		fallthru := false
		hasDefault := false
		for _, sc := range n.Cases {
			if sc.Test == nil {
				hasDefault = true
			}
			fallthru = c.statements(sc.Consequent, reachable)
		}
		c.pop()
		if len(n.Cases) == 0 {
			return reachable
		}
		return (reachable && !hasDefault) || fallthru || t.broken

	case *ast.TryStatement:
		end := c.statements(n.Block.Body, reachable)
		if n.Handler != nil {
			end = c.statements(n.Handler.Body.Body, reachable) || end
		}
		if n.Finalizer != nil {
			finalEnd := c.statements(n.Finalizer.Body, reachable)
			return end && finalEnd
		}
		return end

	case *ast.WithStatement:
		return c.statement(n.Body, reachable)
	}

	return reachable
}

func (c *cfgBuilder) push(label string, loop bool) *jumpTarget {
	t := &jumpTarget{label: label, loop: loop, breakable: loop}
	c.targets = append(c.targets, t)
	return t
}

func (c *cfgBuilder) pop() {
	c.targets = c.targets[:len(c.targets)-1]
}

func (c *cfgBuilder) breakTarget(label *ast.LabelIdentifier) *jumpTarget {
	for i := len(c.targets) - 1; i >= 0; i-- {
		t := c.targets[i]
		if label == nil && t.breakable {
			return t
		}
		if label != nil && t.label == label.Name {
			return t
		}
	}
	return nil
}

// continueTarget returns the loop a continue resumes. A labeled continue
// targets the loop carrying that label.
func (c *cfgBuilder) continueTarget(label *ast.LabelIdentifier) *jumpTarget {
	for i := len(c.targets) - 1; i >= 0; i-- {
		t := c.targets[i]
		if !t.loop {
			continue
		}
		if label == nil || t.label == label.Name {
			return t
		}
	}
	return nil
}

// isHoisted reports statements that never count as unreachable: function
// declarations and var declarations without initializers.
func isHoisted(s ast.Statement) bool {
	switch n := s.(type) {
	case *ast.Function:
		return n.Kind == ast.FunctionDeclaration
	case *ast.VariableDeclaration:
		if n.Kind != ast.VariableVar {
			return false
		}
		for _, d := range n.Declarations {
			if d.Init != nil {
				return false
			}
		}
		return true
	case *ast.EmptyStatement:
		return true
	}
	return false
}

func isAlwaysTrue(e ast.Expression) bool {
	lit, ok := ast.WithoutParentheses(e).(*ast.BooleanLiteral)
	return ok && lit.Value
}
