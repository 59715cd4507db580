package syntax

// Node is a node of a parse tree. Rule names the grammar rule that produced
// it; Tokens are the terminal tokens matched directly by the rule.
type Node struct {
	Rule     string
	Tokens   []Token
	Children []*Node
}

// NewNode returns a node for rule with the given terminals.
func NewNode(rule string, toks ...Token) *Node {
	return &Node{Rule: rule, Tokens: toks}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Line returns the line of the first token in the subtree rooted at n, or
// 0 if the subtree has no tokens.
func (n *Node) Line() int {
	if len(n.Tokens) > 0 {
		return n.Tokens[0].Line
	}
	for _, c := range n.Children {
		if l := c.Line(); l > 0 {
			return l
		}
	}
	return 0
}

// Child returns the first child with the given rule, or nil.
func (n *Node) Child(rule string) *Node {
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

// ChildrenOf returns every child with the given rule.
func (n *Node) ChildrenOf(rule string) []*Node {
	var cs []*Node
	for _, c := range n.Children {
		if c.Rule == rule {
			cs = append(cs, c)
		}
	}
	return cs
}

// Listener receives rule events while a tree is walked.
type Listener interface {
	EnterRule(n *Node)
	ExitRule(n *Node)
}

// Walk visits the tree depth first, calling EnterRule before a node's
// children and ExitRule after them.
func Walk(n *Node, l Listener) {
	if n == nil {
		return
	}
	l.EnterRule(n)
	for _, c := range n.Children {
		Walk(c, l)
	}
	l.ExitRule(n)
}
