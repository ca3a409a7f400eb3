// Package merkle folds an ordered list of transactions into a single root
// digest via a binary hash tree. Pairing is positional: the same
// transactions in a different order commit to a different root. An odd
// level is repaired by duplicating its last node, never by hashing an
// empty placeholder.
package merkle

import "github.com/ardanlabs/chainlab/foundation/lab/digest"

// shortHashLen is the prefix length used by the diagnostic views.
const shortHashLen = 16

// childPrefixLen is the prefix length used for child references in the
// level summaries.
const childPrefixLen = 8

// =============================================================================

// Node represents a node in the merkle tree. Leaves carry the transaction
// payload; internal nodes carry exclusively owned children.
type Node struct {
	Hash    string
	Payload string
	Left    *Node
	Right   *Node
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// =============================================================================

// Build constructs the merkle tree for the specified transactions and
// returns its root. An empty input yields a nil root. A single transaction
// yields a root that is that transaction's leaf digest directly, with no
// pairing step.
func Build(transactions []string) *Node {
	if len(transactions) == 0 {
		return nil
	}

	nodes := make([]*Node, len(transactions))
	for i, tx := range transactions {
		nodes[i] = &Node{
			Hash:    digest.Hash(tx),
			Payload: tx,
		}
	}

	for len(nodes) > 1 {
		if len(nodes)%2 == 1 {
			nodes = append(nodes, nodes[len(nodes)-1])
		}

		level := make([]*Node, 0, len(nodes)/2)
		for i := 0; i < len(nodes); i += 2 {
			left, right := nodes[i], nodes[i+1]
			level = append(level, &Node{
				Hash:  digest.Join(left.Hash, right.Hash),
				Left:  left,
				Right: right,
			})
		}

		nodes = level
	}

	return nodes[0]
}

// Root returns the root digest committing to the specified transactions.
// An empty input yields an empty string, not an error.
func Root(transactions []string) string {
	root := Build(transactions)
	if root == nil {
		return ""
	}

	return root.Hash
}

// =============================================================================

// Structure is the recursive diagnostic view of a tree. A duplicated right
// child (odd-level repair) is elided so the view shows the tree a student
// would draw.
type Structure struct {
	Hash      string     `json:"hash"`
	ShortHash string     `json:"short_hash"`
	Type      string     `json:"type"`
	Data      string     `json:"data,omitempty"`
	Left      *Structure `json:"left,omitempty"`
	Right     *Structure `json:"right,omitempty"`
}

// ToStructure converts the tree rooted at the node into its diagnostic
// view. A nil node yields a nil view.
func ToStructure(n *Node) *Structure {
	if n == nil {
		return nil
	}

	s := Structure{
		Hash:      n.Hash,
		ShortHash: shortHash(n.Hash),
	}

	if n.IsLeaf() {
		s.Type = "leaf"
		s.Data = n.Payload
		return &s
	}

	s.Type = "node"
	s.Left = ToStructure(n.Left)
	if n.Right != n.Left {
		s.Right = ToStructure(n.Right)
	}

	return &s
}

// =============================================================================

// LevelNode summarizes one node inside a level view. Leaf entries carry the
// transaction payload; internal entries carry prefixes of their children's
// hashes.
type LevelNode struct {
	Hash       string `json:"hash"`
	Data       string `json:"data,omitempty"`
	LeftChild  string `json:"left_child,omitempty"`
	RightChild string `json:"right_child,omitempty"`
}

// Levels builds the per-level summaries for the specified transactions,
// bottom built but returned root first. The view is derived from the same
// pairing algorithm as Build so the top level always matches Root.
func Levels(transactions []string) [][]LevelNode {
	if len(transactions) == 0 {
		return nil
	}

	current := make([]LevelNode, len(transactions))
	for i, tx := range transactions {
		current[i] = LevelNode{
			Hash: digest.Hash(tx),
			Data: tx,
		}
	}

	levels := [][]LevelNode{current}

	for len(current) > 1 {
		if len(current)%2 == 1 {
			current = append(current, current[len(current)-1])
			levels[len(levels)-1] = current
		}

		next := make([]LevelNode, 0, len(current)/2)
		for i := 0; i < len(current); i += 2 {
			left, right := current[i], current[i+1]
			next = append(next, LevelNode{
				Hash:       digest.Join(left.Hash, right.Hash),
				LeftChild:  left.Hash[:childPrefixLen],
				RightChild: right.Hash[:childPrefixLen],
			})
		}

		levels = append(levels, next)
		current = next
	}

	// Reverse so the root level comes first.
	for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
		levels[i], levels[j] = levels[j], levels[i]
	}

	return levels
}

// shortHash returns the display prefix of a digest.
func shortHash(hash string) string {
	if len(hash) <= shortHashLen {
		return hash
	}

	return hash[:shortHashLen] + "..."
}
