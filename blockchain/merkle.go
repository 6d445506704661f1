package blockchain

import (
	"fmt"
)

// MerkleTree reduces an ordered list of inputs to a single root.
//
// layers[0] holds the leaf digests and every following layer their parents.
// Parents are digest(left || right); a trailing node without a sibling is
// re-hashed alone instead of being paired with a copy of itself. A tree with
// one leaf has that leaf as its root.
type MerkleTree struct {
	layers [][]string
}

// ProofStep is one sibling on the path from a leaf to the root. An empty
// Sibling marks a lone node that was re-hashed by itself.
type ProofStep struct {
	Sibling string `json:"sibling,omitempty"`
	Left    bool   `json:"left,omitempty"`
}

// NewMerkleTree returns an empty tree.
func NewMerkleTree() *MerkleTree {
	return &MerkleTree{}
}

// BuildMerkleTree digests every input into a leaf and reduces the leaves.
func BuildMerkleTree(inputs []string) *MerkleTree {
	t := NewMerkleTree()
	if len(inputs) == 0 {
		return t
	}

	leaves := make([]string, len(inputs))
	for i, in := range inputs {
		leaves[i] = Digest(in)
	}
	t.layers = append(t.layers, leaves)

	for layer := leaves; len(layer) > 1; {
		layer = parentLayer(layer)
		t.layers = append(t.layers, layer)
	}
	return t
}

func parentLayer(layer []string) []string {
	next := make([]string, 0, (len(layer)+1)/2)
	for i := 0; i+1 < len(layer); i += 2 {
		next = append(next, Digest(layer[i], layer[i+1]))
	}
	if len(layer)%2 == 1 {
		next = append(next, Digest(layer[len(layer)-1]))
	}
	return next
}

// parentAt computes the parent of layer[2*j] and its sibling, if any.
func parentAt(layer []string, j int) string {
	left := 2 * j
	if left+1 < len(layer) {
		return Digest(layer[left], layer[left+1])
	}
	return Digest(layer[left])
}

// Append adds one input and recomputes only the rightmost path. The result
// is identical to BuildMerkleTree over all inputs appended so far.
func (t *MerkleTree) Append(input string) {
	if len(t.layers) == 0 {
		t.layers = append(t.layers, nil)
	}
	t.layers[0] = append(t.layers[0], Digest(input))

	for k := 0; len(t.layers[k]) > 1; k++ {
		if k+1 == len(t.layers) {
			t.layers = append(t.layers, nil)
		}
		j := (len(t.layers[k]) - 1) / 2
		parent := parentAt(t.layers[k], j)
		if j < len(t.layers[k+1]) {
			t.layers[k+1][j] = parent
		} else {
			t.layers[k+1] = append(t.layers[k+1], parent)
		}
	}
}

// Root returns the last node produced.
func (t *MerkleTree) Root() (string, error) {
	if len(t.layers) == 0 {
		return "", ErrEmptyTree
	}
	top := t.layers[len(t.layers)-1]
	return top[len(top)-1], nil
}

// Len is the number of leaves.
func (t *MerkleTree) Len() int {
	if len(t.layers) == 0 {
		return 0
	}
	return len(t.layers[0])
}

// Leaves returns a copy of the leaf digests.
func (t *MerkleTree) Leaves() []string {
	if len(t.layers) == 0 {
		return []string{}
	}
	return append([]string(nil), t.layers[0]...)
}

// Clone returns a deep copy that later Appends to t do not affect.
func (t *MerkleTree) Clone() *MerkleTree {
	return &MerkleTree{layers: t.Layers()}
}

// Layers returns a copy of every layer, leaves first.
func (t *MerkleTree) Layers() [][]string {
	out := make([][]string, len(t.layers))
	for i, l := range t.layers {
		out[i] = append([]string(nil), l...)
	}
	return out
}

// Nodes flattens the layers in construction order: leaves first, root last.
func (t *MerkleTree) Nodes() []string {
	nodes := []string{}
	for _, l := range t.layers {
		nodes = append(nodes, l...)
	}
	return nodes
}

// Proof returns the sibling path for the leaf at index.
func (t *MerkleTree) Proof(index int) ([]ProofStep, error) {
	if index < 0 || index >= t.Len() {
		return nil, fmt.Errorf("leaf index %d out of range [0,%d)", index, t.Len())
	}
	steps := make([]ProofStep, 0, len(t.layers)-1)
	for k := 0; k < len(t.layers)-1; k++ {
		layer := t.layers[k]
		switch {
		case index%2 == 1:
			steps = append(steps, ProofStep{Sibling: layer[index-1], Left: true})
		case index+1 < len(layer):
			steps = append(steps, ProofStep{Sibling: layer[index+1]})
		default:
			steps = append(steps, ProofStep{})
		}
		index /= 2
	}
	return steps, nil
}

// VerifyProof folds leaf through steps and compares the result to root.
func VerifyProof(leaf string, steps []ProofStep, root string) bool {
	node := leaf
	for _, s := range steps {
		switch {
		case s.Sibling == "":
			node = Digest(node)
		case s.Left:
			node = Digest(s.Sibling, node)
		default:
			node = Digest(node, s.Sibling)
		}
	}
	return node == root
}
