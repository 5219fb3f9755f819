// Package label implements the assembler's label table: a nibble-indexed
// trie mapping scoped label names to resolved word addresses.
//
// The trie is grounded directly on the reference unileq interpreter's
// UnlAddLabel/UnlFindLabel: each byte of a label's name walks two edges (high
// nibble, then low nibble), so a 16-way fan-out trie over nibbles doubles as
// a 256-way trie over bytes without the node-size cost of 256 children per
// byte. The same walk serves both "find if present" (Find) and "create if
// absent" (Intern), which is the trick that keeps recall and declaration
// sharing one code path.
package label

import "github.com/smoynes/unileq/internal/word"

// Ref is a stable reference to a node in the table, usable for later address
// reads and writes. The zero Ref is the root, representing the empty scope.
type Ref uint32

// Root is the reference to the table's root node.
const Root Ref = 0

// node is one trie node: an address slot and 16 nibble-indexed children.
type node struct {
	addr     word.Word
	children [16]Ref
}

// Table is a nibble trie keyed by a label's fully-qualified UTF-8 byte
// sequence.
type Table struct {
	nodes []node
}

// New creates an empty label table with just the root node.
func New() *Table {
	t := &Table{nodes: make([]node, 1, 64)}
	t.nodes[0].addr = word.Unresolved

	return t
}

// Intern locates (creating if missing) the node for name, a label's raw
// source text. If name begins with '.', the walk starts from scope (the
// current outer scope) instead of the table root -- this is what makes
// ".x" under scope A resolve as A.x without the caller having to construct a
// qualified byte string itself. Intern never fails; inserting an
// already-present path returns the existing node unchanged.
func (t *Table) Intern(scope Ref, name []byte) Ref {
	cur := Root
	if len(name) > 0 && name[0] == '.' {
		cur = scope
	}

	for _, c := range name {
		cur = t.descend(cur, c>>4)
		cur = t.descend(cur, c&0x0f)
	}

	return cur
}

// descend returns the child of parent along nibble val, creating it if it
// does not yet exist.
func (t *Table) descend(parent Ref, val byte) Ref {
	child := t.nodes[parent].children[val&0x0f]
	if child != Root {
		return child
	}

	t.nodes = append(t.nodes, node{addr: word.Unresolved})
	child = Ref(len(t.nodes) - 1)
	t.nodes[parent].children[val&0x0f] = child

	return child
}

// AddressOf returns the resolved address stored at ref, or word.Unresolved
// if the label has not been declared.
func (t *Table) AddressOf(ref Ref) word.Word {
	return t.nodes[ref].addr
}

// SetAddress assigns addr to the node at ref. It is intended to be called
// exactly once per label, during the assembler's first pass; ok is false if
// the node already carries a resolved address (a duplicate declaration).
func (t *Table) SetAddress(ref Ref, addr word.Word) (ok bool) {
	if t.nodes[ref].addr != word.Unresolved {
		return false
	}

	t.nodes[ref].addr = addr

	return true
}

// Find looks up a fully-qualified name from the table root. It is used after
// assembly to expose labels to callers, e.g. tests inspecting where a label
// landed.
func (t *Table) Find(name string) (word.Word, bool) {
	cur := Root

	for i := 0; i < len(name); i++ {
		c := name[i]

		cur = t.child(cur, c>>4)
		if cur == Root {
			return 0, false
		}

		cur = t.child(cur, c&0x0f)
		if cur == Root {
			return 0, false
		}
	}

	addr := t.nodes[cur].addr
	if addr == word.Unresolved {
		return 0, false
	}

	return addr, true
}

// child returns the child of parent along nibble val without creating it;
// Root (0) means "no such child", since the root is never itself a child.
func (t *Table) child(parent Ref, val byte) Ref {
	return t.nodes[parent].children[val&0x0f]
}
