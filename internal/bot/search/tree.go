package search

import "jass/internal/domain"

const noParent int32 = -1

// node is one simulated trick. Pools are the state after the trick.
type node struct {
	self, opp domain.Card
	// selfLeads is true when self leads the trick after this node.
	selfLeads bool
	selfWon   bool
	scores    [2]int // self, opponent

	hand    domain.CardSet
	unknown domain.CardSet
	known   domain.CardSet
	used    domain.CardSet

	parent   int32
	first    domain.Card // self card of the first ply on this line
	children []int32
	terminal bool
}

// tree is an arena of nodes. Index 0 is the root; children refer to their
// parent by index so the whole tree is dropped at once.
type tree struct {
	nodes  []node
	leaves []int32
}

func newTree(root node) *tree {
	root.parent = noParent
	root.terminal = root.hand.Empty()
	return &tree{nodes: []node{root}}
}

// find returns the child of parent played as (self, opp), if it exists.
func (t *tree) find(parent int32, self, opp domain.Card) (int32, bool) {
	for _, idx := range t.nodes[parent].children {
		n := &t.nodes[idx]
		if n.self == self && n.opp == opp {
			return idx, true
		}
	}
	return 0, false
}

// expand returns the child of parent for (self, opp), creating and scoring it
// on first sight. fromKnown tells which opponent pool opp was drawn from.
func (t *tree) expand(parent int32, self, opp domain.Card, fromKnown bool, trump domain.Suit) int32 {
	if idx, ok := t.find(parent, self, opp); ok {
		return idx
	}

	p := t.nodes[parent]
	const selfSide, oppSide = domain.SideCPU, domain.SideHuman

	var winner domain.Side
	if p.selfLeads {
		winner = domain.TrickWinner(selfSide, oppSide, self, opp, trump)
	} else {
		winner = domain.TrickWinner(oppSide, selfSide, opp, self, trump)
	}
	points := domain.TrickScore(self, opp, trump)

	child := node{
		self:      self,
		opp:       opp,
		selfWon:   winner == selfSide,
		selfLeads: winner == selfSide,
		scores:    p.scores,
		hand:      p.hand.Without(self),
		unknown:   p.unknown,
		known:     p.known,
		used:      p.used.With(self).With(opp),
		parent:    parent,
		first:     p.first,
	}
	if parent == 0 {
		child.first = self
	}
	if fromKnown {
		child.known = child.known.Without(opp)
	} else {
		child.unknown = child.unknown.Without(opp)
	}
	if child.selfWon {
		child.scores[0] += points
	} else {
		child.scores[1] += points
	}
	child.terminal = child.hand.Empty()

	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, child)
	t.nodes[parent].children = append(t.nodes[parent].children, idx)
	if child.terminal {
		t.leaves = append(t.leaves, idx)
	}
	return idx
}
