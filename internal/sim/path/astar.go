// Package path computes minimum-cost routes over a board's occupancy graph.
// Edges are the four cardinal steps plus jump shortcuts over jumpable
// objects. Searches are read-only; results are stale after any board change.
package path

import (
	"container/heap"

	"gridcraft.ai/internal/sim/board"
	"gridcraft.ai/internal/sim/entity"
	"gridcraft.ai/internal/sim/tuning"
)

type Position = entity.Position

// Costs are the edge weights of the occupancy graph. A jump edge covers
// Manhattan distance 2, so Jump must be at least 2 (and Step at least 1) for
// the Manhattan heuristic to remain admissible; tuning.Load enforces this.
type Costs struct {
	Step int
	Jump int
}

func DefaultCosts() Costs { return Costs{Step: 1, Jump: 5} }

func CostsFrom(t tuning.Tuning) Costs { return Costs{Step: t.StepCost, Jump: t.JumpCost} }

type node struct {
	pos    Position
	g      int
	f      int
	parent *node
	index  int
}

type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x interface{}) { n := x.(*node); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

// FindPath runs A* from start to end with default costs and returns the
// position sequence including both endpoints. Empty when unreachable or when
// either endpoint is off the board.
func FindPath(b *board.Board, start, end Position) []Position {
	return FindPathCosts(b, start, end, DefaultCosts())
}

func FindPathCosts(b *board.Board, start, end Position, c Costs) []Position {
	if b == nil || !b.InBounds(start) || !b.InBounds(end) {
		return nil
	}
	if start == end {
		return []Position{start}
	}

	open := &nodeHeap{}
	heap.Init(open)
	inOpen := make(map[Position]*node)
	closed := make(map[Position]bool)

	startNode := &node{pos: start, g: 0, f: start.ManhattanTo(end)}
	heap.Push(open, startNode)
	inOpen[start] = startNode

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		delete(inOpen, cur.pos)
		if cur.pos == end {
			return reconstruct(cur)
		}
		closed[cur.pos] = true

		for _, edge := range neighbors(b, cur.pos, c) {
			if closed[edge.pos] {
				continue
			}
			g := cur.g + edge.cost
			if prev, ok := inOpen[edge.pos]; ok {
				// Duplicate suppression: keep the cheaper route in.
				if prev.g <= g {
					continue
				}
				prev.g = g
				prev.f = g + edge.pos.ManhattanTo(end)
				prev.parent = cur
				heap.Fix(open, prev.index)
				continue
			}
			n := &node{pos: edge.pos, g: g, f: g + edge.pos.ManhattanTo(end), parent: cur}
			heap.Push(open, n)
			inOpen[edge.pos] = n
		}
	}
	return nil
}

type edge struct {
	pos  Position
	cost int
}

// neighbors yields the legal transitions out of p: cardinal steps into free
// cells, and jump landings two cells out over a jumpable object.
func neighbors(b *board.Board, p Position, c Costs) []edge {
	out := make([]edge, 0, 8)
	for _, dir := range entity.Directions {
		step := p.Add(dir)
		if b.CanMoveTo(step) {
			out = append(out, edge{pos: step, cost: c.Step})
		}
		dx, dy := dir.Delta()
		middle := step
		landing := p.Shift(2*dx, 2*dy)
		over := b.ObjectAt(middle)
		if over != nil && over.Object.Jumpable && b.CanMoveTo(landing) {
			out = append(out, edge{pos: landing, cost: c.Jump})
		}
	}
	return out
}

func reconstruct(n *node) []Position {
	var rev []Position
	for cur := n; cur != nil; cur = cur.parent {
		rev = append(rev, cur.pos)
	}
	out := make([]Position, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}
