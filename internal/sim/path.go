package sim

import "container/heap"

// neighborOffsets is the fixed expansion order for 4-connected search. The
// order is part of the deterministic contract: equal-cost paths always tie
// break the same way.
var neighborOffsets = [4]Point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// pathNode is an open-set entry. order is a monotonically increasing
// insertion counter so heap ordering never depends on map iteration.
type pathNode struct {
	pos   Point
	f     int
	order int
}

type openQueue []pathNode

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].order < q[j].order
}

func (q openQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *openQueue) Push(x any) {
	*q = append(*q, x.(pathNode))
}

func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// FindPath runs A* with a Manhattan heuristic from start to goal and returns
// the full cell sequence including both endpoints, or nil when no path
// exists, an endpoint is invalid, or the expansion budget of 4*width*height
// is exhausted. start == goal yields the single-element path [start].
//
// FindPath does not substitute invalid goals; planners that want "as close
// as possible" behavior pick a reachable cell first (see NearestAdjacent).
func FindPath(s *RoundState, start, goal Point) []Point {
	g := s.Grid
	if !g.InBounds(start.X, start.Y) || !g.InBounds(goal.X, goal.Y) {
		logger.Error("path endpoints out of bounds",
			"start", start, "goal", goal, "width", g.Width, "height", g.Height)
		return nil
	}
	if start == goal {
		return []Point{start}
	}
	if !s.IsPositionValid(start.X, start.Y) {
		logger.Error("path start is not walkable", "start", start)
		return nil
	}
	if !s.IsPositionValid(goal.X, goal.Y) {
		logger.Error("path goal is not walkable", "goal", goal)
		return nil
	}

	open := &openQueue{}
	heap.Init(open)
	heap.Push(open, pathNode{pos: start, f: Manhattan(start, goal)})

	cameFrom := make(map[Point]Point)
	gScore := map[Point]int{start: 0}
	inOpen := map[Point]bool{start: true}

	order := 0
	budget := 4 * g.Width * g.Height
	expansions := 0

	for open.Len() > 0 && expansions < budget {
		expansions++
		current := heap.Pop(open).(pathNode).pos
		delete(inOpen, current)

		if current == goal {
			return reconstructPath(cameFrom, current)
		}

		for _, d := range neighborOffsets {
			nb := Point{X: current.X + d.X, Y: current.Y + d.Y}
			if !s.IsPositionValid(nb.X, nb.Y) {
				continue
			}
			tentative := gScore[current] + 1
			if old, seen := gScore[nb]; !seen || tentative < old {
				cameFrom[nb] = current
				gScore[nb] = tentative
				if !inOpen[nb] {
					order++
					heap.Push(open, pathNode{
						pos:   nb,
						f:     tentative + Manhattan(nb, goal),
						order: order,
					})
					inOpen[nb] = true
				}
			}
		}
	}

	if expansions >= budget {
		logger.Error("pathfinding budget exhausted",
			"start", start, "goal", goal, "expansions", expansions)
	} else {
		logger.Error("no path exists", "start", start, "goal", goal)
	}
	return nil
}

func reconstructPath(cameFrom map[Point]Point, end Point) []Point {
	path := []Point{end}
	for {
		prev, ok := cameFrom[end]
		if !ok {
			break
		}
		path = append(path, prev)
		end = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// NearestAdjacent returns the first walkable cell next to p, scanning
// neighbors in the fixed expansion order. Planners use it to approach cells
// that cannot be entered, such as living towers.
func NearestAdjacent(s *RoundState, p Point) (Point, bool) {
	for _, d := range neighborOffsets {
		adj := Point{X: p.X + d.X, Y: p.Y + d.Y}
		if s.IsPositionValid(adj.X, adj.Y) {
			return adj, true
		}
	}
	return Point{}, false
}
