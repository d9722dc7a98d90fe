package engine

import "slices"

// connectedGroups partitions the occupied cells into maximal 4-connected
// groups, regardless of colour. Groups are discovered in row-major order and
// each group lists its cells in breadth-first order.
func connectedGroups(board *Board) []*cellSet {
	visited := newCellSet(board.Width, board.Width*board.Height/2)
	var groups []*cellSet

	for start := range board.Cells() {
		if visited.has(start) {
			continue
		}

		group := newCellSet(board.Width, 8)
		queue := []Point{start}
		visited.add(start)
		for head := 0; head < len(queue); head++ {
			p := queue[head]
			group.add(p)
			for _, d := range neighbours4 {
				n := p.Add(d[0], d[1])
				if !board.InBounds(n.X, n.Y) || board.At(n.X, n.Y) == Empty {
					continue
				}
				if visited.add(n) {
					queue = append(queue, n)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// isSupported reports whether a group rests on the floor or on an occupied
// cell that does not belong to the group itself.
func isSupported(board *Board, group *cellSet) bool {
	for _, p := range group.points {
		if p.Y == board.Height-1 {
			return true
		}
		below := p.Add(0, 1)
		if board.IsOccupied(below.X, below.Y) && !group.has(below) {
			return true
		}
	}
	return false
}

// FloatingGroups returns every unsupported group on the board.
func FloatingGroups(board *Board) [][]Point {
	var out [][]Point
	for _, g := range connectedGroups(board) {
		if !isSupported(board, g) {
			out = append(out, slices.Clone(g.points))
		}
	}
	return out
}

// ResolveGravity drops unsupported groups until every group rests on the
// floor or on another cell. Groups keep their shape and colours. It returns
// the number of group moves performed; a settled board yields zero.
func ResolveGravity(board *Board) int {
	moves := 0
	for {
		var floating []*cellSet
		for _, g := range connectedGroups(board) {
			if !isSupported(board, g) {
				floating = append(floating, g)
			}
		}
		if len(floating) == 0 {
			return moves
		}

		// Lowest groups first so that the ones above can land on them.
		slices.SortStableFunc(floating, func(a, b *cellSet) int {
			return lowestRow(b) - lowestRow(a)
		})
		for _, g := range floating {
			if dropGroup(board, g.points) > 0 {
				moves++
			}
		}
	}
}

func lowestRow(g *cellSet) int {
	lowest := -1
	for _, p := range g.points {
		lowest = max(lowest, p.Y)
	}
	return lowest
}

// dropGroup lifts the cells off the board, finds the largest distance they
// can fall together and writes them back there.
func dropGroup(board *Board, cells []Point) int {
	colors := make([]Cell, len(cells))
	for i, p := range cells {
		colors[i] = board.At(p.X, p.Y)
	}
	board.Clear(cells)

	distance := 0
	for fits(board, cells, distance+1) {
		distance++
	}

	for i, p := range cells {
		board.Set(p.X, p.Y+distance, colors[i])
	}
	return distance
}

func fits(board *Board, cells []Point, dy int) bool {
	for _, p := range cells {
		if board.IsOccupied(p.X, p.Y+dy) {
			return false
		}
	}
	return true
}
