package sim

import "math/rand"

// Transform returns a new state with the grid, agent, towers and projectiles
// remapped through k quarter-turns clockwise followed by optional horizontal
// and vertical flips. Coordinates are screen-style: x grows rightward, y
// grows downward. Direction vectors rotate and flip with the same map but
// are never translated. Odd rotation counts swap the grid dimensions.
//
// Used for training-time augmentation at round initialization; it has no
// role on the live game path.
func Transform(state *RoundState, rotateQuarters int, flipH, flipV bool) *RoundState {
	k := rotateQuarters & 3
	srcW, srcH := state.Grid.Width, state.Grid.Height
	dstW, dstH := srcW, srcH
	if k%2 == 1 {
		dstW, dstH = srcH, srcW
	}

	ns := state.Clone()
	ns.Grid = NewGrid(dstW, dstH)

	for y := 0; y < srcH; y++ {
		for x := 0; x < srcW; x++ {
			p := rotPoint(Point{X: x, Y: y}, srcW, srcH, k)
			p = flipPoint(p, dstW, dstH, flipH, flipV)
			ns.Grid.Cells[p.Y][p.X] = state.Grid.Cells[y][x]
		}
	}

	ns.Agent = flipPoint(rotPoint(state.Agent, srcW, srcH, k), dstW, dstH, flipH, flipV)

	for i := range ns.Towers {
		t := &ns.Towers[i]
		t.Pos = flipPoint(rotPoint(t.Pos, srcW, srcH, k), dstW, dstH, flipH, flipV)
		t.Dir = flipVec(rotVec(t.Dir, k), flipH, flipV)
	}

	for i := range ns.Projectiles {
		pr := &ns.Projectiles[i]
		cell := flipPoint(rotPoint(pr.Pos.Cell(), srcW, srcH, k), dstW, dstH, flipH, flipV)
		pr.Pos = Vec{X: float64(cell.X), Y: float64(cell.Y)}
		pr.Dir = flipVec(rotVec(pr.Dir, k), flipH, flipV)
	}

	return ns
}

// RandomTransform applies a uniformly random rotation and independent random
// flips using the supplied source.
func RandomTransform(state *RoundState, rng *rand.Rand) *RoundState {
	return Transform(state, rng.Intn(4), rng.Intn(2) == 1, rng.Intn(2) == 1)
}

// rotPoint rotates a cell k quarter-turns clockwise within a w x h grid.
func rotPoint(p Point, w, h, k int) Point {
	switch k & 3 {
	case 1:
		return Point{X: h - 1 - p.Y, Y: p.X}
	case 2:
		return Point{X: w - 1 - p.X, Y: h - 1 - p.Y}
	case 3:
		return Point{X: p.Y, Y: w - 1 - p.X}
	default:
		return p
	}
}

// rotVec rotates a direction vector k quarter-turns clockwise in screen
// coordinates.
func rotVec(v Vec, k int) Vec {
	switch k & 3 {
	case 1:
		return Vec{X: -v.Y, Y: v.X}
	case 2:
		return Vec{X: -v.X, Y: -v.Y}
	case 3:
		return Vec{X: v.Y, Y: -v.X}
	default:
		return v
	}
}

func flipPoint(p Point, w, h int, flipH, flipV bool) Point {
	if flipH {
		p.X = w - 1 - p.X
	}
	if flipV {
		p.Y = h - 1 - p.Y
	}
	return p
}

func flipVec(v Vec, flipH, flipV bool) Vec {
	if flipH {
		v.X = -v.X
	}
	if flipV {
		v.Y = -v.Y
	}
	return v
}
