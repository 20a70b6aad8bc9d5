package minesweeper

// denseThreshold is the mine density above which placement switches from
// rejection sampling to a partial shuffle of the candidate cells.
const denseThreshold = 0.5

// placeMines puts b.mines mines on the board uniformly at random, never on
// (row, col). Each placed mine increments its neighbours' counts.
func (b *Board) placeMines(row, col int) {
	candidates := len(b.cells) - 1
	if candidates <= 0 || b.mines == 0 {
		return
	}
	if float64(b.mines)/float64(candidates) <= denseThreshold {
		b.placeByRejection(row, col)
		return
	}
	b.placeByShuffle(row, col)
}

// placeByRejection draws random cells and keeps those that are neither the
// excluded cell nor already mined.
func (b *Board) placeByRejection(row, col int) {
	placed := 0
	for placed < b.mines {
		r := b.rng.Intn(b.rows)
		c := b.rng.Intn(b.cols)
		if r == row && c == col {
			continue
		}
		if b.at(r, c).HasMine {
			continue
		}
		b.plantMine(r, c)
		placed++
	}
}

// placeByShuffle picks the first b.mines cells of a partial Fisher-Yates
// shuffle over every cell except the excluded one. It keeps dense boards from
// spinning on rejected draws.
func (b *Board) placeByShuffle(row, col int) {
	excluded := row*b.cols + col
	indices := make([]int, 0, len(b.cells)-1)
	for i := range b.cells {
		if i != excluded {
			indices = append(indices, i)
		}
	}
	for i := 0; i < b.mines; i++ {
		j := i + b.rng.Intn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
		b.plantMine(indices[i]/b.cols, indices[i]%b.cols)
	}
}

func (b *Board) plantMine(row, col int) {
	b.at(row, col).HasMine = true
	b.neighbors(row, col, func(r, c int) {
		b.at(r, c).NeighboringMines++
	})
}
