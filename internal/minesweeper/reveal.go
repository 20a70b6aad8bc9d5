package minesweeper

// Reveal opens the cell at (row, col).
//
// Out-of-range coordinates and moves on a decided game are ignored. The first
// reveal of a game places the mines, never on (row, col). Revealing a mine
// loses the game; revealing a cell with no adjacent mines opens its whole
// zero region plus the numbered border. Flagged cells are never opened by the
// cascade. After every reveal the board is checked for a win, unless the
// same call already lost the game.
func (b *Board) Reveal(row, col int) {
	if !b.InBounds(row, col) || b.status != StatusOngoing {
		return
	}
	if !b.firstMoveDone {
		b.placeMines(row, col)
		b.firstMoveDone = true
	}
	if b.open(row, col) {
		return
	}
	b.checkWin()
}

// RevealAt is Reveal with out-of-range coordinates reported as ErrOutOfBounds.
func (b *Board) RevealAt(row, col int) error {
	if !b.InBounds(row, col) {
		return ErrOutOfBounds
	}
	b.Reveal(row, col)
	return nil
}

// Flag toggles a flag on a hidden cell. Revealed cells, out-of-range
// coordinates and decided games are left untouched.
func (b *Board) Flag(row, col int) {
	if !b.InBounds(row, col) || b.status != StatusOngoing {
		return
	}
	cell := b.at(row, col)
	switch cell.State {
	case CellHidden:
		cell.State = CellFlagged
	case CellFlagged:
		cell.State = CellHidden
	}
}

// FlagAt is Flag with out-of-range coordinates reported as ErrOutOfBounds.
func (b *Board) FlagAt(row, col int) error {
	if !b.InBounds(row, col) {
		return ErrOutOfBounds
	}
	b.Flag(row, col)
	return nil
}

// Chord reveals every hidden neighbour of a revealed numbered cell once the
// number of adjacent flags matches its count. Wrong flags therefore lose the
// game the same way a direct reveal of a mine does.
func (b *Board) Chord(row, col int) {
	if !b.InBounds(row, col) || b.status != StatusOngoing {
		return
	}
	cell := b.at(row, col)
	if cell.State != CellRevealed || cell.NeighboringMines == 0 {
		return
	}
	flags := 0
	b.neighbors(row, col, func(r, c int) {
		if b.at(r, c).State == CellFlagged {
			flags++
		}
	})
	if flags != cell.NeighboringMines {
		return
	}
	lost := false
	b.neighbors(row, col, func(r, c int) {
		if lost {
			return
		}
		lost = b.open(r, c)
	})
	if lost {
		return
	}
	b.checkWin()
}

// ChordAt is Chord with out-of-range coordinates reported as ErrOutOfBounds.
func (b *Board) ChordAt(row, col int) error {
	if !b.InBounds(row, col) {
		return ErrOutOfBounds
	}
	b.Chord(row, col)
	return nil
}

// Cleared reports whether every non-mine cell is revealed.
func (b *Board) Cleared() bool {
	for i := range b.cells {
		if !b.cells[i].HasMine && b.cells[i].State != CellRevealed {
			return false
		}
	}
	return true
}

// IsWon reports whether every non-mine cell of grid is revealed. Mine cells
// may be in any state.
func IsWon(grid [][]Cell) bool {
	for _, row := range grid {
		for _, cell := range row {
			if !cell.HasMine && cell.State != CellRevealed {
				return false
			}
		}
	}
	return true
}

// open reveals a hidden cell and cascades through zero regions. It reports
// whether the cell held a mine, in which case the game is already lost.
func (b *Board) open(row, col int) bool {
	cell := b.at(row, col)
	if cell.State != CellHidden {
		return false
	}
	cell.State = CellRevealed
	if cell.HasMine {
		b.endGame(false)
		return true
	}
	if cell.NeighboringMines == 0 {
		b.floodFill(row, col)
	}
	return false
}

// floodFill opens the zero region around an already revealed zero cell using
// an explicit work-list. Only hidden cells are entered, so every cell is
// queued at most once.
func (b *Board) floodFill(row, col int) {
	queue := []Position{{Row: row, Col: col}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		b.neighbors(p.Row, p.Col, func(r, c int) {
			next := b.at(r, c)
			if next.State != CellHidden || next.HasMine {
				return
			}
			next.State = CellRevealed
			if next.NeighboringMines == 0 {
				queue = append(queue, Position{Row: r, Col: c})
			}
		})
	}
}

func (b *Board) checkWin() {
	if b.status == StatusOngoing && b.Cleared() {
		b.endGame(true)
	}
}

// endGame decides the game and reveals every cell that is not flagged.
func (b *Board) endGame(won bool) {
	if won {
		b.status = StatusWon
	} else {
		b.status = StatusLost
	}
	for i := range b.cells {
		if b.cells[i].State != CellFlagged {
			b.cells[i].State = CellRevealed
		}
	}
}
