package main

import (
	"io"

	"gridSheet/contracts"
)

// Sheet is a sparse position-keyed cell table. rows and cols count the
// occupied cells per row and column and drive the printable bounding box.
type Sheet struct {
	cells map[contracts.Position]*Cell
	rows  map[int]int
	cols  map[int]int
	size  contracts.Size

	// detachedDependants keeps the inverse edges of cleared cells so a
	// later cell at the same position rejoins the graph with its
	// dependants intact.
	detachedDependants map[contracts.Position]map[contracts.Position]struct{}
}

var _ contracts.Sheet = (*Sheet)(nil)

func CreateSheet() *Sheet {
	return &Sheet{
		cells:              map[contracts.Position]*Cell{},
		rows:               map[int]int{},
		cols:               map[int]int{},
		detachedDependants: map[contracts.Position]map[contracts.Position]struct{}{},
	}
}

func (s *Sheet) SetCell(pos contracts.Position, text string) error {
	if !pos.IsValid() {
		return contracts.InvalidPositionError
	}

	if existing := s.cells[pos]; existing != nil {
		return existing.Set(text)
	}

	cell := NewCell(s, pos)
	if err := cell.Set(text); err != nil {
		return err
	}

	s.install(pos, cell)
	return nil
}

func (s *Sheet) GetCell(pos contracts.Position) (contracts.Cell, error) {
	if !pos.IsValid() {
		return nil, contracts.InvalidPositionError
	}

	cell, ok := s.cells[pos]
	if !ok {
		return nil, nil
	}
	return cell, nil
}

// ClearCell resets the cell and removes it from storage. Cells depending
// on this position keep their edges and read it as empty on the next
// evaluation; their memoized values are dropped here.
func (s *Sheet) ClearCell(pos contracts.Position) error {
	if !pos.IsValid() {
		return contracts.InvalidPositionError
	}

	cell, ok := s.cells[pos]
	if !ok {
		return nil
	}

	cell.Clear()
	if len(cell.dependants) > 0 {
		s.detachedDependants[pos] = cell.dependants
	}
	delete(s.cells, pos)

	s.rows[pos.Row]--
	if s.rows[pos.Row] == 0 {
		delete(s.rows, pos.Row)
		if pos.Row+1 == s.size.Rows {
			s.size.Rows = 1 + maxKey(s.rows)
		}
	}

	s.cols[pos.Col]--
	if s.cols[pos.Col] == 0 {
		delete(s.cols, pos.Col)
		if pos.Col+1 == s.size.Cols {
			s.size.Cols = 1 + maxKey(s.cols)
		}
	}

	return nil
}

func (s *Sheet) GetPrintableSize() contracts.Size {
	return s.size
}

func (s *Sheet) PrintValues(out io.Writer) {
	s.print(out, func(cell *Cell) string {
		return contracts.FormatCellValue(cell.GetValue())
	})
}

func (s *Sheet) PrintTexts(out io.Writer) {
	s.print(out, func(cell *Cell) string {
		return cell.GetText()
	})
}

func (s *Sheet) print(out io.Writer, render func(cell *Cell) string) {
	for row := 0; row < s.size.Rows; row++ {
		for col := 0; col < s.size.Cols; col++ {
			if col != 0 {
				_, _ = io.WriteString(out, "\t")
			}
			if cell, ok := s.cells[contracts.Position{Row: row, Col: col}]; ok {
				_, _ = io.WriteString(out, render(cell))
			}
		}
		_, _ = io.WriteString(out, "\n")
	}
}

// cell is the unvalidated internal lookup used by the dependency walks.
func (s *Sheet) cell(pos contracts.Position) *Cell {
	return s.cells[pos]
}

// createEmptyCell installs an empty placeholder for a position referenced
// by a formula before the referenced cell was ever set.
func (s *Sheet) createEmptyCell(pos contracts.Position) {
	s.install(pos, NewCell(s, pos))
}

// adoptDependants hands a new cell the inverse edges left behind by a
// cleared cell at the same position. The registry entry is consumed only
// on install, so a rejected Set leaves it in place.
func (s *Sheet) adoptDependants(pos contracts.Position) map[contracts.Position]struct{} {
	if detached, ok := s.detachedDependants[pos]; ok {
		return detached
	}
	return map[contracts.Position]struct{}{}
}

func (s *Sheet) dropDetachedDependant(pos contracts.Position, dependant contracts.Position) {
	if detached, ok := s.detachedDependants[pos]; ok {
		delete(detached, dependant)
		if len(detached) == 0 {
			delete(s.detachedDependants, pos)
		}
	}
}

func (s *Sheet) install(pos contracts.Position, cell *Cell) {
	s.cells[pos] = cell
	delete(s.detachedDependants, pos)

	s.rows[pos.Row]++
	s.cols[pos.Col]++

	if pos.Row+1 > s.size.Rows {
		s.size.Rows = pos.Row + 1
	}
	if pos.Col+1 > s.size.Cols {
		s.size.Cols = pos.Col + 1
	}
}

func maxKey(counts map[int]int) int {
	max := -1
	for key := range counts {
		if key > max {
			max = key
		}
	}
	return max
}
