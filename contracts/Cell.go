package contracts

import "errors"

// Cell is the read surface of a single sheet cell.
type Cell interface {
	GetValue() CellValue
	GetText() string
	GetReferencedCells() []Position
}

var CellNotFoundError = errors.New("cell not found")
