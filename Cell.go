package main

import (
	"strings"

	"gridSheet/contracts"
)

// Cell is a single sheet cell: its content (empty, text or formula), the
// owning sheet, and the two adjacency sets of the dependency graph.
// Adjacency is stored as position sets; only the sheet owns cells.
type Cell struct {
	content cellContent
	sheet   *Sheet
	pos     contracts.Position

	// dependingOn: positions this cell reads.
	// dependants: positions of cells reading this one.
	dependingOn map[contracts.Position]struct{}
	dependants  map[contracts.Position]struct{}
}

func NewCell(sheet *Sheet, pos contracts.Position) *Cell {
	return &Cell{
		content:     emptyContent{},
		sheet:       sheet,
		pos:         pos,
		dependingOn: map[contracts.Position]struct{}{},
		dependants:  sheet.adoptDependants(pos),
	}
}

type cellContent interface {
	Value() contracts.CellValue
	Text() string
	ReferencedCells() []contracts.Position
	InvalidateCache()
}

type emptyContent struct{}

func (emptyContent) Value() contracts.CellValue { return "" }

func (emptyContent) Text() string { return "" }

func (emptyContent) ReferencedCells() []contracts.Position { return nil }

func (emptyContent) InvalidateCache() {}

type textContent struct {
	value string
	text  string
}

func (c textContent) Value() contracts.CellValue { return c.value }

func (c textContent) Text() string { return c.text }

func (c textContent) ReferencedCells() []contracts.Position { return nil }

func (c textContent) InvalidateCache() {}

type formulaContent struct {
	formula *Formula
	sheet   *Sheet
	cache   *float64
}

func (c *formulaContent) Value() contracts.CellValue {
	if c.cache != nil {
		return *c.cache
	}

	result, err := c.formula.Evaluate(c.sheet)
	if err != nil {
		// evaluation errors are returned, never memoized
		if formulaErr, ok := err.(contracts.FormulaError); ok {
			return formulaErr
		}
		return contracts.NewFormulaError(contracts.ErrorKindValue)
	}

	c.cache = &result
	return result
}

func (c *formulaContent) Text() string {
	return FormulaPrefix + c.formula.GetExpression()
}

func (c *formulaContent) ReferencedCells() []contracts.Position {
	return c.formula.GetReferencedCells()
}

func (c *formulaContent) InvalidateCache() {
	c.cache = nil
}

// Set replaces the cell content. The candidate content is classified and
// cycle-checked before any live state is touched, so a rejected change
// leaves the sheet bit-identical to its pre-call state.
func (c *Cell) Set(text string) error {
	content, err := c.newContent(text)
	if err != nil {
		return err
	}

	refs := content.ReferencedCells()
	if c.isCircularDependency(refs) {
		return contracts.CircularDependencyError
	}

	for old := range c.dependingOn {
		if oldCell := c.sheet.cell(old); oldCell != nil {
			delete(oldCell.dependants, c.pos)
		} else {
			c.sheet.dropDetachedDependant(old, c.pos)
		}
	}
	c.dependingOn = map[contracts.Position]struct{}{}

	for _, ref := range refs {
		target := c.sheet.cell(ref)
		if target == nil {
			c.sheet.createEmptyCell(ref)
			target = c.sheet.cell(ref)
		}
		target.dependants[c.pos] = struct{}{}
		c.dependingOn[ref] = struct{}{}
	}

	c.content = content
	c.invalidateCache()

	return nil
}

// Clear resets the cell to empty. Cells referencing this one keep their
// edges and read it as empty afterwards.
func (c *Cell) Clear() {
	_ = c.Set("")
}

func (c *Cell) GetValue() contracts.CellValue {
	return c.content.Value()
}

func (c *Cell) GetText() string {
	return c.content.Text()
}

func (c *Cell) GetReferencedCells() []contracts.Position {
	return c.content.ReferencedCells()
}

func (c *Cell) IsReferenced() bool {
	return len(c.dependants) > 0
}

func (c *Cell) newContent(text string) (cellContent, error) {
	switch {
	case text == "":
		return emptyContent{}, nil

	case strings.HasPrefix(text, FormulaPrefix) && len(text) > 1:
		formula, err := ParseFormula(text[len(FormulaPrefix):])
		if err != nil {
			return nil, err
		}
		return &formulaContent{formula: formula, sheet: c.sheet}, nil

	case text[0] == '\'':
		return textContent{value: text[1:], text: text}, nil

	default:
		return textContent{value: text, text: text}, nil
	}
}

// isCircularDependency walks the dependants relation starting from this
// cell. Accepting the candidate references would close a cycle exactly
// when the walk meets this cell itself or any of the candidate's targets.
func (c *Cell) isCircularDependency(refs []contracts.Position) bool {
	if len(refs) == 0 {
		return false
	}

	targets := make(map[contracts.Position]struct{}, len(refs))
	for _, ref := range refs {
		targets[ref] = struct{}{}
	}

	if _, ok := targets[c.pos]; ok {
		return true
	}

	visited := map[contracts.Position]struct{}{c.pos: {}}
	queue := []contracts.Position{c.pos}

	for len(queue) > 0 {
		current := c.sheet.cell(queue[0])
		if queue[0] == c.pos {
			// this cell may not be installed yet but can hold adopted dependants
			current = c
		}
		queue = queue[1:]
		if current == nil {
			continue
		}

		for dependant := range current.dependants {
			if _, ok := targets[dependant]; ok {
				return true
			}
			if _, ok := visited[dependant]; !ok {
				visited[dependant] = struct{}{}
				queue = append(queue, dependant)
			}
		}
	}

	return false
}

// invalidateCache drops the memoized value of this cell and of every cell
// transitively reading it.
func (c *Cell) invalidateCache() {
	visited := map[contracts.Position]struct{}{c.pos: {}}
	queue := []*Cell{c}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		current.content.InvalidateCache()

		for dependant := range current.dependants {
			if _, ok := visited[dependant]; ok {
				continue
			}
			visited[dependant] = struct{}{}
			if dependantCell := c.sheet.cell(dependant); dependantCell != nil {
				queue = append(queue, dependantCell)
			}
		}
	}
}
