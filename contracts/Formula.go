package contracts

import "errors"

// Formula is a parsed arithmetic expression evaluated against a sheet.
//
// Evaluate returns either a numeric result or a FormulaError; any other
// error kind never leaves the evaluator. GetExpression returns the
// canonical printed form of the expression: no whitespace, minimal
// parentheses. GetReferencedCells returns every valid position appearing
// in the expression, deduplicated and sorted.
type Formula interface {
	Evaluate(sheet SheetView) (float64, error)
	GetExpression() string
	GetReferencedCells() []Position
}

var FormulaSyntaxError = errors.New("formula syntax error")
