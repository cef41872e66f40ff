package main

import (
	"github.com/expr-lang/expr/ast"

	"gridSheet/contracts"
)

type FindCellRefsVisitor struct {
	refs []contracts.Position
}

func (v *FindCellRefsVisitor) Visit(node *ast.Node) {
	if identifierNode, ok := (*node).(*ast.IdentifierNode); ok {
		if pos, err := contracts.PositionFromString(identifierNode.Value); err == nil {
			v.refs = append(v.refs, pos)
		}
	}
}
