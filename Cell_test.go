package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gridSheet/contracts"
)

func TestCell_Set(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		sheet := CreateSheet()
		cell := NewCell(sheet, _position(t, "A1"))

		assert.NoError(t, cell.Set(""))
		assert.Equal(t, "", cell.GetText())
		assert.Equal(t, "", cell.GetValue())
		assert.Empty(t, cell.GetReferencedCells())
	})

	t.Run("text", func(t *testing.T) {
		sheet := CreateSheet()
		cell := NewCell(sheet, _position(t, "A1"))

		assert.NoError(t, cell.Set("awesome"))
		assert.Equal(t, "awesome", cell.GetText())
		assert.Equal(t, "awesome", cell.GetValue())
	})

	t.Run("text_with_apostrophe", func(t *testing.T) {
		sheet := CreateSheet()
		cell := NewCell(sheet, _position(t, "A1"))

		assert.NoError(t, cell.Set("'=1+1"))
		assert.Equal(t, "'=1+1", cell.GetText())
		assert.Equal(t, "=1+1", cell.GetValue())
	})

	t.Run("bare_equals_is_text", func(t *testing.T) {
		sheet := CreateSheet()
		cell := NewCell(sheet, _position(t, "A1"))

		assert.NoError(t, cell.Set("="))
		assert.Equal(t, "=", cell.GetText())
		assert.Equal(t, "=", cell.GetValue())
		assert.Empty(t, cell.GetReferencedCells())
	})

	t.Run("formula", func(t *testing.T) {
		sheet := CreateSheet()
		assert.NoError(t, sheet.SetCell(_position(t, "A1"), "= 1 +  2"))

		cell := sheet.cell(_position(t, "A1"))
		assert.Equal(t, "=1+2", cell.GetText())
		assert.Equal(t, 3.0, cell.GetValue())
	})

	t.Run("formula_parse_error_keeps_cell", func(t *testing.T) {
		sheet := CreateSheet()
		assert.NoError(t, sheet.SetCell(_position(t, "A1"), "keep me"))

		cell := sheet.cell(_position(t, "A1"))
		err := cell.Set("=1+")
		assert.ErrorIs(t, err, contracts.FormulaSyntaxError)

		assert.Equal(t, "keep me", cell.GetText())
		assert.Equal(t, "keep me", cell.GetValue())
	})

	t.Run("replacing_formula_retargets_edges", func(t *testing.T) {
		sheet := CreateSheet()
		assert.NoError(t, sheet.SetCell(_position(t, "A1"), "1"))
		assert.NoError(t, sheet.SetCell(_position(t, "B1"), "2"))
		assert.NoError(t, sheet.SetCell(_position(t, "C1"), "=A1"))

		assert.True(t, sheet.cell(_position(t, "A1")).IsReferenced())
		assert.False(t, sheet.cell(_position(t, "B1")).IsReferenced())

		assert.NoError(t, sheet.SetCell(_position(t, "C1"), "=B1"))

		assert.False(t, sheet.cell(_position(t, "A1")).IsReferenced())
		assert.True(t, sheet.cell(_position(t, "B1")).IsReferenced())
	})
}

func TestCell_GetValue(t *testing.T) {
	t.Run("numeric_result_is_memoized", func(t *testing.T) {
		sheet := CreateSheet()
		assert.NoError(t, sheet.SetCell(_position(t, "A1"), "2"))
		assert.NoError(t, sheet.SetCell(_position(t, "A2"), "=A1*2"))

		cell := sheet.cell(_position(t, "A2"))
		content := cell.content.(*formulaContent)

		assert.Nil(t, content.cache)
		assert.Equal(t, 4.0, cell.GetValue())
		assert.NotNil(t, content.cache)
		assert.Equal(t, 4.0, *content.cache)
	})

	t.Run("error_result_is_not_memoized", func(t *testing.T) {
		sheet := CreateSheet()
		assert.NoError(t, sheet.SetCell(_position(t, "A1"), "=1/0"))

		cell := sheet.cell(_position(t, "A1"))
		content := cell.content.(*formulaContent)

		assert.Equal(t, contracts.NewFormulaError(contracts.ErrorKindArithm), cell.GetValue())
		assert.Nil(t, content.cache)

		assert.Equal(t, contracts.NewFormulaError(contracts.ErrorKindArithm), cell.GetValue())
	})
}

func TestCell_Clear(t *testing.T) {
	t.Run("resets_to_empty", func(t *testing.T) {
		sheet := CreateSheet()
		assert.NoError(t, sheet.SetCell(_position(t, "A1"), "=1+1"))

		cell := sheet.cell(_position(t, "A1"))
		cell.Clear()

		assert.Equal(t, "", cell.GetText())
		assert.Equal(t, "", cell.GetValue())
		assert.Empty(t, cell.GetReferencedCells())
	})

	t.Run("keeps_dependants_edges", func(t *testing.T) {
		sheet := CreateSheet()
		assert.NoError(t, sheet.SetCell(_position(t, "A1"), "5"))
		assert.NoError(t, sheet.SetCell(_position(t, "A2"), "=A1"))

		cell := sheet.cell(_position(t, "A1"))
		cell.Clear()

		assert.True(t, cell.IsReferenced())
		assert.Equal(t, 0.0, sheet.cell(_position(t, "A2")).GetValue())
	})

	t.Run("idempotent", func(t *testing.T) {
		sheet := CreateSheet()
		assert.NoError(t, sheet.SetCell(_position(t, "A1"), "5"))

		cell := sheet.cell(_position(t, "A1"))
		cell.Clear()
		cell.Clear()

		assert.Equal(t, "", cell.GetText())
	})
}

func TestCell_IsReferenced(t *testing.T) {
	sheet := CreateSheet()
	assert.NoError(t, sheet.SetCell(_position(t, "A1"), "1"))

	assert.False(t, sheet.cell(_position(t, "A1")).IsReferenced())

	assert.NoError(t, sheet.SetCell(_position(t, "A2"), "=A1"))
	assert.True(t, sheet.cell(_position(t, "A1")).IsReferenced())

	assert.NoError(t, sheet.SetCell(_position(t, "A2"), "plain text"))
	assert.False(t, sheet.cell(_position(t, "A1")).IsReferenced())
}
