package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"gridSheet/contracts"
)

// SheetRepository keeps named in-memory sheets. The evaluation core is
// single-threaded, so every sheet carries its own serializing mutex.
type SheetRepository struct {
	mu         sync.Mutex
	sheets     map[string]*sheetEntry
	dispatcher contracts.WebhookDispatcher
}

type sheetEntry struct {
	mu    sync.Mutex
	sheet *Sheet
}

func NewSheetRepository(dispatcher contracts.WebhookDispatcher) *SheetRepository {
	return &SheetRepository{
		sheets:     map[string]*sheetEntry{},
		dispatcher: dispatcher,
	}
}

func (s *SheetRepository) SetCell(sheetId string, cellId string, value string) (*contracts.CellData, error) {
	sheetId = strings.ToLower(sheetId)

	pos, err := parseCellId(cellId)
	if err != nil {
		return nil, err
	}

	entry := s.entry(sheetId, true)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err = entry.sheet.SetCell(pos, value); err != nil {
		return nil, fmt.Errorf("cell %s: %w", pos.String(), err)
	}

	data := snapshotCell(entry.sheet, pos)
	s.notify(sheetId, entry)

	return data, nil
}

func (s *SheetRepository) GetCell(sheetId string, cellId string) (*contracts.CellData, error) {
	sheetId = strings.ToLower(sheetId)

	pos, err := parseCellId(cellId)
	if err != nil {
		return nil, err
	}

	entry := s.entry(sheetId, false)
	if entry == nil {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.sheet.cell(pos) == nil {
		return nil, fmt.Errorf("%s: %w", pos.String(), contracts.CellNotFoundError)
	}

	return snapshotCell(entry.sheet, pos), nil
}

func (s *SheetRepository) ClearCell(sheetId string, cellId string) error {
	sheetId = strings.ToLower(sheetId)

	pos, err := parseCellId(cellId)
	if err != nil {
		return err
	}

	entry := s.entry(sheetId, false)
	if entry == nil {
		return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err = entry.sheet.ClearCell(pos); err != nil {
		return err
	}

	s.notify(sheetId, entry)
	return nil
}

func (s *SheetRepository) GetCellList(sheetId string) (contracts.CellList, error) {
	sheetId = strings.ToLower(sheetId)

	entry := s.entry(sheetId, false)
	if entry == nil {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	cellList := contracts.CellList{}
	for pos := range entry.sheet.cells {
		cellList[pos.String()] = snapshotCell(entry.sheet, pos)
	}

	return cellList, nil
}

func (s *SheetRepository) PrintValues(sheetId string, out io.Writer) error {
	return s.printSheet(sheetId, func(sheet *Sheet) { sheet.PrintValues(out) })
}

func (s *SheetRepository) PrintTexts(sheetId string, out io.Writer) error {
	return s.printSheet(sheetId, func(sheet *Sheet) { sheet.PrintTexts(out) })
}

func (s *SheetRepository) printSheet(sheetId string, print func(sheet *Sheet)) error {
	sheetId = strings.ToLower(sheetId)

	entry := s.entry(sheetId, false)
	if entry == nil {
		return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	print(entry.sheet)
	return nil
}

func (s *SheetRepository) entry(sheetId string, create bool) *sheetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sheets[sheetId]
	if !ok && create {
		entry = &sheetEntry{sheet: CreateSheet()}
		s.sheets[sheetId] = entry
	}

	return entry
}

// notify pushes fresh snapshots of every subscribed cell of the sheet to
// the webhook dispatcher. Runs with the sheet lock held so the snapshots
// are consistent with the mutation that triggered them.
func (s *SheetRepository) notify(sheetId string, entry *sheetEntry) {
	if s.dispatcher == nil {
		return
	}

	subscribed := s.dispatcher.SubscribedCells(sheetId)
	if len(subscribed) == 0 {
		return
	}

	cells := make([]*contracts.CellData, 0, len(subscribed))
	for _, cellId := range subscribed {
		pos, err := contracts.PositionFromString(cellId)
		if err != nil {
			continue
		}
		cells = append(cells, snapshotCell(entry.sheet, pos))
	}

	s.dispatcher.Notify(sheetId, cells)
}

func parseCellId(cellId string) (contracts.Position, error) {
	pos, err := contracts.PositionFromString(strings.ToUpper(cellId))
	if err != nil {
		return contracts.Position{}, fmt.Errorf("cell_id `%s`: %w", cellId, err)
	}
	return pos, nil
}

func snapshotCell(sheet *Sheet, pos contracts.Position) *contracts.CellData {
	data := &contracts.CellData{CellId: pos.String()}

	if cell := sheet.cell(pos); cell != nil {
		data.Value = cell.GetText()
		data.Result = contracts.FormatCellValue(cell.GetValue())
	}

	return data
}
