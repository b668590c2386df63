package export

import (
	"context"
	"fmt"
	"io"

	"github.com/rogerio-castellano/store-inventory/internal/repo"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Sheets lists the workbook sheets in the order they are written.
var Sheets = []Entity{Products, Sales, Customers, Supplies}

// SheetName returns the sheet title used for entity in a workbook.
func SheetName(e Entity) string {
	switch e {
	case Products:
		return "Products"
	case Sales:
		return "Sales"
	case Customers:
		return "Customers"
	case Supplies:
		return "Supplies"
	default:
		return string(e)
	}
}

// WriteWorkbook writes one xlsx workbook with a sheet per entity. Entities
// without records get no sheet; an empty store yields a header-only
// Products sheet so the workbook stays valid.
func WriteWorkbook(ctx context.Context, src Source, w io.Writer) error {
	tables := make(map[Entity][][]string, len(Sheets))
	err := src.Snapshot(ctx, func(q repo.Queries) error {
		for _, e := range Sheets {
			rows, err := entityRows(ctx, q, e)
			if err != nil {
				return err
			}
			tables[e] = rows
		}
		return nil
	})
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	written := 0
	for _, e := range Sheets {
		rows := tables[e]
		if len(rows) < 2 {
			continue
		}
		if err := addSheet(f, SheetName(e), rows); err != nil {
			return err
		}
		written++
	}
	if written == 0 {
		if err := addSheet(f, SheetName(Products), tables[Products]); err != nil {
			return err
		}
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}
	return nil
}
