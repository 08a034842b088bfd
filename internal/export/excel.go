package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
)

const defaultSheet = "Sheet1"

// WriteExcel writes the table as a single-sheet workbook with headers in
// row 1.
func WriteExcel(w io.Writer, t Table) error {
	if len(t.Headers) == 0 {
		return errors.New("export: table has no headers")
	}
	sheet := sheetName(t.Sheet)

	file := excelize.NewFile()
	file.NewSheet(sheet)
	if sheet != defaultSheet {
		file.DeleteSheet(defaultSheet)
	}
	file.SetActiveSheet(file.GetSheetIndex(sheet))

	for col, h := range t.Headers {
		file.SetCellValue(sheet, cellRef(col, 1), h)
	}
	for i, row := range t.Rows {
		for col, v := range row {
			if col >= len(t.Headers) {
				break
			}
			file.SetCellValue(sheet, cellRef(col, i+2), excelValue(v))
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExcelBytes renders the workbook into memory.
func ExcelBytes(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheetName applies the workbook limits: at most 31 characters and none
// of []:*?/\.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return defaultSheet
	}
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}
