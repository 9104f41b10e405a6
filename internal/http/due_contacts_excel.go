package httpapi

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"touchbase-data/internal/domain"
)

// DueContactsExportHeader 导出表头
var DueContactsExportHeader = []string{
	"Full Name",
	"Category",
	"Company",
	"Email",
	"Phone",
	"Last Contacted",
	"Next Contact Date",
}

// GenerateDueContactsExport 生成应联系名单 Excel 文件
// contacts 为空时只生成表头
func GenerateDueContactsExport(contacts []*domain.Contact) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Due Contacts"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range DueContactsExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	const dateFormat = "2006-01-02 15:04"
	for row, c := range contacts {
		lastContacted := ""
		if c.LastContacted != nil {
			lastContacted = c.LastContacted.Format(dateFormat)
		}
		nextContact := ""
		if c.NextContactDate != nil {
			nextContact = c.NextContactDate.Format(dateFormat)
		}
		values := []any{
			c.FullName,
			string(c.Category),
			c.Company,
			c.Email,
			c.Phone,
			lastContacted,
			nextContact,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}
	return buf.Bytes(), nil
}
