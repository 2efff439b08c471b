package attendance

import (
	"bytes"
	"context"
	"fmt"

	"go-attend/internal/shared/dateutil"

	"github.com/xuri/excelize/v2"
)

// BuildReport renders the admin attendance window as an xlsx workbook, one
// row per employee per recorded day.
func BuildReport(ctx context.Context, svc Service, days int) (*bytes.Buffer, error) {
	data, err := svc.GetAllEmployees(ctx, days)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Employee", "Email", "Date", "Status", "Arrival", "Exit", "Hours"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hd)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "B", 24)
	f.SetColWidth(sheet, "C", "G", 14)

	row := 2
	for _, emp := range data {
		for _, rec := range emp.Attendance {
			values := []any{
				emp.User.Username,
				emp.User.Email,
				rec.Date,
				rec.Status,
				deref(rec.LoginTime),
				deref(rec.LogoutTime),
				dateutil.FormatHoursToHMS(rec.WorkingHours),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return buf, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
