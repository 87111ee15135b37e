package export

import (
	"bytes"

	"timesheet/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var entryHeaders = []string{"Employee", "Project", "Task", "Date", "Hours", "Rate", "Salary"}

// Timesheets writes the approved entries to an XLSX workbook with a
// trailing TOTAL SALARY row.
func Timesheets(entries []models.Entry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close workbook")
		}
	}()

	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, entryHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "write xlsx header")
	}

	var totalSalary float64
	for _, e := range entries {
		row++
		col := 1
		if err := writeColumn(f, sheet, col, row, e.Employee.DisplayName()); err != nil {
			return nil, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, e.Task.Project.Name); err != nil {
			return nil, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, e.Task.Name); err != nil {
			return nil, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, e.Date.Format("02.01.2006")); err != nil {
			return nil, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, e.Hours); err != nil {
			return nil, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, e.Employee.HourlyRate); err != nil {
			return nil, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, e.TotalSalary()); err != nil {
			return nil, err
		}
		totalSalary += e.TotalSalary()
	}

	row++
	if err := writeColumn(f, sheet, 1, row, "TOTAL SALARY"); err != nil {
		return nil, err
	}
	if err := writeColumn(f, sheet, len(entryHeaders), row, totalSalary); err != nil {
		return nil, err
	}

	f.SetSheetName(sheet, "Timesheets")
	return f.WriteToBuffer()
}
