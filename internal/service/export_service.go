package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/repository"
)

var (
	ErrExportNoAssignments = errors.New("no assignments in the requested range")
	ErrExportGenerateFail  = errors.New("generating the Excel file failed")
)

// ExportService builds the admin billing export.
//
// The export is an .xlsx workbook with one row per assignment: schedule,
// volunteer, services with line items, and the frozen receipt totals. The
// handler sets the HTTP headers and streams the returned buffer.
type ExportService interface {
	// ExportAssignments exports assignments scheduled in [fromDay, toDay].
	ExportAssignments(ctx context.Context, fromDay, toDay int64) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportAssignments(ctx context.Context, fromDay, toDay int64) (*bytes.Buffer, string, error) {
	assignments, err := s.repo.Assignment.ListBetween(ctx, fromDay, toDay)
	if err != nil {
		s.logger.Error("listing assignments for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(assignments) == 0 {
		return nil, "", ErrExportNoAssignments
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Assignments"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Date", "Start", "End", "Volunteer", "Status", "Confirmed",
		"Services", "Line items", "Subtotal", "Commission", "Total", "Tier",
	}
	widths := []float64{12, 7, 7, 22, 11, 10, 30, 44, 10, 11, 10, 12}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for i, h := range headers {
		cellRef, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cellRef, h)
		f.SetCellStyle(sheetName, cellRef, cellRef, headerStyle)
	}

	row := 2
	for i := range assignments {
		a := &assignments[i]

		volunteerName := a.VolunteerID
		if a.Volunteer != nil {
			volunteerName = a.Volunteer.Name
		}

		lineItems := make([]string, 0, len(a.Receipt.Lines))
		for _, l := range a.Receipt.Lines {
			lineItems = append(lineItems, fmt.Sprintf("%s: %.1fh × %.2f = %.2f",
				l.Service, l.Hours, l.AdjustedRate, l.Amount))
		}

		values := []interface{}{
			time.UnixMilli(a.ScheduledDate).UTC().Format("2006-01-02"),
			a.StartTime,
			a.EndTime,
			volunteerName,
			a.Status,
			a.GuardianConfirmed,
			strings.Join([]string(a.Services), ", "),
			strings.Join(lineItems, "; "),
			a.Receipt.Subtotal,
			a.Receipt.Commission,
			a.Receipt.Total,
			fmt.Sprintf("%s (+%.0f%%)", a.Receipt.Tier, a.Receipt.TierPercent*100),
		}
		for col, v := range values {
			cellRef, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetName, cellRef, v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing Excel export failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("assignments_%s_%s.xlsx",
		time.UnixMilli(fromDay).UTC().Format("20060102"),
		time.UnixMilli(toDay).UTC().Format("20060102"))
	return buf, filename, nil
}
