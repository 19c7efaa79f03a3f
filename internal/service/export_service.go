package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
)

// ── export errors ──

var (
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// ExportService file exports
//
// Exports are returned as a bytes.Buffer plus a suggested filename; the handler sets the
// response headers and streams the buffer.
type ExportService interface {
	// ExportTasks every task of the user as an xlsx workbook
	ExportTasks(ctx context.Context, userID int64) (*bytes.Buffer, string, error)
	// ExportStudyPlanXLSX one plan as an xlsx workbook, one row per session
	ExportStudyPlanXLSX(ctx context.Context, userID, planID int64) (*bytes.Buffer, string, error)
	// ExportStudyPlanICS one plan as an iCalendar file, one all-day event per session
	ExportStudyPlanICS(ctx context.Context, userID, planID int64) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportTasks
// ═══════════════════════════════════════════════════════════
//
// Sheet "Tasks": | Title | Description | Due Date | Priority | Category | Status |

func (s *exportService) ExportTasks(ctx context.Context, userID int64) (*bytes.Buffer, string, error) {
	tasks, err := s.repo.Task.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list tasks for export failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Tasks"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 32)
	f.SetColWidth(sheetName, "B", "B", 48)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "F", 12)

	headers := []string{"Title", "Description", "Due Date", "Priority", "Category", "Status"}
	s.writeHeader(f, sheetName, 1, headers)

	row := 2
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(model.DateLayout)
		}
		desc := ""
		if t.Description != nil {
			desc = *t.Description
		}
		status := "Open"
		if t.Completed {
			status = "Done"
		}
		f.SetCellValue(sheetName, cell("A", row), t.Title)
		f.SetCellValue(sheetName, cell("B", row), desc)
		f.SetCellValue(sheetName, cell("C", row), due)
		f.SetCellValue(sheetName, cell("D", row), t.Priority)
		f.SetCellValue(sheetName, cell("E", row), t.Category)
		f.SetCellValue(sheetName, cell("F", row), status)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write tasks workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("tasks_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportStudyPlanXLSX
// ═══════════════════════════════════════════════════════════
//
// Sheet "Study Plan": merged title row, then | # | Date | Session | Description | Minutes | Completed |

func (s *exportService) ExportStudyPlanXLSX(ctx context.Context, userID, planID int64) (*bytes.Buffer, string, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Study Plan"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 32)
	f.SetColWidth(sheetName, "D", "D", 48)
	f.SetColWidth(sheetName, "E", "F", 12)

	headers := []string{"#", "Date", "Session", "Description", "Minutes", "Completed"}

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s (%s to %s)",
		plan.Title, plan.StartDate.Format(model.DateLayout), plan.EndDate.Format(model.DateLayout)))
	f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	s.writeHeader(f, sheetName, 2, headers)

	row := 3
	total := 0
	for _, ss := range plan.Sessions {
		desc := ""
		if ss.Description != nil {
			desc = *ss.Description
		}
		done := "No"
		if ss.Completed {
			done = "Yes"
		}
		f.SetCellValue(sheetName, cell("A", row), ss.Position+1)
		f.SetCellValue(sheetName, cell("B", row), ss.Date.Format(model.DateLayout))
		f.SetCellValue(sheetName, cell("C", row), ss.Title)
		f.SetCellValue(sheetName, cell("D", row), desc)
		f.SetCellValue(sheetName, cell("E", row), ss.Duration)
		f.SetCellValue(sheetName, cell("F", row), done)
		total += ss.Duration
		row++
	}
	f.SetCellValue(sheetName, cell("D", row), "Total")
	f.SetCellValue(sheetName, cell("E", row), total)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write study plan workbook failed", zap.Int64("plan_id", planID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("study_plan_%d.xlsx", plan.ID), nil
}

// ═══════════════════════════════════════════════════════════
// ExportStudyPlanICS
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportStudyPlanICS(ctx context.Context, userID, planID int64) (*bytes.Buffer, string, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, "", err
	}

	stamp := s.now().UTC()
	cal := ics.NewCalendarFor("StudyPilot")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(plan.Title)

	for _, ss := range plan.Sessions {
		event := cal.AddEvent(fmt.Sprintf("study-session-%d@study-pilot", ss.ID))
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(ss.CreatedAt)
		event.SetAllDayStartAt(ss.Date)
		event.SetAllDayEndAt(ss.Date.AddDate(0, 0, 1))
		event.SetSummary(ss.Title)

		desc := fmt.Sprintf("Duration: %d minutes", ss.Duration)
		if ss.Description != nil && *ss.Description != "" {
			desc = *ss.Description + "\n" + desc
		}
		event.SetDescription(desc)
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		s.logger.Error("serialize calendar failed", zap.Int64("plan_id", planID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("study_plan_%d.ics", plan.ID), nil
}

// ── helpers ──

func (s *exportService) ownedPlan(ctx context.Context, userID, planID int64) (*model.StudyPlan, error) {
	plan, err := s.repo.StudyPlan.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudyPlanNotFound
		}
		s.logger.Error("query study plan failed", zap.Int64("plan_id", planID), zap.Error(err))
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrStudyPlanNotFound
	}
	return plan, nil
}

func (s *exportService) writeHeader(f *excelize.File, sheet string, row int, headers []string) {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheet, cell("A", row), cell(colName(len(headers)-1), row), headerStyle)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
