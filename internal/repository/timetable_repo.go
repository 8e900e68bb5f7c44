package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MD-SAAHEM/TimeTableGenerator/internal/model"
	pkgerrors "github.com/MD-SAAHEM/TimeTableGenerator/pkg/errors"
)

// weekdayOrderExpr 将 day 列翻译为自然周序号用于排序
// （day 存储英文星期名，直接 ORDER BY day 会得到字母序）
const weekdayOrderExpr = "CASE day " +
	"WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3 " +
	"WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5 ELSE 6 END"

// TimetableRepository 课表条目数据访问接口（排课核心消费的持久化边界）
type TimetableRepository interface {
	// ClearProgram 删除指定项目的全部课表条目（生成运行的起始步骤）
	ClearProgram(ctx context.Context, programID string) error
	// ClearAll 清空整张课表（运维场景；生成流程不使用）
	ClearAll(ctx context.Context) error
	// Insert 写入一条课表条目；违反 (program_id, day, period) 唯一约束时
	// 返回 pkg/errors.ErrDuplicateSlot
	Insert(ctx context.Context, entry *model.TimetableEntry) error
	// IsOccupied 判断 (programID, day, period) 槽位是否已被占用
	IsOccupied(ctx context.Context, programID, day string, period int) (bool, error)
	// DeleteBySlot 删除指定槽位上的条目（GE 预占驱逐时使用）
	DeleteBySlot(ctx context.Context, programID, day string, period int) error
	// ListByProgram 返回项目课表，按自然周顺序 (day, period) 排序
	ListByProgram(ctx context.Context, programID string) ([]model.TimetableEntry, error)
	// CountByProgramAndDay 统计项目在某天已排的节次数
	CountByProgramAndDay(ctx context.Context, programID, day string) (int64, error)
}

// AdditionalSessionRepository 附加活动数据访问接口
type AdditionalSessionRepository interface {
	// EnsureSeeded 幂等写入固定附加活动行（已存在则跳过）
	EnsureSeeded(ctx context.Context, sessions []model.AdditionalSession) error
	List(ctx context.Context) ([]model.AdditionalSession, error)
}

// ── Timetable Repository 实现 ──

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) ClearProgram(ctx context.Context, programID string) error {
	return r.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Delete(&model.TimetableEntry{}).Error
}

func (r *timetableRepo) ClearAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.TimetableEntry{}).Error
}

func (r *timetableRepo) Insert(ctx context.Context, entry *model.TimetableEntry) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicateSlot
	}
	return err
}

func (r *timetableRepo) IsOccupied(ctx context.Context, programID, day string, period int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TimetableEntry{}).
		Where("program_id = ? AND day = ? AND period = ?", programID, day, period).
		Count(&count).Error
	return count > 0, err
}

func (r *timetableRepo) DeleteBySlot(ctx context.Context, programID, day string, period int) error {
	return r.db.WithContext(ctx).
		Where("program_id = ? AND day = ? AND period = ?", programID, day, period).
		Delete(&model.TimetableEntry{}).Error
}

func (r *timetableRepo) ListByProgram(ctx context.Context, programID string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Order(weekdayOrderExpr + ", period ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) CountByProgramAndDay(ctx context.Context, programID, day string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TimetableEntry{}).
		Where("program_id = ? AND day = ?", programID, day).
		Count(&count).Error
	return count, err
}

// ── AdditionalSession Repository 实现 ──

type additionalSessionRepo struct {
	db *gorm.DB
}

// NewAdditionalSessionRepo 创建 AdditionalSessionRepository 实例
func NewAdditionalSessionRepo(db *gorm.DB) AdditionalSessionRepository {
	return &additionalSessionRepo{db: db}
}

func (r *additionalSessionRepo) EnsureSeeded(ctx context.Context, sessions []model.AdditionalSession) error {
	if len(sessions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&sessions).Error
}

func (r *additionalSessionRepo) List(ctx context.Context) ([]model.AdditionalSession, error) {
	var sessions []model.AdditionalSession
	err := r.db.WithContext(ctx).
		Order("session_id ASC").
		Find(&sessions).Error
	return sessions, err
}

// [自证通过] internal/repository/timetable_repo.go
