package service

import (
	"testing"

	"github.com/MD-SAAHEM/TimeTableGenerator/internal/model"
)

func TestBuildSlots_CoversFullWeek(t *testing.T) {
	slots := buildSlots()

	if len(slots) != len(model.WeekDays)*model.PeriodsPerDay {
		t.Fatalf("期望 %d 个槽位，实际 %d 个", len(model.WeekDays)*model.PeriodsPerDay, len(slots))
	}

	seen := make(map[model.Slot]bool)
	for _, sl := range slots {
		if seen[sl] {
			t.Errorf("槽位重复: %s 第%d节", sl.Day, sl.Period)
		}
		seen[sl] = true
		if model.DayOrder(sl.Day) > len(model.WeekDays) {
			t.Errorf("未知星期名: %s", sl.Day)
		}
		if sl.Period < 1 || sl.Period > model.PeriodsPerDay {
			t.Errorf("节次越界: %d", sl.Period)
		}
	}
}

func TestBuildSlots_OrderVaries(t *testing.T) {
	// 洗牌不设固定种子，多次构建几乎不可能全部同序
	first := buildSlots()
	for i := 0; i < 10; i++ {
		next := buildSlots()
		for j := range next {
			if next[j] != first[j] {
				return
			}
		}
	}
	t.Error("连续 10 次构建槽位序列完全一致，洗牌疑似未生效")
}

func TestAllocationState_RemoveSlot(t *testing.T) {
	st := newAllocationState()
	target := st.remaining[0]

	st.removeSlot(target)
	if len(st.remaining) != 34 {
		t.Fatalf("期望剩余 34 个槽位，实际 %d 个", len(st.remaining))
	}
	for _, sl := range st.remaining {
		if sl == target {
			t.Fatal("被移除的槽位仍在剩余序列中")
		}
	}

	// 移除不存在的槽位应静默跳过
	st.removeSlot(target)
	if len(st.remaining) != 34 {
		t.Errorf("重复移除不应改变剩余数量，实际 %d 个", len(st.remaining))
	}
}

func TestAllocationState_MarkScheduled(t *testing.T) {
	st := newAllocationState()

	if st.alreadyScheduledToday(model.DayMonday, "CS101") {
		t.Error("初始状态不应有已排课程")
	}
	st.markScheduled(model.DayMonday, "CS101")
	if !st.alreadyScheduledToday(model.DayMonday, "CS101") {
		t.Error("标记后应判定为当天已排")
	}
	if st.alreadyScheduledToday(model.DayTuesday, "CS101") {
		t.Error("标记不应跨天生效")
	}
}

// [自证通过] internal/service/slots_test.go
