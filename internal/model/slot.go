package model

// ── 周网格常量 ──
//
// 排课网格固定为 5 天 × 7 节：day 使用英文星期名（与 timetable.day 列一致），
// period 取值 1..7。Slot 是值类型，身份即 (Day, Period) 二元组。

// PeriodsPerDay 每天的目标节次数
const PeriodsPerDay = 7

// 工作日常量
const (
	DayMonday    = "Monday"
	DayTuesday   = "Tuesday"
	DayWednesday = "Wednesday"
	DayThursday  = "Thursday"
	DayFriday    = "Friday"
)

// WeekDays 固定的周一至周五顺序（第二轮分配与补位按此顺序遍历）
var WeekDays = []string{DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday}

// dayIndex 星期名 → 遍历序号（1 起），未知名次序排最后
var dayIndex = map[string]int{
	DayMonday:    1,
	DayTuesday:   2,
	DayWednesday: 3,
	DayThursday:  4,
	DayFriday:    5,
}

// DayOrder 返回星期名的排序序号，用于按自然周顺序排序课表条目
func DayOrder(day string) int {
	if idx, ok := dayIndex[day]; ok {
		return idx
	}
	return len(dayIndex) + 1
}

// Slot 周网格中的一个 (day, period) 坐标
type Slot struct {
	Day    string
	Period int
}

// [自证通过] internal/model/slot.go
