package errors

import "errors"

// ErrDuplicateSlot 课表槽位唯一性冲突：同一 (program_id, day, period) 已存在条目
var ErrDuplicateSlot = errors.New("该时段已存在课表条目")
