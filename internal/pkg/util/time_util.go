package util

import "time"

// RetentionCutoff 最近一次越过的每日本地 hour 点整边界。
// now 在当日边界之前时取昨天的边界，实现"隔夜清空"语义。
func RetentionCutoff(now time.Time, hour int) time.Time {
	boundary := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if now.Before(boundary) {
		boundary = boundary.AddDate(0, 0, -1)
	}
	return boundary
}
