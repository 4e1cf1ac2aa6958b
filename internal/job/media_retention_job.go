package job

import (
	"Mapdrop/internal/pkg/storage"
	"Mapdrop/internal/pkg/util"
	"context"
	log "log/slog"
	"strconv"
	"strings"
	"time"
)

// MediaRetentionJob 按"隔夜清空"策略删除过期媒体文件。
// 与帖子数据无任何协调：帖子仍引用已删文件属于既定取舍，不在这里修正。
type MediaRetentionJob struct {
	store     storage.MediaStore
	localHour int
	now       func() time.Time
}

func NewMediaRetentionJob(store storage.MediaStore, localHour int) *MediaRetentionJob {
	return &MediaRetentionJob{
		store:     store,
		localHour: localHour,
		now:       time.Now,
	}
}

// Run 实现 cron.Job
func (s *MediaRetentionJob) Run() {
	deleted, err := s.Sweep(context.Background(), s.now())
	if err != nil {
		log.Error("media retention sweep failed", "err", err)
		return
	}
	if deleted > 0 {
		log.Info("media retention sweep finished", "deleted_count", deleted)
	}
}

// Sweep 删除嵌入时间戳早于保留边界的文件。
// 不符合 {millis}-... 命名的对象视为外部文件，一律不动；
// 单个文件删除失败只记日志，不中断整轮。
func (s *MediaRetentionJob) Sweep(ctx context.Context, now time.Time) (int, error) {
	cutoff := util.RetentionCutoff(now, s.localHour)

	names, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, name := range names {
		createdAt, ok := parseCreationMillis(name)
		if !ok {
			continue
		}
		if !createdAt.Before(cutoff) {
			continue
		}

		if err := s.store.Remove(ctx, name); err != nil {
			log.Warn("failed to delete expired media", "name", name, "err", err)
			continue
		}
		deleted++
		log.Info("deleted expired media", "name", name)
	}

	return deleted, nil
}

// parseCreationMillis 从 {unixMillis}-{uuid}.{ext} 中恢复创建时间
func parseCreationMillis(name string) (time.Time, bool) {
	head, _, found := strings.Cut(name, "-")
	if !found {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(head, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
