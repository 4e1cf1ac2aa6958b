package cron

import (
	"Mapdrop/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine       *cron.Cron
	retentionJob *job.MediaRetentionJob
	spec         string
}

func NewCronManager(retentionJob *job.MediaRetentionJob, spec string) *Manager {
	return &Manager{
		engine:       cron.New(),
		retentionJob: retentionJob,
		spec:         spec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.spec, s.retentionJob); err != nil {
		return err
	}
	return nil
}

// Kickoff 进程启动时先跑一轮清理，不等第一个调度点
func (s *Manager) Kickoff() {
	go s.retentionJob.Run()
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
