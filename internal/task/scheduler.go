package task

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job 是可被调度的定时任务
type Job interface {
	cron.Job
	Name() string
}

// Scheduler 封装 cron 实例，负责任务注册、启动和停止
type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Entry
}

// NewScheduler 创建调度器，任务 panic 会被恢复，上一次未结束时跳过本次执行
func NewScheduler() *Scheduler {
	logger := logrus.WithField("system", "cron")
	cronLogger := cronLogrus{entry: logger}
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		),
	)
	return &Scheduler{cron: c, logger: logger}
}

// Register 按 cron 表达式注册任务
func (s *Scheduler) Register(spec string, job Job) error {
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("register job %s: %w", job.Name(), err)
	}
	s.logger.WithFields(logrus.Fields{"job": job.Name(), "schedule": spec}).Info("job registered")
	return nil
}

// Entries 返回已注册的任务数量
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start 启动调度器
func (s *Scheduler) Start() {
	s.logger.Info("cron scheduler started")
	s.cron.Start()
}

// Stop 停止调度器并等待正在运行的任务结束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("cron scheduler stopped")
}

// cronLogrus 把 cron.Logger 接到 logrus
type cronLogrus struct {
	entry *logrus.Entry
}

func (l cronLogrus) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (l cronLogrus) Error(err error, msg string, keysAndValues ...interface{}) {
	l.entry.WithError(err).WithFields(toFields(keysAndValues)).Error(msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
