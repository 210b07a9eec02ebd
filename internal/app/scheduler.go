package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReminderRunner один проход рассылки напоминаний
type ReminderRunner interface {
	Run(ctx context.Context) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	reminders ReminderRunner
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(reminders ReminderRunner, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		reminders: reminders,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("reminder_interval", s.interval))

	s.wg.Add(1)
	go s.runReminderTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runReminderTask периодически рассылает напоминания о занятиях
func (s *Scheduler) runReminderTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.sendReminders(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendReminders(ctx)
		case <-s.stopChan:
			s.logger.Info("Reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reminder task cancelled")
			return
		}
	}
}

func (s *Scheduler) sendReminders(ctx context.Context) {
	if err := s.reminders.Run(ctx); err != nil {
		s.logger.Error("Failed to send reminders", zap.Error(err))
	}
}
