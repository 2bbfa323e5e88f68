package app

import (
	"context"
	"time"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/settle_sessions"
)

// SettleUseCase интерфейс юзкейса списания кредитов
type SettleUseCase interface {
	Execute(ctx context.Context) (*settle_sessions.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновый воркер отложенного списания кредитов. Запускает проход
// по таймеру и по внеплановому сигналу от операций записи
type Sweeper struct {
	settle   SettleUseCase
	interval time.Duration
	log      Logger

	triggerCh chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewSweeper создаёт воркер списания
func NewSweeper(settle SettleUseCase, interval time.Duration, log Logger) *Sweeper {
	return &Sweeper{
		settle:    settle,
		interval:  interval,
		log:       log,
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start запускает цикл воркера в отдельной горутине
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

// Trigger просит воркер выполнить внеплановый проход. Сигнал не блокирует
// вызывающего: если проход уже запрошен, повторный запрос схлопывается
func (s *Sweeper) Trigger() {
	select {
	case s.triggerCh <- struct{}{}:
	default:
	}
}

// Stop останавливает воркер и дожидается завершения текущего прохода
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.doneCh)

	s.log.Info("[sweeper] started, interval=%s", s.interval)

	// Первый проход сразу при старте, чтобы накопившиеся за простой
	// недосписания обработались без ожидания первого тика
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.triggerCh:
			s.sweep(ctx)
		case <-s.stopCh:
			s.log.Info("[sweeper] stopped")
			return
		case <-ctx.Done():
			s.log.Info("[sweeper] context cancelled, stopped")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.settle.Execute(ctx); err != nil {
		s.log.Error("[sweeper] sweep failed: %v", err)
	}
}
