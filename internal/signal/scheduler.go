package signal

import (
	"context"
	"time"

	"cerebro/internal/logger"
)

// IntervalScheduler 以固定周期驱动任务，直到 ctx 取消；不会与请求路径抢线程。
type IntervalScheduler struct {
	Name     string
	Interval time.Duration

	ctx   context.Context
	nowFn func() time.Time
}

func NewIntervalScheduler(ctx context.Context, interval time.Duration) *IntervalScheduler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &IntervalScheduler{Interval: interval, ctx: ctx, nowFn: time.Now}
}

// Start blocks running task every Interval until the context is cancelled.
// The task itself is never interrupted mid-run; cancellation takes effect at
// the next wait.
func (s *IntervalScheduler) Start(task func()) {
	if s == nil {
		return
	}
	if task == nil {
		logger.Warnf("IntervalScheduler: task is nil, exit")
		return
	}
	if s.Interval <= 0 {
		logger.Warnf("IntervalScheduler: invalid interval=%s, exit", s.Interval)
		return
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	if s.nowFn == nil {
		s.nowFn = time.Now
	}

	prefix := "IntervalScheduler"
	if s.Name != "" {
		prefix = prefix + "[" + s.Name + "]"
	}
	startAt := s.nowFn().UTC()
	logger.Infof("%s: started interval=%s at=%s", prefix, s.Interval, startAt.Format(time.RFC3339))

	nextAt := startAt.Add(s.Interval)
	for {
		if !s.waitUntil(nextAt) {
			logger.Infof("%s: ctx done, exit | uptime=%s", prefix, s.nowFn().UTC().Sub(startAt).Truncate(time.Second))
			return
		}
		task()
		nextAt = nextAt.Add(s.Interval)
		if now := s.nowFn().UTC(); nextAt.Before(now) {
			// a slow task ate whole intervals, realign instead of bursting
			nextAt = now.Add(s.Interval)
		}
	}
}

func (s *IntervalScheduler) waitUntil(target time.Time) bool {
	wait := target.Sub(s.nowFn().UTC())
	if wait <= 0 {
		select {
		case <-s.ctx.Done():
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(wait)
	select {
	case <-s.ctx.Done():
		timer.Stop()
		return false
	case <-timer.C:
		return true
	}
}
