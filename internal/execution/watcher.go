package execution

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Pinger probes the judge without side effects.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthWatcher probes the judge on a schedule so /health can report judge
// reachability without paying for a probe per request.
type HealthWatcher struct {
	judge Pinger
	cron  *cron.Cron
	up    atomic.Bool
}

func NewHealthWatcher(judge Pinger) *HealthWatcher {
	return &HealthWatcher{judge: judge}
}

// Start probes once immediately, then every minute.
func (w *HealthWatcher) Start() {
	w.probe()

	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc("0 * * * * *", w.probe)
	if err != nil {
		log.Printf("Failed to create judge health cron job: %v", err)
		return
	}
	c.Start()
	w.cron = c

	log.Println("Judge health watcher started (probing every minute)")
}

func (w *HealthWatcher) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

// JudgeUp reports the result of the most recent probe.
func (w *HealthWatcher) JudgeUp() bool {
	return w.up.Load()
}

func (w *HealthWatcher) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := w.judge.Ping(ctx)
	was := w.up.Swap(err == nil)
	if err != nil && was {
		log.Printf("[warn] operation=judge_probe judge went down: %v", err)
	}
	if err == nil && !was {
		log.Println("[info] operation=judge_probe judge is up")
	}
}
