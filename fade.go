package markup

import (
	"slices"
	"sync"
	"time"
)

// Scheduler runs delayed tasks for the canvas. The returned function cancels the task if it has not yet run, calling it more than once has no effect.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

type timeScheduler struct{}

// AfterFunc runs f on its own goroutine after d.
func (timeScheduler) AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() {
		t.Stop()
	}
}

// TimeScheduler is a Scheduler based on wall-clock timers.
var TimeScheduler Scheduler = timeScheduler{}

type manualTask struct {
	at time.Duration
	f  func()
}

// ManualScheduler is a Scheduler whose clock only moves when Advance is called. Tasks run on the goroutine that calls Advance.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &manualTask{s.now + d, f}
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if i := slices.Index(s.tasks, task); i != -1 {
			s.tasks = slices.Delete(s.tasks, i, i+1)
		}
	}
}

// Advance moves the clock forward by d and runs all tasks that become due, in order. Tasks scheduled by running tasks run as well if they are due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	end := s.now + d
	for {
		i := -1
		for j, task := range s.tasks {
			if task.at <= end && (i == -1 || task.at < s.tasks[i].at) {
				i = j
			}
		}
		if i == -1 {
			break
		}
		task := s.tasks[i]
		s.tasks = slices.Delete(s.tasks, i, i+1)
		s.now = task.at
		s.mu.Unlock()
		task.f()
		s.mu.Lock()
	}
	s.now = end
	s.mu.Unlock()
}

// Pending returns the number of tasks waiting to run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

////////////////////////////////////////////////////////////////

// startFade raises the opacity of the stroke being drawn on every tick and commits it once opaque. Must be called with the lock held.
func (c *Canvas) startFade() {
	c.cancelFade()
	c.fadeGen++
	c.scheduleFade(c.fadeGen)
}

func (c *Canvas) scheduleFade(gen int) {
	c.fadeCancel = c.scheduler.AfterFunc(c.opts.FadeInterval, func() {
		c.fadeTick(gen)
	})
}

func (c *Canvas) fadeTick(gen int) {
	c.mu.Lock()
	defer c.unlock()
	if gen != c.fadeGen || c.drawing == nil {
		return // cancelled
	}
	c.fadeCancel = nil
	c.drawing.Opacity += c.opts.FadeStep
	if 1.0 <= c.drawing.Opacity {
		c.drawing.Opacity = 1.0
		c.fadeGen++
		c.endPaint()
		return
	}
	c.scheduleFade(gen)
}

// fading returns true while a stroke waits for its fade to finish.
func (c *Canvas) fading() bool {
	return c.fadeCancel != nil
}

// cancelFade stops a running fade. Must be called with the lock held.
func (c *Canvas) cancelFade() {
	c.fadeGen++
	if c.fadeCancel != nil {
		c.fadeCancel()
		c.fadeCancel = nil
	}
}
