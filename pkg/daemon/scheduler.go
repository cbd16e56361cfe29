package daemon

import (
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// idleWait is how long the loop sleeps when nothing is scheduled. Control
// messages wake it earlier.
const idleWait = time.Hour * 10000

// TaskFunc represents a runnable task.
type TaskFunc func() error

// ErrorFunc receives task failures.
type ErrorFunc func(err error)

// Scheduler runs a task on a cron schedule. The schedule can be changed,
// cleared or skipped while the scheduler is running.
type Scheduler struct {
	Task    TaskFunc
	OnError ErrorFunc

	parser cron.Parser

	schedule cron.Schedule
	nextRun  time.Time

	mu      sync.Mutex
	running bool

	controlCh chan controlMsg
	stopCh    chan struct{}
}

type controlKind int

const (
	ctrlRecalculate controlKind = iota // schedule changed or cleared
	ctrlSkip                           // next run skipped
)

type controlMsg struct {
	kind controlKind
}

func NewScheduler(task TaskFunc, onError ErrorFunc) *Scheduler {
	if task == nil {
		panic("task function cannot be nil")
	}

	return &Scheduler{
		Task:      task,
		OnError:   onError,
		parser:    newCronParser(),
		controlCh: make(chan controlMsg, 4),
		stopCh:    make(chan struct{}),
	}
}

func newCronParser() cron.Parser {
	return cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// ValidateCron reports whether expr is a schedule the Scheduler accepts.
func ValidateCron(expr string) error {
	_, err := newCronParser().Parse(expr)
	if err != nil {
		return pkgerrors.Wrapf(err, "invalid cron expression %q", expr)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	go s.run()
}

func (s *Scheduler) Stop() {
	select {
	case <-s.stopCh: // already closed
	default:
		close(s.stopCh)
	}
}

// Schedule replaces the current schedule.
func (s *Scheduler) Schedule(cronExpr string) error {
	sh, err := s.parser.Parse(cronExpr)
	if err != nil {
		return pkgerrors.Wrapf(err, "invalid cron expression %q", cronExpr)
	}

	s.mu.Lock()
	s.schedule = sh
	s.nextRun = sh.Next(time.Now())
	s.mu.Unlock()

	s.trySendControl(ctrlRecalculate)
	return nil
}

// Unschedule clears the schedule. The scheduler keeps running idle.
func (s *Scheduler) Unschedule() {
	s.mu.Lock()
	s.schedule = nil
	s.nextRun = time.Time{}
	s.mu.Unlock()

	s.trySendControl(ctrlRecalculate)
}

// Skip skips the next scheduled run.
func (s *Scheduler) Skip() error {
	s.mu.Lock()
	if s.schedule == nil || s.nextRun.IsZero() {
		s.mu.Unlock()
		return pkgerrors.New("no active schedule to skip")
	}
	s.nextRun = s.schedule.Next(s.nextRun)
	s.mu.Unlock()

	s.trySendControl(ctrlSkip)
	return nil
}

func (s *Scheduler) Status() (nextRun time.Time, running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.nextRun, s.running
}

func (s *Scheduler) run() {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		logrus.Debug("scheduler stopped")
	}()

	logrus.Debug("scheduler started")

	for {
		nextRun := s.snapshot()
		wait := idleWait
		if !nextRun.IsZero() {
			wait = time.Until(nextRun)
			if wait < 0 {
				wait = 0
			}
		}
		timer := time.NewTimer(wait)

		select {
		case <-timer.C:
			if nextRun.IsZero() {
				continue
			}

			logrus.Debugf("running scheduled task at %s", nextRun.Format(time.DateTime))
			go func() {
				if err := s.Task(); err != nil {
					s.sendError(pkgerrors.Wrap(err, "task failed"))
				}
			}()
			s.advanceNextRun(nextRun)
		case msg := <-s.controlCh:
			timer.Stop()
			logrus.WithField("kind", msg.kind).Debug("received control msg")
		case <-s.stopCh:
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) snapshot() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

// advanceNextRun moves past ran unless the schedule changed in the meantime.
func (s *Scheduler) advanceNextRun(ran time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedule == nil || !s.nextRun.Equal(ran) {
		return
	}
	s.nextRun = s.schedule.Next(ran)
}

func (s *Scheduler) sendError(err error) {
	if s.OnError == nil {
		logrus.Error(err)
		return
	}

	go s.OnError(err)
}

func (s *Scheduler) trySendControl(kind controlKind) {
	select {
	case s.controlCh <- controlMsg{kind: kind}:
	default:
	}
}
