package testing

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
)

// FakeDaemon is an in-memory playback daemon. Every Dial hands out a [FakeSession] over the same state.
type FakeDaemon struct {
	mu sync.Mutex

	State   models.PlayerState
	Random  bool
	Repeat  bool
	Elapsed time.Duration
	Total   time.Duration
	Queue   []string
	Pos     int // index of the current entry, -1 when none

	Refreshes int
	Shuffles  int
	SeekedTo  time.Duration
	Calls     []string

	Dials  int
	Closes int

	// DialErr makes Dial fail; Fail maps an operation name to the error it returns.
	DialErr error
	Fail    map[string]error
}

// NewFakeDaemon returns a stopped daemon with an empty queue.
func NewFakeDaemon() *FakeDaemon {
	return &FakeDaemon{State: models.StateStopped, Pos: -1, Fail: map[string]error{}}
}

// Dial opens a session. Its signature matches the engine's dialer once wrapped.
func (d *FakeDaemon) Dial(ctx context.Context) (*FakeSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.DialErr != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDaemonUnavailable, d.DialErr)
	}
	d.Dials++
	return &FakeSession{d: d}, nil
}

// Open reports whether a session was dialed and not closed.
func (d *FakeDaemon) Open() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Dials != d.Closes
}

// SetCurrent sets the playing entry directly, appending it to the queue.
func (d *FakeDaemon) SetCurrent(ref string, elapsed, total time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Queue = append(d.Queue, ref)
	d.Pos = len(d.Queue) - 1
	d.State = models.StatePlaying
	d.Elapsed, d.Total = elapsed, total
}

// FakeSession is one connection to a [FakeDaemon].
type FakeSession struct {
	d      *FakeDaemon
	closed bool
}

func (s *FakeSession) do(op string) error {
	s.d.Calls = append(s.d.Calls, op)
	if s.closed {
		return errors.New("use of closed session")
	}
	if err := s.d.Fail[op]; err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrDaemonOperationFailed, op, err)
	}
	return nil
}

func (s *FakeSession) Close() error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.d.Closes++
	}
	return nil
}

func (s *FakeSession) Refresh() error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("refresh"); err != nil {
		return err
	}
	s.d.Refreshes++
	return nil
}

func (s *FakeSession) Push(ref string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("push"); err != nil {
		return err
	}
	s.d.Queue = append(s.d.Queue, ref)
	return nil
}

func (s *FakeSession) Clear() error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("clear"); err != nil {
		return err
	}
	s.d.Queue, s.d.Pos, s.d.State = nil, -1, models.StateStopped
	return nil
}

func (s *FakeSession) Play() error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("play"); err != nil {
		return err
	}
	s.d.play()
	return nil
}

func (d *FakeDaemon) play() {
	if len(d.Queue) == 0 {
		return
	}
	if d.Pos < 0 {
		d.Pos = 0
	}
	d.State = models.StatePlaying
}

func (s *FakeSession) Pause(intent models.Intent) (bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("pause"); err != nil {
		return false, err
	}

	switch pause := intent.Resolve(s.d.State != models.StatePlaying); {
	case pause && s.d.State == models.StatePlaying:
		s.d.State = models.StatePaused
	case !pause:
		s.d.play()
	}
	return s.d.State != models.StatePlaying, nil
}

func (s *FakeSession) Shuffle(intent models.Intent) (bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("random"); err != nil {
		return false, err
	}
	s.d.Random = intent.Resolve(s.d.Random)
	return s.d.Random, nil
}

func (s *FakeSession) Repeat(intent models.Intent) (bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("repeat"); err != nil {
		return false, err
	}
	s.d.Repeat = intent.Resolve(s.d.Repeat)
	return s.d.Repeat, nil
}

func (s *FakeSession) Next() error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("next"); err != nil {
		return err
	}
	if s.d.Pos+1 < len(s.d.Queue) {
		s.d.Pos++
	} else {
		s.d.Pos, s.d.State = -1, models.StateStopped
	}
	return nil
}

func (s *FakeSession) Previous() error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("previous"); err != nil {
		return err
	}
	if s.d.Pos > 0 {
		s.d.Pos--
	}
	return nil
}

func (s *FakeSession) Seek(percent float64) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("seek"); err != nil {
		return err
	}
	s.d.SeekedTo = time.Duration(float64(s.d.Total) * percent / 100)
	s.d.Elapsed = s.d.SeekedTo
	return nil
}

func (s *FakeSession) Remove(ref string) (int, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("remove"); err != nil {
		return 0, err
	}
	before := len(s.d.Queue)
	s.d.Queue = slices.DeleteFunc(s.d.Queue, func(r string) bool { return r == ref })
	if s.d.Pos >= len(s.d.Queue) {
		s.d.Pos = len(s.d.Queue) - 1
	}
	return before - len(s.d.Queue), nil
}

// ShuffleQueue reverses the queue so tests can observe a deterministic reorder.
func (s *FakeSession) ShuffleQueue() error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("shuffle"); err != nil {
		return err
	}
	slices.Reverse(s.d.Queue)
	s.d.Shuffles++
	return nil
}

func (s *FakeSession) Status() (models.DaemonStatus, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("status"); err != nil {
		return models.DaemonStatus{}, err
	}
	return models.DaemonStatus{
		State:   s.d.State,
		Random:  s.d.Random,
		Repeat:  s.d.Repeat,
		Elapsed: s.d.Elapsed,
		Total:   s.d.Total,
	}, nil
}

func (s *FakeSession) Current() (string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("current"); err != nil {
		return "", err
	}
	if s.d.Pos < 0 || s.d.Pos >= len(s.d.Queue) {
		return "", nil
	}
	return s.d.Queue[s.d.Pos], nil
}

func (s *FakeSession) Queue() ([]string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.do("queue"); err != nil {
		return nil, err
	}
	return slices.Clone(s.d.Queue), nil
}
