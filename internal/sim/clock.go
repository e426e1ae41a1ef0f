package sim

import "container/heap"

// TimerKind identifies what a scheduled timer does when it fires.
type TimerKind int

const (
	TimerObstacleSpawn TimerKind = iota
	TimerCollectibleSpawn
	TimerTimeBonus
	TimerRivalCueEnd
	TimerAnimation
)

// String returns a human-readable timer name.
func (k TimerKind) String() string {
	switch k {
	case TimerObstacleSpawn:
		return "obstacle-spawn"
	case TimerCollectibleSpawn:
		return "collectible-spawn"
	case TimerTimeBonus:
		return "time-bonus"
	case TimerRivalCueEnd:
		return "rival-cue-end"
	case TimerAnimation:
		return "animation"
	default:
		return "unknown"
	}
}

// Handle refers to a scheduled timer. The zero Handle is never issued.
type Handle uint64

// Timer is a fired timer as delivered by Clock.Advance.
type Timer struct {
	Handle Handle
	Kind   TimerKind
	At     float64 // logical fire time in seconds
}

type entry struct {
	Timer
	seq       uint64
	index     int // position in the heap, -1 while paused
	remaining float64
}

type timerHeap []*entry

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].At != h[j].At {
		return h[i].At < h[j].At
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Clock is a logical clock with a queue of one-shot timers ordered by fire
// time. It only moves when Advance is called, so a run that stops calling
// Advance is paused with every remaining delay intact.
type Clock struct {
	now     float64
	seq     uint64
	next    Handle
	queue   timerHeap
	entries map[Handle]*entry
}

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{entries: make(map[Handle]*entry)}
}

// Now returns the logical time in seconds.
func (c *Clock) Now() float64 {
	return c.now
}

// ScheduleOnce arms a timer that fires delay seconds from now. While a timer
// is being delivered, now is that timer's fire time, so rescheduling from a
// handler keeps an exact cadence.
func (c *Clock) ScheduleOnce(delay float64, kind TimerKind) Handle {
	if delay < 0 {
		delay = 0
	}
	c.next++
	c.seq++
	e := &entry{
		Timer: Timer{Handle: c.next, Kind: kind, At: c.now + delay},
		seq:   c.seq,
	}
	c.entries[e.Handle] = e
	heap.Push(&c.queue, e)
	return e.Handle
}

// Cancel disarms a timer. Returns false if it already fired or never existed.
func (c *Clock) Cancel(h Handle) bool {
	e, ok := c.entries[h]
	if !ok {
		return false
	}
	if e.index >= 0 {
		heap.Remove(&c.queue, e.index)
	}
	delete(c.entries, h)
	return true
}

// Pause freezes a timer, remembering its remaining delay.
func (c *Clock) Pause(h Handle) bool {
	e, ok := c.entries[h]
	if !ok || e.index < 0 {
		return false
	}
	heap.Remove(&c.queue, e.index)
	e.remaining = e.At - c.now
	return true
}

// Resume re-arms a paused timer with the delay it had left.
func (c *Clock) Resume(h Handle) bool {
	e, ok := c.entries[h]
	if !ok || e.index >= 0 {
		return false
	}
	c.seq++
	e.seq = c.seq
	e.At = c.now + e.remaining
	e.remaining = 0
	heap.Push(&c.queue, e)
	return true
}

// Pending reports whether h is armed or paused.
func (c *Clock) Pending(h Handle) bool {
	_, ok := c.entries[h]
	return ok
}

// Paused reports whether h is paused.
func (c *Clock) Paused(h Handle) bool {
	e, ok := c.entries[h]
	return ok && e.index < 0
}

// Remaining returns the delay left before h fires.
func (c *Clock) Remaining(h Handle) (float64, bool) {
	e, ok := c.entries[h]
	if !ok {
		return 0, false
	}
	if e.index < 0 {
		return e.remaining, true
	}
	return e.At - c.now, true
}

// Len returns the number of pending timers, paused ones included.
func (c *Clock) Len() int {
	return len(c.entries)
}

// Advance moves time forward by dt and delivers every timer due by then in
// fire-time order, ties in scheduling order. Timers scheduled by fire that
// fall due within the same window are delivered too. Returns the number
// of timers fired.
func (c *Clock) Advance(dt float64, fire func(Timer)) int {
	target := c.now + dt
	fired := 0
	for len(c.queue) > 0 && c.queue[0].At <= target {
		e := heap.Pop(&c.queue).(*entry)
		delete(c.entries, e.Handle)
		c.now = e.At
		fired++
		if fire != nil {
			fire(e.Timer)
		}
	}
	c.now = target
	return fired
}

// Reset cancels every timer and rewinds to time zero. Handles are not reused.
func (c *Clock) Reset() {
	c.queue = c.queue[:0]
	c.entries = make(map[Handle]*entry)
	c.now = 0
}
