package sim

import (
	"reflect"
	"testing"
)

func collect(c *Clock, dt float64) []TimerKind {
	var kinds []TimerKind
	c.Advance(dt, func(t Timer) {
		kinds = append(kinds, t.Kind)
	})
	return kinds
}

func TestClockFiresInOrder(t *testing.T) {
	c := NewClock()
	c.ScheduleOnce(0.5, TimerCollectibleSpawn)
	c.ScheduleOnce(0.2, TimerObstacleSpawn)
	c.ScheduleOnce(0.5, TimerTimeBonus) // same time, scheduled later
	c.ScheduleOnce(2.0, TimerAnimation)

	if got := collect(c, 0.1); len(got) != 0 {
		t.Errorf("Advance(0.1) fired %v, expected nothing", got)
	}
	got := collect(c, 0.5)
	want := []TimerKind{TimerObstacleSpawn, TimerCollectibleSpawn, TimerTimeBonus}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Advance(0.5) fired %v, expected %v", got, want)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.Len())
	}
	if !near(c.Now(), 0.6, eps) {
		t.Errorf("Now() = %v, expected 0.6", c.Now())
	}
}

func TestClockRescheduleKeepsCadence(t *testing.T) {
	c := NewClock()
	c.ScheduleOnce(5, TimerTimeBonus)

	var at []float64
	fire := func(tm Timer) {
		at = append(at, tm.At)
		c.ScheduleOnce(5, TimerTimeBonus)
	}
	// One large step still delivers every occurrence at its own time
	c.Advance(16, fire)

	want := []float64{5, 10, 15}
	if !reflect.DeepEqual(at, want) {
		t.Errorf("fired at %v, expected %v", at, want)
	}
	if rem, ok := c.Remaining(c.next); !ok || !near(rem, 4, eps) {
		t.Errorf("Remaining() = %v, %v, expected 4", rem, ok)
	}
}

func TestClockPauseResume(t *testing.T) {
	c := NewClock()
	h := c.ScheduleOnce(1.0, TimerObstacleSpawn)

	c.Advance(0.4, nil)
	if !c.Pause(h) {
		t.Fatal("Pause() = false, expected true")
	}
	if c.Pause(h) {
		t.Error("second Pause() should be a no-op")
	}
	if !c.Paused(h) || !c.Pending(h) {
		t.Errorf("Paused() = %v, Pending() = %v, expected both true", c.Paused(h), c.Pending(h))
	}

	// Time passes without the timer firing
	if got := collect(c, 10); len(got) != 0 {
		t.Errorf("paused timer fired: %v", got)
	}
	if rem, _ := c.Remaining(h); !near(rem, 0.6, eps) {
		t.Errorf("Remaining() while paused = %v, expected 0.6", rem)
	}

	if !c.Resume(h) {
		t.Fatal("Resume() = false, expected true")
	}
	if got := collect(c, 0.5); len(got) != 0 {
		t.Errorf("resumed timer fired early: %v", got)
	}
	if got := collect(c, 0.2); !reflect.DeepEqual(got, []TimerKind{TimerObstacleSpawn}) {
		t.Errorf("resumed timer fired %v, expected obstacle spawn", got)
	}
	if c.Pending(h) {
		t.Error("fired timer should no longer be pending")
	}
}

func TestClockCancelAndReset(t *testing.T) {
	c := NewClock()
	h1 := c.ScheduleOnce(1, TimerObstacleSpawn)
	h2 := c.ScheduleOnce(1, TimerCollectibleSpawn)
	h3 := c.ScheduleOnce(1, TimerTimeBonus)
	c.Pause(h3)

	if !c.Cancel(h1) {
		t.Error("Cancel(h1) = false, expected true")
	}
	if c.Cancel(h1) {
		t.Error("second Cancel(h1) should be false")
	}
	if !c.Cancel(h3) {
		t.Error("Cancel of a paused timer should succeed")
	}
	if got := collect(c, 2); !reflect.DeepEqual(got, []TimerKind{TimerCollectibleSpawn}) {
		t.Errorf("after cancel fired %v, expected collectible spawn only", got)
	}

	c.ScheduleOnce(1, TimerAnimation)
	c.Reset()
	if c.Len() != 0 || c.Now() != 0 {
		t.Errorf("Reset() left Len()=%d Now()=%v", c.Len(), c.Now())
	}
	if c.Pending(h2) {
		t.Error("handles from before Reset should not be pending")
	}
	if h := c.ScheduleOnce(1, TimerAnimation); h == h1 || h == h2 || h == h3 {
		t.Errorf("handle %d reused after Reset", h)
	}
	if got := collect(c, 1); len(got) != 1 {
		t.Errorf("fired %v after Reset, expected one timer", got)
	}
}
