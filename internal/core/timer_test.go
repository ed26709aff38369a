package core

import (
	"testing"
	"time"
)

func TestFixedStepPacesByInterval(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(100 * time.Millisecond)
	fs.now = func() time.Time { return clock }

	if !fs.ShouldStep() {
		t.Fatal("first call should fire immediately")
	}
	clock = clock.Add(40 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("should not fire before the interval elapses")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("should fire once the interval elapsed")
	}
}

func TestFixedStepDoesNotBurstAfterStall(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10 * time.Millisecond)
	fs.now = func() time.Time { return clock }
	fs.ShouldStep()

	clock = clock.Add(time.Second)
	fired := 0
	for i := 0; i < 10; i++ {
		if fs.ShouldStep() {
			fired++
		}
	}
	if fired > 2 {
		t.Fatalf("fired %d times after a stall without time passing, expected at most 2", fired)
	}
}

func TestFixedStepZeroIntervalAlwaysFires(t *testing.T) {
	fs := NewFixedStep(0)
	for i := 0; i < 3; i++ {
		if !fs.ShouldStep() {
			t.Fatal("zero interval should fire on every call")
		}
	}
}
