package decision

import (
	"sync"
	"testing"
	"time"
)

func TestAlertDebouncerSuppressesWithinCoolDown(t *testing.T) {
	d := NewAlertDebouncer()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if !d.ShouldAlert(1, now, RaidAlertCoolDown) {
		t.Fatal("first alert should fire")
	}

	// Two floods five minutes apart: the second is suppressed
	if d.ShouldAlert(1, now.Add(5*time.Minute), RaidAlertCoolDown) {
		t.Error("alert within cool-down should be suppressed")
	}

	if !d.ShouldAlert(1, now.Add(16*time.Minute), RaidAlertCoolDown) {
		t.Error("alert after cool-down should fire")
	}
}

func TestAlertDebouncerGuildsAreIndependent(t *testing.T) {
	d := NewAlertDebouncer()
	now := time.Now()

	if !d.ShouldAlert(1, now, RaidAlertCoolDown) {
		t.Fatal("guild 1 first alert should fire")
	}
	if !d.ShouldAlert(2, now, RaidAlertCoolDown) {
		t.Error("guild 2 should not be affected by guild 1's alert")
	}
}

func TestAlertDebouncerSuppressedCallDoesNotExtend(t *testing.T) {
	d := NewAlertDebouncer()
	now := time.Now()

	d.ShouldAlert(1, now, RaidAlertCoolDown)
	// Suppressed calls must not refresh the last-alert time
	d.ShouldAlert(1, now.Add(14*time.Minute), RaidAlertCoolDown)

	if !d.ShouldAlert(1, now.Add(16*time.Minute), RaidAlertCoolDown) {
		t.Error("cool-down must be measured from the emitted alert, not suppressed attempts")
	}
}

func TestAlertDebouncerConcurrentSingleFire(t *testing.T) {
	d := NewAlertDebouncer()
	now := time.Now()

	var wg sync.WaitGroup
	var mu sync.Mutex
	fired := 0

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.ShouldAlert(1, now, RaidAlertCoolDown) {
				mu.Lock()
				fired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if fired != 1 {
		t.Errorf("concurrent ShouldAlert fired %d times, want exactly 1", fired)
	}
}

func TestAlertDebouncerReset(t *testing.T) {
	d := NewAlertDebouncer()
	now := time.Now()

	d.ShouldAlert(1, now, RaidAlertCoolDown)
	d.Reset(1)

	if !d.ShouldAlert(1, now, RaidAlertCoolDown) {
		t.Error("alert after reset should fire")
	}
}
