package kiosk

import (
	"math"
	"sync"
	"testing"
	"time"

	"evkiosk/internal/models"
)

type engineRecorder struct {
	mu        sync.Mutex
	ticks     []models.ChargingProgress
	completes []models.BillDetails
}

func (r *engineRecorder) onTick(p models.ChargingProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, p)
}

func (r *engineRecorder) onComplete(b models.BillDetails) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes = append(r.completes, b)
}

func (r *engineRecorder) tickCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticks)
}

func (r *engineRecorder) completeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.completes)
}

func (r *engineRecorder) lastTick() models.ChargingProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks[len(r.ticks)-1]
}

func (r *engineRecorder) lastComplete() models.BillDetails {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completes[len(r.completes)-1]
}

func TestEngineTickAdvancesBillAndPercentage(t *testing.T) {
	rec := &engineRecorder{}
	engine := NewEngine(EngineConfig{
		RatePerKwh:            300,
		EstimatedTotalMinutes: 30,
		TickInterval:          time.Millisecond,
		OnTick:                rec.onTick,
	})
	engine.Start()
	defer engine.Halt()

	waitFor(t, time.Second, func() bool { return rec.tickCount() >= 5 })
	engine.Halt()

	progress := rec.lastTick()
	if progress.ElapsedSeconds < 5 {
		t.Fatalf("expected at least 5 simulated seconds, got %d", progress.ElapsedSeconds)
	}
	wantKwh := round2(float64(progress.ElapsedSeconds) * 0.01)
	if progress.CurrentBill.KwhUsed != wantKwh {
		t.Fatalf("expected %v kWh after %d seconds, got %v", wantKwh, progress.ElapsedSeconds, progress.CurrentBill.KwhUsed)
	}
	wantCost := int64(math.Round(wantKwh * 300))
	if progress.CurrentBill.TotalCost != wantCost {
		t.Fatalf("expected cost %d, got %d", wantCost, progress.CurrentBill.TotalCost)
	}
	if progress.ChargePercentage <= 0 || progress.ChargePercentage >= 100 {
		t.Fatalf("expected percentage in (0, 100) early in the session, got %v", progress.ChargePercentage)
	}
	if progress.CurrentBill.DurationMinutes != round2(float64(progress.ElapsedSeconds)/60) {
		t.Fatalf("expected duration derived from elapsed seconds, got %v", progress.CurrentBill.DurationMinutes)
	}
}

func TestEngineCompletesExactlyOnce(t *testing.T) {
	rec := &engineRecorder{}
	engine := NewEngine(EngineConfig{
		RatePerKwh:            300,
		EstimatedTotalMinutes: 1,
		TickInterval:          time.Millisecond,
		OnTick:                rec.onTick,
		OnComplete:            rec.onComplete,
	})
	engine.Start()

	waitFor(t, 5*time.Second, func() bool { return rec.completeCount() == 1 })

	if got := engine.Progress().ChargePercentage; got != 100 {
		t.Fatalf("expected 100%% at completion, got %v", got)
	}

	// A manual stop after natural completion must not emit a second bill.
	engine.RequestStop()
	time.Sleep(20 * time.Millisecond)
	if rec.completeCount() != 1 {
		t.Fatalf("expected a single completion, got %d", rec.completeCount())
	}

	bill := rec.lastComplete()
	if bill.KwhUsed <= 0 || bill.TotalCost <= 0 {
		t.Fatalf("expected a non-empty final bill, got %+v", bill)
	}
}

func TestEngineManualStopEmitsCurrentBill(t *testing.T) {
	rec := &engineRecorder{}
	engine := NewEngine(EngineConfig{
		RatePerKwh:            200,
		EstimatedTotalMinutes: 30,
		TickInterval:          time.Millisecond,
		OnTick:                rec.onTick,
		OnComplete:            rec.onComplete,
	})
	engine.Start()

	waitFor(t, time.Second, func() bool { return rec.tickCount() >= 3 })
	engine.RequestStop()

	if rec.completeCount() != 1 {
		t.Fatalf("expected one completion on manual stop, got %d", rec.completeCount())
	}
	bill := rec.lastComplete()
	if bill.KwhUsed <= 0 {
		t.Fatalf("expected accrued usage in stop bill, got %+v", bill)
	}

	engine.RequestStop()
	if rec.completeCount() != 1 {
		t.Fatalf("repeated stop must stay idempotent, got %d completions", rec.completeCount())
	}
}

func TestEngineResumesFromStoredProgress(t *testing.T) {
	rec := &engineRecorder{}
	engine := NewEngine(EngineConfig{
		RatePerKwh:            300,
		EstimatedTotalMinutes: 30,
		TickInterval:          time.Millisecond,
		Resume: &models.ChargingProgress{
			CurrentBill:      models.BillDetails{KwhUsed: 1.0, DurationMinutes: 1.67, TotalCost: 300},
			ElapsedSeconds:   100,
			ChargePercentage: 5.56,
		},
		OnTick: rec.onTick,
	})
	engine.Start()
	defer engine.Halt()

	waitFor(t, time.Second, func() bool { return rec.tickCount() >= 1 })

	progress := rec.lastTick()
	if progress.ElapsedSeconds <= 100 {
		t.Fatalf("expected elapsed to continue past 100, got %d", progress.ElapsedSeconds)
	}
	if progress.CurrentBill.KwhUsed < 1.0 {
		t.Fatalf("expected usage to build on resumed value, got %v", progress.CurrentBill.KwhUsed)
	}
}

func TestEngineResumeAtFullChargeDoesNotRestart(t *testing.T) {
	rec := &engineRecorder{}
	engine := NewEngine(EngineConfig{
		TickInterval: time.Millisecond,
		Resume: &models.ChargingProgress{
			ChargePercentage: 100,
		},
		OnTick: rec.onTick,
	})
	engine.Start()

	time.Sleep(20 * time.Millisecond)
	if rec.tickCount() != 0 {
		t.Fatalf("completed session must not tick again, got %d ticks", rec.tickCount())
	}
}

func TestEngineMarkFaultedSuppressesCompletion(t *testing.T) {
	rec := &engineRecorder{}
	engine := NewEngine(EngineConfig{
		RatePerKwh:   300,
		TickInterval: time.Millisecond,
		OnTick:       rec.onTick,
		OnComplete:   rec.onComplete,
	})
	engine.Start()

	waitFor(t, time.Second, func() bool { return rec.tickCount() >= 2 })
	engine.MarkFaulted()
	engine.RequestStop()

	time.Sleep(20 * time.Millisecond)
	if rec.completeCount() != 0 {
		t.Fatalf("faulted engine must not emit a bill, got %d", rec.completeCount())
	}
}

func TestLiveChargeKWScalesWithPercentage(t *testing.T) {
	if got := LiveChargeKW(0); got != 0 {
		t.Fatalf("expected 0 kW at 0%%, got %v", got)
	}
	if got := LiveChargeKW(50); got != 35 {
		t.Fatalf("expected 35 kW at 50%%, got %v", got)
	}
	if got := LiveChargeKW(150); got != 70 {
		t.Fatalf("expected capped 70 kW above 100%%, got %v", got)
	}
}

func TestCompletionDisplayBuckets(t *testing.T) {
	if got := CompletionDisplay(passthroughTranslate, 30, 100); got != "waitTimeDisplay.completedStatus" {
		t.Fatalf("expected completed status at 100%%, got %q", got)
	}
	if got := CompletionDisplay(passthroughTranslate, 30, 99); got != "waitTimeDisplay.almostDone" {
		t.Fatalf("expected almost-done under one minute left, got %q", got)
	}
	if got := CompletionDisplay(passthroughTranslate, 30, 50); got != "waitTimeDisplay.minutesRemaining" {
		t.Fatalf("expected minutes-remaining mid-charge, got %q", got)
	}
	if got := CompletionDisplay(passthroughTranslate, 30, 0); got != "waitTimeDisplay.calculating" {
		t.Fatalf("expected calculating at 0%%, got %q", got)
	}
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}
