package kiosk

import (
	"math"
	"strconv"
	"sync"
	"time"

	"evkiosk/internal/models"
)

const (
	kwhPerSecond            = 0.01
	maxRatedCapacityKW      = 70.0
	defaultEstimatedMinutes = 30
	defaultTickInterval     = time.Second
)

// EngineConfig parametrizes one simulated charging session.
type EngineConfig struct {
	RatePerKwh            int64
	EstimatedTotalMinutes int
	TickInterval          time.Duration

	// Resume seeds the engine with progress restored from storage.
	Resume *models.ChargingProgress

	// OnTick observes each advanced progress snapshot.
	OnTick func(models.ChargingProgress)
	// OnComplete receives the final bill. Fired at most once, whether
	// completion is natural or manually requested.
	OnComplete func(models.BillDetails)
}

// Engine advances a charging session once per tick until it reaches 100%
// or is stopped. Natural completion and manual stop race safely: whichever
// happens first emits the single completion callback, the other is
// suppressed.
type Engine struct {
	mu        sync.Mutex
	cfg       EngineConfig
	progress  models.ChargingProgress
	completed bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewEngine builds an engine. Zero config values fall back to the standard
// simulation parameters.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.EstimatedTotalMinutes <= 0 {
		cfg.EstimatedTotalMinutes = defaultEstimatedMinutes
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}

	e := &Engine{
		cfg:    cfg,
		stopCh: make(chan struct{}),
	}
	if cfg.Resume != nil {
		e.progress = *cfg.Resume
		if e.progress.ChargePercentage >= 100 {
			e.progress.ChargePercentage = 100
			e.completed = true
		}
	}
	return e
}

// Start launches the tick loop.
func (e *Engine) Start() {
	e.mu.Lock()
	alreadyDone := e.completed
	e.mu.Unlock()
	if alreadyDone {
		return
	}
	go e.run()
}

// Progress returns the current progress snapshot.
func (e *Engine) Progress() models.ChargingProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress
}

// RequestStop halts the engine and emits the bill as it stands now.
// A no-op if completion already fired.
func (e *Engine) RequestStop() {
	e.mu.Lock()
	if e.completed {
		e.mu.Unlock()
		e.Halt()
		return
	}
	e.completed = true
	bill := e.progress.CurrentBill
	e.mu.Unlock()

	e.Halt()
	if e.cfg.OnComplete != nil {
		e.cfg.OnComplete(bill)
	}
}

// Halt stops the tick loop without emitting a completion. Used when a
// simulated fault discards the session, and when the controller leaves the
// charging state for any reason. Safe to call repeatedly.
func (e *Engine) Halt() {
	e.stopOnce.Do(func() {
		close(e.stopCh)
	})
}

// MarkFaulted halts the engine and suppresses any later completion emit.
func (e *Engine) MarkFaulted() {
	e.mu.Lock()
	e.completed = true
	e.mu.Unlock()
	e.Halt()
}

func (e *Engine) run() {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

func (e *Engine) tick() {
	e.mu.Lock()
	if e.completed {
		e.mu.Unlock()
		return
	}

	e.progress.ElapsedSeconds++
	kwh := round2(e.progress.CurrentBill.KwhUsed + kwhPerSecond)
	e.progress.CurrentBill = models.BillDetails{
		KwhUsed:         kwh,
		DurationMinutes: round2(float64(e.progress.ElapsedSeconds) / 60),
		TotalCost:       int64(math.Round(kwh * float64(e.cfg.RatePerKwh))),
	}

	next := e.progress.ChargePercentage + 100/(float64(e.cfg.EstimatedTotalMinutes)*60)
	if next >= 100 {
		e.progress.ChargePercentage = 100
		e.completed = true
		snapshot := e.progress
		e.mu.Unlock()

		e.Halt()
		if e.cfg.OnTick != nil {
			e.cfg.OnTick(snapshot)
		}
		if e.cfg.OnComplete != nil {
			e.cfg.OnComplete(snapshot.CurrentBill)
		}
		return
	}

	e.progress.ChargePercentage = round2(next)
	snapshot := e.progress
	e.mu.Unlock()

	if e.cfg.OnTick != nil {
		e.cfg.OnTick(snapshot)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LiveChargeKW derives the slot display charge rate from progress.
func LiveChargeKW(chargePercentage float64) float64 {
	if chargePercentage > 100 {
		chargePercentage = 100
	}
	return chargePercentage / 100 * maxRatedCapacityKW
}

// RemainingMinutes estimates minutes left at the current percentage.
func RemainingMinutes(estimatedTotalMinutes int, chargePercentage float64) float64 {
	remaining := float64(estimatedTotalMinutes) * (100 - chargePercentage) / 100
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CompletionDisplay renders the slot's estimated completion string.
func CompletionDisplay(translate TranslateFunc, estimatedTotalMinutes int, chargePercentage float64) string {
	remaining := RemainingMinutes(estimatedTotalMinutes, chargePercentage)
	switch {
	case chargePercentage >= 100:
		return translate("waitTimeDisplay.completedStatus", nil)
	case chargePercentage > 0 && remaining > 0 && remaining < 1:
		return translate("waitTimeDisplay.almostDone", nil)
	case remaining >= 1:
		return translate("waitTimeDisplay.minutesRemaining", map[string]string{
			"minutes": strconv.Itoa(int(math.Ceil(remaining))),
		})
	default:
		return translate("waitTimeDisplay.calculating", nil)
	}
}
