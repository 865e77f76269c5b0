package kiosk

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"evkiosk/internal/catalog"
	"evkiosk/internal/i18n"
	"evkiosk/internal/models"
)

// Maintenance errors.
var (
	ErrSlotNotFound = errors.New("kiosk: slot not found")
	ErrSlotOccupied = errors.New("kiosk: slot is occupied")
)

// ReceiptSink persists finished, paid sessions.
type ReceiptSink interface {
	Save(ctx context.Context, receipt models.Receipt) error
}

// Snapshot is the read surface handed to the presentation layer.
type Snapshot struct {
	State    State                    `json:"state"`
	Session  *SessionData             `json:"session"`
	Charging *models.ChargingProgress `json:"charging,omitempty"`
}

// ControllerConfig wires the controller's collaborators.
type ControllerConfig struct {
	KioskID   string
	Persister *Persister
	Receipts  ReceiptSink
	Logger    *zap.Logger

	// EstimatedChargeMinutes and ChargeTickInterval tune the simulation.
	// Zero values use the standard parameters.
	EstimatedChargeMinutes int
	ChargeTickInterval     time.Duration

	// ThankYouIdleTimeout and VacateIdleTimeout override the inactivity
	// countdowns. Zero values use the standard timeouts.
	ThankYouIdleTimeout time.Duration
	VacateIdleTimeout   time.Duration
}

// Controller owns the kiosk session: it serializes event dispatch, runs
// the machine, mirrors state through the persister, and manages the two
// timer families (charging engine, idle countdown). All mutation happens
// under one mutex so the kiosk behaves as a single-threaded event loop.
type Controller struct {
	mu           sync.Mutex
	state        State
	data         *SessionData
	engine       *Engine
	visible      bool
	disagreeTaps int

	idle      *idleTimer
	persister *Persister
	receipts  ReceiptSink
	logger    *zap.Logger

	kioskID          string
	estimatedMinutes int
	tickInterval     time.Duration
	idleThankYou     time.Duration
	idleVacate       time.Duration

	listenerMu sync.Mutex
	listeners  []func(Snapshot)
}

// NewController restores any persisted session and returns a ready
// controller.
func NewController(ctx context.Context, cfg ControllerConfig) *Controller {
	c := &Controller{
		visible:          true,
		persister:        cfg.Persister,
		receipts:         cfg.Receipts,
		logger:           cfg.Logger,
		kioskID:          cfg.KioskID,
		estimatedMinutes: cfg.EstimatedChargeMinutes,
		tickInterval:     cfg.ChargeTickInterval,
		idleThankYou:     cfg.ThankYouIdleTimeout,
		idleVacate:       cfg.VacateIdleTimeout,
	}
	if c.estimatedMinutes <= 0 {
		c.estimatedMinutes = defaultEstimatedMinutes
	}
	if c.idleThankYou <= 0 {
		c.idleThankYou = thankYouIdleTimeout
	}
	if c.idleVacate <= 0 {
		c.idleVacate = vacateSlotIdleTimeout
	}
	c.idle = newIdleTimer(c.idleFired)

	restored := c.persister.Restore(ctx)
	c.state = restored.State
	c.data = restored.Data

	guard := Guard(c.state, c.data, c.translateLocked())
	if guard.State != c.state {
		c.logger.Warn("restored state failed guard",
			zap.String("state", string(c.state)),
			zap.String("resolved", string(guard.State)),
			zap.String("reason", guard.Reason))
		c.state = guard.State
		if guard.Reset {
			c.persister.ClearSession(ctx)
		}
		restored.Progress = nil
	}

	if c.state == StateChargingInProgress {
		c.startEngineLocked(restored.Progress)
	}
	c.persister.SaveSnapshot(ctx, c.state, c.data)
	c.updateIdleLocked()

	if restored.Restored {
		c.logger.Info("kiosk session restored", zap.String("state", string(c.state)))
	}
	return c
}

// AddListener registers an observer invoked with a snapshot after every
// state or progress change.
func (c *Controller) AddListener(fn func(Snapshot)) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Snapshot returns the current kiosk view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Dispatch applies one event and returns the resulting snapshot.
func (c *Controller) Dispatch(ctx context.Context, ev Event) Snapshot {
	if _, ok := ev.(EvStopChargingRequested); ok {
		return c.dispatchStop(ctx)
	}

	c.mu.Lock()
	prev := c.state
	translate := c.translateLocked()

	if _, ok := ev.(EvConsentDisagree); ok {
		c.disagreeTaps++
	}

	outcome := Transition(prev, c.data, ev, translate)
	if outcome.Unhandled {
		c.logger.Warn("event not handled in current state",
			zap.String("event", ev.Kind()),
			zap.String("state", string(prev)))
	}
	c.state = outcome.State

	c.syncEngineLocked(ctx, prev, ev)

	if outcome.Reset {
		c.disagreeTaps = 0
		c.persister.ClearSession(ctx)
	}
	if _, ok := ev.(EvConsentAgree); ok {
		c.disagreeTaps = 0
	}
	if _, ok := ev.(EvLanguageSwitched); ok {
		c.persister.SaveLanguage(ctx, c.data.Language)
	}
	if errEv, ok := ev.(EvSimulateChargingError); ok && c.state == StateChargingError {
		// Mirror the fault into the handoff scope so independently routed
		// pages land on the error screen after navigation.
		c.persister.set(ctx, c.persister.handoff, keyNextState, string(StateChargingError))
		c.persister.set(ctx, c.persister.handoff, keyErrorMessage, translate(errEv.MessageKey, nil))
	}

	guard := Guard(c.state, c.data, translate)
	if guard.State != c.state {
		c.logger.Warn("state failed guard after transition",
			zap.String("state", string(c.state)),
			zap.String("resolved", string(guard.State)),
			zap.String("reason", guard.Reason))
		c.state = guard.State
		if guard.Reset {
			c.disagreeTaps = 0
			c.persister.ClearSession(ctx)
		}
		if guard.Notice != nil && outcome.Notice == nil {
			outcome.Notice = guard.Notice
		}
	}

	c.persister.SaveSnapshot(ctx, c.state, c.data)
	c.updateIdleLocked()

	if outcome.Log != "" {
		c.logger.Info(outcome.Log,
			zap.String("event", ev.Kind()),
			zap.String("from", string(prev)),
			zap.String("to", string(c.state)),
			zap.String("mode", string(c.data.CurrentMode)),
			zap.String("language", string(c.data.Language)))
	}

	var receipt *models.Receipt
	if pp, ok := ev.(EvPaymentProcessed); ok && c.state == StateThankYou {
		receipt = c.buildReceiptLocked(pp.ReceiptChoice)
	}

	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if receipt != nil {
		c.saveReceipt(ctx, *receipt)
	}
	c.notify(snapshot)
	return snapshot
}

// dispatchStop asks the engine for a manual stop. The engine emits the
// completion event itself, so the stop either finalizes through the normal
// path or is suppressed when completion already fired.
func (c *Controller) dispatchStop(ctx context.Context) Snapshot {
	c.mu.Lock()
	engine := c.engine
	inCharging := c.state == StateChargingInProgress
	c.mu.Unlock()

	if inCharging && engine != nil {
		engine.RequestStop()
	} else {
		c.logger.Warn("stop requested outside charging", zap.String("state", string(c.stateNow())))
	}
	return c.Snapshot()
}

// SetVisible reports display visibility. Hiding the kiosk cancels the idle
// countdown; showing it again restarts the full interval.
func (c *Controller) SetVisible(visible bool) Snapshot {
	c.mu.Lock()
	c.visible = visible
	c.updateIdleLocked()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()
	return snapshot
}

// SetSlotMaintenance flips a slot between maintenance and available.
// Occupied slots cannot be taken out of service.
func (c *Controller) SetSlotMaintenance(ctx context.Context, slotID string, enabled bool) (Snapshot, error) {
	c.mu.Lock()
	idx := c.data.slotIndex(slotID)
	if idx < 0 {
		c.mu.Unlock()
		return Snapshot{}, ErrSlotNotFound
	}
	slot := &c.data.CurrentSlots[idx]
	if slot.Status == models.SlotOccupied {
		c.mu.Unlock()
		return Snapshot{}, ErrSlotOccupied
	}
	if enabled {
		slot.Status = models.SlotMaintenance
	} else {
		slot.Status = models.SlotAvailable
	}
	c.persister.SaveSnapshot(ctx, c.state, c.data)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("slot maintenance changed",
		zap.String("slot", slotID),
		zap.Bool("maintenance", enabled))
	c.notify(snapshot)
	return snapshot, nil
}

// Close stops all timers.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idle.Cancel()
	if c.engine != nil {
		c.engine.Halt()
		c.engine = nil
	}
}

// syncEngineLocked starts or stops the charging engine to match the state
// transition that just happened.
func (c *Controller) syncEngineLocked(ctx context.Context, prev State, ev Event) {
	if prev == StateChargingInProgress && c.state != StateChargingInProgress {
		if c.engine != nil {
			if _, faulted := ev.(EvSimulateChargingError); faulted {
				c.engine.MarkFaulted()
			} else {
				c.engine.Halt()
			}
			c.engine = nil
		}
		c.persister.ClearProgress(ctx)
	}
	if c.state == StateChargingInProgress && c.engine == nil {
		c.startEngineLocked(nil)
	}
}

func (c *Controller) startEngineLocked(resume *models.ChargingProgress) {
	c.engine = NewEngine(EngineConfig{
		RatePerKwh:            catalog.RatePerKwh(c.data.SelectedConnector),
		EstimatedTotalMinutes: c.estimatedMinutes,
		TickInterval:          c.tickInterval,
		Resume:                resume,
		OnTick:                c.onChargingTick,
		OnComplete:            c.onChargingComplete,
	})
	c.engine.Start()
}

func (c *Controller) onChargingTick(progress models.ChargingProgress) {
	ctx := context.Background()
	c.mu.Lock()
	charging := c.state == StateChargingInProgress
	if charging {
		c.updateLiveSlotLocked(progress)
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	// A tick that raced a stop must not resurrect the cleared progress key.
	if charging {
		c.persister.SaveProgress(ctx, progress)
	}
	c.notify(snapshot)
}

func (c *Controller) onChargingComplete(bill models.BillDetails) {
	c.Dispatch(context.Background(), EvChargingStoppedOrCompleted{Bill: bill})
}

// updateLiveSlotLocked projects the engine's progress onto the assigned
// slot's display fields.
func (c *Controller) updateLiveSlotLocked(progress models.ChargingProgress) {
	idx := c.data.slotIndex(c.data.AssignedSlotID)
	if idx < 0 {
		return
	}
	translate := c.translateLocked()
	slot := &c.data.CurrentSlots[idx]
	slot.CurrentChargeKW = LiveChargeKW(progress.ChargePercentage)
	slot.EstimatedCompletionTime = CompletionDisplay(translate, c.estimatedMinutes, progress.ChargePercentage)
}

func (c *Controller) idleFired() {
	c.mu.Lock()
	eligible := c.state.IdleEligible() && c.visible
	c.mu.Unlock()
	if eligible {
		c.Dispatch(context.Background(), EvNewSession{})
	}
}

func (c *Controller) updateIdleLocked() {
	if d := c.idleTimeoutLocked(); d > 0 && c.visible {
		c.idle.Arm(d)
		return
	}
	c.idle.Cancel()
}

func (c *Controller) idleTimeoutLocked() time.Duration {
	switch c.state {
	case StateThankYou:
		return c.idleThankYou
	case StateVacateSlotReminder:
		return c.idleVacate
	default:
		return 0
	}
}

func (c *Controller) buildReceiptLocked(choice models.ReceiptChoice) *models.Receipt {
	if c.data.FinalBill == nil {
		return nil
	}
	receipt := &models.Receipt{
		KioskID:         c.kioskID,
		SlotID:          c.data.AssignedSlotID,
		ConnectorType:   c.data.SelectedConnector,
		KwhUsed:         c.data.FinalBill.KwhUsed,
		DurationMinutes: c.data.FinalBill.DurationMinutes,
		TotalCost:       c.data.FinalBill.TotalCost,
		ReceiptChoice:   choice,
	}
	if c.data.VehicleInfo != nil {
		receipt.LicensePlate = c.data.VehicleInfo.LicensePlate
	}
	return receipt
}

func (c *Controller) saveReceipt(ctx context.Context, receipt models.Receipt) {
	if c.receipts == nil {
		return
	}
	if err := c.receipts.Save(ctx, receipt); err != nil {
		c.logger.Warn("failed to save receipt", zap.Error(err))
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		State:   c.state,
		Session: c.data.Clone(),
	}
	if c.engine != nil {
		progress := c.engine.Progress()
		snapshot.Charging = &progress
	}
	return snapshot
}

func (c *Controller) translateLocked() TranslateFunc {
	lang := c.data.Language
	return func(key string, params map[string]string) string {
		return i18n.Translate(lang, key, params)
	}
}

func (c *Controller) stateNow() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) notify(snapshot Snapshot) {
	c.listenerMu.Lock()
	listeners := make([]func(Snapshot), len(c.listeners))
	copy(listeners, c.listeners)
	c.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}
