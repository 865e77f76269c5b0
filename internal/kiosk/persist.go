package kiosk

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"evkiosk/internal/models"
	"evkiosk/internal/storage"
)

// Storage keys. Tab-scoped entries mirror the live session; handoff
// entries are one-shot instructions consumed on boot.
const (
	keyCurrentState     = "kioskCurrentState"
	keyCurrentSession   = "kioskCurrentAppData"
	keyChargingProgress = "kioskChargingProgressState"
	keyReturnState      = "kioskReturnState"
	keyNextState        = "kioskNextState"
	keyFinalBill        = "kioskFinalBill"
	keyErrorMessage     = "kioskChargingErrorMessage"
	keyLanguage         = "kioskLanguage"
)

// Persister mirrors kiosk state into the two storage scopes and rebuilds
// it on boot. Every storage failure is downgraded to a log line; corrupt
// payloads are discarded and treated as absent.
type Persister struct {
	tab     storage.Scope
	handoff storage.Scope
	logger  *zap.Logger
}

// NewPersister wires the adapter to its scopes.
func NewPersister(tab, handoff storage.Scope, logger *zap.Logger) *Persister {
	return &Persister{tab: tab, handoff: handoff, logger: logger}
}

// SaveSnapshot mirrors the current (state, session) pair into the tab scope.
func (p *Persister) SaveSnapshot(ctx context.Context, state State, data *SessionData) {
	p.set(ctx, p.tab, keyCurrentState, string(state))
	payload, err := json.Marshal(data)
	if err != nil {
		p.logger.Warn("failed to encode session data", zap.Error(err))
		return
	}
	p.set(ctx, p.tab, keyCurrentSession, string(payload))
}

// SaveProgress mirrors the active charging progress into the tab scope.
func (p *Persister) SaveProgress(ctx context.Context, progress models.ChargingProgress) {
	payload, err := json.Marshal(progress)
	if err != nil {
		p.logger.Warn("failed to encode charging progress", zap.Error(err))
		return
	}
	p.set(ctx, p.tab, keyChargingProgress, string(payload))
}

// ClearProgress drops the mirrored charging progress.
func (p *Persister) ClearProgress(ctx context.Context) {
	p.remove(ctx, p.tab, keyChargingProgress)
}

// SaveLanguage mirrors the display language so independently routed pages
// render in the same language.
func (p *Persister) SaveLanguage(ctx context.Context, lang models.Language) {
	p.set(ctx, p.handoff, keyLanguage, string(lang))
}

// ClearSession removes every stored trace of the current visit from both
// scopes. Called on full session reset.
func (p *Persister) ClearSession(ctx context.Context) {
	p.remove(ctx, p.tab, keyChargingProgress)
	p.remove(ctx, p.tab, keyCurrentState)
	p.remove(ctx, p.tab, keyCurrentSession)
	p.remove(ctx, p.handoff, keyNextState)
	p.remove(ctx, p.handoff, keyFinalBill)
	p.remove(ctx, p.handoff, keyErrorMessage)
	p.remove(ctx, p.handoff, keyReturnState)
}

// RestoreResult is what Restore rebuilt from storage.
type RestoreResult struct {
	State    State
	Data     *SessionData
	Progress *models.ChargingProgress
	Restored bool
}

// Restore rebuilds kiosk state on boot. Pending handoff instructions win,
// preferring the richer tab-scoped pair over the handoff's minimal
// payload; with no handoff, a saved tab pair is restored as-is; anything
// missing or malformed falls back to a fresh welcome screen.
func (p *Persister) Restore(ctx context.Context) RestoreResult {
	lang := p.storedLanguage(ctx)

	if result, ok := p.restoreFromNextState(ctx, lang); ok {
		return result
	}

	if raw, ok := p.get(ctx, p.handoff, keyReturnState); ok {
		p.remove(ctx, p.handoff, keyReturnState)
		if state, data, ok := p.restoreTabPair(ctx); ok {
			return p.withProgress(ctx, RestoreResult{State: state, Data: data, Restored: true})
		}
		if state, ok := ParseState(raw); ok {
			return RestoreResult{State: state, Data: NewSessionData(lang), Restored: true}
		}
		p.logger.Warn("discarding unrecognized return state", zap.String("state", raw))
	}

	if state, data, ok := p.restoreTabPair(ctx); ok {
		return p.withProgress(ctx, RestoreResult{State: state, Data: data, Restored: true})
	}

	return RestoreResult{State: StateInitialWelcome, Data: NewSessionData(lang)}
}

// restoreFromNextState consumes the one-shot "go to state X" instruction
// written by independently routed pages.
func (p *Persister) restoreFromNextState(ctx context.Context, lang models.Language) (RestoreResult, bool) {
	next, ok := p.get(ctx, p.handoff, keyNextState)
	if !ok {
		return RestoreResult{}, false
	}

	consume := func() {
		p.remove(ctx, p.handoff, keyNextState)
		p.remove(ctx, p.handoff, keyFinalBill)
		p.remove(ctx, p.handoff, keyErrorMessage)
	}

	switch State(next) {
	case StateChargingCompletePayment:
		raw, ok := p.get(ctx, p.handoff, keyFinalBill)
		if !ok {
			p.logger.Warn("discarding next-state handoff missing its bill", zap.String("state", next))
			consume()
			return RestoreResult{}, false
		}
		defer consume()
		var bill models.BillDetails
		if err := json.Unmarshal([]byte(raw), &bill); err != nil {
			p.logger.Warn("discarding corrupt final bill handoff", zap.Error(err))
			return RestoreResult{State: StateInitialWelcome, Data: NewSessionData(lang)}, true
		}
		data := p.sessionOrDefaults(ctx, lang)
		data.FinalBill = &bill
		data.ChargingErrorMessage = ""
		return RestoreResult{State: StateChargingCompletePayment, Data: data, Restored: true}, true

	case StateChargingError:
		msg, ok := p.get(ctx, p.handoff, keyErrorMessage)
		if !ok {
			p.logger.Warn("discarding next-state handoff missing its message", zap.String("state", next))
			consume()
			return RestoreResult{}, false
		}
		defer consume()
		data := p.sessionOrDefaults(ctx, lang)
		data.FinalBill = nil
		data.ChargingErrorMessage = msg
		return RestoreResult{State: StateChargingError, Data: data, Restored: true}, true

	default:
		p.logger.Warn("discarding unrecognized next-state handoff", zap.String("state", next))
		consume()
		return RestoreResult{}, false
	}
}

// restoreTabPair loads the mirrored (state, session) pair, rejecting
// unknown states and corrupt session payloads.
func (p *Persister) restoreTabPair(ctx context.Context) (State, *SessionData, bool) {
	rawState, ok := p.get(ctx, p.tab, keyCurrentState)
	if !ok {
		return "", nil, false
	}
	rawData, ok := p.get(ctx, p.tab, keyCurrentSession)
	if !ok {
		return "", nil, false
	}

	state, ok := ParseState(rawState)
	if !ok {
		p.logger.Warn("discarding unrecognized stored state", zap.String("state", rawState))
		return "", nil, false
	}

	var data SessionData
	if err := json.Unmarshal([]byte(rawData), &data); err != nil {
		p.logger.Warn("discarding corrupt stored session", zap.Error(err))
		return "", nil, false
	}
	if data.Language != models.LanguageKorean && data.Language != models.LanguageEnglish {
		data.Language = models.LanguageKorean
	}
	return state, &data, true
}

func (p *Persister) withProgress(ctx context.Context, result RestoreResult) RestoreResult {
	if result.State != StateChargingInProgress {
		return result
	}
	raw, ok := p.get(ctx, p.tab, keyChargingProgress)
	if !ok {
		return result
	}
	var progress models.ChargingProgress
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		p.logger.Warn("discarding corrupt charging progress", zap.Error(err))
		p.remove(ctx, p.tab, keyChargingProgress)
		return result
	}
	result.Progress = &progress
	return result
}

func (p *Persister) sessionOrDefaults(ctx context.Context, lang models.Language) *SessionData {
	if _, data, ok := p.restoreTabPair(ctx); ok {
		return data
	}
	return NewSessionData(lang)
}

func (p *Persister) storedLanguage(ctx context.Context) models.Language {
	raw, ok := p.get(ctx, p.handoff, keyLanguage)
	if !ok {
		return models.LanguageKorean
	}
	if models.Language(raw) == models.LanguageEnglish {
		return models.LanguageEnglish
	}
	return models.LanguageKorean
}

func (p *Persister) get(ctx context.Context, scope storage.Scope, key string) (string, bool) {
	value, err := scope.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

func (p *Persister) set(ctx context.Context, scope storage.Scope, key, value string) {
	if err := scope.Set(ctx, key, value); err != nil {
		p.logger.Warn("storage write failed", zap.String("key", key), zap.Error(err))
	}
}

func (p *Persister) remove(ctx context.Context, scope storage.Scope, key string) {
	if err := scope.Remove(ctx, key); err != nil {
		p.logger.Warn("storage delete failed", zap.String("key", key), zap.Error(err))
	}
}
