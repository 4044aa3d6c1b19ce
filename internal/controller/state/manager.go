package state

import (
	"maps"
	"sync"
)

// Manager keeps dialog state per Telegram user in memory. It is lost on
// restart, which only aborts dialogs in progress; login sessions live in the
// database.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData
}

func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState moves the user to state. StateNone drops the user's entry.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}

	if userData, exists := sm.states[telegramID]; exists {
		userData.State = state
		return
	}
	sm.states[telegramID] = &UserData{
		State: state,
		Data:  make(map[string]any),
	}
}

func (sm *Manager) GetData(telegramID int64, key string) (any, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// GetString is GetData for string values.
func (sm *Manager) GetString(telegramID int64, key string) (string, bool) {
	v, ok := sm.GetData(telegramID, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (sm *Manager) SetData(telegramID int64, key string, value any) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &UserData{
			State: StateNone,
			Data:  make(map[string]any),
		}
	}
	sm.states[telegramID].Data[key] = value
}

func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData returns a copy of the user's scratch values.
func (sm *Manager) GetAllData(telegramID int64) map[string]any {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return maps.Clone(userData.Data)
	}
	return nil
}
