package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_StateLifecycle(t *testing.T) {
	sm := NewManager()
	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateLoginEmail)
	sm.SetData(1, KeyEmail, "anna@example.se")
	assert.Equal(t, StateLoginEmail, sm.GetState(1))

	sm.SetState(1, StateLoginPassword)
	email, ok := sm.GetString(1, KeyEmail)
	assert.True(t, ok)
	assert.Equal(t, "anna@example.se", email)

	sm.SetState(1, StateNone)
	_, ok = sm.GetData(1, KeyEmail)
	assert.False(t, ok)
}

func TestManager_DataWithoutState(t *testing.T) {
	sm := NewManager()
	sm.SetData(2, KeySlotID, "ts1")
	assert.Equal(t, StateNone, sm.GetState(2))

	_, ok := sm.GetString(2, "missing")
	assert.False(t, ok)

	sm.SetData(2, KeyMessageID, 17)
	_, ok = sm.GetString(2, KeyMessageID)
	assert.False(t, ok, "non-string value")
}

func TestManager_GetAllDataIsCopy(t *testing.T) {
	sm := NewManager()
	sm.SetData(3, KeyVenueID, "v1")

	data := sm.GetAllData(3)
	data[KeyVenueID] = "changed"

	v, _ := sm.GetString(3, KeyVenueID)
	assert.Equal(t, "v1", v)

	sm.ClearState(3)
	assert.Nil(t, sm.GetAllData(3))
}

func TestManager_Concurrent(t *testing.T) {
	sm := NewManager()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateApplyMotivation)
			sm.SetData(id, KeyVenueID, "v")
			_ = sm.GetState(id)
		}(int64(i % 5))
	}
	wg.Wait()
	assert.Equal(t, StateApplyMotivation, sm.GetState(4))
}
