package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_NewestFirstAndBounded(t *testing.T) {
	s := NewStore(0)

	for i := range 12 {
		s.Add("session", KindDisease, fmt.Sprintf("label-%d", i), float64(i), nil)
	}

	list := s.List("session", KindDisease)
	require.Len(t, list, DefaultCapacity)
	assert.Equal(t, "label-11", list[0].Label)
	assert.Equal(t, "label-2", list[DefaultCapacity-1].Label)
	assert.NotEqual(t, uuid.Nil, list[0].ID)
}

func TestStore_ListsAreIndependent(t *testing.T) {
	s := NewStore(3)

	s.Add("a", KindDisease, "Tomato - Late blight", 97, nil)
	s.Add("a", KindSoil, "Clay", 64, map[string]any{"degraded": true})
	s.Add("b", KindSoil, "Sandy", 51, nil)

	assert.Len(t, s.List("a", KindDisease), 1)
	assert.Equal(t, "Clay", s.List("a", KindSoil)[0].Label)
	assert.Equal(t, "Sandy", s.List("b", KindSoil)[0].Label)
	assert.Empty(t, s.List("b", KindDisease))
	assert.NotNil(t, s.List("missing", KindSoil))
	assert.Equal(t, 2, s.Sessions())

	s.Clear("a")
	assert.Empty(t, s.List("a", KindSoil))
	assert.Equal(t, 1, s.Sessions())
}

func TestStore_ListReturnsCopy(t *testing.T) {
	s := NewStore(3)
	s.Add("a", KindSoil, "Clay", 64, nil)

	list := s.List("a", KindSoil)
	list[0].Label = "changed"

	assert.Equal(t, "Clay", s.List("a", KindSoil)[0].Label)
}

func TestStore_Prune(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(3, WithClock(func() time.Time { return now }))

	s.Add("old", KindSoil, "Clay", 64, nil)
	now = now.Add(2 * time.Hour)
	s.Add("new", KindSoil, "Loamy", 70, nil)

	assert.Equal(t, 1, s.Prune(time.Hour))
	assert.Empty(t, s.List("old", KindSoil))
	assert.Len(t, s.List("new", KindSoil), 1)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := NewStore(5)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("shared", KindDisease, fmt.Sprint(i), 1, nil)
		}()
	}
	wg.Wait()

	assert.Len(t, s.List("shared", KindDisease), 5)
}

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewSessionID())
}
