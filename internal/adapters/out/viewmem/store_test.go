package viewmem_test

import (
	"sync"
	"testing"
	"time"

	"orderboard/internal/adapters/out/viewmem"
	"orderboard/internal/core/domain/model/viewer"
	"orderboard/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceAndCurrent(t *testing.T) {
	store := viewmem.NewStore()

	assert.Nil(t, store.Current(), "empty before the first refresh")

	first := &services.DashboardView{Role: viewer.RoleDriver, GeneratedAt: time.Now()}
	store.Replace(first)
	assert.Same(t, first, store.Current())

	second := &services.DashboardView{Role: viewer.RoleDriver, GeneratedAt: time.Now()}
	store.Replace(second)
	assert.Same(t, second, store.Current())
}

func TestStore_AtomicReplacement(t *testing.T) {
	store := viewmem.NewStore()
	views := make([]*services.DashboardView, 100)
	for i := range views {
		views[i] = &services.DashboardView{Role: viewer.RoleAdmin}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, v := range views {
			store.Replace(v)
		}
	}()

	// Readers must only ever observe a complete installed view.
	for range 1000 {
		v := store.Current()
		if v != nil {
			require.Equal(t, viewer.RoleAdmin, v.Role)
		}
	}
	wg.Wait()

	assert.Same(t, views[len(views)-1], store.Current())
}
