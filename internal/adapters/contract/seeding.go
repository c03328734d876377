package contract

import (
	"context"
	"sync"
	"testing"

	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/service"
)

// SeedConcurrently runs n seeders against one empty store at once and fails
// unless exactly one sample set lands.
func SeedConcurrently(t *testing.T, store port.SeederPort, n int) {
	t.Helper()
	ctx := context.Background()

	inserted := make([]int, n)
	errs := make([]error, n)
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			inserted[i], errs[i] = service.NewSeedService(store).SeedIfEmpty(ctx, domain.SampleProducts())
		}(i)
	}
	close(start)
	wg.Wait()

	total := 0
	for i := range inserted {
		if errs[i] != nil {
			t.Fatalf("seeder %d: %v", i, errs[i])
		}
		total += inserted[i]
	}
	want := len(domain.SampleProducts())
	if total != want {
		t.Fatalf("expected %d products inserted across seeders, got %d", want, total)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != int64(want) {
		t.Fatalf("expected %d stored products, got %d", want, count)
	}
}
