package memory

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func BenchmarkMemoryCache_Get(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("page:https://artist-%d.bandcamp.com/music", i)
		value := []byte(fmt.Sprintf("<html>listing %d</html>", i))
		cache.Set(ctx, key, value, 1*time.Hour)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("page:https://artist-%d.bandcamp.com/music", i%1000)
		_, _ = cache.Get(ctx, key)
	}
}

func BenchmarkMemoryCache_Set(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()
	page := []byte("<html><body>a typical listing page body</body></html>")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("page:https://artist-%d.bandcamp.com/music", i)
		_ = cache.Set(ctx, key, page, 1*time.Hour)
	}
}

func BenchmarkMemoryCache_ConcurrentGet(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("page:https://artist-%d.bandcamp.com/music", i)
		cache.Set(ctx, key, []byte("cached page"), 1*time.Hour)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("page:https://artist-%d.bandcamp.com/music", i%100)
			_, _ = cache.Get(ctx, key)
			i++
		}
	})
}
