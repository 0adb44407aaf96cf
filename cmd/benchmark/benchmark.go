package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/mo"

	cache "github.com/krisalay/ttl-cache"
	"github.com/krisalay/ttl-cache/engine"
	"github.com/krisalay/ttl-cache/eviction"
	"github.com/krisalay/ttl-cache/metrics"
)

// ================= BENCHMARK =================

func main() {
	ctx := context.Background()

	// ---------------- Cache Config ----------------
	const (
		shards      = 8
		capacity    = 200000
		preloadKeys = 100000
		goroutines  = 200
		opsPerG     = 5000
	)

	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")

	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Shards       :", shards)
	fmt.Println("Capacity     :", capacity)
	fmt.Println("Preload Keys :", preloadKeys)
	fmt.Println("Goroutines   :", goroutines)
	fmt.Println("Ops/Goroutine:", opsPerG)
	fmt.Println("---------------------------------")

	// ---------------- Cache ----------------
	counters := &metrics.Counters{}
	c, err := cache.NewShardedCache(cache.Config{
		Shards:           shards,
		Capacity:         capacity,
		Eviction:         eviction.LRU,
		SweepInterval:    time.Second,
		BatchConcurrency: 16,
	}, engine.NewCacheEngine(engine.WithMetrics(counters)))
	if err != nil {
		panic(err)
	}
	defer c.Close()

	// ---------------- Preload Cache ----------------
	fmt.Println("\nPreloading cache...")
	batch := make(map[string]any, preloadKeys)
	for i := 0; i < preloadKeys; i++ {
		batch[fmt.Sprintf("key-%d", i)] = i
	}
	if err := c.SetMany(ctx, batch, cache.WithIdleExpiration(time.Minute)); err != nil {
		panic(err)
	}
	fmt.Println("Preload complete.")

	// ---------------- Load Test ----------------
	fmt.Println("\nRunning concurrency benchmark...")

	// Every fourth op asks for a key outside the preload set, so it goes
	// through the factory path.
	factory := func(context.Context) (mo.Option[int], error) { return mo.Some(-1), nil }

	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerG; j++ {
				if j%4 == 0 {
					key := fmt.Sprintf("extra-%d", (id*opsPerG+j)%(preloadKeys/2))
					_, _ = cache.GetOrSet(ctx, c, key, factory)
					continue
				}
				_, _ = cache.Get[int](c, fmt.Sprintf("key-%d", j%preloadKeys))
			}
		}(i)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG
	s := counters.Snapshot()

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Hit Ratio        : %.2f\n", s.HitRatio())
	fmt.Printf("Loads            : %d\n", s.Loads)
	fmt.Printf("Evictions        : %d\n", s.Evictions)
	fmt.Printf("Entries          : %d\n", c.Len())
	fmt.Println("=========================================")
}
