package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/mo"

	cache "github.com/krisalay/ttl-cache"
	"github.com/krisalay/ttl-cache/codec"
	"github.com/krisalay/ttl-cache/config"
	"github.com/krisalay/ttl-cache/engine"
	"github.com/krisalay/ttl-cache/events"
	"github.com/krisalay/ttl-cache/logger"
	"github.com/krisalay/ttl-cache/metrics"
)

type profile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.NewLogrusLogger(&cfg.Logging)
	defer func() { _ = logger.Close(log) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("demo failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	// ---------------- Metrics ----------------
	counters := &metrics.Counters{}
	prom, err := metrics.NewPrometheus(prometheus.NewRegistry(), "ttlcache")
	if err != nil {
		return err
	}

	// ---------------- Cache ----------------
	c, err := cache.New(cfg,
		engine.WithLogger(log),
		engine.WithMetrics(metrics.Multi{counters, prom}),
		engine.WithListener(events.LogListener{Log: log}),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	log.WithFields(logger.Fields{
		"shards":   cfg.Cache.Shards,
		"capacity": cfg.Cache.Capacity,
		"eviction": cfg.Cache.Eviction,
		"absolute": cfg.Cache.AbsoluteExpiration.String(),
		"idle":     cfg.Cache.IdleExpiration.String(),
	}).Info("system boot")

	// ====================================================
	fmt.Println("\n==================== 1) SET / GET ====================")
	if err := c.Set("greeting", "hello"); err != nil {
		return err
	}
	greeting, err := cache.Get[string](c, "greeting")
	if err != nil {
		return err
	}
	fmt.Println("CACHE  → GET greeting =", greeting.OrElse("<absent>"))
	fmt.Println("CACHE  → TTL greeting =", c.TTL("greeting"))

	// ====================================================
	fmt.Println("\n==================== 2) BATCH ====================")
	if err := c.SetMany(ctx, map[string]any{"a": 1, "b": 2}); err != nil {
		return err
	}
	many, err := cache.GetMany[int](c, []string{"a", "b", "c"})
	if err != nil {
		return err
	}
	for _, k := range []string{"a", "b", "c"} {
		fmt.Printf("CACHE  → GET %s = %v\n", k, many[k])
	}

	// ====================================================
	fmt.Println("\n==================== 3) EXPIRATION ====================")
	if err := c.Set("temp", "short-lived", cache.WithAbsoluteExpiration(500*time.Millisecond)); err != nil {
		return err
	}
	if err := c.Set("session", "sliding",
		cache.WithoutAbsoluteExpiration(),
		cache.WithIdleExpiration(300*time.Millisecond),
	); err != nil {
		return err
	}
	if err := sleep(ctx, time.Second); err != nil {
		return err
	}
	temp, _ := cache.Get[string](c, "temp")
	session, _ := cache.Get[string](c, "session")
	fmt.Println("CACHE  → GET temp after 1s    =", temp.IsPresent())
	fmt.Println("CACHE  → GET session after 1s =", session.IsPresent())

	// ====================================================
	fmt.Println("\n==================== 4) GET OR SET ====================")
	var loads sync.WaitGroup
	factory := func(context.Context) (mo.Option[profile], error) {
		fmt.Println("LOADER → building profile 42")
		return mo.Some(profile{ID: 42, Name: "Ada", Email: "ada@example.com"}), nil
	}
	for i := 0; i < 5; i++ {
		loads.Add(1)
		go func() {
			defer loads.Done()
			p, err := cache.GetOrSet(ctx, c, "profile:42", factory)
			if err != nil {
				log.WithError(err).Error("get or set")
				return
			}
			fmt.Printf("GOROUTINE-%d → %s\n", i, p.MustGet().Name)
		}()
	}
	loads.Wait()

	p, err := cache.Get[profile](c, "profile:42")
	if err != nil {
		return err
	}
	encoded, err := codec.Encode(p.MustGet())
	if err != nil {
		return err
	}
	fmt.Println("CACHE  → profile:42 =", encoded)

	// ====================================================
	fmt.Println("\n==================== 5) REMOVE ====================")
	if err := c.RemoveMany(ctx, []string{"a", "b"}); err != nil {
		return err
	}
	fmt.Println("CACHE  → entries left =", c.Len())

	// ====================================================
	fmt.Println("\n==================== METRICS ====================")
	snapshot := counters.Snapshot()
	summary, err := codec.Encode(snapshot)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	fmt.Printf("HIT RATIO : %.2f\n", snapshot.HitRatio())

	fmt.Println("\n==================== SHUTDOWN ====================")
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
