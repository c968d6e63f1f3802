package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goForge "github.com/MrEthical07/goForge"
	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/crack"
	"github.com/MrEthical07/goForge/token"
	"github.com/MrEthical07/goForge/vault"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type crackTarget struct {
	tok    *token.Token
	secret string
}

func main() {
	var (
		tokens      = flag.Int("tokens", 50000, "number of signed tokens to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "verify operations")
		cracks      = flag.Int("cracks", 64, "dictionary attack runs")
		pool        = flag.Int("pool", 512, "candidate secrets per dictionary attack")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "gfv", "vault key prefix")
	)
	flag.Parse()

	if *tokens <= 0 || *concurrency <= 0 || *ops <= 0 || *cracks <= 0 || *pool <= 0 {
		fmt.Fprintln(os.Stderr, "tokens, concurrency, ops, cracks, and pool must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	cfg := goForge.HighThroughputConfig()
	cfg.Vault.Enabled = true
	cfg.Vault.RedisPrefix = *prefix

	engine, err := goForge.New().WithConfig(cfg).WithRedis(client).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = engine.Close() }()

	verifyKey := alg.SecretKey([]byte("goforge-bench-key"))

	fmt.Printf("seeding %d signed tokens...\n", *tokens)
	startSeed := time.Now()
	signed := make([]*token.Token, *tokens)
	for i := 0; i < *tokens; i++ {
		t, berr := buildToken(fmt.Sprintf("user-%d", i), startSeed.Unix())
		if berr == nil {
			signed[i], berr = engine.Sign(ctx, t, alg.HS256, verifyKey)
		}
		if berr != nil {
			fmt.Fprintf(os.Stderr, "seed sign failed: %v\n", berr)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	candidates := make([]string, *pool)
	for i := range candidates {
		candidates[i] = fmt.Sprintf("candidate-%05d", i)
	}
	targets := make([]crackTarget, *cracks)
	for i := range targets {
		secret := candidates[(i*37+11)%len(candidates)]
		t, berr := buildToken(fmt.Sprintf("victim-%d", i), startSeed.Unix())
		if berr == nil {
			var st *token.Token
			st, berr = engine.Sign(ctx, t, alg.HS256, alg.SecretKey([]byte(secret)))
			targets[i] = crackTarget{tok: st, secret: secret}
		}
		if berr != nil {
			fmt.Fprintf(os.Stderr, "seed crack target failed: %v\n", berr)
			os.Exit(1)
		}
	}

	verifyStats := runVerifyPhase(ctx, engine, signed, verifyKey, *ops, *concurrency)

	crackConcurrency := *concurrency
	if limit := engine.EngineReport().MaxConcurrentRuns; crackConcurrency > limit {
		crackConcurrency = limit
	}
	crackStats := runCrackPhase(ctx, engine, targets, candidates, crackConcurrency)

	// Recovery writes land on watcher goroutines after runs finish.
	time.Sleep(250 * time.Millisecond)

	fmt.Println("---- results ----")
	printStats("verify", verifyStats)
	printStats("crack", crackStats)

	store := vault.NewStore(client, *prefix, 0)
	if n, cerr := store.Count(ctx); cerr == nil {
		fmt.Printf("vault records: %d\n", n)
	}
	snap := engine.MetricsSnapshot()
	fmt.Printf("metrics: verify_valid=%d crack_attempts=%d vault_saves=%d audit_dropped=%d\n",
		snap.Counters[goForge.MetricVerifyValid],
		snap.Counters[goForge.MetricCrackAttempts],
		snap.Counters[goForge.MetricVaultSave],
		engine.AuditDropped(),
	)
}

func runVerifyPhase(ctx context.Context, engine *goForge.Engine, signed []*token.Token, key alg.Key, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(signed))
				t0 := time.Now()
				valid, err := engine.Verify(ctx, signed[idx], alg.HS256, key)
				d := time.Since(t0)
				if err != nil || !valid {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runCrackPhase(ctx context.Context, engine *goForge.Engine, targets []crackTarget, candidates []string, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, len(targets))
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= len(targets) {
					return
				}
				t0 := time.Now()
				run, err := engine.StartCrackWithSecrets(ctx, targets[i].tok, candidates)
				if err != nil {
					atomic.AddInt64(&failures, 1)
					continue
				}
				res, err := run.Wait(ctx)
				d := time.Since(t0)
				if err != nil || res.State != crack.StateFound || string(res.Secret) != targets[i].secret {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func buildToken(sub string, iat int64) (*token.Token, error) {
	t := token.New()
	if err := t.SetClaim("sub", sub); err != nil {
		return nil, err
	}
	if err := t.SetClaim("iat", iat); err != nil {
		return nil, err
	}
	return t, nil
}
