//go:build integration
// +build integration

package test

import (
	"context"
	"testing"
	"time"

	goForge "github.com/MrEthical07/goForge"
	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/token"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newIntegrationEngine(t *testing.T) (*goForge.Engine, *redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := goForge.DefaultConfig()
	cfg.Vault.Enabled = true
	cfg.Metrics.Enabled = true

	engine, err := goForge.New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("engine build failed: %v", err)
	}

	return engine, rdb, func() {
		_ = engine.Close()
		_ = rdb.Close()
		mr.Close()
	}
}

func forgeHMACToken(t *testing.T, engine *goForge.Engine, sub, secret string) *token.Token {
	t.Helper()

	base := token.New()
	if err := base.SetClaim("sub", sub); err != nil {
		t.Fatalf("set sub: %v", err)
	}
	if err := base.SetClaim("exp", time.Now().Add(time.Hour).Unix()); err != nil {
		t.Fatalf("set exp: %v", err)
	}

	signed, err := engine.Sign(context.Background(), base, alg.HS256, alg.SecretKey([]byte(secret)))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return signed
}

// waitVaultSecret polls until the recovery watcher has persisted the secret
// for the token. The write lands after the run reports done.
func waitVaultSecret(t *testing.T, engine *goForge.Engine, tok *token.Token) []byte {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		secret, err := engine.LookupRecoveredSecret(context.Background(), tok)
		if err == nil {
			return secret
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("vault record did not appear in time")
	return nil
}
