package test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// The Engine is a facade: its methods validate input, delegate to the token,
// alg, attack, crack, or vault packages, then record metrics and audit events.
// Logic that grows past that shape belongs in a subsystem package. This test
// keeps the facade honest by bounding method length in the engine files.

const delegateMaxLines = 40

// delegateException grants a named method a higher budget. Every entry must
// say why and where the overflow should eventually move.
type delegateException struct {
	limit    int
	reason   string
	target   string
	removeBy string
}

var delegateExceptions = map[string]delegateException{
	"Sign": {
		limit:    50,
		reason:   "rewrites the header alg and settles the derived token inline before returning",
		target:   "token package helper for post-sign settling",
		removeBy: "v1.1",
	},
	"startCrack": {
		limit:    60,
		reason:   "admission under the run cap, watcher wiring, and audit emission share one critical section",
		target:   "crack package run-registry type",
		removeBy: "v1.1",
	},
}

var engineMethodRe = regexp.MustCompile(`^func \(e \*Engine\) ([A-Za-z]\w*)\(`)

type methodSpan struct {
	file  string
	name  string
	lines int
}

// scanEngineMethods walks the engine source files and measures each method
// from its func line to the closing brace, counting braces per line. Engine
// files keep braces out of string literals, so the raw count is exact.
func scanEngineMethods(t *testing.T) []methodSpan {
	t.Helper()

	files, err := filepath.Glob(filepath.Join("..", "engine*.go"))
	if err != nil {
		t.Fatalf("glob engine files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no engine source files found")
	}

	var spans []methodSpan
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		lines := strings.Split(string(data), "\n")

		for i := 0; i < len(lines); i++ {
			m := engineMethodRe.FindStringSubmatch(lines[i])
			if m == nil {
				continue
			}
			depth, entered, count := 0, false, 0
			for j := i; j < len(lines); j++ {
				count++
				depth += strings.Count(lines[j], "{") - strings.Count(lines[j], "}")
				if depth > 0 {
					entered = true
				}
				if entered && depth == 0 {
					i = j
					break
				}
			}
			spans = append(spans, methodSpan{file: filepath.Base(file), name: m[1], lines: count})
		}
	}
	return spans
}

func TestEngineMethodsStayThinDelegates(t *testing.T) {
	spans := scanEngineMethods(t)
	if len(spans) == 0 {
		t.Fatal("no Engine methods found; did the receiver name change?")
	}

	seen := make(map[string]bool, len(spans))
	longest := methodSpan{}
	for _, s := range spans {
		seen[s.name] = true
		if s.lines > longest.lines {
			longest = s
		}

		limit := delegateMaxLines
		if exc, ok := delegateExceptions[s.name]; ok {
			limit = exc.limit
		}
		if s.lines > limit {
			t.Errorf("%s: (e *Engine).%s is %d lines, limit %d; move logic into a subsystem package or add a justified exception",
				s.file, s.name, s.lines, limit)
		}
	}

	t.Logf("longest Engine method: %s.%s at %d lines", longest.file, longest.name, longest.lines)

	// Stale exceptions hide regressions; drop them once the method shrinks
	// or disappears.
	for name, exc := range delegateExceptions {
		if !seen[name] {
			t.Errorf("delegate exception for %q matches no Engine method", name)
			continue
		}
		if exc.limit <= delegateMaxLines {
			t.Errorf("delegate exception for %q grants %d lines, which the default budget already covers", name, exc.limit)
		}
	}
}

func TestDelegateExceptionsCarryMetadata(t *testing.T) {
	for name, exc := range delegateExceptions {
		if strings.TrimSpace(exc.reason) == "" {
			t.Errorf("exception %q has no reason", name)
		}
		if strings.TrimSpace(exc.target) == "" {
			t.Errorf("exception %q names no refactor target", name)
		}
		if strings.TrimSpace(exc.removeBy) == "" {
			t.Errorf("exception %q has no removal milestone", name)
		}
	}
}
