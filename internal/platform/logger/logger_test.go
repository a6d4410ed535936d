package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(r Redaction) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core), r), logs
}

func TestRedaction(t *testing.T) {
	log, logs := observed(Redaction{Enabled: true, HashSalt: "salt"})
	long := strings.Repeat("a", maxTextLen+30)

	log.With("service", "NoteService").Info("note saved",
		"user_id", "user-1",
		"password", "hunter22",
		"content", long,
		"note_id", "n-1",
		"header", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1c2VyLTEifQ.sig",
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries: got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["service"] != "NoteService" || fields["note_id"] != "n-1" {
		t.Fatalf("plain fields changed: %v", fields)
	}
	if fields["password"] != "[REDACTED]" || fields["header"] != "[REDACTED]" {
		t.Fatalf("secrets leaked: %v", fields)
	}
	if uid, _ := fields["user_id"].(string); !strings.HasPrefix(uid, "hash:") || len(uid) != len("hash:")+12 {
		t.Fatalf("user_id: got %v", fields["user_id"])
	}
	if content, _ := fields["content"].(string); !strings.HasSuffix(content, "(150 chars)") {
		t.Fatalf("content: got %q", content)
	}
}

func TestRedactionDisabled(t *testing.T) {
	log, logs := observed(Redaction{})
	log.Info("login", "password", "hunter22")
	if got := logs.All()[0].ContextMap()["password"]; got != "hunter22" {
		t.Fatalf("password: got %v", got)
	}
}

func TestHashIsStablePerSalt(t *testing.T) {
	a := Redaction{Enabled: true, HashSalt: "a"}
	b := Redaction{Enabled: true, HashSalt: "b"}
	if a.hash("user-1") != a.hash("user-1") {
		t.Fatalf("hash must be deterministic")
	}
	if a.hash("user-1") == b.hash("user-1") {
		t.Fatalf("salt must change the hash")
	}
}
