package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KV_BACKEND", "")
	t.Setenv("EXPLORER", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("CHAT_HISTORY_LIMIT", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("SWEEP_STUCK_AFTER", "")

	cfg := Load()
	if cfg.KVBackend != "badger" {
		t.Fatalf("expected default kv backend badger, got %q", cfg.KVBackend)
	}
	if cfg.Explorer != "basic" {
		t.Fatalf("expected default explorer basic, got %q", cfg.Explorer)
	}
	if cfg.NATSSubject != "files.completed" {
		t.Fatalf("expected default subject files.completed, got %q", cfg.NATSSubject)
	}
	if cfg.ChatHistoryLimit != 10 {
		t.Fatalf("expected default history limit 10, got %d", cfg.ChatHistoryLimit)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("expected default sweep interval 5m, got %s", cfg.SweepInterval)
	}
	if cfg.SweepStuckAfter != 30*time.Minute {
		t.Fatalf("expected default stuck-after 30m, got %s", cfg.SweepStuckAfter)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KV_BACKEND", "postgres")
	t.Setenv("EXPLORER", "gemini")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("CHAT_HISTORY_LIMIT", "25")
	t.Setenv("SWEEP_INTERVAL", "90s")

	cfg := Load()
	if cfg.KVBackend != "postgres" {
		t.Fatalf("expected kv backend override, got %q", cfg.KVBackend)
	}
	if cfg.Explorer != "gemini" {
		t.Fatalf("expected explorer override, got %q", cfg.Explorer)
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Fatalf("expected model override, got %q", cfg.GeminiModel)
	}
	if cfg.ChatHistoryLimit != 25 {
		t.Fatalf("expected history limit 25, got %d", cfg.ChatHistoryLimit)
	}
	if cfg.SweepInterval != 90*time.Second {
		t.Fatalf("expected sweep interval 90s, got %s", cfg.SweepInterval)
	}
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("CHAT_HISTORY_LIMIT", "many")
	t.Setenv("SWEEP_STUCK_AFTER", "soon")

	cfg := Load()
	if cfg.ChatHistoryLimit != 10 {
		t.Fatalf("expected fallback history limit 10, got %d", cfg.ChatHistoryLimit)
	}
	if cfg.SweepStuckAfter != 30*time.Minute {
		t.Fatalf("expected fallback stuck-after 30m, got %s", cfg.SweepStuckAfter)
	}
}
