package util

import (
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	// 10 tokens per second, burst of 2
	l := NewLimiter(10, 2)

	if !l.Allow(1) {
		t.Error("expected first token to be allowed")
	}
	if !l.Allow(1) {
		t.Error("expected second token to be allowed (burst)")
	}
	if l.Allow(1) {
		t.Error("expected third token to be rejected (burst exhausted)")
	}

	time.Sleep(150 * time.Millisecond)
	if !l.Allow(1) {
		t.Error("expected token to be refilled after wait")
	}
}

func TestSortedStringKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	keys := SortedStringKeys(m)
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Unexpected key order: %v", keys)
	}
}
