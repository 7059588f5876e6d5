package cache

import (
	"testing"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{
			name:  "single part",
			parts: []string{"test"},
		},
		{
			name:  "multiple parts",
			parts: []string{"unread", "42", "page", "1"},
		},
		{
			name:  "empty parts",
			parts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed1 := HashKey(tt.parts...)
			hashed2 := HashKey(tt.parts...)

			// Hash should be consistent
			if hashed1 != hashed2 {
				t.Errorf("HashKey() should be consistent, got %s and %s", hashed1, hashed2)
			}

			// Hash should be 32 characters (MD5 hex)
			if len(hashed1) != 32 {
				t.Errorf("HashKey() should return 32 character hex string, got length %d", len(hashed1))
			}
		})
	}
}

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "socialgraph:test",
		},
		{
			name:     "key with colon",
			key:      "unread:42",
			expected: "socialgraph:unread:42",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "socialgraph:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cache.NamespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("NamespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestCache_DisabledIsSafe(t *testing.T) {
	var cache *Cache

	if _, err := cache.Get("key"); err != ErrCacheDisabled {
		t.Errorf("Get() on disabled cache should return ErrCacheDisabled, got %v", err)
	}
	if err := cache.Set("key", "value", 0); err != ErrCacheDisabled {
		t.Errorf("Set() on disabled cache should return ErrCacheDisabled, got %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("Close() on disabled cache should be a no-op, got %v", err)
	}

	// Typed helpers degrade to misses and silent writes
	if _, ok := cache.GetUnread(1); ok {
		t.Error("GetUnread() on disabled cache should miss")
	}
	cache.SetUnread(1, 5)
	cache.InvalidateUnread(1)

	if _, _, _, ok := cache.GetCounters(1); ok {
		t.Error("GetCounters() on disabled cache should miss")
	}
	cache.SetCounters(1, 1, 2, 3)
	cache.InvalidateCounters(1)
}
