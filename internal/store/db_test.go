package store

import "testing"

func TestNewDBRejectsMalformedConnString(t *testing.T) {
	db, err := NewDB("://not-a-connection-string")
	if err == nil {
		t.Fatal("expected error for malformed connection string")
	}
	if db != nil {
		t.Errorf("db = %v, want nil so callers can fail fast", db)
	}
}
