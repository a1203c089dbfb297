package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/turing/pkg/machine"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager()
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Do(ctx, sid, func(context.Context, *machine.Deterministic) error { return nil })
		_ = mgr.Drop(ctx, sid)
	}

	lockCount := len(mgr.locks)
	t.Logf("Sessions Created: %d, Locks Leaked: %d", count, lockCount)

	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Drop", lockCount)
	}
	if n := mgr.Len(); n != 0 {
		t.Errorf("expected no live sessions, got %d", n)
	}
}
