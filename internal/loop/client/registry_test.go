package client

import (
	"testing"
	"time"
)

func TestRegistryAssignsIDs(t *testing.T) {
	r := NewRegistry()
	a := r.Register("alice")
	b := r.Register("bob")
	if a.ID == b.ID {
		t.Fatal("clients share an ID")
	}
	if r.Len() != 2 {
		t.Fatalf("len = %d, want 2", r.Len())
	}
	r.Unregister(a.ID)
	if r.Len() != 1 {
		t.Fatalf("len = %d after unregister, want 1", r.Len())
	}
}

func TestShutdownWithoutClientsReturnsImmediately(t *testing.T) {
	r := NewRegistry()
	start := time.Now()
	if left := r.Shutdown(time.Second); left != 0 {
		t.Fatalf("remaining = %d, want 0", left)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("shutdown waited with no clients")
	}
}

func TestShutdownWaitsForClientsToLeave(t *testing.T) {
	r := NewRegistry()
	h := r.Register("alice")

	go func() {
		ev := <-h.Events
		if ev.Type == EventShutdown {
			time.Sleep(20 * time.Millisecond)
			r.Unregister(h.ID)
		}
	}()

	if left := r.Shutdown(2 * time.Second); left != 0 {
		t.Fatalf("remaining = %d, want 0", left)
	}
}

func TestShutdownTimesOut(t *testing.T) {
	r := NewRegistry()
	r.Register("stuck")

	if left := r.Shutdown(100 * time.Millisecond); left != 1 {
		t.Fatalf("remaining = %d, want 1", left)
	}
}

func TestRegisterDuringShutdownIsNotified(t *testing.T) {
	r := NewRegistry()
	r.Shutdown(10 * time.Millisecond)

	h := r.Register("late")
	select {
	case ev := <-h.Events:
		if ev.Type != EventShutdown {
			t.Fatalf("event = %v, want shutdown", ev.Type)
		}
	default:
		t.Fatal("late client was not told about the shutdown")
	}
}
