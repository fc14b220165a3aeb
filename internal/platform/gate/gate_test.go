package gate_test

import (
	"context"
	"net"
	"testing"
	"time"

	"focuspro/internal/platform/gate"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve addr: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

func TestActivateReachesListener(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)

	activated := make(chan struct{}, 1)
	l := gate.NewListener(addr, func() { activated <- struct{}{} })
	if err := l.Bind(); err != nil {
		t.Fatalf("bind: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx) }()

	ok, err := gate.Activate(addr)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !ok {
		t.Fatalf("expected a running instance to answer")
	}
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatalf("activate callback was not invoked")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not exit after cancel")
	}
}

func TestSecondBindFails(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)

	first := gate.NewListener(addr, nil)
	if err := first.Bind(); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	defer first.Close()

	second := gate.NewListener(addr, nil)
	if err := second.Bind(); err == nil {
		second.Close()
		t.Fatalf("expected second bind on %s to fail", addr)
	}
}

func TestActivateWithoutInstance(t *testing.T) {
	t.Parallel()
	ok, err := gate.Activate(freeAddr(t))
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if ok {
		t.Fatalf("expected no instance to answer")
	}
}
