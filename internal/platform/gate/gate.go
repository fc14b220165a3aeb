package gate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"
)

// The gate keeps the process single-instance: the running instance holds a
// listener on a well-known local endpoint, and any later invocation sends one
// opaque activate payload and exits. Cross-process database exclusion hangs
// off this listener — if the bind fails, another instance owns the store.

const activatePayload = "activate"

const dialTimeout = time.Second

// Listener owns the gate endpoint for the lifetime of the process.
type Listener struct {
	addr       string
	onActivate func()
	ln         net.Listener
}

func NewListener(addr string, onActivate func()) *Listener {
	return &Listener{addr: addr, onActivate: onActivate}
}

// SetOnActivate installs the activation callback. It must be called before
// Serve.
func (l *Listener) SetOnActivate(fn func()) {
	l.onActivate = fn
}

// Bind claims the endpoint. It fails when another instance already holds it.
func (l *Listener) Bind() error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("another instance may be running (bind %s): %w", l.addr, err)
	}
	l.ln = ln
	return nil
}

// Serve accepts activate signals until ctx is cancelled. Bind must have been
// called first.
func (l *Listener) Serve(ctx context.Context) error {
	if l.ln == nil {
		return fmt.Errorf("gate listener is not bound")
	}
	go func() {
		<-ctx.Done()
		_ = l.ln.Close()
	}()
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return fmt.Errorf("gate accept: %w", err)
		}
		go l.handle(conn)
	}
}

func (l *Listener) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(dialTimeout))
	// The payload is opaque; any readable signal counts as an activation.
	buf := make([]byte, 64)
	if _, err := conn.Read(buf); err != nil && err != io.EOF {
		slog.Debug("gate read failed", "error", err)
		return
	}
	slog.Info("activate signal received")
	if l.onActivate != nil {
		l.onActivate()
	}
}

func (l *Listener) Close() error {
	if l.ln == nil {
		return nil
	}
	return l.ln.Close()
}

// Activate signals the running instance and reports whether one answered.
func Activate(addr string) (bool, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return false, nil
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(activatePayload)); err != nil {
		return false, fmt.Errorf("send activate: %w", err)
	}
	return true, nil
}
