package goroutine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type captureLogger struct {
	mu   sync.Mutex
	msgs []string
	done chan struct{}
}

func (l *captureLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
	l.mu.Unlock()
	close(l.done)
}

func TestSafeGoRecoversPanic(t *testing.T) {
	l := &captureLogger{done: make(chan struct{})}
	NewRecoveryHandler(l).SafeGo(func() { panic("warmup failed") })

	select {
	case <-l.done:
	case <-time.After(2 * time.Second):
		t.Fatal("panic was not reported")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.msgs) != 1 || !strings.Contains(l.msgs[0], "warmup failed") {
		t.Fatalf("unexpected log: %v", l.msgs)
	}
}

func TestSafeGoWithContextPassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	got := make(chan any, 1)

	NewRecoveryHandler(&captureLogger{done: make(chan struct{})}).SafeGoWithContext(ctx, func(c context.Context) {
		got <- c.Value(key{})
	})

	select {
	case v := <-got:
		if v != "v" {
			t.Fatalf("context value = %v", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("goroutine did not run")
	}
}
