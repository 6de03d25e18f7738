package bus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zeusync/physics2d/internal/core/observability/log"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_ string, handlers int, err error, _ time.Duration) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got any
	_, err := b.Subscribe("contact.begin", func(e Event) error {
		got = e.Data()
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err = b.Publish(NewEvent("contact.begin", "scene", 123)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got != 123 {
		t.Fatalf("handler saw %v", got)
	}
	if err = b.Publish(NewEvent("body.removed", "scene", 1)); err != nil {
		t.Fatalf("publish other type: %v", err)
	}
	if got != 123 {
		t.Fatalf("handler called for another type")
	}
}

func TestDeliveryOrderAndCancel(t *testing.T) {
	b := New()
	var order []int
	subs := make([]Subscription, 3)
	for i := range subs {
		s, err := b.Subscribe("ev", func(Event) error { order = append(order, i); return nil })
		if err != nil {
			t.Fatalf("subscribe: %v", err)
		}
		subs[i] = s
	}

	_ = b.Publish(NewEvent("ev", "src", nil))
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("unexpected order %v", order)
	}

	if err := b.Unsubscribe(subs[1]); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if subs[1].IsActive() {
		t.Fatal("subscription still active")
	}
	_ = subs[1].Cancel()

	order = order[:0]
	_ = b.Publish(NewEvent("ev", "src", nil))
	if len(order) != 2 || order[0] != 0 || order[1] != 2 {
		t.Fatalf("unexpected order after cancel %v", order)
	}
	if err := b.Unsubscribe(nil); err != nil {
		t.Fatalf("nil unsubscribe: %v", err)
	}
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	e1, e2 := errors.New("one"), errors.New("two")
	_, _ = b.Subscribe("x", func(Event) error { return e1 })
	_, _ = b.Subscribe("x", func(Event) error { return nil })
	_, _ = b.Subscribe("x", func(Event) error { return e2 })

	err := b.Publish(NewEvent("x", "src", nil))
	if !errors.Is(err, e1) || !errors.Is(err, e2) {
		t.Fatalf("expected both errors, got %v", err)
	}
}

func TestSubscribeNilHandler(t *testing.T) {
	if _, err := New().Subscribe("x", nil); !errors.Is(err, ErrNilHandler) {
		t.Fatalf("expected ErrNilHandler, got %v", err)
	}
}

func TestObserverMetricsOptional(t *testing.T) {
	b := New()
	handlerErr := errors.New("fail")
	_, _ = b.Subscribe("e", func(Event) error { return nil })
	_ = b.Publish(NewEvent("e", "s", nil))
	if m := b.Metrics(); m.Published != 0 || m.DeliveredHandlers != 0 {
		t.Fatalf("metrics should be zero without observers: %+v", m)
	}

	obs := &testObserver{}
	b.AddObserver(obs)
	_, _ = b.Subscribe("e", func(Event) error { return handlerErr })
	_ = b.Publish(NewEvent("e", "s", nil))
	m := b.Metrics()
	if m.Published != 1 || m.DeliveredHandlers != 2 || m.Errors != 1 {
		t.Fatalf("metrics should update with observer: %+v", m)
	}
	if obs.publishCount != 1 || obs.deliveredCount != 2 || !errors.Is(obs.lastErr, handlerErr) {
		t.Fatalf("observer not called: %+v", obs)
	}

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("e", "s", nil))
	if obs.publishCount != 1 {
		t.Fatalf("removed observer still notified")
	}
}

func BenchmarkPublish(b *testing.B) {
	bus := New()
	var c int
	for range 16 {
		_, _ = bus.Subscribe("tick", func(Event) error { c++; return nil })
	}
	e := NewEvent("tick", "bench", nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bus.Publish(e)
	}
	_ = c
}

func TestLogObserverEnablesMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bus.log")
	logger := log.New(log.LevelDebug, log.Options{Output: []string{path}})

	b := New()
	b.AddObserver(NewLogObserver(logger))
	_, _ = b.Subscribe("contact.begin", func(Event) error { return nil })
	_, _ = b.Subscribe("contact.begin", func(Event) error { return errors.New("fail") })

	if err := b.Publish(NewEvent("contact.begin", "scene", nil)); err == nil {
		t.Fatal("expected handler error")
	}
	m := b.Metrics()
	if m.Published != 1 || m.DeliveredHandlers != 2 || m.Errors != 1 {
		t.Fatalf("unexpected metrics %+v", m)
	}

	if err := logger.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"msg":"Event delivered"`, `"event":"contact.begin"`, `"handlers":2`, `"failed":true`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %s", out, want)
		}
	}
}
