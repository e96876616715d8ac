package bus

import (
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func benchEvt(t string) Event {
	return NewEvent(t, "bench", nil)
}

func makeHandler(c *int64) EventHandler {
	return func(e Event) error {
		atomic.AddInt64(c, 1)
		return nil
	}
}

type nopObserver struct{}

func (nopObserver) OnPublish(string, Event)                       {}
func (nopObserver) OnDelivered(string, int, error, time.Duration) {}

func BenchmarkPublishManySubscribers(b *testing.B) {
	for _, subs := range []int{1, 4, 16, 64} {
		b.Run("subs="+strconv.Itoa(subs), func(b *testing.B) {
			bus := New()
			var c int64
			for i := 0; i < subs; i++ {
				_, _ = bus.Subscribe("contact.begin", makeHandler(&c))
			}
			e := benchEvt("contact.begin")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = bus.Publish(e)
			}
		})
	}
}

func BenchmarkPublishObserved(b *testing.B) {
	bus := New()
	var c int64
	_, _ = bus.Subscribe("contact.end", makeHandler(&c))
	bus.AddObserver(nopObserver{})
	e := benchEvt("contact.end")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bus.Publish(e)
	}
}

func BenchmarkConcurrentPublishers(b *testing.B) {
	bus := New()
	var c int64
	for i := 0; i < 16; i++ {
		_, _ = bus.Subscribe("tick", makeHandler(&c))
	}
	e := benchEvt("tick")
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = bus.Publish(e)
		}
	})
}
