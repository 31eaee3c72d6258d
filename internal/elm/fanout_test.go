package elm

import (
	"testing"
	"time"

	"elmlink/internal/elm/pid"

	"github.com/stretchr/testify/assert"
)

func TestFanoutNotifyInSubscriptionOrder(t *testing.T) {
	f := newFanout()

	var calls []string
	f.subscribe(0x0D, func(v pid.Value, at time.Time) { calls = append(calls, "first") })
	f.subscribe(0x0D, func(v pid.Value, at time.Time) { calls = append(calls, "second") })

	f.notify(0x0D, pid.Speed{KPH: 50}, time.Now())
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestFanoutUnsubscribeBeforeDelivery(t *testing.T) {
	f := newFanout()

	var calls []string
	s1 := f.subscribe(0x0D, func(v pid.Value, at time.Time) { calls = append(calls, "first") })
	f.subscribe(0x0D, func(v pid.Value, at time.Time) { calls = append(calls, "second") })

	f.unsubscribe(s1)
	f.notify(0x0D, pid.Speed{KPH: 50}, time.Now())
	assert.Equal(t, []string{"second"}, calls)
}

func TestFanoutDuplicateCallbackFiresTwice(t *testing.T) {
	f := newFanout()

	count := 0
	fn := func(v pid.Value, at time.Time) { count++ }
	f.subscribe(0x0C, fn)
	s2 := f.subscribe(0x0C, fn)

	f.notify(0x0C, pid.RPM{RPM: 800}, time.Now())
	assert.Equal(t, 2, count)

	// Each registration is removed individually.
	f.unsubscribe(s2)
	f.notify(0x0C, pid.RPM{RPM: 800}, time.Now())
	assert.Equal(t, 3, count)
}

func TestFanoutUnsubscribeAbsentIsNoop(t *testing.T) {
	f := newFanout()
	s := f.subscribe(0x0D, func(v pid.Value, at time.Time) {})
	f.unsubscribe(s)
	assert.NotPanics(t, func() {
		f.unsubscribe(s)
		f.unsubscribe(nil)
	})
}

func TestFanoutUnsubscribeDuringNotify(t *testing.T) {
	f := newFanout()

	count := 0
	var self *Subscription
	self = f.subscribe(0x0D, func(v pid.Value, at time.Time) {
		count++
		f.unsubscribe(self)
	})

	f.notify(0x0D, pid.Speed{KPH: 10}, time.Now())
	f.notify(0x0D, pid.Speed{KPH: 20}, time.Now())
	assert.Equal(t, 1, count)
}

func TestFanoutRawObservers(t *testing.T) {
	f := newFanout()

	var lines []string
	f.observeRaw(func(line string, at time.Time) { lines = append(lines, line) })

	f.notifyRaw("NO DATA", time.Now())
	f.notifyRaw("410D32", time.Now())
	assert.Equal(t, []string{"NO DATA", "410D32"}, lines)
}

func TestFanoutClear(t *testing.T) {
	f := newFanout()

	called := false
	f.subscribe(0x0D, func(v pid.Value, at time.Time) { called = true })
	f.observeRaw(func(line string, at time.Time) { called = true })

	f.clear()
	f.notify(0x0D, pid.Speed{KPH: 50}, time.Now())
	f.notifyRaw("410D32", time.Now())
	assert.False(t, called)
}
