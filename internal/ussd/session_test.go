package ussd_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"edufair/internal/ussd"
)

func TestSessions_AcquireAndSweep(t *testing.T) {
	now := time.Date(2024, 9, 14, 9, 0, 0, 0, time.UTC)
	s := ussd.NewSessions(5 * time.Minute)

	a := s.Acquire("a", "+254700000001", now)
	assert.Same(t, a, s.Acquire("a", "+254700000001", now.Add(time.Minute)))
	s.Acquire("b", "+254700000002", now.Add(4*time.Minute))

	assert.Equal(t, []string{"a"}, s.Sweep(now.Add(6*time.Minute)))
	assert.Equal(t, 1, s.Len())

	s.Delete("b")
	assert.Equal(t, 0, s.Len())
}

func TestSessions_JanitorStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := ussd.NewSessions(time.Nanosecond)
	s.Acquire("old", "p", time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	var once sync.Once
	expired := make(chan string, 1)
	done := make(chan struct{})
	go func() {
		s.Janitor(ctx, time.Millisecond, func(id string) {
			once.Do(func() { expired <- id })
		})
		close(done)
	}()

	assert.Equal(t, "old", <-expired)
	cancel()
	<-done
}

func TestSessions_EndKeepsFinalScreen(t *testing.T) {
	now := time.Date(2024, 9, 14, 9, 0, 0, 0, time.UTC)
	s := ussd.NewSessions(5 * time.Minute)
	s.Acquire("a", "+254700000001", now)

	final := ussd.Response{Text: "Registration Successful!", End: true}
	s.End("a", final, now)
	assert.Equal(t, 0, s.Len())

	got, ok := s.Ended("a", now.Add(time.Minute))
	assert.True(t, ok)
	assert.Equal(t, final, got)

	_, ok = s.Ended("a", now.Add(6*time.Minute))
	assert.False(t, ok)

	s.Sweep(now.Add(6 * time.Minute))
	_, ok = s.Ended("a", now.Add(time.Minute))
	assert.False(t, ok)
}
