package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstCallReturnsFullPeriod(t *testing.T) {
	s := New(20)
	r := s.Next(0)
	assert.Equal(t, Duration(20), r.Sleep)
	assert.False(t, r.Overdue)
}

func TestSteadyPacing(t *testing.T) {
	s := New(20)
	s.Next(0)
	r := s.Next(15)
	assert.Equal(t, Duration(5), r.Sleep)
}

func TestOnTimeAdvancesDeadline(t *testing.T) {
	s := New(20)
	s.Next(0)
	r := s.Next(20)
	assert.Equal(t, Duration(0), r.Sleep)
	assert.False(t, r.Overdue)

	r2 := s.Next(35)
	assert.Equal(t, Duration(5), r2.Sleep)
}

func TestOverdueFlag(t *testing.T) {
	s := New(20)
	s.Next(0)
	r := s.Next(30) // 10ms past deadline, beyond tolerance
	assert.True(t, r.Overdue)
}

func TestBigLagResyncs(t *testing.T) {
	s := New(20)
	s.Next(0)
	r := s.Next(1000) // way behind
	assert.Equal(t, Duration(0), r.Sleep)
	next := s.Next(1000)
	assert.Equal(t, Duration(20), next.Sleep)
}
