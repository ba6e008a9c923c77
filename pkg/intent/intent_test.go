package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOOrderSingleSender(t *testing.T) {
	ch := NewChannel(4)
	s := ch.Sender()
	r := ch.Receiver()

	for i := 0; i < 3; i++ {
		b := uint8(i)
		require.NoError(t, s.TrySend(State(StateIntent{Brightness: &b})))
	}

	for i := 0; i < 3; i++ {
		v, ok := r.TryRecv()
		require.True(t, ok)
		require.NotNil(t, v.State.Brightness)
		assert.Equal(t, uint8(i), *v.State.Brightness)
	}

	_, ok := r.TryRecv()
	assert.False(t, ok)
}

func TestChannelOverflow(t *testing.T) {
	ch := NewChannel(2)
	s := ch.Sender()
	r := ch.Receiver()

	require.NoError(t, s.TrySend(PowerOffIntent()))
	require.NoError(t, s.TrySend(PowerOffIntent()))
	err := s.TrySend(PowerOffIntent())
	assert.ErrorIs(t, err, ErrFull)

	// Simulates one render call, which drains everything pending.
	drained := r.Drain(nil)
	require.Len(t, drained, 2)
	assert.Equal(t, 0, ch.Len())

	require.NoError(t, s.TrySend(PowerOffIntent()))
	assert.Equal(t, 1, ch.Len())
}

func TestDrainPreservesOrder(t *testing.T) {
	ch := NewChannel(4)
	s := ch.Sender()
	r := ch.Receiver()

	for i := 0; i < 4; i++ {
		b := uint8(i)
		require.NoError(t, s.TrySend(State(StateIntent{Brightness: &b})))
	}

	out := r.Drain(nil)
	require.Len(t, out, 4)
	for i, v := range out {
		assert.Equal(t, uint8(i), *v.State.Brightness)
	}
	assert.Equal(t, 0, ch.Len())
}

func TestClonedSendersShareChannel(t *testing.T) {
	ch := NewChannel(2)
	s1 := ch.Sender()
	s2 := s1 // cheap clone: copying the Sender value
	r := ch.Receiver()

	require.NoError(t, s1.TrySend(PowerOffIntent()))
	require.NoError(t, s2.TrySend(PowerOffIntent()))
	assert.Equal(t, 2, ch.Len())

	_, ok := r.TryRecv()
	assert.True(t, ok)
}
