package mmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnon_ReadWrite(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 4096, m.Size())

	buf := m.Bytes()
	require.Len(t, buf, 4096)

	// Anonymous memory starts zeroed.
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not zero: %d", i, b)
		}
	}

	buf[0] = 0xAB
	buf[4095] = 0xCD
	assert.Equal(t, byte(0xAB), m.Bytes()[0])
	assert.Equal(t, byte(0xCD), m.Bytes()[4095])
}

func TestMapAnon_InvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	assert.True(t, errors.Is(err, ErrInvalidSize))

	_, err = MapAnon(-1)
	assert.True(t, errors.Is(err, ErrInvalidSize))
}

func TestMapping_Close(t *testing.T) {
	m, err := MapAnon(8192)
	require.NoError(t, err)

	require.NoError(t, m.Advise(AccessRandom))
	require.NoError(t, m.Close())

	// Idempotent.
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.Equal(t, ErrClosed, m.Advise(AccessSequential))
}
