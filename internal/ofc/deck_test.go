package ofc

import (
	"testing"

	"github.com/lox/ofcsolver/internal/randutil"
	"github.com/stretchr/testify/require"
)

func TestDeckDealReducesRemaining(t *testing.T) {
	d := NewDeck(randutil.New(1))
	require.Equal(t, 52, d.Remaining())
	hand, ok := d.Deal(5)
	require.True(t, ok)
	require.Len(t, hand, 5)
	require.Equal(t, 47, d.Remaining())
}

func TestDeckDealExhaustion(t *testing.T) {
	d := NewDeck(randutil.New(2))
	for i := 0; i < 10; i++ {
		_, ok := d.Deal(5)
		require.True(t, ok)
	}
	_, ok := d.Deal(3)
	require.False(t, ok)
	require.Equal(t, 2, d.Remaining())
}

func TestDeckUndealRestoresCursor(t *testing.T) {
	d := NewDeck(randutil.New(3))
	first, _ := d.Deal(5)
	d.Undeal(5)
	require.Equal(t, 52, d.Remaining())
	second, _ := d.Deal(5)
	require.Equal(t, first, second)
}

func TestDeckSameSeedProducesSameShuffle(t *testing.T) {
	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	ah, _ := a.Deal(52)
	bh, _ := b.Deal(52)
	require.Equal(t, ah, bh)
}
