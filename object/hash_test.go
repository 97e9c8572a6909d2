package object

import (
	"errors"
	"testing"

	"github.com/Yag000/Interpreter-Monkey/errz"
	"github.com/stretchr/testify/require"
)

func TestHashMapSetGet(t *testing.T) {
	h := NewHashMap(0)
	require.Nil(t, h.Set(NewString("k"), NewInt(1)))
	require.Nil(t, h.Set(NewInt(1), NewString("int key")))
	require.Nil(t, h.Set(True, NewString("bool key")))

	value, err := h.Get(NewString("k"))
	require.Nil(t, err)
	require.Equal(t, NewInt(1), value)

	value, err = h.Get(NewInt(1))
	require.Nil(t, err)
	require.Equal(t, NewString("int key"), value)

	value, err = h.Get(NewString("missing"))
	require.Nil(t, err)
	require.Equal(t, Null, value)
	require.Equal(t, 3, h.Len())
}

func TestHashMapLaterKeyWins(t *testing.T) {
	h := NewHashMap(0)
	require.Nil(t, h.Set(NewString("k"), NewInt(1)))
	require.Nil(t, h.Set(NewString("k"), NewInt(2)))
	value, err := h.Get(NewString("k"))
	require.Nil(t, err)
	require.Equal(t, NewInt(2), value)
	require.Equal(t, 1, h.Len())
}

func TestHashMapUnhashableKey(t *testing.T) {
	h := NewHashMap(0)
	err := h.Set(NewArray(nil), NewInt(1))
	var serr *errz.StructuredError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, errz.ErrType, serr.Kind)
	require.Equal(t, "type error: unusable as hash key: array", err.Error())

	_, err = h.Get(Null)
	require.Error(t, err)
}

func TestHashKeysDistinguishTypes(t *testing.T) {
	require.NotEqual(t, NewInt(1).HashKey(), True.HashKey())
	require.NotEqual(t, NewInt(0).HashKey(), NewString("").HashKey())
	require.Equal(t, NewString("a").HashKey(), NewString("a").HashKey())
}
