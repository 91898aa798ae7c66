package client

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCache_DevuelveDatoFresco(t *testing.T) {
	q := NewQueryCache(time.Minute)
	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	v, err := q.Fetch("productos:list", 30*time.Second, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = q.Fetch("productos:list", 30*time.Second, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, calls)
}

func TestQueryCache_RefrescaDatoVencido(t *testing.T) {
	q := NewQueryCache(time.Minute)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return now }

	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}
	_, err := q.Fetch("ventas:list", 10*time.Second, fn)
	require.NoError(t, err)

	now = now.Add(11 * time.Second)
	v, err := q.Fetch("ventas:list", 10*time.Second, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestQueryCache_ErrorNoReemplazaEntrada(t *testing.T) {
	q := NewQueryCache(time.Minute)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return now }

	_, err := q.Fetch("telas:list", time.Second, func() (any, error) { return "v1", nil })
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = q.Fetch("telas:list", time.Second, func() (any, error) { return nil, errors.New("caído") })
	require.Error(t, err)

	v, err := q.Fetch("telas:list", time.Hour, func() (any, error) { return "v2", nil })
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
}

func TestQueryCache_InvalidatePorPrefijo(t *testing.T) {
	q := NewQueryCache(time.Minute)
	for _, k := range []string{"trabajos:list", "trabajos:abc", "inventario:tienda?store_id=1", "ventas:list"} {
		_, err := q.Fetch(k, time.Minute, func() (any, error) { return k, nil })
		require.NoError(t, err)
	}
	require.Equal(t, 4, q.Len())

	q.Invalidate("trabajos", "inventario")
	assert.Equal(t, 1, q.Len())

	calls := 0
	_, err := q.Fetch("ventas:list", time.Minute, func() (any, error) {
		calls++
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, calls, "ventas no debe invalidarse")
}

func TestQueryCache_EntradaExpiraTrasCacheTime(t *testing.T) {
	q := NewQueryCache(50 * time.Millisecond)
	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := q.Fetch("tiendas:list", time.Hour, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Len())

	require.Eventually(t, func() bool { return q.Len() == 0 }, 2*time.Second, 20*time.Millisecond)

	v, err := q.Fetch("tiendas:list", time.Hour, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "una entrada expirada se vuelve a pedir aunque siga fresca")
}

func TestQueryCache_InvalidateDuranteFetchNoGuardaDatoViejo(t *testing.T) {
	q := NewQueryCache(time.Minute)
	calls := 0

	v, err := q.Fetch("trabajos:list", time.Hour, func() (any, error) {
		calls++
		// una mutación termina mientras la consulta sigue en vuelo
		q.Invalidate("trabajos")
		return "antes", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "antes", v)
	assert.Equal(t, 0, q.Len())

	v, err = q.Fetch("trabajos:list", time.Hour, func() (any, error) {
		calls++
		return "después", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "después", v)
	assert.Equal(t, 2, calls)
}
