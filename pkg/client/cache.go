package client

import (
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type cacheEntry struct {
	data      any
	fetchedAt time.Time
}

// QueryCache cache de consultas estilo stale-while-revalidate: una entrada fresca
// se devuelve sin red; una vencida se vuelve a pedir. Las entradas se descartan
// del todo al cumplir cacheTime.
type QueryCache struct {
	store *gocache.Cache
	mu    sync.Mutex
	gen   uint64 // sube con cada Invalidate
	now   func() time.Time
}

// NewQueryCache crea un cache cuyas entradas expiran tras cacheTime.
func NewQueryCache(cacheTime time.Duration) *QueryCache {
	return &QueryCache{
		store: gocache.New(cacheTime, 2*cacheTime),
		now:   time.Now,
	}
}

// Fetch devuelve el dato de key si tiene menos de staleTime; si no, ejecuta fn y
// guarda el resultado. Un error de fn no reemplaza la entrada existente, y un
// resultado pedido antes de un Invalidate se devuelve pero no se guarda.
func (q *QueryCache) Fetch(key string, staleTime time.Duration, fn func() (any, error)) (any, error) {
	q.mu.Lock()
	if v, ok := q.store.Get(key); ok {
		e := v.(cacheEntry)
		if q.now().Sub(e.fetchedAt) < staleTime {
			q.mu.Unlock()
			return e.data, nil
		}
	}
	gen := q.gen
	q.mu.Unlock()

	data, err := fn()
	if err != nil {
		return nil, err
	}
	q.mu.Lock()
	if q.gen == gen {
		q.store.SetDefault(key, cacheEntry{data: data, fetchedAt: q.now()})
	}
	q.mu.Unlock()
	return data, nil
}

// Invalidate elimina todas las claves que empiezan con alguno de los prefijos.
func (q *QueryCache) Invalidate(prefixes ...string) {
	if len(prefixes) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.gen++
	for key := range q.store.Items() {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				q.store.Delete(key)
				break
			}
		}
	}
}

// Len cantidad de entradas guardadas; las expiradas cuentan hasta que las purga el janitor.
func (q *QueryCache) Len() int {
	return q.store.ItemCount()
}
