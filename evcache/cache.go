package evcache

import (
	"fmt"
	"math"

	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/pool"
)

// entry is one CacheKeyState's row plus its per-timestep todo flags.
type entry struct {
	ev   []float64
	todo []bool
}

// Cache is the per-agent, per-latent-class expected-value memo. It is
// single-owner: exactly one goroutine reads and writes it for
// the lifetime of one agent's value-function computation, then Dispose
// returns its rented rows to rowPool before the next agent reuses it.
type Cache struct {
	dayLength    int
	numZones     int
	rowPool      *pool.RowPool
	rows         map[model.CacheKeyState]*entry
	defaultValue float64
}

// New builds a Cache backed by rowPool. defaultValue fills a freshly
// created row: -Inf for the value-function's EV cache, 0 for a derivative
// cache.
func New(dayLength, numZones int, rowPool *pool.RowPool, defaultValue float64) *Cache {
	return &Cache{
		dayLength:    dayLength,
		numZones:     numZones,
		rowPool:      rowPool,
		rows:         make(map[model.CacheKeyState]*entry),
		defaultValue: defaultValue,
	}
}

func (c *Cache) getOrCreate(state model.State) *entry {
	key := state.CacheKey()
	e, ok := c.rows[key]
	if ok {
		return e
	}
	var row []float64
	if state.IsNonFixedAll() {
		row = c.rowPool.RentZoneMajor(c.defaultValue)
	} else {
		row = c.rowPool.RentFixed(c.defaultValue)
	}
	todo := make([]bool, c.dayLength)
	for i := range todo {
		todo[i] = true
	}
	e = &entry{ev: row, todo: todo}
	c.rows[key] = e
	return e
}

func timestepOf(state model.State) int {
	return int(math.Floor(state.TimeOfDay))
}

// NeedsCaching reports whether floor(state.TimeOfDay) still needs a write
// for state's cache key: false when the timestep is out of [0, DayLength),
// or when a previous Cache/CacheZero already cleared its todo flag.
func (c *Cache) NeedsCaching(state model.State) bool {
	idx := timestepOf(state)
	if idx < 0 || idx >= c.dayLength {
		return false
	}
	return c.getOrCreate(state).todo[idx]
}

// DayLength returns the number of timesteps this Cache was built for.
func (c *Cache) DayLength() int {
	return c.dayLength
}

// GetAllTimesteps returns the full EV row for state's cache key, creating a
// default-filled row if this key has not been seen before.
func (c *Cache) GetAllTimesteps(state model.State) []float64 {
	return c.getOrCreate(state).ev
}

// Cache writes m's data at timestep floor(state.TimeOfDay) of state's row
// and clears the todo flag there. For Residence/Workplace states m must be
// a one-cell Mat; for NonFixed-All states m must carry NumZones cells,
// written with stride DayLength+2 across the zone-major row.
func (c *Cache) Cache(state model.State, m *matrix.Mat) error {
	idx := timestepOf(state)
	if idx < 0 || idx >= c.dayLength {
		return fmt.Errorf("evcache.Cache: %w", ErrTimeOutOfRange)
	}
	e := c.getOrCreate(state)
	if state.IsNonFixedAll() {
		if m.Len() != c.numZones {
			return fmt.Errorf("evcache.Cache: %w", ErrShapeMismatch)
		}
		stride := c.dayLength + 2
		for z := 0; z < c.numZones; z++ {
			e.ev[z*stride+idx] = m.At(z)
		}
	} else {
		if m.Len() != 1 {
			return fmt.Errorf("evcache.Cache: %w", ErrShapeMismatch)
		}
		e.ev[idx] = m.At(0)
	}
	e.todo[idx] = false
	return nil
}

// CacheZero writes 0 at state's timestep across every zone slot state's key
// spans. Used for End states, which are always fixed-zone, but implemented
// generally.
func (c *Cache) CacheZero(state model.State) error {
	idx := timestepOf(state)
	if idx < 0 || idx >= c.dayLength {
		return fmt.Errorf("evcache.CacheZero: %w", ErrTimeOutOfRange)
	}
	e := c.getOrCreate(state)
	if state.IsNonFixedAll() {
		stride := c.dayLength + 2
		for z := 0; z < c.numZones; z++ {
			e.ev[z*stride+idx] = 0
		}
	} else {
		e.ev[idx] = 0
	}
	e.todo[idx] = false
	return nil
}

// Dispose returns every rented row back to rowPool. The Cache must not be
// used again afterward.
func (c *Cache) Dispose() {
	fixedLen := c.rowPool.FixedRowLen()
	for _, e := range c.rows {
		if len(e.ev) == fixedLen {
			c.rowPool.ReleaseFixed(e.ev)
		} else {
			c.rowPool.ReleaseZoneMajor(e.ev)
		}
	}
	c.rows = nil
}
