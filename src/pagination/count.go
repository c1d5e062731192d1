package pagination

import (
	"boxoffice/src/lib"
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"
)

// CountTTL is how long an advisory table count is served before being
// recomputed.
const CountTTL = 5 * time.Minute

// CountCache serves an advisory row count for one table. The value feeds the
// total and total-pages hints in listing responses and is allowed to lag
// reality by up to the TTL; page boundaries never depend on it.
//
// Counts are memoized in-process and mirrored in redis when a client is
// configured, so the figure survives restarts and is shared between
// replicas. On postgres the recount reads the planner estimate from
// pg_class instead of scanning the table.
type CountCache struct {
	table string

	mu      sync.Mutex
	value   int64
	expires time.Time
}

func NewCountCache(table string) *CountCache {
	return &CountCache{table: table}
}

// Get returns the cached count, recomputing it when the TTL has lapsed.
func (c *CountCache) Get(gdb *gorm.DB) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Now().Before(c.expires) {
		return c.value
	}
	if v, ok := c.fromRedis(); ok {
		c.value = v
		c.expires = time.Now().Add(CountTTL)
		return c.value
	}
	c.value = c.recount(gdb)
	c.expires = time.Now().Add(CountTTL)
	c.toRedis(c.value)
	return c.value
}

// Refresh recomputes the count immediately, bypassing the TTL. The
// maintenance scheduler calls this so interactive requests rarely pay for a
// recount.
func (c *CountCache) Refresh(gdb *gorm.DB) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = c.recount(gdb)
	c.expires = time.Now().Add(CountTTL)
	c.toRedis(c.value)
}

func (c *CountCache) recount(gdb *gorm.DB) int64 {
	if gdb.Dialector.Name() == "postgres" {
		// reltuples is -1 until the table has been analyzed; fall back to
		// an exact count in that case.
		var estimate int64
		res := gdb.
			Raw("SELECT reltuples::bigint FROM pg_class WHERE relname = ?", c.table).
			Scan(&estimate)
		if res.Error == nil && res.RowsAffected > 0 && estimate >= 0 {
			return estimate
		}
		if res.Error != nil {
			log.Printf("Error estimating count for %s: %s\n", c.table, res.Error.Error())
		}
	}
	var exact int64
	if err := gdb.Table(c.table).Count(&exact).Error; err != nil {
		log.Printf("Error counting %s: %s\n", c.table, err.Error())
		return 0
	}
	return exact
}

func (c *CountCache) redisKey() string {
	return fmt.Sprintf("counts:%s", c.table)
}

func (c *CountCache) fromRedis() (int64, bool) {
	rdb := lib.GetRedisClient()
	if rdb == nil {
		return 0, false
	}
	raw, err := rdb.Get(context.Background(), c.redisKey()).Result()
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *CountCache) toRedis(v int64) {
	rdb := lib.GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.SetEx(context.Background(), c.redisKey(), strconv.FormatInt(v, 10), CountTTL).Err(); err != nil {
		log.Printf("Error caching count for %s: %s\n", c.table, err.Error())
	}
}
