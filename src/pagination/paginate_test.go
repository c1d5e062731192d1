package pagination

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type entry struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	CreatedAt time.Time
}

func (e entry) CursorKey() Cursor {
	return Cursor{CreatedAt: e.CreatedAt, ID: e.ID}
}

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	inner, err := gdb.DB()
	require.NoError(t, err)
	inner.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&entry{}))
	return gdb
}

// seedEntries inserts n rows where triples share a timestamp, so the id
// tie-break is exercised at page boundaries. Returns the ids in expected
// listing order.
func seedEntries(t *testing.T, gdb *gorm.DB, n int) []string {
	t.Helper()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := make([]entry, n)
	for i := 0; i < n; i++ {
		rows[i] = entry{
			ID:        fmt.Sprintf("%03d", i),
			Name:      fmt.Sprintf("entry %d", i),
			CreatedAt: base.Add(time.Duration(i/3) * time.Second),
		}
	}
	require.NoError(t, gdb.Create(&rows).Error)

	sorted := make([]entry, n)
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	ids := make([]string, n)
	for i, row := range sorted {
		ids[i] = row.ID
	}
	return ids
}

func listEntries(gdb *gorm.DB, req Request, counts *CountCache) (*Result[entry], error) {
	return ListPage[entry](gdb, "entries", req, counts, func(q *gorm.DB) *gorm.DB {
		return q.Table("entries")
	})
}

func pageIDs(r *Result[entry]) []string {
	ids := make([]string, len(r.Items))
	for i, item := range r.Items {
		ids[i] = item.ID
	}
	return ids
}

func TestListPageWalksForward(t *testing.T) {
	gdb := newTestDB(t, "paginate_walk")
	expected := seedEntries(t, gdb, 47)
	counts := NewCountCache("entries")

	var visited []string
	cursor := ""
	var sizes []int
	for page := 1; ; page++ {
		result, err := listEntries(gdb, Request{Cursor: cursor, Page: page}, counts)
		require.NoError(t, err)
		sizes = append(sizes, len(result.Items))
		visited = append(visited, pageIDs(result)...)

		assert.Equal(t, page, result.PageInfo.CurrentPage)
		assert.EqualValues(t, 47, result.PageInfo.Total)
		assert.Equal(t, 3, result.PageInfo.TotalPages)

		if !result.PageInfo.HasMore {
			assert.Empty(t, result.PageInfo.NextCursor)
			break
		}
		require.NotEmpty(t, result.PageInfo.NextCursor)
		cursor = result.PageInfo.NextCursor
	}

	assert.Equal(t, []int{20, 20, 7}, sizes)
	assert.Equal(t, expected, visited, "each row visited exactly once, in order")
}

func TestListPageJumpMatchesCursorWalk(t *testing.T) {
	gdb := newTestDB(t, "paginate_jump")
	seedEntries(t, gdb, 47)
	counts := NewCountCache("entries")

	first, err := listEntries(gdb, Request{}, counts)
	require.NoError(t, err)
	second, err := listEntries(gdb, Request{Cursor: first.PageInfo.NextCursor, Page: 2}, counts)
	require.NoError(t, err)

	jumped, err := listEntries(gdb, Request{Page: 2, Jump: true}, counts)
	require.NoError(t, err)

	assert.Equal(t, pageIDs(second), pageIDs(jumped))
	assert.Equal(t, second.PageInfo.HasMore, jumped.PageInfo.HasMore)
	assert.Equal(t, 2, jumped.PageInfo.CurrentPage)
	// The jump response carries a usable cursor for resuming keyset paging.
	assert.Equal(t, second.PageInfo.NextCursor, jumped.PageInfo.NextCursor)
}

func TestListPageLastPageHasMore(t *testing.T) {
	gdb := newTestDB(t, "paginate_lastpage")
	seedEntries(t, gdb, 40)
	counts := NewCountCache("entries")

	// Exactly two full pages: the second fetch finds no extra row, so the
	// advisory count never decides HasMore.
	first, err := listEntries(gdb, Request{}, counts)
	require.NoError(t, err)
	assert.True(t, first.PageInfo.HasMore)

	second, err := listEntries(gdb, Request{Cursor: first.PageInfo.NextCursor, Page: 2}, counts)
	require.NoError(t, err)
	assert.Len(t, second.Items, 20)
	assert.False(t, second.PageInfo.HasMore)
	assert.Empty(t, second.PageInfo.NextCursor)
}

func TestListPagePastEnd(t *testing.T) {
	gdb := newTestDB(t, "paginate_pastend")
	seedEntries(t, gdb, 5)

	t.Run("jump beyond the data", func(t *testing.T) {
		result, err := listEntries(gdb, Request{Page: 9, Jump: true}, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.False(t, result.PageInfo.HasMore)
		assert.Empty(t, result.PageInfo.NextCursor)
	})

	t.Run("cursor at the last row", func(t *testing.T) {
		all, err := listEntries(gdb, Request{}, nil)
		require.NoError(t, err)
		require.Len(t, all.Items, 5)

		last := all.Items[len(all.Items)-1]
		result, err := listEntries(gdb, Request{Cursor: last.CursorKey().Encode(), Page: 2}, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.False(t, result.PageInfo.HasMore)
	})
}

func TestListPageInvalidCursor(t *testing.T) {
	gdb := newTestDB(t, "paginate_invalid")
	seedEntries(t, gdb, 5)

	_, err := listEntries(gdb, Request{Cursor: "!!!bogus!!!"}, nil)
	var invalid *InvalidCursorError
	require.ErrorAs(t, err, &invalid)
}

func TestListPageEmptyTable(t *testing.T) {
	gdb := newTestDB(t, "paginate_empty")

	result, err := listEntries(gdb, Request{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.False(t, result.PageInfo.HasMore)
}

func TestCountCache(t *testing.T) {
	gdb := newTestDB(t, "paginate_counts")
	seedEntries(t, gdb, 10)
	counts := NewCountCache("entries")

	assert.EqualValues(t, 10, counts.Get(gdb))

	require.NoError(t, gdb.Create(&entry{ID: "999", Name: "late arrival", CreatedAt: time.Now()}).Error)

	// Stale within the TTL, the cached figure is advisory.
	assert.EqualValues(t, 10, counts.Get(gdb))

	counts.Refresh(gdb)
	assert.EqualValues(t, 11, counts.Get(gdb))
}
