package pagination

import (
	"fmt"

	"gorm.io/gorm"
)

// PageSize is the fixed number of rows per listing page.
const PageSize = 20

// Keyed is implemented by row types that can produce the cursor marking
// their own position in the listing order.
type Keyed interface {
	CursorKey() Cursor
}

// Request carries the pagination inputs of one listing call. Cursor selects
// the rows after a previous page; Jump asks for an offset scan to Page when
// the client has no cursor for it. Page and PrevCursor are bookkeeping the
// client echoes back so the response can describe where it is.
type Request struct {
	Cursor     string
	Page       int
	PrevCursor string
	Jump       bool
}

type PageInfo struct {
	NextCursor    string `json:"next_cursor,omitempty"`
	PrevCursor    string `json:"prev_cursor,omitempty"`
	CurrentCursor string `json:"current_cursor,omitempty"`
	CurrentPage   int    `json:"current_page"`
	HasMore       bool   `json:"has_more"`
	Total         int64  `json:"total"`
	TotalPages    int    `json:"total_pages"`
}

type Result[T any] struct {
	Items    []T      `json:"items"`
	PageInfo PageInfo `json:"page_info"`
}

// ListPage runs one page of a keyset-paginated listing over table. base
// applies the query's joins, filters and column selection; ListPage owns
// ordering, cursor predicates and limits. Rows are ordered
// (created_at DESC, id DESC), columns qualified with the table name so joins
// stay unambiguous, and one extra row past the page is fetched, its presence
// alone decides HasMore. Total and TotalPages come from the advisory cache
// and are hints, not promises.
func ListPage[T Keyed](gdb *gorm.DB, table string, req Request, counts *CountCache, base func(*gorm.DB) *gorm.DB) (*Result[T], error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	q := base(gdb.Session(&gorm.Session{}))
	switch {
	case req.Jump && page > 1:
		// Cursorless jump to an arbitrary page. An offset scan is the
		// only way to get there; the response hands back real cursors
		// so the client returns to keyset stepping afterwards.
		q = q.Offset((page - 1) * PageSize)
	case req.Cursor != "":
		cur, err := DecodeCursor(req.Cursor)
		if err != nil {
			return nil, err
		}
		q = q.Where(
			fmt.Sprintf("%[1]s.created_at < ? OR (%[1]s.created_at = ? AND %[1]s.id < ?)", table),
			cur.CreatedAt, cur.CreatedAt, cur.ID,
		)
	}

	var rows []T
	err := q.
		Order(fmt.Sprintf("%[1]s.created_at DESC, %[1]s.id DESC", table)).
		Limit(PageSize + 1).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	hasMore := len(rows) > PageSize
	if hasMore {
		rows = rows[:PageSize]
	}

	info := PageInfo{
		PrevCursor:    req.PrevCursor,
		CurrentCursor: req.Cursor,
		CurrentPage:   page,
		HasMore:       hasMore,
	}
	if hasMore {
		info.NextCursor = rows[len(rows)-1].CursorKey().Encode()
	}
	if counts != nil {
		info.Total = counts.Get(gdb)
		info.TotalPages = int((info.Total + PageSize - 1) / PageSize)
	}
	if rows == nil {
		rows = []T{}
	}
	return &Result[T]{Items: rows, PageInfo: info}, nil
}
