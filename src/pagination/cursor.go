package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Cursor identifies a position in the (created_at DESC, id DESC) ordering.
// The id breaks ties between rows created in the same nanosecond, so a page
// boundary never drops or repeats rows.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// InvalidCursorError reports a cursor string that could not be decoded.
// Cursors are opaque to clients, so a malformed one means a truncated or
// hand-edited value rather than a transient fault.
type InvalidCursorError struct {
	Cause error
}

func (e *InvalidCursorError) Error() string {
	return fmt.Sprintf("invalid pagination cursor: %s", e.Cause.Error())
}

func (e *InvalidCursorError) Unwrap() error { return e.Cause }

type cursorPayload struct {
	CreatedAt string `json:"createdAt"`
	ID        string `json:"id"`
}

// Encode serializes the cursor as unpadded base64url over a small JSON
// object. The timestamp is rendered in UTC at nanosecond precision so the
// round trip is exact.
func (c Cursor) Encode() string {
	payload := cursorPayload{
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        c.ID,
	}
	raw, _ := json.Marshal(payload)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a client-supplied cursor string. Any failure, bad
// base64, bad JSON, bad timestamp or empty id, comes back as
// *InvalidCursorError.
func DecodeCursor(s string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, &InvalidCursorError{Cause: err}
	}
	var payload cursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Cursor{}, &InvalidCursorError{Cause: err}
	}
	at, err := time.Parse(time.RFC3339Nano, payload.CreatedAt)
	if err != nil {
		return Cursor{}, &InvalidCursorError{Cause: err}
	}
	if payload.ID == "" {
		return Cursor{}, &InvalidCursorError{Cause: fmt.Errorf("missing id")}
	}
	return Cursor{CreatedAt: at, ID: payload.ID}, nil
}
