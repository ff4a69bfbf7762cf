package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit is used when a caller does not ask for a page size.
const DefaultLimit = 20

// MaxLimit caps the page size a caller may ask for.
const MaxLimit = 100

// Cursor identifies the last row of a page of time-ordered records.
// ID breaks ties between records sharing the same timestamp.
type Cursor struct {
	At time.Time
	ID string
}

// After reports whether a record sorts strictly after the cursor.
func (c Cursor) After(at time.Time, id string) bool {
	if at.Equal(c.At) {
		return id > c.ID
	}
	return at.After(c.At)
}

// EncodeToken creates an opaque token from a timestamp and an id.
func EncodeToken(at time.Time, id string) string {
	return EncodeMultiFieldToken(at.UTC().Format(timeFormat), id)
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}
	at, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (time parse): %w", err)
	}
	return Cursor{At: at, ID: parts[1]}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.URLEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// NormalizeLimit clamps a requested page size into [1, MaxLimit].
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
