package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const (
	timeFormat = time.RFC3339Nano
	separator  = "|"
)

// Cursor is the position of the last row of a page in a (date DESC, created_at DESC, id DESC) ordering.
type Cursor struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
}

// EncodeCursor creates an opaque, URL-safe token from a cursor.
func EncodeCursor(c Cursor) string {
	return EncodeMultiFieldToken(c.Date.UTC().Format(timeFormat), c.CreatedAt.UTC().Format(timeFormat), c.ID)
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return Cursor{Date: date, CreatedAt: createdAt, ID: parts[2]}, nil
}

// EncodeMultiFieldToken joins fields with "|" and encodes them.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, separator)))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decoded), separator), nil
}
