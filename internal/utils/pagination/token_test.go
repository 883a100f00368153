package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	cursor := Cursor{
		Date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 3, 5, 14, 30, 45, 123456789, time.UTC),
		ID:        "pay-123",
	}

	token := EncodeCursor(cursor)
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")

	decoded, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, cursor.Date.Equal(decoded.Date))
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, cursor.ID, decoded.ID)
}

func TestEncodeCursor_NormalisesToUTC(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	cursor := Cursor{
		Date:      time.Date(2024, 3, 5, 3, 0, 0, 0, nairobi),
		CreatedAt: time.Date(2024, 3, 5, 3, 0, 0, 0, nairobi),
		ID:        "pay-1",
	}

	decoded, err := DecodeCursor(EncodeCursor(cursor))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, decoded.Date.Location())
	assert.True(t, cursor.Date.Equal(decoded.Date))
}

func TestDecodeCursorError(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{"not base64", "this is not base64!", "base64 decode"},
		{"too few fields", EncodeMultiFieldToken("2024-03-05T00:00:00Z"), "split"},
		{"empty id", EncodeMultiFieldToken("2024-03-05T00:00:00Z", "2024-03-05T00:00:00Z", ""), "split"},
		{"bad date", EncodeMultiFieldToken("notadate", "2024-03-05T00:00:00Z", "p"), "date parse"},
		{"bad created_at", EncodeMultiFieldToken("2024-03-05T00:00:00Z", "later", "p"), "created_at parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	decoded, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)

	// An empty token decodes to a single empty field
	decodedEmpty, err := DecodeMultiFieldToken(EncodeMultiFieldToken())
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, decodedEmpty)

	// Pipes inside fields are not escaped
	decodedSpecial, err := DecodeMultiFieldToken(EncodeMultiFieldToken("a|b", "c"))
	assert.NoError(t, err)
	assert.Len(t, decodedSpecial, 3)
}
