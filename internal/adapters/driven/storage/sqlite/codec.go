package sqlite

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// timeLayout is fixed width so that lexical order of stored timestamps
// matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// legacyTimeLayouts are formats written by earlier releases.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime decodes an uploaded_at cell. The driver may hand back a
// time.Time, a string or a unix timestamp depending on how the row was written.
func parseTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), nil
	case int64:
		return time.Unix(val, 0).UTC(), nil
	case []byte:
		return parseTimeString(string(val))
	case string:
		return parseTimeString(val)
	case nil:
		return time.Time{}, fmt.Errorf("uploaded_at is NULL")
	default:
		return time.Time{}, fmt.Errorf("unexpected uploaded_at type %T", v)
	}
}

func parseTimeString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// decodeEmbedding reads an embedding cell. BLOBs hold little-endian float32
// values; TEXT cells written by earlier releases hold a JSON array.
func decodeEmbedding(v any) ([]float32, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		if len(val)%4 != 0 {
			return nil, fmt.Errorf("embedding blob has %d bytes, not a multiple of 4", len(val))
		}
		return bytesToFloat32Slice(val), nil
	case string:
		if strings.TrimSpace(val) == "" || val == "null" {
			return nil, nil
		}
		var floats []float32
		if err := json.Unmarshal([]byte(val), &floats); err != nil {
			return nil, fmt.Errorf("decoding legacy embedding: %w", err)
		}
		if len(floats) == 0 {
			return nil, nil
		}
		return floats, nil
	default:
		return nil, fmt.Errorf("unexpected embedding type %T", v)
	}
}

// embeddingArg returns the value bound for the embedding column.
func embeddingArg(floats []float32) any {
	if len(floats) == 0 {
		return nil
	}
	return float32SliceToBytes(floats)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
