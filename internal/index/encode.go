package index

import (
	"bytes"
	"contentkit/internal/domain/content"
	"encoding/binary"
	"math"
)

// Ref addresses one record. Slugs are unique per category only.
type Ref struct {
	Category content.Category `json:"category"`
	Slug     string           `json:"slug"`
}

func (r Ref) key() []byte {
	buf := make([]byte, 0, len(r.Category)+1+len(r.Slug))
	buf = append(buf, r.Category...)
	buf = append(buf, 0x00)
	buf = append(buf, r.Slug...)
	return buf
}

func refFromKey(k []byte) (Ref, bool) {
	i := bytes.IndexByte(k, 0x00)
	if i <= 0 || i+1 >= len(k) {
		return Ref{}, false
	}
	return Ref{Category: content.Category(k[:i]), Slug: string(k[i+1:])}, true
}

func clampNano(n int64) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// key = invTime(8) + category + 0x00 + slug, newest first
func makeTimeKey(unixNano int64, ref Ref) []byte {
	rk := ref.key()
	buf := make([]byte, 8, 8+len(rk))
	binary.BigEndian.PutUint64(buf, ^clampNano(unixNano))
	return append(buf, rk...)
}

func refFromTimeKey(k []byte) (Ref, bool) {
	if len(k) < 8+3 {
		return Ref{}, false
	}
	return refFromKey(k[8:])
}

// key = order(8) + time(8) + category + 0x00 + slug. Spokes without an
// order sort after ordered ones, then oldest first.
func makeSeriesKey(order *int, unixNano int64, ref Ref) []byte {
	o := uint64(math.MaxUint64)
	if order != nil {
		o = uint64(max(*order, 0))
	}
	rk := ref.key()
	buf := make([]byte, 16, 16+len(rk))
	binary.BigEndian.PutUint64(buf[:8], o)
	binary.BigEndian.PutUint64(buf[8:], clampNano(unixNano))
	return append(buf, rk...)
}

func refFromSeriesKey(k []byte) (Ref, bool) {
	if len(k) < 16+3 {
		return Ref{}, false
	}
	return refFromKey(k[16:])
}

// key = invTime(8) + id
func makeRunKey(unixNano int64, id string) []byte {
	buf := make([]byte, 8, 8+len(id))
	binary.BigEndian.PutUint64(buf, ^clampNano(unixNano))
	return append(buf, id...)
}
