package repository

import (
	"math"

	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

var (
	ErrNotFound         = dao.ErrRecordNotFound
	ErrIDSpaceExhausted = dao.ErrIDSpaceExhausted
)

// Table is the part of dao.Table the repositories depend on.
type Table[T dao.Record] interface {
	ReadAll() ([]T, error)
	FindByID(id int32) (T, error)
	FindByField(field, value string) (T, error)
	Filter(keep func(T) bool) ([]T, error)
	Keys() ([]int32, error)
	Append(rec T) error
	Rewrite(recs []T) error
}

// key narrows an id to the 32-bit key stored on disk. Ids outside that range
// can never match a record.
func key(id int) (int32, bool) {
	if id < math.MinInt32 || id > math.MaxInt32 {
		return 0, false
	}
	return int32(id), true
}

// StoredText returns s as the store reads it back from a field of width bytes.
func StoredText(s string, width int) string { return dao.StoredText(s, width) }

const (
	LongText  = dao.LongText
	ShortText = dao.ShortText
)

func mapAll[T, D any](in []T, f func(T) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
