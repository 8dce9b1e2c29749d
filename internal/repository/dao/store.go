package dao

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var storeOps = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "eventdesk",
	Subsystem: "store",
	Name:      "operation_duration_seconds",
	Help:      "Duration of record store file operations.",
}, []string{"entity", "op"})

// Collectors exposes the store metrics for registration by the metrics package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{storeOps}
}

// Table is one entity's .dat file: a flat concatenation of fixed-width records
// with no header. Nothing here locks the file; the console process may append
// to it at any time.
type Table[T Record] struct {
	entity Entity
	path   string
	codec  Codec[T]
}

func NewTable[T Record](dataDir string, entity Entity, codec Codec[T]) *Table[T] {
	return &Table[T]{
		entity: entity,
		path:   filepath.Join(dataDir, entity.FileName()),
		codec:  codec,
	}
}

func (t *Table[T]) Entity() Entity { return t.entity }
func (t *Table[T]) Path() string   { return t.path }
func (t *Table[T]) Width() int     { return t.codec.Width() }

func (t *Table[T]) observe(op string, start time.Time) {
	storeOps.WithLabelValues(string(t.entity), op).Observe(time.Since(start).Seconds())
}

func (t *Table[T]) wrap(op string, err error) error {
	return fmt.Errorf("%s.%s(%s) -> %w", t.entity, op, t.path, err)
}

// ReadAll decodes every complete record in file order. A missing file is an
// empty table; a trailing partial record is ignored.
func (t *Table[T]) ReadAll() ([]T, error) {
	defer t.observe("read_all", time.Now())

	data, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, t.wrap("ReadAll", err)
	}

	width := t.codec.Width()
	out := make([]T, 0, len(data)/width)
	for off := 0; off+width <= len(data); off += width {
		rec, err := t.codec.Decode(data[off : off+width])
		if err != nil {
			return nil, t.wrap("ReadAll", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// FindByID returns the first record whose key equals id.
func (t *Table[T]) FindByID(id int32) (T, error) {
	return t.find("FindByID", func(rec T) bool { return rec.Key() == id })
}

// FindByField returns the first record whose decoded field equals value.
func (t *Table[T]) FindByField(field, value string) (T, error) {
	var zero T
	if _, ok := zero.Field(field); !ok {
		return zero, t.wrap("FindByField", fmt.Errorf("%q -> %w", field, ErrUnknownField))
	}
	return t.find("FindByField", func(rec T) bool {
		v, _ := rec.Field(field)
		return v == value
	})
}

func (t *Table[T]) find(op string, match func(T) bool) (T, error) {
	var zero T
	all, err := t.ReadAll()
	if err != nil {
		return zero, err
	}
	for _, rec := range all {
		if match(rec) {
			return rec, nil
		}
	}
	return zero, t.wrap(op, ErrRecordNotFound)
}

// Filter returns every record for which keep is true, in file order.
func (t *Table[T]) Filter(keep func(T) bool) ([]T, error) {
	all, err := t.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for _, rec := range all {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Keys returns the key of every record, in file order.
func (t *Table[T]) Keys() ([]int32, error) {
	all, err := t.ReadAll()
	if err != nil {
		return nil, err
	}
	keys := make([]int32, len(all))
	for i, rec := range all {
		keys[i] = rec.Key()
	}
	return keys, nil
}

// Append writes exactly one record at the end of the file, creating it if needed.
func (t *Table[T]) Append(rec T) error {
	defer t.observe("append", time.Now())

	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return t.wrap("Append", err)
	}
	if _, err := f.Write(t.codec.Encode(rec)); err != nil {
		_ = f.Close()
		return t.wrap("Append", err)
	}
	if err := f.Close(); err != nil {
		return t.wrap("Append", err)
	}
	return nil
}

// Rewrite replaces the whole file with recs through a temp file and a rename.
func (t *Table[T]) Rewrite(recs []T) error {
	defer t.observe("rewrite", time.Now())

	width := t.codec.Width()
	buf := make([]byte, 0, len(recs)*width)
	for _, rec := range recs {
		buf = append(buf, t.codec.Encode(rec)...)
	}
	if err := writeFileAtomic(t.path, buf); err != nil {
		return t.wrap("Rewrite", err)
	}
	return nil
}

// Verify checks the file length against the configured width. A file that
// only fits another known layout's width fails with ErrWidthMismatch.
func (t *Table[T]) Verify(candidates ...int) error {
	info, err := os.Stat(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return t.wrap("Verify", err)
	}
	size := int(info.Size())
	width := t.codec.Width()
	if size%width == 0 {
		for _, other := range candidates {
			if other != width && other > 0 && size%other == 0 {
				// The length fits both strides; only the decoded ids can tell.
				return t.verifyKeys(other)
			}
		}
		return nil
	}
	for _, other := range candidates {
		if other != width && other > 0 && size%other == 0 {
			return t.wrap("Verify", fmt.Errorf("%d bytes fit width %d, configured %d -> %w",
				size, other, width, ErrWidthMismatch))
		}
	}
	// Neither width divides the size: treat the remainder as an interrupted append.
	return nil
}

// verifyKeys fails when a record read at the configured width carries an id
// the console could not have allocated, which is what a shifted stride yields.
func (t *Table[T]) verifyKeys(other int) error {
	recs, err := t.ReadAll()
	if err != nil {
		return err
	}
	for i, rec := range recs {
		if k := rec.Key(); k < IDMin || k > IDMax {
			return t.wrap("Verify", fmt.Errorf("record %d decodes id %d at width %d, file may use width %d -> %w",
				i, k, t.codec.Width(), other, ErrWidthMismatch))
		}
	}
	return nil
}

// Migrate re-encodes a file written with the from codec into this table's
// codec and returns the number of records carried over.
func (t *Table[T]) Migrate(from Codec[T]) (int, error) {
	old := &Table[T]{entity: t.entity, path: t.path, codec: from}
	recs, err := old.ReadAll()
	if err != nil {
		return 0, err
	}
	if err := t.Rewrite(recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// writeFileAtomic writes data next to path and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile -> %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("os.Rename -> %w", err)
	}
	return nil
}

// WriteFileAtomic is the temp-file-and-rename write shared with the projection.
func WriteFileAtomic(path string, data []byte) error {
	return writeFileAtomic(path, data)
}
