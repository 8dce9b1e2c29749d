package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

const DefaultDebounce = 200 * time.Millisecond

// Watcher follows the data directory. The console process writes the .dat
// files behind our back, so every change there is batched, triggers one
// projection rebuild and is fanned out to subscribers.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func(changes []domain.Change)

	mu     sync.Mutex
	nextID int
	subs   map[int]chan domain.Change
}

func NewWatcher(dir string, debounce time.Duration, onChange func(changes []domain.Change)) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		subs:     make(map[int]chan domain.Change),
	}
}

// Subscribe returns a buffered feed of changes and a function that ends the
// subscription. Slow subscribers miss changes rather than block the watcher.
func (w *Watcher) Subscribe() (<-chan domain.Change, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	ch := make(chan domain.Change, 32)
	w.subs[id] = ch

	return ch, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if c, ok := w.subs[id]; ok {
			delete(w.subs, id)
			close(c)
		}
	}
}

func (w *Watcher) publish(changes []domain.Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		for _, c := range changes {
			select {
			case ch <- c:
			default:
			}
		}
	}
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher -> %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("fw.Add(%s) -> %w", w.dir, err)
	}
	zap.L().Info("watching data directory", zap.String("dir", w.dir))

	var (
		pending []domain.Change
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			change, relevant := w.classify(ev)
			if !relevant {
				continue
			}
			pending = append(pending, change)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			zap.L().Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			batch := pending
			pending = nil
			zap.L().Debug("data directory changed", zap.Int("changes", len(batch)))
			if w.onChange != nil {
				w.onChange(batch)
			}
			w.publish(batch)
		}
	}
}

// classify keeps .dat events and drops temp files and projection writes.
func (w *Watcher) classify(ev fsnotify.Event) (domain.Change, bool) {
	base := filepath.Base(ev.Name)
	if !strings.HasSuffix(base, ".dat") || strings.HasPrefix(base, ".") || base == "temp.dat" {
		return domain.Change{}, false
	}

	var op string
	switch {
	case ev.Has(fsnotify.Create):
		op = "create"
	case ev.Has(fsnotify.Write):
		op = "write"
	case ev.Has(fsnotify.Remove):
		op = "remove"
	case ev.Has(fsnotify.Rename):
		op = "rename"
	default:
		return domain.Change{}, false
	}

	entity := ""
	if e, err := dao.ParseEntity(strings.TrimSuffix(base, ".dat")); err == nil {
		entity = string(e)
	}

	return domain.Change{
		Entity:    entity,
		File:      base,
		Op:        op,
		Timestamp: time.Now().UTC(),
	}, true
}
