package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/models"
)

// Source loads the current user's notifications.
type Source interface {
	ListNotifications(ctx context.Context, token string) ([]models.Notification, error)
}

// Feed caches the last fetched notifications and the unread badge.
type Feed struct {
	src Source
	log *zap.Logger

	mu        sync.RWMutex
	items     []models.Notification
	hasUnseen bool
	// gen is bumped by Reset; fetches started under an older gen are dropped.
	gen uint64
}

// NewFeed returns an empty feed.
func NewFeed(src Source, log *zap.Logger) *Feed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{src: src, log: log}
}

// Fetch reloads the list. Without a token it does nothing. A failed fetch keeps
// the previously loaded list and is only logged. A result that lands after
// Reset belongs to the previous session and is dropped.
func (f *Feed) Fetch(ctx context.Context, token string) {
	if token == "" {
		return
	}
	f.mu.RLock()
	gen := f.gen
	f.mu.RUnlock()

	items, err := f.src.ListNotifications(ctx, token)
	if err != nil {
		f.log.Warn("load notifications failed; keeping previous list", zap.Error(err))
		return
	}
	if ctx.Err() != nil {
		return
	}

	unseen := false
	for _, n := range items {
		if !n.Read {
			unseen = true
			break
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		f.log.Warn("stale data ignored", zap.String("screen", "notificaciones"))
		return
	}
	f.items = items
	f.hasUnseen = unseen
}

// Open marks the panel as opened: the badge goes away locally. Individual read
// flags and the backend are left untouched.
func (f *Feed) Open() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hasUnseen = false
	return append([]models.Notification(nil), f.items...)
}

// Items returns a copy of the cached list.
func (f *Feed) Items() []models.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]models.Notification(nil), f.items...)
}

// HasUnseen drives the bell badge.
func (f *Feed) HasUnseen() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.hasUnseen
}

// Reset empties the feed, used on logout.
func (f *Feed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
	f.hasUnseen = false
	f.gen++
}
