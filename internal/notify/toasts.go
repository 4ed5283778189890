package notify

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Toast is one transient message.
type Toast struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Toasts is the notification sink. Toasts stack without limit or
// de-duplication and each dismisses itself after the TTL.
type Toasts struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	after  func(time.Duration, func()) *time.Timer
	logger *slog.Logger
	nextID uint64
	active []Toast
}

func NewToasts(ttl time.Duration, logger *slog.Logger) *Toasts {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Toasts{ttl: ttl, now: time.Now, after: time.AfterFunc, logger: logger}
}

// Notify shows message and schedules its dismissal. It never blocks.
func (t *Toasts) Notify(message string) {
	t.mu.Lock()
	t.nextID++
	now := t.now()
	toast := Toast{ID: t.nextID, Message: message, CreatedAt: now, ExpiresAt: now.Add(t.ttl)}
	t.active = append(t.active, toast)
	t.mu.Unlock()

	t.logger.Debug("notification", "id", toast.ID, "message", message)
	t.after(t.ttl, func() { t.dismiss(toast.ID) })
}

func (t *Toasts) dismiss(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, toast := range t.active {
		if toast.ID == id {
			t.active = append(t.active[:i], t.active[i+1:]...)
			return
		}
	}
}

// Active returns the toasts currently shown, oldest first.
func (t *Toasts) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Toast, len(t.active))
	copy(out, t.active)
	return out
}
