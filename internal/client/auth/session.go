package auth

import (
	"context"
	"sync"
)

// SessionNotifier рассылает событие "сессия истекла" подписчикам.
// Метод Notify подходит как api.SessionExpiredFunc
type SessionNotifier struct {
	subs map[int]func(ctx context.Context)
	mu   sync.Mutex
	next int
}

// NewSessionNotifier создает пустой notifier
func NewSessionNotifier() *SessionNotifier {
	return &SessionNotifier{subs: make(map[int]func(ctx context.Context))}
}

// Subscribe добавляет подписчика и возвращает функцию отписки
func (n *SessionNotifier) Subscribe(fn func(ctx context.Context)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Notify вызывает всех подписчиков. Подписчики вызываются вне блокировки,
// поэтому могут отписываться прямо из обработчика
func (n *SessionNotifier) Notify(ctx context.Context) {
	n.mu.Lock()
	subs := make([]func(ctx context.Context), 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.Unlock()

	for _, fn := range subs {
		fn(ctx)
	}
}
