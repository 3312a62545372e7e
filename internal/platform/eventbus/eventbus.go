package eventbus

import (
	"context"
	"sync"
	"time"

	"maintenance-inspections/internal/platform/logger"
)

// DefaultListenerTimeout acota cada listener para no dejar goroutines colgadas.
const DefaultListenerTimeout = time.Minute

// Event es cualquier hecho publicado en el proceso.
type Event interface {
	Name() string
}

// Listener procesa un evento. Sus errores se loguean, no se propagan.
type Listener func(ctx context.Context, event Event) error

// Bus es un pub/sub en proceso: cada listener corre en su propia goroutine.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	log       logger.Logger
	timeout   time.Duration
	wg        sync.WaitGroup
}

func New(log logger.Logger) *Bus {
	if log == nil {
		log = logger.Nop()
	}
	return &Bus{
		listeners: make(map[string][]Listener),
		log:       log,
		timeout:   DefaultListenerTimeout,
	}
}

// Subscribe registra un listener para el nombre de evento dado.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish no bloquea. El ctx del request no se hereda (el request ya terminó
// cuando el listener corre); cada listener recibe su propio timeout.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	for _, l := range listeners {
		b.wg.Add(1)
		go func(l Listener) {
			defer b.wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					b.log.Error("event listener panicked", map[string]any{
						"event": event.Name(),
						"panic": rec,
					})
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
			defer cancel()

			if err := l(ctx, event); err != nil {
				b.log.Error("event listener failed", map[string]any{
					"event": event.Name(),
					"err":   err,
				})
			}
		}(l)
	}
}

// Wait espera a que terminen los listeners en curso (shutdown y tests).
func (b *Bus) Wait() {
	b.wg.Wait()
}
