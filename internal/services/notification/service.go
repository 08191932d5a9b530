// Package notification implements the fire-and-forget notification
// sink. Messages are queued and drained by a background worker; the
// actual mail/SMS transport is an external collaborator, so dispatch
// here is a log line per channel. No delivery confirmation flows back
// to callers.
package notification

import (
	"errors"
	"log"
	"sync"

	"github.com/omokarogabriel/banking-system/internal/models"

	"github.com/google/uuid"
)

// Service errors
var (
	ErrInvalidChannel   = errors.New("invalid notification channel")
	ErrMissingRecipient = errors.New("recipient is required")
	ErrClosed           = errors.New("notification service is closed")
)

// DefaultQueueSize is used when NewService is given a non-positive size.
const DefaultQueueSize = 256

// Service queues and dispatches notifications.
type Service struct {
	mu     sync.RWMutex
	closed bool
	queue  chan models.Notification
	wg     sync.WaitGroup
}

// NewService creates a notification service and starts its worker.
func NewService(queueSize int) *Service {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	s := &Service{
		queue: make(chan models.Notification, queueSize),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// Send enqueues a notification. It never blocks: when the queue is full
// the message is dropped and logged, since no caller consumes delivery
// outcomes anyway.
func (s *Service) Send(n models.Notification) error {
	if n.Recipient == "" {
		return ErrMissingRecipient
	}
	switch n.Channel {
	case models.NotificationChannelEmail, models.NotificationChannelSMS:
	default:
		return ErrInvalidChannel
	}
	n.ID = uuid.NewString()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	select {
	case s.queue <- n:
		return nil
	default:
		log.Printf("notification queue full, dropping %s to %s", n.Channel, n.Recipient)
		return nil
	}
}

// Close stops the worker after draining queued messages.
func (s *Service) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Service) run() {
	defer s.wg.Done()
	for n := range s.queue {
		s.dispatch(n)
	}
}

func (s *Service) dispatch(n models.Notification) {
	switch n.Channel {
	case models.NotificationChannelEmail:
		log.Printf("email %s to %s: %s", n.ID, n.Recipient, n.Subject)
	case models.NotificationChannelSMS:
		log.Printf("sms %s to %s", n.ID, n.Recipient)
	}
}
