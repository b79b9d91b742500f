package queue

import (
	"context"

	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

// Service is a bounded work queue between the event watcher and the
// notification dispatcher. Enqueue blocks once the buffer is full, which
// is the backpressure: a slow provider slows event consumption down
// rather than growing an unbounded backlog.
type Service struct {
	queue chan pawn.Message
	quit  chan bool

	ctx context.Context
	wm  pawn.WebhookMessager
}

type Processor interface {
	Process(pawn.Message) error
}

func NewService(capacity int, ctx context.Context, wm pawn.WebhookMessager) *Service {
	return &Service{
		queue: make(chan pawn.Message, capacity),
		quit:  make(chan bool),
		ctx:   ctx,
		wm:    wm,
	}
}

func (s *Service) Enqueue(message pawn.Message) {
	s.queue <- message
}

func (s *Service) Close() {
	s.quit <- true
}

func (s *Service) Start(p Processor) error {
	for {
		select {
		case message := <-s.queue:
			// process an item in the queue
			// it is up to the processor to handle the data type
			err := p.Process(message)
			if err != nil {
				// sends are not retried, the failure is reported and
				// the message dropped
				s.wm.NotifyError(s.ctx, err)
			}
		case <-s.quit:
			// drain what is already buffered before quitting
			for {
				select {
				case message := <-s.queue:
					err := p.Process(message)
					if err != nil {
						s.wm.NotifyError(s.ctx, err)
					}
				default:
					return nil
				}
			}
		}
	}
}
