package publisher

import (
	"context"
	"strconv"
	"sync"

	"weather-dashboard/internal/domain/model"
)

const defaultSubscriberBuffer = 8

// MemoryPublisher fans view models out to in-process subscribers such as server-sent event streams.
// A slow subscriber never blocks Publish: when its buffer is full the oldest pending view model is dropped.
type MemoryPublisher struct {
	mutex       sync.Mutex
	nextID      int
	subscribers map[int]chan model.ViewModel
	buffer      int
	published   int64
	dropped     int64
}

func NewMemoryPublisher(buffer int) *MemoryPublisher {
	if buffer < 1 {
		buffer = defaultSubscriberBuffer
	}
	return &MemoryPublisher{
		subscribers: make(map[int]chan model.ViewModel),
		buffer:      buffer,
	}
}

func (p *MemoryPublisher) Name() string {
	return "memory"
}

// Subscribe registers a subscriber. The returned cancel function unregisters it and closes the channel.
func (p *MemoryPublisher) Subscribe() (<-chan model.ViewModel, func()) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	id := p.nextID
	p.nextID++
	ch := make(chan model.ViewModel, p.buffer)
	p.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mutex.Lock()
			defer p.mutex.Unlock()
			delete(p.subscribers, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (p *MemoryPublisher) Publish(_ context.Context, viewModel model.ViewModel) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for _, ch := range p.subscribers {
		select {
		case ch <- viewModel:
			continue
		default:
		}

		// full: discard the oldest pending view model
		select {
		case <-ch:
			p.dropped++
		default:
		}
		select {
		case ch <- viewModel:
		default:
			p.dropped++
		}
	}
	p.published++
	return nil
}

func (p *MemoryPublisher) Health(_ context.Context) model.ComponentHealthStatus {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"subscribers": strconv.Itoa(len(p.subscribers)),
			"published":   strconv.FormatInt(p.published, 10),
			"dropped":     strconv.FormatInt(p.dropped, 10),
		},
	}
}
