// Package service fans club activity out to live feed subscribers.
package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const Channel = "club_feed"

const (
	EventCreated = "event.created"
	PhotoCreated = "photo.created"
)

type Message struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

type FeedService interface {
	// Publish is best effort: failures are logged, never returned.
	Publish(ctx context.Context, msgType string, data any)
	// Subscribe delivers raw JSON messages until ctx is done or the returned
	// close func is called.
	Subscribe(ctx context.Context) (<-chan []byte, func(), error)
}

// NewFeedService returns a Redis pub/sub feed, or an in-process one when rdb
// is nil.
func NewFeedService(rdb *redis.Client) FeedService {
	if rdb == nil {
		return NewMemoryFeed()
	}
	return &redisFeed{rdb: rdb}
}

func encode(msgType string, data any) ([]byte, bool) {
	payload, err := json.Marshal(Message{Type: msgType, Data: data, At: time.Now().UTC()})
	if err != nil {
		log.Printf("Failed to encode feed message %s: %v", msgType, err)
		return nil, false
	}
	return payload, true
}

type redisFeed struct {
	rdb *redis.Client
}

func (f *redisFeed) Publish(ctx context.Context, msgType string, data any) {
	payload, ok := encode(msgType, data)
	if !ok {
		return
	}
	if err := f.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		log.Printf("Failed to publish %s to feed: %v", msgType, err)
	}
}

func (f *redisFeed) Subscribe(ctx context.Context) (<-chan []byte, func(), error) {
	pubsub := f.rdb.Subscribe(ctx, Channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, err
	}

	out := make(chan []byte, 16)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}

	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				stop()
				return
			}
		}
	}()

	return out, stop, nil
}

type memoryFeed struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func NewMemoryFeed() FeedService {
	return &memoryFeed{subs: map[chan []byte]struct{}{}}
}

func (f *memoryFeed) Publish(_ context.Context, msgType string, data any) {
	payload, ok := encode(msgType, data)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- payload:
		default:
			// slow subscriber, drop
		}
	}
}

func (f *memoryFeed) Subscribe(ctx context.Context) (<-chan []byte, func(), error) {
	ch := make(chan []byte, 16)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, ch)
			close(ch)
			f.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		stop()
	}()

	return ch, stop, nil
}
