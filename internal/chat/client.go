package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Apology replaces the reply of any send that failed
const Apology = "Sorry, I'm having trouble responding right now. Please try again in a moment."

// DefaultSpacing is the pause after each completed send
const DefaultSpacing = time.Second

// ErrQueueClosed is returned by Enqueue after Close
var ErrQueueClosed = errors.New("chat queue closed")

// Sender delivers one message and returns the reply
type Sender interface {
	Send(ctx context.Context, message string) (Reply, error)
}

// HTTPSender posts messages to the chat endpoint
type HTTPSender struct {
	url    string
	client *http.Client
}

func NewHTTPSender(baseURL string, timeout time.Duration) *HTTPSender {
	return &HTTPSender{
		url:    baseURL + "/chat",
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSender) Send(ctx context.Context, message string) (Reply, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return Reply{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return Reply{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Reply{}, fmt.Errorf("chat endpoint returned %s", resp.Status)
	}
	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Reply{}, fmt.Errorf("failed to decode chat reply: %w", err)
	}
	return reply, nil
}

type job struct {
	message string
	result  chan Reply
}

// Queue sends messages one at a time in FIFO order with a fixed pause after
// each completion. Queued messages cannot be cancelled. A failed send yields
// Apology and the queue moves on.
type Queue struct {
	sender  Sender
	spacing time.Duration

	mu      sync.Mutex
	pending []job
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

func NewQueue(sender Sender, spacing time.Duration) *Queue {
	q := &Queue{
		sender:  sender,
		spacing: spacing,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue appends message and returns a channel that receives its reply
func (q *Queue) Enqueue(message string) (<-chan Reply, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, ErrQueueClosed
	}
	j := job{message: message, result: make(chan Reply, 1)}
	q.pending = append(q.pending, j)
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return j.result, nil
}

// Send enqueues message and waits for its reply
func (q *Queue) Send(message string) (Reply, error) {
	result, err := q.Enqueue(message)
	if err != nil {
		return Reply{}, err
	}
	return <-result, nil
}

// Close stops accepting messages and waits until every queued one is answered
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		select {
		case q.wake <- struct{}{}:
		default:
		}
	}
	q.mu.Unlock()
	<-q.done
}

func (q *Queue) next() (job, bool, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return job{}, false, q.closed
	}
	j := q.pending[0]
	q.pending[0] = job{}
	q.pending = q.pending[1:]
	return j, true, false
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		j, ok, closed := q.next()
		if closed {
			return
		}
		if !ok {
			<-q.wake
			continue
		}

		reply, err := q.sender.Send(context.Background(), j.message)
		if err != nil {
			reply = Reply{Response: Apology}
		}
		j.result <- reply

		if q.spacing > 0 {
			time.Sleep(q.spacing)
		}
	}
}
