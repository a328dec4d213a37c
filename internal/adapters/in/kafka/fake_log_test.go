package kafka_test

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// partitionLog is an in-memory single partition with a committed group offset.
type partitionLog struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed int64
	commits   [][]kafka.Message
	fetchErrs []error
	opened    int
}

func newPartitionLog(values ...string) *partitionLog {
	l := &partitionLog{}
	for _, v := range values {
		l.append(v)
	}
	return l
}

func (l *partitionLog) append(value string) {
	l.messages = append(l.messages, kafka.Message{
		Topic:  "order-processing",
		Offset: int64(len(l.messages)),
		Key:    []byte(`{"order_id":1}`),
		Value:  []byte(value),
		Time:   time.Now(),
	})
}

// reader opens a cursor at the committed offset, like a new group member would.
func (l *partitionLog) reader() *logReader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opened++
	return &logReader{log: l, next: l.committed}
}

func (l *partitionLog) commitCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.commits)
}

func (l *partitionLog) committedOffset() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.committed
}

type logReader struct {
	log    *partitionLog
	next   int64
	closed bool
}

func (r *logReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.log.mu.Lock()
	if len(r.log.fetchErrs) > 0 {
		err := r.log.fetchErrs[0]
		r.log.fetchErrs = r.log.fetchErrs[1:]
		r.log.mu.Unlock()
		return kafka.Message{}, err
	}
	if r.next < int64(len(r.log.messages)) {
		msg := r.log.messages[r.next]
		r.next++
		r.log.mu.Unlock()
		return msg, nil
	}
	r.log.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *logReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	r.log.commits = append(r.log.commits, msgs)
	if len(msgs) > 0 {
		r.log.committed = msgs[len(msgs)-1].Offset + 1
	}
	return nil
}

func (r *logReader) Close() error {
	r.closed = true
	return nil
}

// recordingHandler stores every batch and returns the scripted results in order.
type recordingHandler[V any] struct {
	mu      sync.Mutex
	batches [][]V
	results []error
	onBatch func(n int)
}

func (h *recordingHandler[V]) record(values []V) error {
	h.mu.Lock()
	h.batches = append(h.batches, values)
	n := len(h.batches)
	var err error
	if n <= len(h.results) {
		err = h.results[n-1]
	}
	h.mu.Unlock()

	if h.onBatch != nil {
		h.onBatch(n)
	}
	return err
}

func (h *recordingHandler[V]) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.batches)
}
