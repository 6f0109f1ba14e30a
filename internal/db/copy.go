package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// CopyRow is a value that knows its own COPY column order.
type CopyRow interface {
	CopyValues() []any
}

// ChannelSource implements pgx.CopyFromSource by reading rows from a channel.
// This provides natural backpressure between the producer and the COPY writer.
// Cancelling ctx ends iteration with ctx's error, which aborts the COPY.
type ChannelSource[T CopyRow] struct {
	ctx     context.Context
	ch      <-chan T
	current T
	count   int64
	err     error
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource[T CopyRow](ctx context.Context, ch <-chan T) *ChannelSource[T] {
	return &ChannelSource[T]{ctx: ctx, ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed or
// ctx is done; a closed channel after cancellation still reports ctx's error.
func (s *ChannelSource[T]) Next() bool {
	select {
	case row, ok := <-s.ch:
		if !ok {
			s.err = s.ctx.Err()
			return false
		}
		s.current = row
		s.count++
		return true
	case <-s.ctx.Done():
		s.err = s.ctx.Err()
		return false
	}
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource[T]) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err returns any error encountered during iteration.
func (s *ChannelSource[T]) Err() error {
	return s.err
}

// Count reports how many rows have been handed to COPY so far.
func (s *ChannelSource[T]) Count() int64 {
	return s.count
}

var _ pgx.CopyFromSource = (*ChannelSource[CopyRow])(nil)
