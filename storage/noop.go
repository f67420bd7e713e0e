package storage

import "context"

// Noop is a [Storage] with no medium behind it. Every call returns
// [ErrUnavailable].
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrUnavailable }
func (Noop) Set(context.Context, string, []byte) error   { return ErrUnavailable }
func (Noop) Delete(context.Context, string) error        { return ErrUnavailable }
