// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytescan

import "time"

// Options configures Reader behavior.
type Options struct {
	// BufferSize caps the internal token buffer (bytes). A token longer
	// than the buffer yields ErrTooLong. Zero or negative selects the
	// default (64KiB).
	BufferSize int

	// RetryDelay controls how the Reader handles iox.ErrWouldBlock from
	// the underlying reader:
	//   - negative: nonblock, return ErrWouldBlock immediately
	//   - zero: yield (runtime.Gosched) and retry
	//   - positive: sleep for the duration and retry
	RetryDelay time.Duration
}

var defaultOptions = Options{
	BufferSize: 64 * 1024,
	RetryDelay: -1, // default: nonblock
}

type Option func(*Options)

func WithBufferSize(n int) Option {
	return func(o *Options) { o.BufferSize = n }
}

// WithRetryDelay sets the retry/wait policy used when the underlying reader returns iox.ErrWouldBlock.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock enables cooperative blocking (yield-and-retry) on iox.ErrWouldBlock.
func WithBlock() Option {
	return func(o *Options) { o.RetryDelay = 0 }
}

// WithNonblock forces non-blocking behavior (return iox.ErrWouldBlock immediately).
func WithNonblock() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}
