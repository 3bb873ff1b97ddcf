// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytescan

import (
	"io"
	"runtime"
	"time"

	"code.hybscloud.com/iox"
)

// Reader splits an io.Reader into tokens terminated by either of two
// delimiter bytes, located with IndexEither over an internal buffer.
//
// Semantics:
//   - One token per ReadToken call. The token excludes the delimiter;
//     the terminating byte is reported separately. Consecutive
//     delimiters yield empty tokens.
//   - The returned slice aliases the internal buffer and is valid only
//     until the next ReadToken call.
//   - A final unterminated token is returned together with io.EOF and a
//     zero delimiter.
//   - A token longer than the internal buffer yields ErrTooLong.
//
// Non-blocking semantics: iox.ErrWouldBlock and iox.ErrMore from the
// underlying reader are surfaced as ErrWouldBlock / ErrMore. Partial
// progress is retained internally; the caller must retry ReadToken on
// the SAME Reader instance to complete the in-flight token. With
// WithBlock or a positive WithRetryDelay the Reader emulates cooperative
// blocking instead.
//
// A Reader must not be used from more than one goroutine concurrently.
type Reader struct {
	rd   io.Reader
	a, b byte

	buf     []byte
	r, w    int  // pending bytes live in buf[r:w]
	scanned int  // prefix of the pending token already searched
	eof     bool // underlying reader reported io.EOF

	retryDelay time.Duration
}

// NewReader returns a Reader yielding tokens from rd terminated by
// either a or b. The delimiters may be equal.
func NewReader(rd io.Reader, a, b byte, opts ...Option) *Reader {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.BufferSize <= 0 {
		o.BufferSize = defaultOptions.BufferSize
	}
	return &Reader{
		rd:         rd,
		a:          a,
		b:          b,
		buf:        make([]byte, o.BufferSize),
		retryDelay: o.RetryDelay,
	}
}

// NewLineReader returns a Reader splitting rd on LF or CR.
func NewLineReader(rd io.Reader, opts ...Option) *Reader {
	return NewReader(rd, '\n', '\r', opts...)
}

// ReadToken returns the next token and the delimiter byte that ended it.
func (r *Reader) ReadToken() (token []byte, delim byte, err error) {
	if r.rd == nil {
		return nil, 0, ErrInvalidArgument
	}
	var blocked error
	for {
		// Search only bytes not covered by a previous (incomplete) pass.
		if i := IndexEither(r.buf[r.r+r.scanned:r.w], r.a, r.b); i >= 0 {
			end := r.r + r.scanned + i
			token = r.buf[r.r:end]
			delim = r.buf[end]
			r.r = end + 1
			r.scanned = 0
			return token, delim, nil
		}
		r.scanned = r.w - r.r

		if r.eof {
			// Stream ended; flush the unterminated trailing token, if any.
			if r.w > r.r {
				token = r.buf[r.r:r.w]
				r.r = r.w
				r.scanned = 0
				return token, 0, io.EOF
			}
			return nil, 0, io.EOF
		}

		if blocked != nil {
			// The bytes delivered alongside the control-flow signal did
			// not complete a token. In nonblock mode, surface the signal;
			// progress is retained for the retry. With a blocking retry
			// policy, wait and keep reading instead.
			re := blocked
			blocked = nil
			if r.retryDelay < 0 {
				return nil, 0, re
			}
			if re == ErrWouldBlock {
				r.waitOnceOnWouldBlock()
			}
		}

		if r.w == len(r.buf) {
			if r.r == 0 {
				return nil, 0, ErrTooLong
			}
			// Slide the pending token to the buffer start to make room.
			copy(r.buf, r.buf[r.r:r.w])
			r.w -= r.r
			r.r = 0
		}

		n, re := r.readOnce(r.buf[r.w:])
		r.w += n
		switch {
		case re == nil:
		case re == io.EOF:
			// Scan any bytes delivered with EOF before flushing.
			r.eof = true
		case (re == ErrWouldBlock || re == ErrMore) && n > 0:
			// Scan what arrived before surfacing the control-flow signal.
			blocked = re
		default:
			return nil, 0, re
		}
	}
}

func (r *Reader) waitOnceOnWouldBlock() bool {
	// returns whether the caller should retry
	if r.retryDelay < 0 {
		return false
	}
	if r.retryDelay == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(r.retryDelay)
	return true
}

func (r *Reader) readOnce(p []byte) (n int, err error) {
	for {
		n, err = r.rd.Read(p)
		// Guard against broken Readers that violate the io.Reader contract by
		// returning (0, nil) on a non-empty buffer. Without this, the token
		// loop can spin indefinitely.
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrNoProgress
		}
		if n > 0 {
			return n, err
		}
		if err != ErrWouldBlock {
			return n, err
		}
		if !r.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

// These are provided as package-level aliases so callers can reference the
// semantic control-flow errors without importing iox directly.
var (
	// ErrWouldBlock means “no further progress without waiting”.
	//
	// It is an expected, non-failure control-flow signal for non-blocking I/O.
	// Any buffered partial token is retained and completed on a later call.
	//
	// Caller action: stop the current attempt and retry later (after readiness/event),
	// or configure RetryDelay to emulate cooperative blocking on top of a non-blocking transport.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means “this completion is usable and more completions will follow”.
	//
	// It is not io.EOF and not “try later”. The underlying operation remains
	// active and additional data is expected from it.
	//
	// Caller action: call ReadToken again to continue consuming the stream.
	ErrMore = iox.ErrMore
)
