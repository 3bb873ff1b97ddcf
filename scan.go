// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bytescan locates bytes in buffers one machine word at a time.
//
// Semantics and design:
//   - Core primitive: IndexEither reports the offset of the first
//     occurrence of either of two target bytes, or -1. It reads the
//     buffer in aligned native-word chunks and tests all byte lanes of a
//     word at once, dropping to byte-at-a-time work only at the buffer
//     edges and inside a word known to contain a hit.
//   - Portability: results are identical on little- and big-endian hosts;
//     only the internal shift direction differs, selected per port at
//     compile time (internal/bo).
//   - No allocation: the scan path allocates nothing and returns
//     synchronously; cost is bounded strictly by the buffer length.
//
// For scanning a stream rather than a buffer, Reader splits an io.Reader
// into tokens terminated by either of two delimiter bytes, with the
// non-blocking control-flow semantics of iox (ErrWouldBlock / ErrMore).
package bytescan

// Lane masks for word-parallel zero detection: lanesLo has the low bit
// and lanesHi the high bit of every byte lane set.
const (
	lanesLo = ^uint(0) / 0xff
	lanesHi = lanesLo * 0x80
)

// broadcast fills every byte lane of a word with c.
func broadcast(c byte) uint { return lanesLo * uint(c) }

// hasLane reports whether any byte lane of w equals the byte broadcast
// in pattern. A lane of w^pattern is zero exactly where w holds the
// target, and ((x-lanesLo) & ^x & lanesHi) sets a lane's high bit only
// when that lane of x is zero.
func hasLane(w, pattern uint) bool {
	x := w ^ pattern
	return (x-lanesLo) & ^x & lanesHi != 0
}

// IndexEither returns the index of the first byte in p equal to a or b,
// or -1 if neither is present. The two targets may be equal, in which
// case it degenerates to a single-byte search.
//
// The returned index is always the leftmost occurrence of either target,
// matching a linear scan, regardless of how the targets share a word.
func IndexEither(p []byte, a, b byte) int {
	if len(p) == 0 {
		return -1
	}
	var it Loader
	it.Reset(p)

	// Consume the partial first word byte-by-byte so the word loop below
	// only ever sees fully populated, aligned words.
	for it.Remaining() > 0 && it.InWord() < WordBytes {
		if ch := it.Next(); ch == a || ch == b {
			return len(p) - it.Remaining() - 1
		}
	}

	pa, pb := broadcast(a), broadcast(b)
	for it.Remaining() > 0 {
		w := it.Word()
		if hasLane(w, pa) || hasLane(w, pb) {
			// The word holds a hit (or, for the final short word, the
			// lane test fired on bytes past the buffer). Locate it
			// byte-by-byte from the start of the word; testing both
			// targets keeps the result leftmost even when they share
			// the word.
			pos := len(p) - it.Remaining()
			for it.Remaining() > 0 {
				if ch := it.Next(); ch == a || ch == b {
					return pos
				}
				pos++
			}
			// Only reachable for the final word: the lane test fired on
			// bytes beyond the buffer tail.
			return -1
		}
		it.SkipWord()
	}
	return -1
}

// IndexByte returns the index of the first byte in p equal to c, or -1.
func IndexByte(p []byte, c byte) int { return IndexEither(p, c, c) }
