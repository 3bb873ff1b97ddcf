// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytescan

import (
	"math/bits"
	"unsafe"

	"code.hybscloud.com/bytescan/internal/bo"
)

// WordBytes is the width in bytes of the machine words the loader reads.
const WordBytes = bits.UintSize / 8

// Loader is a cursor over a byte buffer that reads memory one aligned
// machine word at a time while yielding bytes in buffer order.
//
// Semantics and design:
//   - Alignment: Reset rounds the buffer's start address down to a word
//     boundary and shifts out the synthetic leading bytes, so every wide
//     load is aligned. Architectures that penalize or forbid unaligned
//     wide loads never see one.
//   - Byte order: the next byte to yield sits at the low-order end of the
//     word on little-endian hosts and at the high-order end on big-endian
//     hosts. The shift direction is keyed on bo.Big, a per-port
//     compile-time constant on the common Go ports.
//   - Ownership: a Loader is a plain value exclusively owned by its
//     caller. It allocates nothing and must not be shared between
//     goroutines. Independent Loaders over independent buffers are
//     race-free.
//   - Pointer hygiene: the only pointer the cursor retains is base,
//     which always lies inside the buffer's allocation, so the GC never
//     sees a past-the-end address. Load positions are tracked as an
//     integer offset and turned into a pointer transiently, and only
//     for loads covering at least one in-bounds byte.
//
// Contract: Next and Peek require Remaining() > 0; callers gate on
// Remaining. SkipWord abandons any sub-word tail, so it must only be
// called after the current word has been inspected (see IndexEither).
type Loader struct {
	word      uint           // current chunk; next byte at the bo.Big-determined end
	inWord    uint           // bytes of word not yet yielded
	remaining uint           // real buffer bytes not yet yielded, including those in word
	base      unsafe.Pointer // aligned start of the buffer's first word; in-allocation
	off       uint           // byte offset of the next load from base
	tail      uint           // real bytes still to load at off
}

// Reset positions the cursor at the start of p. A nil or empty slice
// produces an exhausted cursor without touching memory.
func (it *Loader) Reset(p []byte) {
	if len(p) == 0 {
		*it = Loader{}
		return
	}
	ptr := unsafe.Pointer(unsafe.SliceData(p))
	extra := uint(uintptr(ptr)) % WordBytes
	// Rounding down cannot leave p's allocation: heap object slots are
	// at least word aligned, so the aligned start never precedes the
	// slot holding p's first byte.
	it.base = unsafe.Add(ptr, -int(extra))
	it.window(0, uint(len(p)), extra)
}

// loadAt reads the aligned word at byte offset off from base. Callers
// ensure the word covers at least one in-bounds buffer byte, so the
// transient pointer is valid and the load cannot cross a page boundary.
func (it *Loader) loadAt(off uint) uint {
	return *(*uint)(unsafe.Add(it.base, off))
}

// window begins a new window at the aligned offset off with n pending
// real bytes preceded by extra synthetic ones. On every call after
// Reset, extra is zero.
func (it *Loader) window(off, n, extra uint) {
	s := min(n+extra, WordBytes)
	it.word = shiftOut(it.loadAt(off), extra)
	it.inWord = WordBytes - extra
	it.remaining = n
	it.off = off + s
	it.tail = n + extra - s
}

// shiftOut discards n already-yielded (or synthetic) bytes from the
// yielding end of w. On supported ports bo.Big is constant and the dead
// branch is compiled away.
func shiftOut(w uint, n uint) uint {
	if bo.Big {
		return w << (8 * n)
	}
	return w >> (8 * n)
}

// Peek returns the next byte without consuming it.
func (it *Loader) Peek() byte {
	if bo.Big {
		return byte(it.word >> (bits.UintSize - 8))
	}
	return byte(it.word)
}

// Next yields the next byte and advances the cursor, transparently
// reloading the following aligned word when the current one is spent.
func (it *Loader) Next() byte {
	ch := it.Peek()
	it.remaining--
	it.inWord--
	it.word = shiftOut(it.word, 1)
	if it.inWord == 0 && it.remaining > 0 {
		it.window(it.off, it.tail, 0)
	}
	return ch
}

// SkipWord advances a full word without yielding bytes. When less than a
// full word of real bytes would remain afterwards, the cursor is
// exhausted instead: the sub-word tail is intentionally abandoned, which
// is only sound because callers test the current word before skipping.
func (it *Loader) SkipWord() {
	if it.remaining > WordBytes {
		it.word = it.loadAt(it.off)
		it.inWord = WordBytes
		it.remaining -= WordBytes
		it.off += WordBytes
		it.tail -= min(it.tail, WordBytes)
		return
	}
	it.remaining = 0
}

// Word returns the currently loaded chunk. Bytes beyond Remaining() are
// unspecified; they stem from the aligned load covering the buffer tail.
func (it *Loader) Word() uint { return it.word }

// InWord returns how many bytes of the current word are still pending.
// It is below WordBytes only directly after Reset of an unaligned buffer.
func (it *Loader) InWord() int { return int(it.inWord) }

// Remaining returns how many buffer bytes have not been yielded yet,
// including those still packed in the current word.
func (it *Loader) Remaining() int { return int(it.remaining) }
