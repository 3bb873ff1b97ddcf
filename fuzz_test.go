// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytescan_test

import (
	"bytes"
	"testing"

	"code.hybscloud.com/bytescan"
	fuzzer "github.com/thepudds/fzgen/fuzzer"
)

func FuzzIndexEither(f *testing.F) {
	f.Add([]byte("hello world"), byte('o'), byte('w'))
	f.Add([]byte("abcXYZ"), byte('Y'), byte('Z'))
	f.Add([]byte("nnnnnnnnnnnnnnnnX"), byte('X'), byte('X'))
	f.Add([]byte{}, byte(0), byte(0))
	f.Add(bytes.Repeat([]byte{0}, 31), byte(0), byte(0xff))

	f.Fuzz(func(t *testing.T, p []byte, a, b byte) {
		want := refIndexEither(p, a, b)
		if got := bytescan.IndexEither(p, a, b); got != want {
			t.Fatalf("IndexEither(%v, %#x, %#x) = %d, want %d", p, a, b, got, want)
		}
		if got := bytescan.IndexEither(p, b, a); got != want {
			t.Fatalf("IndexEither swapped args = %d, want %d", got, want)
		}
	})
}

// FuzzLoaderMirrorsBuffer drives a Loader with a fuzzer-chosen interleaving
// of byte yields and word skips and validates the position bookkeeping
// against the plain buffer.
func FuzzLoaderMirrorsBuffer(f *testing.F) {
	f.Fuzz(func(t *testing.T, data []byte) {
		fz := fuzzer.NewFuzzer(data)
		var p []byte
		var steps []bool
		fz.Fill(&p, &steps)
		if len(p) > 1<<12 {
			p = p[:1<<12]
		}

		var it bytescan.Loader
		it.Reset(p)
		pos := 0
		for _, skip := range steps {
			if it.Remaining() <= 0 {
				break
			}
			if it.Remaining() != len(p)-pos {
				t.Fatalf("pos %d: Remaining() = %d, want %d", pos, it.Remaining(), len(p)-pos)
			}
			if skip && it.InWord() == bytescan.WordBytes {
				before := it.Remaining()
				it.SkipWord()
				if before > bytescan.WordBytes {
					pos += bytescan.WordBytes
				} else {
					pos = len(p) // tail abandoned
				}
				continue
			}
			if got := it.Next(); got != p[pos] {
				t.Fatalf("pos %d: Next() = %#x, want %#x", pos, got, p[pos])
			}
			pos++
		}
	})
}
