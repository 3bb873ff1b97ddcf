// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytescan

import "errors"

var (
	// ErrInvalidArgument reports an invalid configuration or nil reader.
	ErrInvalidArgument = errors.New("bytescan: invalid argument")

	// ErrTooLong reports a token that does not fit the Reader's buffer.
	ErrTooLong = errors.New("bytescan: token too long")
)
