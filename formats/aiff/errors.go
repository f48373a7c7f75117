// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input has no FORM/AIFF header.
	ErrNotAiffFile = errors.New("not an AIFF file")

	ErrUnsupportedBitDepth = errors.New("only 8, 16, 24 and 32-bit AIFF supported")

	// ErrUnsupportedAiffLayout indicates a COMM chunk the decoder cannot use.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
