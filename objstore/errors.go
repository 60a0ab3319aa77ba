/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package objstore

import "errors"

// Sentinel errors returned by object accessors and, by extension, the font and encoding
// packages built on top of them. Callers use errors.Is to classify a failure without caring
// about the offending object's exact type or position.
var (
	// ErrNotSupported is returned when an object encodes a feature this package does not
	// implement, e.g. an encoding name with no known mapping.
	ErrNotSupported = errors.New("objstore: not supported")

	// ErrTypeMismatch is returned when an object was resolved but is not of the expected
	// primitive kind (e.g. a Dictionary expected where a Name was found).
	ErrTypeMismatch = errors.New("objstore: type mismatch")

	// ErrRangeCheck is returned when a numeric value or index falls outside the range the
	// PDF specification allows for it.
	ErrRangeCheck = errors.New("objstore: range check")
)
