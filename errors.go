// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

import "errors"

// Sentinel errors for validation and conversion failures. All are
// configuration or argument errors: no partial work has been performed
// when one is returned.
var (
	// ErrInvalidSampleCount is returned when a multisample negotiation is
	// asked for one sample or fewer.
	ErrInvalidSampleCount = errors.New("texel: sample count must be greater than one")

	// ErrCompressedConversion is returned when a block-compressed payload
	// would have to change representation. Compressed data only passes
	// through unchanged.
	ErrCompressedConversion = errors.New("texel: cannot convert block-compressed image data")

	// ErrConversionUnsupported is returned for representation pairs the
	// converter cannot translate, such as depth-stencil packing.
	ErrConversionUnsupported = errors.New("texel: unsupported image conversion")

	// ErrRegionOutOfBounds is returned when a texture region lies outside
	// the subresource it addresses.
	ErrRegionOutOfBounds = errors.New("texel: region out of bounds")

	// ErrSrcDataSizeTooSmall is returned when source image data is smaller
	// than the region it must fill.
	ErrSrcDataSizeTooSmall = errors.New("texel: source image data too small")

	// ErrDstDataSizeTooSmall is returned when a destination buffer is
	// smaller than the data it must receive. The destination is left
	// untouched.
	ErrDstDataSizeTooSmall = errors.New("texel: destination image data too small")

	// ErrInvalidExtent is returned for descriptors or regions with a zero
	// dimension.
	ErrInvalidExtent = errors.New("texel: extent has a zero dimension")
)
