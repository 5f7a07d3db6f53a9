// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Device and transfer sentinel errors. All of them mark configuration or
// argument mistakes: when one is returned no GPU work has been submitted
// and no destination bytes have been written.
var (
	// ErrNilDevice is returned when a Device is constructed without a
	// HAL device.
	ErrNilDevice = errors.New("native: device is nil")

	// ErrNilQueue is returned when a Device is constructed without a
	// HAL queue.
	ErrNilQueue = errors.New("native: queue is nil")

	// ErrDeviceDestroyed is returned when creating resources on a
	// destroyed device.
	ErrDeviceDestroyed = errors.New("native: device has been destroyed")

	// ErrInvalidTextureSize is returned when a texture extent exceeds
	// the device limits.
	ErrInvalidTextureSize = errors.New("native: texture size exceeds device limits")

	// ErrFormatUnsupported is returned when a format has no device
	// equivalent. Only device-private textures need one; directly
	// mappable textures are buffer-backed and accept every format.
	ErrFormatUnsupported = errors.New("native: format has no device equivalent")

	// ErrMappableDepthStencil is returned for depth-stencil formats with
	// directly mappable residency; depth-stencil storage is always
	// device-private.
	ErrMappableDepthStencil = errors.New("native: depth-stencil textures must be device-private")

	// ErrSampleCountTypeMismatch is returned when a sample count above
	// one is declared for a non-multisample texture type, or one sample
	// for a multisample type.
	ErrSampleCountTypeMismatch = errors.New("native: sample count and texture type disagree")

	// ErrMissingCopyContext is returned by a device-private read without
	// a CopyContext. The destination is left untouched.
	ErrMissingCopyContext = errors.New("native: device-private read requires a copy context")

	// ErrMissingStagingBuffer is returned by a device-private read
	// without a StagingBuffer. The destination is left untouched.
	ErrMissingStagingBuffer = errors.New("native: device-private read requires a staging buffer")

	// ErrStagingBufferDestroyed is returned when growing or reading a
	// destroyed staging buffer.
	ErrStagingBufferDestroyed = errors.New("native: staging buffer has been destroyed")
)
