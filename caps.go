// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

import "fmt"

// FallbackSampleCount is used when a device reports no usable multisample
// count at or below a request. Every device in scope supports 4x.
const FallbackSampleCount = 4

// RenderingCapabilities describes a device's rendering limits. Values are
// fixed at device creation; the struct is copied out of the device and
// safe to retain.
type RenderingCapabilities struct {
	// SampleCounts lists the per-texel sample counts the device supports,
	// including 1.
	SampleCounts []uint32

	// MaxTextureSize is the largest width or height of a 2D texture.
	MaxTextureSize uint32

	// MaxColorAttachments is the number of simultaneous color attachments
	// a render target may hold.
	MaxColorAttachments uint32

	// MaxArrayLayers is the largest array layer count.
	MaxArrayLayers uint32

	// VendorName identifies the device vendor, if known.
	VendorName string

	// DeviceName identifies the device, if known.
	DeviceName string
}

// PickSamples negotiates a multisample count: the largest supported count
// at or below requested. When the device supports nothing above one sample
// in that range, it falls back to FallbackSampleCount rather than failing.
//
// requested must be at least 2; one sample is not a multisample
// configuration and is rejected with ErrInvalidSampleCount.
func (c RenderingCapabilities) PickSamples(requested uint32) (uint32, error) {
	if requested <= 1 {
		return 0, fmt.Errorf("%w: requested %d", ErrInvalidSampleCount, requested)
	}
	var best uint32
	for _, s := range c.SampleCounts {
		if s > 1 && s <= requested && s > best {
			best = s
		}
	}
	if best == 0 {
		Logger().Debug("no supported sample count at or below request, using fallback",
			"requested", requested, "samples", FallbackSampleCount)
		return FallbackSampleCount, nil
	}
	if best != requested {
		Logger().Debug("sample count adjusted to nearest supported",
			"requested", requested, "samples", best)
	}
	return best, nil
}

// SupportsSamples reports whether the device supports exactly the given
// sample count.
func (c RenderingCapabilities) SupportsSamples(samples uint32) bool {
	for _, s := range c.SampleCounts {
		if s == samples {
			return true
		}
	}
	return false
}
