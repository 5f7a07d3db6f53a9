// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

import "fmt"

// Offset3D is a signed texel offset into a texture subresource.
type Offset3D struct {
	X int32
	Y int32
	Z int32
}

// Extent3D is an unsigned size in texels. For array and cube textures the
// Depth component of a storage extent carries the layer count; spatial
// extents keep Depth at 1 except for 3D textures.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// IsEmpty reports whether any dimension is zero.
func (e Extent3D) IsEmpty() bool {
	return e.Width == 0 || e.Height == 0 || e.Depth == 0
}

// Texels returns the number of texels in the extent.
func (e Extent3D) Texels() uint64 {
	return uint64(e.Width) * uint64(e.Height) * uint64(e.Depth)
}

// String returns the extent as "WxHxD".
func (e Extent3D) String() string {
	return fmt.Sprintf("%dx%dx%d", e.Width, e.Height, e.Depth)
}

// TextureSubresource selects a span of mip levels and array layers.
// Transfer operations require NumMipLevels == 1; views may span several.
// Zero counts select nothing and fail validation.
type TextureSubresource struct {
	// BaseMipLevel is the first mip level in the span.
	BaseMipLevel uint32

	// NumMipLevels is the number of mip levels in the span.
	NumMipLevels uint32

	// BaseArrayLayer is the first array layer in the span.
	BaseArrayLayer uint32

	// NumArrayLayers is the number of array layers in the span.
	NumArrayLayers uint32
}

// TextureRegion addresses a spatial box within a span of subresources.
// Offset and Extent are spatial; the same box applies to every selected
// array layer. For non-3D types the Extent's Depth is ignored in favor of
// Subresource.NumArrayLayers.
type TextureRegion struct {
	Subresource TextureSubresource
	Offset      Offset3D
	Extent      Extent3D
}

// WholeRegion returns a region covering the given extent of a single
// subresource: mip 0, array layer 0, zero offset. Widen
// Subresource.NumArrayLayers afterwards to cover array textures.
func WholeRegion(extent Extent3D) TextureRegion {
	return TextureRegion{
		Subresource: TextureSubresource{
			BaseMipLevel:   0,
			NumMipLevels:   1,
			BaseArrayLayer: 0,
			NumArrayLayers: 1,
		},
		Extent: extent,
	}
}

// RegionInside reports whether the box at offset with the given extent
// lies fully within bounds. Negative offsets are outside.
func RegionInside(offset Offset3D, extent, bounds Extent3D) bool {
	if offset.X < 0 || offset.Y < 0 || offset.Z < 0 {
		return false
	}
	return int64(offset.X)+int64(extent.Width) <= int64(bounds.Width) &&
		int64(offset.Y)+int64(extent.Height) <= int64(bounds.Height) &&
		int64(offset.Z)+int64(extent.Depth) <= int64(bounds.Depth)
}

// RegionExtent merges a region's spatial extent with its layer span into
// the storage extent used for layout arithmetic. For array and cube types
// the layer count replaces the depth (or height for 1D arrays); for 3D
// textures the spatial depth passes through.
func RegionExtent(t TextureType, extent Extent3D, numArrayLayers uint32) Extent3D {
	switch t {
	case TextureType1D:
		return Extent3D{Width: extent.Width, Height: 1, Depth: 1}
	case TextureType1DArray:
		return Extent3D{Width: extent.Width, Height: numArrayLayers, Depth: 1}
	case TextureType2D, TextureType2DMultisample:
		return Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1}
	case TextureType2DArray, TextureTypeCube, TextureTypeCubeArray, TextureType2DMultisampleArray:
		return Extent3D{Width: extent.Width, Height: extent.Height, Depth: numArrayLayers}
	case TextureType3D:
		return extent
	default:
		return Extent3D{}
	}
}
