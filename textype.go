// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

import "fmt"

// TextureType is the dimensionality class of a texture. The set is closed;
// every texture is exactly one of these nine kinds.
type TextureType uint8

const (
	// TextureType1D is a one-dimensional texture.
	TextureType1D TextureType = iota

	// TextureType1DArray is an array of one-dimensional textures.
	TextureType1DArray

	// TextureType2D is a two-dimensional texture.
	TextureType2D

	// TextureType2DArray is an array of two-dimensional textures.
	TextureType2DArray

	// TextureType3D is a three-dimensional (volume) texture.
	TextureType3D

	// TextureTypeCube is a cube texture: six 2D faces stored as array
	// layers.
	TextureTypeCube

	// TextureTypeCubeArray is an array of cube textures; the layer count
	// is a multiple of six.
	TextureTypeCubeArray

	// TextureType2DMultisample is a multisampled two-dimensional texture.
	// Multisampled textures have a single mip level.
	TextureType2DMultisample

	// TextureType2DMultisampleArray is an array of multisampled
	// two-dimensional textures.
	TextureType2DMultisampleArray
)

// IsArray reports whether the type carries multiple array layers.
func (t TextureType) IsArray() bool {
	switch t {
	case TextureType1DArray, TextureType2DArray, TextureTypeCube,
		TextureTypeCubeArray, TextureType2DMultisampleArray:
		return true
	default:
		return false
	}
}

// IsCube reports whether the type is a cube or cube-array texture.
func (t TextureType) IsCube() bool {
	return t == TextureTypeCube || t == TextureTypeCubeArray
}

// IsMultisample reports whether the type stores multiple samples per texel.
func (t TextureType) IsMultisample() bool {
	return t == TextureType2DMultisample || t == TextureType2DMultisampleArray
}

// HasMips reports whether the type can carry more than one mip level.
// Multisampled textures always have exactly one.
func (t TextureType) HasMips() bool {
	return !t.IsMultisample()
}

// String returns a human-readable name for the texture type.
func (t TextureType) String() string {
	switch t {
	case TextureType1D:
		return "1D"
	case TextureType1DArray:
		return "1DArray"
	case TextureType2D:
		return "2D"
	case TextureType2DArray:
		return "2DArray"
	case TextureType3D:
		return "3D"
	case TextureTypeCube:
		return "Cube"
	case TextureTypeCubeArray:
		return "CubeArray"
	case TextureType2DMultisample:
		return "2DMultisample"
	case TextureType2DMultisampleArray:
		return "2DMultisampleArray"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// mipDim scales one dimension down to the given mip level, clamping at 1.
func mipDim(x, mipLevel uint32) uint32 {
	if x == 0 {
		return 0
	}
	if x >>= mipLevel; x == 0 {
		return 1
	}
	return x
}

// MipExtent returns the storage extent of one mip level: the spatial
// dimensions scaled to the level, with the depth component carrying the
// array layer count for array and cube types. The result feeds directly
// into CalcSubresourceLayout.
//
// Array layers and cube faces do not scale with the mip level; a cube
// texture of 256x256 with 6 layers has mip 1 extent 128x128x6.
// Multisampled types have a single mip level and are returned unscaled.
func MipExtent(t TextureType, extent Extent3D, arrayLayers, mipLevel uint32) Extent3D {
	switch t {
	case TextureType1D:
		return Extent3D{Width: mipDim(extent.Width, mipLevel), Height: 1, Depth: 1}
	case TextureType1DArray:
		return Extent3D{Width: mipDim(extent.Width, mipLevel), Height: arrayLayers, Depth: 1}
	case TextureType2D:
		return Extent3D{Width: mipDim(extent.Width, mipLevel), Height: mipDim(extent.Height, mipLevel), Depth: 1}
	case TextureType2DArray, TextureTypeCube, TextureTypeCubeArray:
		return Extent3D{Width: mipDim(extent.Width, mipLevel), Height: mipDim(extent.Height, mipLevel), Depth: arrayLayers}
	case TextureType3D:
		return Extent3D{Width: mipDim(extent.Width, mipLevel), Height: mipDim(extent.Height, mipLevel), Depth: mipDim(extent.Depth, mipLevel)}
	case TextureType2DMultisample:
		return Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1}
	case TextureType2DMultisampleArray:
		return Extent3D{Width: extent.Width, Height: extent.Height, Depth: arrayLayers}
	default:
		return Extent3D{}
	}
}

// numMipLevelsOf returns the length of the full mip chain for the given
// dimensions: one level per halving of the largest dimension, down to 1.
func numMipLevelsOf(width, height, depth uint32) uint32 {
	maxDim := max(width, height, depth)
	n := uint32(0)
	for maxDim > 0 {
		n++
		maxDim >>= 1
	}
	return n
}

// NumMipLevels returns the full mip chain length for a texture of the
// given type and extent. Only the dimensions the type scales participate;
// multisampled types always report 1.
func NumMipLevels(t TextureType, extent Extent3D) uint32 {
	switch t {
	case TextureType1D, TextureType1DArray:
		return numMipLevelsOf(extent.Width, 1, 1)
	case TextureType2D, TextureType2DArray, TextureTypeCube, TextureTypeCubeArray:
		return numMipLevelsOf(extent.Width, extent.Height, 1)
	case TextureType3D:
		return numMipLevelsOf(extent.Width, extent.Height, extent.Depth)
	case TextureType2DMultisample, TextureType2DMultisampleArray:
		return 1
	default:
		return 0
	}
}
