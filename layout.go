// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

// SubresourceLayout describes the packed linear layout of texel data for
// one storage extent: no row padding, rows then layers then the whole
// region.
//
// For block-compressed formats the strides count whole blocks; extents
// that are not block-aligned round up to block granularity.
type SubresourceLayout struct {
	// RowStride is the byte distance between the starts of two adjacent
	// rows (block rows for compressed formats).
	RowStride uint64

	// LayerStride is the byte distance between the starts of two adjacent
	// depth slices or array layers. Always RowStride times the number of
	// rows per layer.
	LayerStride uint64

	// DataSize is the total byte size, LayerStride times the extent's
	// depth.
	DataSize uint64
}

// CalcSubresourceLayout computes the packed layout of one storage extent
// in the given format. The extent is a storage extent: for array and cube
// textures its Depth carries the layer count (see MipExtent and
// RegionExtent). Undefined formats produce a zero layout.
func CalcSubresourceLayout(format Format, extent Extent3D) SubresourceLayout {
	a := format.Attribs()
	if a.BytesPerBlock == 0 || a.BlockWidth == 0 || a.BlockHeight == 0 {
		return SubresourceLayout{}
	}
	blocksPerRow := uint64((extent.Width + a.BlockWidth - 1) / a.BlockWidth)
	rowsPerLayer := uint64((extent.Height + a.BlockHeight - 1) / a.BlockHeight)
	rowStride := blocksPerRow * uint64(a.BytesPerBlock)
	layerStride := rowStride * rowsPerLayer
	return SubresourceLayout{
		RowStride:   rowStride,
		LayerStride: layerStride,
		DataSize:    layerStride * uint64(extent.Depth),
	}
}

// SubresourceFootprint locates one (mip level, array layer) subresource
// inside the packed mip-major layout of a whole texture: every layer of
// mip 0, then every layer of mip 1, and so on.
type SubresourceFootprint struct {
	// Offset is the byte offset of the subresource from the start of the
	// texture's linear storage.
	Offset uint64

	// Layout is the layout of the single layer at that offset.
	Layout SubresourceLayout
}

// CalcSubresourceFootprint computes the footprint of one subresource
// within the packed mip-major layout of a texture with the given shape.
func CalcSubresourceFootprint(t TextureType, format Format, extent Extent3D, arrayLayers, mipLevel, arrayLayer uint32) SubresourceFootprint {
	var offset uint64
	for level := uint32(0); level < mipLevel; level++ {
		mip := MipExtent(t, extent, arrayLayers, level)
		offset += CalcSubresourceLayout(format, mip).DataSize
	}
	// The per-layer step is the size of one layer, so it comes from a
	// single-layer mip extent. The all-layer extent carries the layer
	// count in Height for 1D arrays, where LayerStride spans the whole
	// mip rather than one layer.
	layout := CalcSubresourceLayout(format, MipExtent(t, extent, 1, mipLevel))
	offset += layout.DataSize * uint64(arrayLayer)
	return SubresourceFootprint{Offset: offset, Layout: layout}
}

// MemoryFootprint returns the total packed byte size of a texture with the
// given shape: the sum of every mip level's storage across all layers.
// A mipLevels of zero means the full chain.
func MemoryFootprint(t TextureType, format Format, extent Extent3D, arrayLayers, mipLevels uint32) uint64 {
	if mipLevels == 0 {
		mipLevels = NumMipLevels(t, extent)
	}
	var size uint64
	for level := uint32(0); level < mipLevels; level++ {
		mip := MipExtent(t, extent, arrayLayers, level)
		size += CalcSubresourceLayout(format, mip).DataSize
	}
	return size
}
