// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

import "fmt"

// Residency selects where a texture's storage lives and how the CPU
// reaches it.
type Residency uint8

const (
	// ResidencyDevicePrivate places storage in GPU-optimal memory. CPU
	// access goes through queue uploads and staged readbacks; reads block
	// until the device finishes the copy.
	ResidencyDevicePrivate Residency = iota

	// ResidencyDirectlyMappable backs storage with a linear CPU-reachable
	// buffer. Reads and writes are direct copies with no GPU round trip.
	// Mappable textures cannot be render-target attachments or views.
	ResidencyDirectlyMappable
)

// String returns a human-readable name for the residency mode.
func (r Residency) String() string {
	switch r {
	case ResidencyDevicePrivate:
		return "DevicePrivate"
	case ResidencyDirectlyMappable:
		return "DirectlyMappable"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(r))
	}
}

// BindFlags declare how a texture may be bound to the pipeline.
type BindFlags uint32

const (
	// BindSampled permits sampling from shaders.
	BindSampled BindFlags = 1 << iota

	// BindStorage permits storage-image access from shaders.
	BindStorage

	// BindColorAttachment permits use as a color render-target attachment.
	BindColorAttachment

	// BindDepthStencilAttachment permits use as the depth-stencil
	// attachment.
	BindDepthStencilAttachment

	// BindCopySrc permits the texture as a transfer source.
	BindCopySrc

	// BindCopyDst permits the texture as a transfer destination.
	BindCopyDst
)

// Contains reports whether all bits of other are set.
func (f BindFlags) Contains(other BindFlags) bool {
	return f&other == other
}

// MiscFlags carry additional creation behavior.
type MiscFlags uint32

const (
	// MiscGenerateMips requests the full mip chain be populated from the
	// provided base-level data at creation.
	MiscGenerateMips MiscFlags = 1 << iota

	// MiscNoInitialData skips clearing or uploading at creation; contents
	// are undefined until first written.
	MiscNoInitialData
)

// TextureDescriptor describes a texture to create. Zero values choose
// defaults: MipLevels 0 is the full chain, ArrayLayers 0 is one layer (six
// faces for cube types), Samples 0 is one sample, zero BindFlags enable
// sampling and both copy directions.
type TextureDescriptor struct {
	// Label is attached to the underlying HAL objects for debugging.
	Label string

	// Type is the dimensionality class.
	Type TextureType

	// Format is the hardware pixel format.
	Format Format

	// Extent is the spatial size of mip 0. Depth is 1 except for 3D
	// textures; array layers are declared in ArrayLayers, not here.
	Extent Extent3D

	// MipLevels is the number of mip levels; 0 means the full chain.
	MipLevels uint32

	// ArrayLayers is the number of array layers; 0 means the type's
	// minimum (1, or 6 for cube types).
	ArrayLayers uint32

	// Samples is the per-texel sample count for multisampled types;
	// 0 and 1 mean single-sampled.
	Samples uint32

	// Residency selects the storage model.
	Residency Residency

	// BindFlags declare pipeline usage; 0 selects
	// BindSampled|BindCopySrc|BindCopyDst.
	BindFlags BindFlags

	// MiscFlags carry additional creation behavior.
	MiscFlags MiscFlags
}

// MipLevelCount returns the effective mip level count: the declared count,
// or the full chain for the descriptor's type and extent when zero.
func (d *TextureDescriptor) MipLevelCount() uint32 {
	if d.MipLevels != 0 {
		return d.MipLevels
	}
	return NumMipLevels(d.Type, d.Extent)
}

// LayerCount returns the effective array layer count: the declared count,
// or the type's minimum when zero.
func (d *TextureDescriptor) LayerCount() uint32 {
	if d.ArrayLayers != 0 {
		return d.ArrayLayers
	}
	if d.Type.IsCube() {
		return 6
	}
	return 1
}

// SampleCount returns the effective sample count; never less than 1.
func (d *TextureDescriptor) SampleCount() uint32 {
	if d.Samples != 0 {
		return d.Samples
	}
	return 1
}

// MipStorageExtent returns the storage extent of one mip level of the
// described texture.
func (d *TextureDescriptor) MipStorageExtent(mipLevel uint32) Extent3D {
	return MipExtent(d.Type, d.Extent, d.LayerCount(), mipLevel)
}

// Footprint returns the total packed byte size of the described texture.
func (d *TextureDescriptor) Footprint() uint64 {
	return MemoryFootprint(d.Type, d.Format, d.Extent, d.LayerCount(), d.MipLevelCount())
}

// Texture2DDescriptor returns a descriptor for a single-sampled 2D texture
// with default binding and a full mip chain.
func Texture2DDescriptor(format Format, width, height uint32) TextureDescriptor {
	return TextureDescriptor{
		Type:   TextureType2D,
		Format: format,
		Extent: Extent3D{Width: width, Height: height, Depth: 1},
	}
}

// SrcImageDescriptor describes caller-owned pixel data to upload. Data
// holds len(Data) bytes in the (Format, DataType) representation, packed
// with the strides of CalcSubresourceLayout.
type SrcImageDescriptor struct {
	Format   ImageFormat
	DataType DataType
	Data     []byte
}

// PixelSize returns the packed byte size of one pixel in the source
// representation.
func (s SrcImageDescriptor) PixelSize() uint32 {
	return PixelSize(s.Format, s.DataType)
}

// DstImageDescriptor describes a caller-owned destination for downloads.
// Data must be at least as large as the region being read; on any error
// it is left untouched.
type DstImageDescriptor struct {
	Format   ImageFormat
	DataType DataType
	Data     []byte
}

// PixelSize returns the packed byte size of one pixel in the destination
// representation.
func (d DstImageDescriptor) PixelSize() uint32 {
	return PixelSize(d.Format, d.DataType)
}
