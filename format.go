// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

import "fmt"

// DataType is the per-channel scalar type of a CPU-side pixel
// representation.
type DataType uint8

const (
	// DataTypeUndefined marks an unspecified data type.
	DataTypeUndefined DataType = iota

	// DataTypeInt8 is a signed 8-bit integer channel.
	DataTypeInt8

	// DataTypeUint8 is an unsigned 8-bit integer channel.
	DataTypeUint8

	// DataTypeInt16 is a signed 16-bit integer channel.
	DataTypeInt16

	// DataTypeUint16 is an unsigned 16-bit integer channel.
	DataTypeUint16

	// DataTypeInt32 is a signed 32-bit integer channel.
	DataTypeInt32

	// DataTypeUint32 is an unsigned 32-bit integer channel.
	DataTypeUint32

	// DataTypeFloat16 is an IEEE 754 half-precision float channel.
	DataTypeFloat16

	// DataTypeFloat32 is an IEEE 754 single-precision float channel.
	DataTypeFloat32
)

// Size returns the size of one channel in bytes.
func (t DataType) Size() uint32 {
	switch t {
	case DataTypeInt8, DataTypeUint8:
		return 1
	case DataTypeInt16, DataTypeUint16, DataTypeFloat16:
		return 2
	case DataTypeInt32, DataTypeUint32, DataTypeFloat32:
		return 4
	default:
		return 0
	}
}

// String returns a human-readable name for the data type.
func (t DataType) String() string {
	switch t {
	case DataTypeUndefined:
		return "Undefined"
	case DataTypeInt8:
		return "Int8"
	case DataTypeUint8:
		return "Uint8"
	case DataTypeInt16:
		return "Int16"
	case DataTypeUint16:
		return "Uint16"
	case DataTypeInt32:
		return "Int32"
	case DataTypeUint32:
		return "Uint32"
	case DataTypeFloat16:
		return "Float16"
	case DataTypeFloat32:
		return "Float32"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// ImageFormat is the channel layout of a CPU-side pixel representation.
// Together with a DataType it fully describes how a linear pixel buffer
// is laid out in caller memory.
type ImageFormat uint8

const (
	// ImageFormatUndefined marks an unspecified channel layout.
	ImageFormatUndefined ImageFormat = iota

	// ImageFormatR is a single red channel.
	ImageFormatR

	// ImageFormatRG is red and green channels.
	ImageFormatRG

	// ImageFormatRGB is red, green, and blue channels.
	ImageFormatRGB

	// ImageFormatRGBA is red, green, blue, and alpha channels.
	ImageFormatRGBA

	// ImageFormatBGRA is blue, green, red, and alpha channels.
	ImageFormatBGRA

	// ImageFormatDepth is a single depth channel.
	ImageFormatDepth

	// ImageFormatDepthStencil is a combined depth-stencil channel pair.
	ImageFormatDepthStencil

	// ImageFormatCompressed is an opaque block-compressed payload; it has
	// no per-channel structure and passes through conversion unchanged.
	ImageFormatCompressed
)

// Channels returns the number of data elements per texel. Depth-stencil
// counts as one packed element. Compressed layouts have no per-texel
// structure and report 0.
func (f ImageFormat) Channels() uint32 {
	switch f {
	case ImageFormatR, ImageFormatDepth, ImageFormatDepthStencil:
		return 1
	case ImageFormatRG:
		return 2
	case ImageFormatRGB:
		return 3
	case ImageFormatRGBA, ImageFormatBGRA:
		return 4
	default:
		return 0
	}
}

// String returns a human-readable name for the channel layout.
func (f ImageFormat) String() string {
	switch f {
	case ImageFormatUndefined:
		return "Undefined"
	case ImageFormatR:
		return "R"
	case ImageFormatRG:
		return "RG"
	case ImageFormatRGB:
		return "RGB"
	case ImageFormatRGBA:
		return "RGBA"
	case ImageFormatBGRA:
		return "BGRA"
	case ImageFormatDepth:
		return "Depth"
	case ImageFormatDepthStencil:
		return "DepthStencil"
	case ImageFormatCompressed:
		return "Compressed"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(f))
	}
}

// PixelSize returns the packed byte size of one pixel in the
// (ImageFormat, DataType) representation.
func PixelSize(format ImageFormat, dataType DataType) uint32 {
	return format.Channels() * dataType.Size()
}

// FormatFlags classifies a hardware pixel format.
type FormatFlags uint32

const (
	// FormatFlagHasDepth marks formats with a depth component.
	FormatFlagHasDepth FormatFlags = 1 << iota

	// FormatFlagHasStencil marks formats with a stencil component.
	FormatFlagHasStencil

	// FormatFlagCompressed marks block-compressed formats.
	FormatFlagCompressed

	// FormatFlagNormalized marks formats whose integer channels map to
	// the normalized [0, 1] range when sampled.
	FormatFlagNormalized

	// FormatFlagRenderable marks formats usable as render-target
	// attachments (color, or depth-stencil for depth formats).
	FormatFlagRenderable
)

// Format is a hardware pixel format. It identifies how texel data is
// stored in GPU texture memory; its FormatAttributes describe the matching
// CPU-side representation and block geometry.
type Format uint8

const (
	// FormatUndefined marks an unspecified format.
	FormatUndefined Format = iota

	// FormatR8Unorm is single-channel 8-bit normalized.
	FormatR8Unorm

	// FormatRG8Unorm is two-channel 8-bit normalized.
	FormatRG8Unorm

	// FormatRGBA8Unorm is four-channel 8-bit normalized.
	FormatRGBA8Unorm

	// FormatRGBA8UnormSrgb is FormatRGBA8Unorm with sRGB sampling.
	FormatRGBA8UnormSrgb

	// FormatBGRA8Unorm is four-channel 8-bit normalized, BGRA order.
	// Commonly required for presentation surfaces.
	FormatBGRA8Unorm

	// FormatBGRA8UnormSrgb is FormatBGRA8Unorm with sRGB sampling.
	FormatBGRA8UnormSrgb

	// FormatR16Float is single-channel half-precision float.
	FormatR16Float

	// FormatRGBA16Float is four-channel half-precision float.
	FormatRGBA16Float

	// FormatR32Float is single-channel single-precision float.
	FormatR32Float

	// FormatRG32Float is two-channel single-precision float.
	FormatRG32Float

	// FormatRGBA32Float is four-channel single-precision float.
	FormatRGBA32Float

	// FormatDepth16Unorm is 16-bit normalized depth.
	FormatDepth16Unorm

	// FormatDepth24PlusStencil8 is at least 24-bit depth with 8-bit
	// stencil.
	FormatDepth24PlusStencil8

	// FormatDepth32Float is 32-bit float depth.
	FormatDepth32Float

	// FormatBC1RGBAUnorm is BC1 (DXT1) block compression: 4x4 texel
	// blocks, 8 bytes per block.
	FormatBC1RGBAUnorm

	// FormatBC3RGBAUnorm is BC3 (DXT5) block compression: 4x4 texel
	// blocks, 16 bytes per block.
	FormatBC3RGBAUnorm

	formatCount
)

// FormatAttributes describes a hardware format: its CPU-side
// representation pair, block geometry, and classification flags.
// BlockWidth and BlockHeight are 1 for uncompressed formats; BytesPerBlock
// is then the byte size of a single pixel.
type FormatAttributes struct {
	// ImageFormat is the channel layout of the matching CPU
	// representation.
	ImageFormat ImageFormat

	// DataType is the per-channel scalar of the matching CPU
	// representation.
	DataType DataType

	// BytesPerBlock is the byte size of one block (one pixel when
	// uncompressed).
	BytesPerBlock uint32

	// BlockWidth is the block footprint width in texels.
	BlockWidth uint32

	// BlockHeight is the block footprint height in texels.
	BlockHeight uint32

	// Flags classify the format.
	Flags FormatFlags
}

var formatAttribs = [formatCount]FormatAttributes{
	FormatUndefined:           {ImageFormatUndefined, DataTypeUndefined, 0, 0, 0, 0},
	FormatR8Unorm:             {ImageFormatR, DataTypeUint8, 1, 1, 1, FormatFlagNormalized | FormatFlagRenderable},
	FormatRG8Unorm:            {ImageFormatRG, DataTypeUint8, 2, 1, 1, FormatFlagNormalized | FormatFlagRenderable},
	FormatRGBA8Unorm:          {ImageFormatRGBA, DataTypeUint8, 4, 1, 1, FormatFlagNormalized | FormatFlagRenderable},
	FormatRGBA8UnormSrgb:      {ImageFormatRGBA, DataTypeUint8, 4, 1, 1, FormatFlagNormalized | FormatFlagRenderable},
	FormatBGRA8Unorm:          {ImageFormatBGRA, DataTypeUint8, 4, 1, 1, FormatFlagNormalized | FormatFlagRenderable},
	FormatBGRA8UnormSrgb:      {ImageFormatBGRA, DataTypeUint8, 4, 1, 1, FormatFlagNormalized | FormatFlagRenderable},
	FormatR16Float:            {ImageFormatR, DataTypeFloat16, 2, 1, 1, FormatFlagRenderable},
	FormatRGBA16Float:         {ImageFormatRGBA, DataTypeFloat16, 8, 1, 1, FormatFlagRenderable},
	FormatR32Float:            {ImageFormatR, DataTypeFloat32, 4, 1, 1, FormatFlagRenderable},
	FormatRG32Float:           {ImageFormatRG, DataTypeFloat32, 8, 1, 1, FormatFlagRenderable},
	FormatRGBA32Float:         {ImageFormatRGBA, DataTypeFloat32, 16, 1, 1, FormatFlagRenderable},
	FormatDepth16Unorm:        {ImageFormatDepth, DataTypeUint16, 2, 1, 1, FormatFlagHasDepth | FormatFlagNormalized | FormatFlagRenderable},
	FormatDepth24PlusStencil8: {ImageFormatDepthStencil, DataTypeUint32, 4, 1, 1, FormatFlagHasDepth | FormatFlagHasStencil | FormatFlagRenderable},
	FormatDepth32Float:        {ImageFormatDepth, DataTypeFloat32, 4, 1, 1, FormatFlagHasDepth | FormatFlagRenderable},
	FormatBC1RGBAUnorm:        {ImageFormatCompressed, DataTypeUint8, 8, 4, 4, FormatFlagCompressed | FormatFlagNormalized},
	FormatBC3RGBAUnorm:        {ImageFormatCompressed, DataTypeUint8, 16, 4, 4, FormatFlagCompressed | FormatFlagNormalized},
}

// Attribs returns the format's attributes. Unknown formats report the
// zero attributes of FormatUndefined.
func (f Format) Attribs() FormatAttributes {
	if f >= formatCount {
		return formatAttribs[FormatUndefined]
	}
	return formatAttribs[f]
}

// IsCompressed reports whether the format is block-compressed.
func (f Format) IsCompressed() bool {
	return f.Attribs().Flags&FormatFlagCompressed != 0
}

// HasDepth reports whether the format has a depth component.
func (f Format) HasDepth() bool {
	return f.Attribs().Flags&FormatFlagHasDepth != 0
}

// HasStencil reports whether the format has a stencil component.
func (f Format) HasStencil() bool {
	return f.Attribs().Flags&FormatFlagHasStencil != 0
}

// IsDepthOrStencil reports whether the format has a depth or stencil
// component.
func (f Format) IsDepthOrStencil() bool {
	return f.Attribs().Flags&(FormatFlagHasDepth|FormatFlagHasStencil) != 0
}

// IsRenderable reports whether the format may back a render-target
// attachment.
func (f Format) IsRenderable() bool {
	return f.Attribs().Flags&FormatFlagRenderable != 0
}

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatUndefined:
		return "Undefined"
	case FormatR8Unorm:
		return "R8Unorm"
	case FormatRG8Unorm:
		return "RG8Unorm"
	case FormatRGBA8Unorm:
		return "RGBA8Unorm"
	case FormatRGBA8UnormSrgb:
		return "RGBA8UnormSrgb"
	case FormatBGRA8Unorm:
		return "BGRA8Unorm"
	case FormatBGRA8UnormSrgb:
		return "BGRA8UnormSrgb"
	case FormatR16Float:
		return "R16Float"
	case FormatRGBA16Float:
		return "RGBA16Float"
	case FormatR32Float:
		return "R32Float"
	case FormatRG32Float:
		return "RG32Float"
	case FormatRGBA32Float:
		return "RGBA32Float"
	case FormatDepth16Unorm:
		return "Depth16Unorm"
	case FormatDepth24PlusStencil8:
		return "Depth24PlusStencil8"
	case FormatDepth32Float:
		return "Depth32Float"
	case FormatBC1RGBAUnorm:
		return "BC1RGBAUnorm"
	case FormatBC3RGBAUnorm:
		return "BC3RGBAUnorm"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(f))
	}
}
