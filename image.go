// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

import (
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Image is a CPU-side pixel buffer in one (ImageFormat, DataType)
// representation. It supports region reads and writes with conversion on
// representation mismatch, whole-image conversion, stdlib image interop,
// and mip-chain generation for upload paths.
//
// The buffer is packed: no row padding, rows then depth slices, matching
// the layout texture transfers use.
type Image struct {
	extent   Extent3D
	format   ImageFormat
	dataType DataType
	data     []byte
}

// NewImage allocates a zeroed image of the given extent and
// representation.
func NewImage(extent Extent3D, format ImageFormat, dataType DataType) (*Image, error) {
	if extent.IsEmpty() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtent, extent)
	}
	pixel := PixelSize(format, dataType)
	if pixel == 0 {
		return nil, fmt.Errorf("%w: image requires a per-texel representation, got %v/%v",
			ErrConversionUnsupported, format, dataType)
	}
	return &Image{
		extent:   extent,
		format:   format,
		dataType: dataType,
		data:     make([]byte, extent.Texels()*uint64(pixel)),
	}, nil
}

// NewImageWithData adopts an existing pixel buffer without copying. The
// buffer must hold exactly one texel per extent position in the given
// representation.
func NewImageWithData(extent Extent3D, format ImageFormat, dataType DataType, data []byte) (*Image, error) {
	if extent.IsEmpty() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtent, extent)
	}
	pixel := PixelSize(format, dataType)
	if pixel == 0 {
		return nil, fmt.Errorf("%w: image requires a per-texel representation, got %v/%v",
			ErrConversionUnsupported, format, dataType)
	}
	if need := extent.Texels() * uint64(pixel); uint64(len(data)) != need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrSrcDataSizeTooSmall, len(data), need)
	}
	return &Image{extent: extent, format: format, dataType: dataType, data: data}, nil
}

// Extent returns the image dimensions in texels.
func (im *Image) Extent() Extent3D { return im.extent }

// Format returns the channel layout.
func (im *Image) Format() ImageFormat { return im.format }

// DataType returns the per-channel scalar type.
func (im *Image) DataType() DataType { return im.dataType }

// Data returns the backing pixel buffer. The slice is shared, not copied.
func (im *Image) Data() []byte { return im.data }

// PixelSize returns the byte size of one texel.
func (im *Image) PixelSize() uint32 { return PixelSize(im.format, im.dataType) }

// RowStride returns the byte distance between adjacent rows.
func (im *Image) RowStride() uint64 {
	return uint64(im.extent.Width) * uint64(im.PixelSize())
}

// LayerStride returns the byte distance between adjacent depth slices.
func (im *Image) LayerStride() uint64 {
	return im.RowStride() * uint64(im.extent.Height)
}

// DataSize returns the total byte size of the pixel buffer.
func (im *Image) DataSize() uint64 { return uint64(len(im.data)) }

// dataOffset returns the byte offset of the texel at the given position.
func (im *Image) dataOffset(x, y, z uint32) uint64 {
	texel := uint64(x) + (uint64(y)+uint64(z)*uint64(im.extent.Height))*uint64(im.extent.Width)
	return texel * uint64(im.PixelSize())
}

// blit copies a packed region buffer into or out of the image, row by row.
// When toImage is true, buf fills the region; otherwise the region fills
// buf. buf uses the image's own representation.
func (im *Image) blit(offset Offset3D, extent Extent3D, buf []byte, toImage bool) {
	pixel := uint64(im.PixelSize())
	rowLen := uint64(extent.Width) * pixel
	imRow := im.RowStride()

	// Whole-image regions collapse to a single copy.
	if offset == (Offset3D{}) && extent == im.extent {
		if toImage {
			copy(im.data, buf[:len(im.data)])
		} else {
			copy(buf, im.data)
		}
		return
	}

	bufOff := uint64(0)
	for z := uint32(0); z < extent.Depth; z++ {
		rowStart := im.dataOffset(uint32(offset.X), uint32(offset.Y), uint32(offset.Z)+z)
		for y := uint32(0); y < extent.Height; y++ {
			if toImage {
				copy(im.data[rowStart:rowStart+rowLen], buf[bufOff:bufOff+rowLen])
			} else {
				copy(buf[bufOff:bufOff+rowLen], im.data[rowStart:rowStart+rowLen])
			}
			rowStart += imRow
			bufOff += rowLen
		}
	}
}

// WritePixels replaces the region at offset with the source pixels,
// converting from the source representation when it differs from the
// image's. The source buffer is packed to the region extent. lanes bounds
// converter parallelism (0 selects the default).
func (im *Image) WritePixels(offset Offset3D, extent Extent3D, src SrcImageDescriptor, lanes int) error {
	if extent.IsEmpty() {
		return nil
	}
	if !RegionInside(offset, extent, im.extent) {
		return fmt.Errorf("%w: offset %+v extent %v in %v", ErrRegionOutOfBounds, offset, extent, im.extent)
	}
	srcPixel := uint64(src.PixelSize())
	if srcPixel == 0 {
		return fmt.Errorf("%w: %v/%v", ErrConversionUnsupported, src.Format, src.DataType)
	}
	if need := extent.Texels() * srcPixel; uint64(len(src.Data)) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrSrcDataSizeTooSmall, len(src.Data), need)
	}

	data := src.Data[:extent.Texels()*srcPixel]
	converted, err := ConvertImageBuffer(SrcImageDescriptor{
		Format:   src.Format,
		DataType: src.DataType,
		Data:     data,
	}, im.format, im.dataType, lanes)
	if err != nil {
		return err
	}
	if converted != nil {
		data = converted
	}
	im.blit(offset, extent, data, true)
	return nil
}

// ReadPixels copies the region at offset into the destination buffer,
// converting to the destination representation when it differs from the
// image's. On any error the destination is untouched. lanes bounds
// converter parallelism (0 selects the default).
func (im *Image) ReadPixels(offset Offset3D, extent Extent3D, dst DstImageDescriptor, lanes int) error {
	if extent.IsEmpty() {
		return nil
	}
	if !RegionInside(offset, extent, im.extent) {
		return fmt.Errorf("%w: offset %+v extent %v in %v", ErrRegionOutOfBounds, offset, extent, im.extent)
	}
	dstPixel := uint64(dst.PixelSize())
	if dstPixel == 0 {
		return fmt.Errorf("%w: %v/%v", ErrConversionUnsupported, dst.Format, dst.DataType)
	}
	need := extent.Texels() * dstPixel
	if uint64(len(dst.Data)) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrDstDataSizeTooSmall, len(dst.Data), need)
	}

	if dst.Format == im.format && dst.DataType == im.dataType {
		im.blit(offset, extent, dst.Data, false)
		return nil
	}

	// Mismatched representation: stage the region in native form, convert,
	// then copy out so a conversion failure leaves dst untouched.
	native := make([]byte, extent.Texels()*uint64(im.PixelSize()))
	im.blit(offset, extent, native, false)
	converted, err := ConvertImageBuffer(SrcImageDescriptor{
		Format:   im.format,
		DataType: im.dataType,
		Data:     native,
	}, dst.Format, dst.DataType, lanes)
	if err != nil {
		return err
	}
	copy(dst.Data, converted)
	return nil
}

// Convert changes the image's representation in place. Converting to the
// current representation is a no-op.
func (im *Image) Convert(format ImageFormat, dataType DataType, lanes int) error {
	converted, err := ConvertImageBuffer(SrcImageDescriptor{
		Format:   im.format,
		DataType: im.dataType,
		Data:     im.data,
	}, format, dataType, lanes)
	if err != nil {
		return err
	}
	if converted == nil {
		return nil
	}
	im.data = converted
	im.format = format
	im.dataType = dataType
	return nil
}

// FromImage copies a stdlib image into a new RGBA/Uint8 Image.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || !bounds.Min.Eq(image.Point{}) {
		canonical := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(canonical, canonical.Bounds(), src, bounds.Min, draw.Src)
		rgba = canonical
	}
	data := make([]byte, len(rgba.Pix))
	copy(data, rgba.Pix)
	return &Image{
		extent:   Extent3D{Width: uint32(bounds.Dx()), Height: uint32(bounds.Dy()), Depth: 1},
		format:   ImageFormatRGBA,
		dataType: DataTypeUint8,
		data:     data,
	}
}

// ToRGBA converts the image to a stdlib *image.RGBA. Only 2D images
// (depth 1) can be represented.
func (im *Image) ToRGBA() (*image.RGBA, error) {
	if im.extent.Depth != 1 {
		return nil, fmt.Errorf("%w: depth %d image has no 2D form", ErrInvalidExtent, im.extent.Depth)
	}
	data := im.data
	if im.format != ImageFormatRGBA || im.dataType != DataTypeUint8 {
		converted, err := ConvertImageBuffer(SrcImageDescriptor{
			Format:   im.format,
			DataType: im.dataType,
			Data:     im.data,
		}, ImageFormatRGBA, DataTypeUint8, 0)
		if err != nil {
			return nil, err
		}
		data = converted
	}
	rgba := image.NewRGBA(image.Rect(0, 0, int(im.extent.Width), int(im.extent.Height)))
	copy(rgba.Pix, data)
	return rgba, nil
}

// MipFilter selects the downsampling kernel for GenerateMipChain.
type MipFilter uint8

const (
	// MipFilterCatmullRom is a high-quality bicubic kernel.
	MipFilterCatmullRom MipFilter = iota

	// MipFilterBiLinear is a fast approximate bilinear kernel.
	MipFilterBiLinear
)

// GenerateMipChain downsamples the image into successive mip levels,
// halving each dimension per level and clamping at 1. levels bounds the
// number of generated levels below the base; 0 means the full chain. The
// base level is not included in the result.
//
// Only 2D images can be downsampled. Images in representations other than
// RGBA/Uint8 are converted for filtering and converted back, so float
// images lose precision outside [0, 1].
func (im *Image) GenerateMipChain(levels uint32, filter MipFilter) ([]*Image, error) {
	if im.extent.Depth != 1 {
		return nil, fmt.Errorf("%w: depth %d image has no mip chain", ErrInvalidExtent, im.extent.Depth)
	}
	full := NumMipLevels(TextureType2D, im.extent) - 1
	if levels == 0 || levels > full {
		levels = full
	}
	if levels == 0 {
		return nil, nil
	}

	scaler := xdraw.Interpolator(xdraw.CatmullRom)
	if filter == MipFilterBiLinear {
		scaler = xdraw.ApproxBiLinear
	}

	base, err := im.ToRGBA()
	if err != nil {
		return nil, err
	}

	chain := make([]*Image, 0, levels)
	prev := base
	for level := uint32(1); level <= levels; level++ {
		mip := MipExtent(TextureType2D, im.extent, 1, level)
		scaled := image.NewRGBA(image.Rect(0, 0, int(mip.Width), int(mip.Height)))
		scaler.Scale(scaled, scaled.Bounds(), prev, prev.Bounds(), xdraw.Src, nil)

		out := FromImage(scaled)
		if err := out.Convert(im.format, im.dataType, 0); err != nil {
			return nil, err
		}
		chain = append(chain, out)
		prev = scaled
	}
	return chain, nil
}
