// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texel"
	"github.com/gogpu/wgpu/hal"
)

// Texture lifecycle sentinel errors.
var (
	// ErrTextureDestroyed is returned when operating on a destroyed
	// texture.
	ErrTextureDestroyed = errors.New("native: texture has been destroyed")

	// ErrTextureViewDestroyed is returned when using a destroyed
	// texture view.
	ErrTextureViewDestroyed = errors.New("native: texture view has been destroyed")

	// ErrMappableTextureView is returned when requesting a view of a
	// directly mappable texture; linear buffers have no views.
	ErrMappableTextureView = errors.New("native: directly mappable textures do not support views")
)

// copyPitchAlignment is the row pitch required for texture-to-buffer
// copies.
const copyPitchAlignment = 256

// Texture is GPU texture storage in one of two residency modes.
// Device-private textures are backed by a HAL texture; directly mappable
// textures are backed by a linear HAL buffer laid out mip-major with the
// packed strides of texel.CalcSubresourceLayout.
//
// Identity (type, format, extent, mip and layer counts, samples) is
// immutable after creation. Destroy is idempotent. Transfer calls follow
// the single-caller model: one goroutine per texture at a time.
type Texture struct {
	mu     sync.RWMutex
	device gpuDevice
	queue  gpuQueue

	texType     texel.TextureType
	format      texel.Format
	extent      texel.Extent3D
	mipLevels   uint32
	arrayLayers uint32
	samples     uint32
	residency   texel.Residency
	label       string

	halTexture hal.Texture
	halBuffer  hal.Buffer
	lastUsage  gputypes.TextureUsage
	destroyed  bool
}

// Type returns the texture's dimensionality class.
func (t *Texture) Type() texel.TextureType { return t.texType }

// Format returns the hardware pixel format.
func (t *Texture) Format() texel.Format { return t.format }

// Extent returns the spatial size of mip zero.
func (t *Texture) Extent() texel.Extent3D { return t.extent }

// MipLevels returns the mip level count.
func (t *Texture) MipLevels() uint32 { return t.mipLevels }

// ArrayLayers returns the array layer count.
func (t *Texture) ArrayLayers() uint32 { return t.arrayLayers }

// Samples returns the per-texel sample count.
func (t *Texture) Samples() uint32 { return t.samples }

// Residency returns the storage model.
func (t *Texture) Residency() texel.Residency { return t.residency }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// MipExtent returns the storage extent of one mip level; array and cube
// layer counts ride in Depth.
func (t *Texture) MipExtent(mipLevel uint32) texel.Extent3D {
	return texel.MipExtent(t.texType, t.extent, t.arrayLayers, mipLevel)
}

// SubresourceFootprint locates one (mip, layer) subresource inside the
// texture's packed mip-major layout.
func (t *Texture) SubresourceFootprint(mipLevel, arrayLayer uint32) texel.SubresourceFootprint {
	return texel.CalcSubresourceFootprint(t.texType, t.format, t.extent, t.arrayLayers, mipLevel, arrayLayer)
}

// MemoryFootprint returns the total packed byte size across all mips and
// layers.
func (t *Texture) MemoryFootprint() uint64 {
	return texel.MemoryFootprint(t.texType, t.format, t.extent, t.arrayLayers, t.mipLevels)
}

// Raw returns the backing HAL texture. It is nil for directly mappable
// textures and after Destroy.
func (t *Texture) Raw() hal.Texture {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.destroyed {
		return nil
	}
	return t.halTexture
}

// markUsage records the texture's current HAL usage so transfer barriers
// transition from the right state.
func (t *Texture) markUsage(usage gputypes.TextureUsage) {
	t.mu.Lock()
	t.lastUsage = usage
	t.mu.Unlock()
}

// currentUsage returns the usage recorded by the last queue operation,
// zero for a texture the queue has not touched.
func (t *Texture) currentUsage() gputypes.TextureUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastUsage
}

// Destroy releases the backing HAL storage. Views created from the
// texture must be destroyed first. Idempotent.
func (t *Texture) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.halTexture != nil {
		t.device.DestroyTexture(t.halTexture)
		t.halTexture = nil
	}
	if t.halBuffer != nil {
		t.device.DestroyBuffer(t.halBuffer)
		t.halBuffer = nil
	}
	slogger().Debug("texture destroyed", "label", t.label)
}

// validateRegion checks a transfer region against the texture's shape.
// Transfers address exactly one mip level; array layers span through the
// subresource.
func (t *Texture) validateRegion(region texel.TextureRegion) error {
	sub := region.Subresource
	if sub.NumMipLevels != 1 {
		return fmt.Errorf("%w: transfers address one mip level, got %d", texel.ErrRegionOutOfBounds, sub.NumMipLevels)
	}
	if sub.BaseMipLevel >= t.mipLevels {
		return fmt.Errorf("%w: mip %d of %d", texel.ErrRegionOutOfBounds, sub.BaseMipLevel, t.mipLevels)
	}
	if sub.BaseArrayLayer >= t.arrayLayers || sub.NumArrayLayers > t.arrayLayers-sub.BaseArrayLayer {
		return fmt.Errorf("%w: layers [%d,%d) of %d", texel.ErrRegionOutOfBounds,
			sub.BaseArrayLayer, sub.BaseArrayLayer+sub.NumArrayLayers, t.arrayLayers)
	}
	bounds := texel.MipExtent(t.texType, t.extent, 1, sub.BaseMipLevel)
	if !texel.RegionInside(region.Offset, region.Extent, bounds) {
		return fmt.Errorf("%w: %v+%v exceeds %v", texel.ErrRegionOutOfBounds, region.Offset, region.Extent, bounds)
	}
	a := t.format.Attribs()
	if a.Flags&texel.FormatFlagCompressed != 0 {
		if uint32(region.Offset.X)%a.BlockWidth != 0 || uint32(region.Offset.Y)%a.BlockHeight != 0 {
			return fmt.Errorf("%w: compressed region offsets must be block-aligned", texel.ErrRegionOutOfBounds)
		}
	}
	return nil
}

// WriteRegion uploads pixel data into one mip level of the region's
// array layers, in increasing layer order. Source data in a different
// uncompressed representation is converted to the texture's native pair
// first. Empty regions are no-ops.
func (t *Texture) WriteRegion(region texel.TextureRegion, src texel.SrcImageDescriptor) error {
	t.mu.RLock()
	destroyed := t.destroyed
	halTex := t.halTexture
	halBuf := t.halBuffer
	t.mu.RUnlock()
	if destroyed {
		return ErrTextureDestroyed
	}
	if region.Extent.IsEmpty() || region.Subresource.NumArrayLayers == 0 {
		return nil
	}
	if err := t.validateRegion(region); err != nil {
		return err
	}

	layers := region.Subresource.NumArrayLayers
	regionLayout := texel.CalcSubresourceLayout(t.format, region.Extent)
	needed := regionLayout.DataSize * uint64(layers)

	payload, err := t.toNative(src, region.Extent, layers, needed)
	if err != nil {
		return err
	}

	if t.residency == texel.ResidencyDirectlyMappable {
		t.writeMappable(halBuf, region, payload, regionLayout)
	} else {
		t.writePrivate(halTex, region, payload, regionLayout)
	}
	slogger().Debug("region written",
		"label", t.label,
		"mip", region.Subresource.BaseMipLevel,
		"layers", layers,
		"bytes", needed)
	return nil
}

// toNative returns src's bytes in the texture's native representation,
// converting when the pairs differ. The result holds exactly needed
// bytes for the given region extent and layer count.
func (t *Texture) toNative(src texel.SrcImageDescriptor, extent texel.Extent3D, layers uint32, needed uint64) ([]byte, error) {
	a := t.format.Attribs()
	if src.Format == a.ImageFormat && src.DataType == a.DataType {
		if uint64(len(src.Data)) < needed {
			return nil, fmt.Errorf("%w: have %d bytes, region needs %d", texel.ErrSrcDataSizeTooSmall, len(src.Data), needed)
		}
		return src.Data[:needed], nil
	}
	if a.Flags&texel.FormatFlagCompressed != 0 || src.Format == texel.ImageFormatCompressed {
		return nil, fmt.Errorf("%w: %s/%s to %s", texel.ErrCompressedConversion, src.Format, src.DataType, t.format)
	}
	srcPixel := uint64(src.PixelSize())
	if srcPixel == 0 {
		return nil, fmt.Errorf("%w: %s/%s", texel.ErrConversionUnsupported, src.Format, src.DataType)
	}
	srcNeeded := srcPixel * extent.Texels() * uint64(layers)
	if uint64(len(src.Data)) < srcNeeded {
		return nil, fmt.Errorf("%w: have %d bytes, region needs %d", texel.ErrSrcDataSizeTooSmall, len(src.Data), srcNeeded)
	}
	bounded := texel.SrcImageDescriptor{Format: src.Format, DataType: src.DataType, Data: src.Data[:srcNeeded]}
	out, err := texel.ConvertImageBuffer(bounded, a.ImageFormat, a.DataType, 0)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// writeMappable copies payload into the linear backing buffer: one write
// when the region covers whole layers, otherwise row by row.
func (t *Texture) writeMappable(buf hal.Buffer, region texel.TextureRegion, payload []byte, regionLayout texel.SubresourceLayout) {
	sub := region.Subresource
	if t.regionIsFullLayers(region) {
		foot := t.SubresourceFootprint(sub.BaseMipLevel, sub.BaseArrayLayer)
		t.queue.WriteBuffer(buf, foot.Offset, payload)
		return
	}
	a := t.format.Attribs()
	blockRows := uint32(regionLayout.LayerStride / regionLayout.RowStride)
	firstRow := uint32(region.Offset.Y) / a.BlockHeight
	colOffset := uint64(uint32(region.Offset.X)/a.BlockWidth) * uint64(a.BytesPerBlock)
	var srcOff uint64
	for layer := uint32(0); layer < sub.NumArrayLayers; layer++ {
		foot := t.SubresourceFootprint(sub.BaseMipLevel, sub.BaseArrayLayer+layer)
		for z := uint32(0); z < region.Extent.Depth; z++ {
			sliceBase := foot.Offset + uint64(uint32(region.Offset.Z)+z)*foot.Layout.LayerStride
			for row := uint32(0); row < blockRows; row++ {
				dstOff := sliceBase + uint64(firstRow+row)*foot.Layout.RowStride + colOffset
				t.queue.WriteBuffer(buf, dstOff, payload[srcOff:srcOff+regionLayout.RowStride])
				srcOff += regionLayout.RowStride
			}
		}
	}
}

// writePrivate uploads payload through the HAL queue, one WriteTexture
// per array layer, advancing the source by the region's layer stride.
func (t *Texture) writePrivate(tex hal.Texture, region texel.TextureRegion, payload []byte, regionLayout texel.SubresourceLayout) {
	sub := region.Subresource
	rows := uint32(regionLayout.LayerStride / regionLayout.RowStride)
	depth := uint32(1)
	if t.texType == texel.TextureType3D {
		depth = region.Extent.Depth
	}
	for layer := uint32(0); layer < sub.NumArrayLayers; layer++ {
		originZ := sub.BaseArrayLayer + layer
		if t.texType == texel.TextureType3D {
			originZ = uint32(region.Offset.Z)
		}
		start := uint64(layer) * regionLayout.DataSize
		t.queue.WriteTexture(
			&hal.ImageCopyTexture{
				Texture:  tex,
				MipLevel: sub.BaseMipLevel,
				Origin:   hal.Origin3D{X: uint32(region.Offset.X), Y: uint32(region.Offset.Y), Z: originZ},
				Aspect:   gputypes.TextureAspectAll,
			},
			payload[start:start+regionLayout.DataSize],
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(regionLayout.RowStride),
				RowsPerImage: rows,
			},
			&hal.Extent3D{Width: region.Extent.Width, Height: region.Extent.Height, DepthOrArrayLayers: depth},
		)
	}
	t.markUsage(gputypes.TextureUsageCopyDst)
}

// regionIsFullLayers reports whether the region covers whole layers of
// its mip level, making the affected bytes contiguous in linear storage.
func (t *Texture) regionIsFullLayers(region texel.TextureRegion) bool {
	bounds := texel.MipExtent(t.texType, t.extent, 1, region.Subresource.BaseMipLevel)
	return region.Offset == (texel.Offset3D{}) && region.Extent == bounds
}

// ReadRegion downloads one mip level of the region's array layers into
// dst, in increasing layer order, converting when dst's representation
// differs from the texture's native pair.
//
// Directly mappable textures read straight out of the linear buffer.
// Device-private textures need a CopyContext and a StagingBuffer: the
// region is copied into the staging buffer with 256-byte aligned rows,
// one copy per layer, and the call blocks until the device signals the
// fence. On any validation error dst is untouched and nothing is
// submitted.
func (t *Texture) ReadRegion(region texel.TextureRegion, dst texel.DstImageDescriptor, ctx *CopyContext, staging *StagingBuffer) error {
	t.mu.RLock()
	destroyed := t.destroyed
	halTex := t.halTexture
	halBuf := t.halBuffer
	lastUsage := t.lastUsage
	t.mu.RUnlock()
	if destroyed {
		return ErrTextureDestroyed
	}
	if region.Extent.IsEmpty() || region.Subresource.NumArrayLayers == 0 {
		return nil
	}
	if err := t.validateRegion(region); err != nil {
		return err
	}

	layers := region.Subresource.NumArrayLayers
	regionLayout := texel.CalcSubresourceLayout(t.format, region.Extent)
	native := regionLayout.DataSize * uint64(layers)

	a := t.format.Attribs()
	matching := dst.Format == a.ImageFormat && dst.DataType == a.DataType
	required := native
	if !matching {
		if a.Flags&texel.FormatFlagCompressed != 0 || dst.Format == texel.ImageFormatCompressed {
			return fmt.Errorf("%w: %s to %s/%s", texel.ErrCompressedConversion, t.format, dst.Format, dst.DataType)
		}
		dstPixel := uint64(dst.PixelSize())
		if dstPixel == 0 {
			return fmt.Errorf("%w: %s/%s", texel.ErrConversionUnsupported, dst.Format, dst.DataType)
		}
		required = dstPixel * region.Extent.Texels() * uint64(layers)
	}
	if uint64(len(dst.Data)) < required {
		return fmt.Errorf("%w: have %d bytes, region needs %d", texel.ErrDstDataSizeTooSmall, len(dst.Data), required)
	}

	if t.residency == texel.ResidencyDirectlyMappable {
		return t.readMappable(halBuf, region, dst, regionLayout, matching)
	}
	return t.readPrivate(halTex, region, dst, regionLayout, matching, lastUsage, ctx, staging)
}

// readMappable reads straight out of the linear backing buffer. When the
// representations differ each layer stages through an intermediate
// buffer bounded to one layer.
func (t *Texture) readMappable(buf hal.Buffer, region texel.TextureRegion, dst texel.DstImageDescriptor, regionLayout texel.SubresourceLayout, matching bool) error {
	sub := region.Subresource
	a := t.format.Attribs()

	if matching && t.regionIsFullLayers(region) {
		foot := t.SubresourceFootprint(sub.BaseMipLevel, sub.BaseArrayLayer)
		total := regionLayout.DataSize * uint64(sub.NumArrayLayers)
		if err := t.queue.ReadBuffer(buf, foot.Offset, dst.Data[:total]); err != nil {
			return fmt.Errorf("read mappable texture: %w", err)
		}
		return nil
	}

	blockRows := uint32(regionLayout.LayerStride / regionLayout.RowStride)
	firstRow := uint32(region.Offset.Y) / a.BlockHeight
	colOffset := uint64(uint32(region.Offset.X)/a.BlockWidth) * uint64(a.BytesPerBlock)

	var layerBuf []byte
	if !matching {
		layerBuf = make([]byte, regionLayout.DataSize)
	}
	dstPixel := uint64(dst.PixelSize())
	layerTexels := region.Extent.Texels()

	for layer := uint32(0); layer < sub.NumArrayLayers; layer++ {
		foot := t.SubresourceFootprint(sub.BaseMipLevel, sub.BaseArrayLayer+layer)
		out := dst.Data[uint64(layer)*regionLayout.DataSize:]
		if !matching {
			out = layerBuf
		}
		var off uint64
		for z := uint32(0); z < region.Extent.Depth; z++ {
			sliceBase := foot.Offset + uint64(uint32(region.Offset.Z)+z)*foot.Layout.LayerStride
			for row := uint32(0); row < blockRows; row++ {
				srcOff := sliceBase + uint64(firstRow+row)*foot.Layout.RowStride + colOffset
				if err := t.queue.ReadBuffer(buf, srcOff, out[off:off+regionLayout.RowStride]); err != nil {
					return fmt.Errorf("read mappable texture: %w", err)
				}
				off += regionLayout.RowStride
			}
		}
		if !matching {
			src := texel.SrcImageDescriptor{Format: a.ImageFormat, DataType: a.DataType, Data: layerBuf}
			converted, err := texel.ConvertImageBuffer(src, dst.Format, dst.DataType, 0)
			if err != nil {
				return err
			}
			copy(dst.Data[uint64(layer)*dstPixel*layerTexels:], converted)
		}
	}
	return nil
}

// readPrivate copies the region into the staging buffer with row pitch
// aligned to copyPitchAlignment, blocks until the device signals, then
// strips the padding and converts if needed.
func (t *Texture) readPrivate(tex hal.Texture, region texel.TextureRegion, dst texel.DstImageDescriptor, regionLayout texel.SubresourceLayout, matching bool, lastUsage gputypes.TextureUsage, ctx *CopyContext, staging *StagingBuffer) error {
	if ctx == nil {
		return ErrMissingCopyContext
	}
	if staging == nil {
		return ErrMissingStagingBuffer
	}

	sub := region.Subresource
	layers := sub.NumArrayLayers
	alignedRow := (regionLayout.RowStride + copyPitchAlignment - 1) &^ uint64(copyPitchAlignment-1)
	rows := regionLayout.LayerStride / regionLayout.RowStride
	depth := uint32(1)
	if t.texType == texel.TextureType3D {
		depth = region.Extent.Depth
	}
	stagedLayer := alignedRow * rows * uint64(depth)
	stagedTotal := stagedLayer * uint64(layers)

	if err := staging.Grow(stagedTotal); err != nil {
		return err
	}

	encoder, err := ctx.begin("read_region")
	if err != nil {
		return err
	}
	if lastUsage != 0 && lastUsage != gputypes.TextureUsageCopySrc {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: lastUsage,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
	}

	copies := make([]hal.BufferTextureCopy, 0, layers)
	for layer := uint32(0); layer < layers; layer++ {
		originZ := sub.BaseArrayLayer + layer
		if t.texType == texel.TextureType3D {
			originZ = uint32(region.Offset.Z)
		}
		copies = append(copies, hal.BufferTextureCopy{
			BufferLayout: hal.ImageDataLayout{
				Offset:       uint64(layer) * stagedLayer,
				BytesPerRow:  uint32(alignedRow),
				RowsPerImage: uint32(rows),
			},
			TextureBase: hal.ImageCopyTexture{
				Texture:  tex,
				MipLevel: sub.BaseMipLevel,
				Origin:   hal.Origin3D{X: uint32(region.Offset.X), Y: uint32(region.Offset.Y), Z: originZ},
				Aspect:   gputypes.TextureAspectAll,
			},
			Size: hal.Extent3D{Width: region.Extent.Width, Height: region.Extent.Height, DepthOrArrayLayers: depth},
		})
	}
	encoder.CopyTextureToBuffer(tex, staging.buffer(), copies)

	if lastUsage != 0 && lastUsage != gputypes.TextureUsageCopySrc {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: lastUsage,
			},
		}})
	}

	if err := ctx.submit(encoder); err != nil {
		return fmt.Errorf("read region: %w", err)
	}

	readback := make([]byte, stagedTotal)
	if err := t.queue.ReadBuffer(staging.buffer(), 0, readback); err != nil {
		return fmt.Errorf("read staging buffer: %w", err)
	}

	// Strip the row padding into the packed region layout.
	out := dst.Data
	var packed []byte
	if !matching {
		packed = make([]byte, regionLayout.DataSize*uint64(layers))
		out = packed
	}
	var dstOff uint64
	for layer := uint32(0); layer < layers; layer++ {
		layerBase := uint64(layer) * stagedLayer
		for slice := uint64(0); slice < uint64(depth); slice++ {
			sliceBase := layerBase + slice*alignedRow*rows
			for row := uint64(0); row < rows; row++ {
				srcOff := sliceBase + row*alignedRow
				copy(out[dstOff:dstOff+regionLayout.RowStride], readback[srcOff:])
				dstOff += regionLayout.RowStride
			}
		}
	}
	if !matching {
		a := t.format.Attribs()
		src := texel.SrcImageDescriptor{Format: a.ImageFormat, DataType: a.DataType, Data: packed}
		converted, err := texel.ConvertImageBuffer(src, dst.Format, dst.DataType, 0)
		if err != nil {
			return err
		}
		copy(dst.Data, converted)
	}
	slogger().Debug("region read",
		"label", t.label,
		"mip", sub.BaseMipLevel,
		"layers", layers,
		"staged", stagedTotal)
	return nil
}

// TextureView is a weak handle over a mip and layer range of a
// device-private texture. It shares the parent's storage and must be
// destroyed before the texture it views.
type TextureView struct {
	mu          sync.RWMutex
	device      gpuDevice
	texture     *Texture
	halView     hal.TextureView
	subresource texel.TextureSubresource
	destroyed   bool
}

// CreateSubresourceView creates a view over the given mip and layer
// range. Zero counts select all remaining levels or layers from the
// base. Directly mappable textures have no views.
func (t *Texture) CreateSubresourceView(subresource texel.TextureSubresource) (*TextureView, error) {
	t.mu.RLock()
	destroyed := t.destroyed
	halTex := t.halTexture
	t.mu.RUnlock()
	if destroyed {
		return nil, ErrTextureDestroyed
	}
	if t.residency == texel.ResidencyDirectlyMappable {
		return nil, ErrMappableTextureView
	}
	if subresource.BaseMipLevel >= t.mipLevels ||
		subresource.NumMipLevels > t.mipLevels-subresource.BaseMipLevel {
		return nil, fmt.Errorf("%w: view mips [%d,%d) of %d", texel.ErrRegionOutOfBounds,
			subresource.BaseMipLevel, subresource.BaseMipLevel+subresource.NumMipLevels, t.mipLevels)
	}
	if subresource.BaseArrayLayer >= t.arrayLayers ||
		subresource.NumArrayLayers > t.arrayLayers-subresource.BaseArrayLayer {
		return nil, fmt.Errorf("%w: view layers [%d,%d) of %d", texel.ErrRegionOutOfBounds,
			subresource.BaseArrayLayer, subresource.BaseArrayLayer+subresource.NumArrayLayers, t.arrayLayers)
	}

	// Format and dimension are zero so the view inherits both from the
	// texture.
	halView, err := t.device.CreateTextureView(halTex, &hal.TextureViewDescriptor{
		Label:           t.label + " (view)",
		Format:          gputypes.TextureFormatUndefined,
		Dimension:       gputypes.TextureViewDimensionUndefined,
		Aspect:          gputypes.TextureAspectAll,
		BaseMipLevel:    subresource.BaseMipLevel,
		MipLevelCount:   subresource.NumMipLevels,
		BaseArrayLayer:  subresource.BaseArrayLayer,
		ArrayLayerCount: subresource.NumArrayLayers,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture view: %w", err)
	}
	return &TextureView{
		device:      t.device,
		texture:     t,
		halView:     halView,
		subresource: subresource,
	}, nil
}

// Texture returns the parent texture.
func (v *TextureView) Texture() *Texture { return v.texture }

// Subresource returns the viewed mip and layer range.
func (v *TextureView) Subresource() texel.TextureSubresource { return v.subresource }

// Raw returns the backing HAL view, nil after Destroy.
func (v *TextureView) Raw() hal.TextureView {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.destroyed {
		return nil
	}
	return v.halView
}

// Destroy releases the HAL view. Idempotent.
func (v *TextureView) Destroy() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.destroyed {
		return
	}
	v.destroyed = true
	if v.halView != nil {
		v.device.DestroyTextureView(v.halView)
		v.halView = nil
	}
}
