// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texel"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
)

// gpuDevice is the subset of hal.Device this package calls. Production
// code wraps the real device in halDevice; tests substitute byte-storing
// fakes.
type gpuDevice interface {
	CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error)
	CreateTextureView(texture hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error)
	CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error)
	CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (gpuEncoder, error)
	CreateFence() (hal.Fence, error)
	DestroyTexture(texture hal.Texture)
	DestroyTextureView(view hal.TextureView)
	DestroyBuffer(buffer hal.Buffer)
	DestroyFence(fence hal.Fence)
	FreeCommandBuffer(buffer hal.CommandBuffer)
	Wait(fence hal.Fence, value uint64, timeout time.Duration) (bool, error)
}

// gpuQueue is the subset of hal.Queue this package submits through.
// hal.Queue satisfies it directly.
type gpuQueue interface {
	Submit(buffers []hal.CommandBuffer, fence hal.Fence, value uint64) error
	WriteBuffer(buffer hal.Buffer, offset uint64, data []byte)
	WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D)
	ReadBuffer(buffer hal.Buffer, offset uint64, data []byte) error
}

// gpuEncoder is the subset of hal.CommandEncoder this package records
// into.
type gpuEncoder interface {
	BeginEncoding(label string) error
	EndEncoding() (hal.CommandBuffer, error)
	DiscardEncoding()
	BeginRenderPass(desc *hal.RenderPassDescriptor) gpuRenderPass
	TransitionTextures(barriers []hal.TextureBarrier)
	CopyTextureToBuffer(src hal.Texture, dst hal.Buffer, regions []hal.BufferTextureCopy)
}

// gpuRenderPass is the recording handle of one render pass. The resolve
// passes in this package encode no draws, so only End is needed.
type gpuRenderPass interface {
	End()
}

// halDevice adapts a hal.Device to the package seam. Every method
// promotes from the embedded device except CreateCommandEncoder, which
// narrows the encoder type.
type halDevice struct {
	hal.Device
}

func (d halDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (gpuEncoder, error) {
	encoder, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return halEncoder{encoder}, nil
}

// halEncoder adapts a hal.CommandEncoder, narrowing the render pass
// handle.
type halEncoder struct {
	hal.CommandEncoder
}

func (e halEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) gpuRenderPass {
	return e.CommandEncoder.BeginRenderPass(desc)
}

// convertFormat maps a texel format onto its HAL texture format.
// Formats without a mapping cannot back device-private textures.
func convertFormat(format texel.Format) (types.TextureFormat, error) {
	switch format {
	case texel.FormatR8Unorm:
		return types.TextureFormatR8Unorm, nil
	case texel.FormatRGBA8Unorm:
		return types.TextureFormatRGBA8Unorm, nil
	case texel.FormatRGBA8UnormSrgb:
		return types.TextureFormatRGBA8UnormSrgb, nil
	case texel.FormatBGRA8Unorm:
		return types.TextureFormatBGRA8Unorm, nil
	case texel.FormatBGRA8UnormSrgb:
		return types.TextureFormatBGRA8UnormSrgb, nil
	case texel.FormatR32Float:
		return types.TextureFormatR32Float, nil
	case texel.FormatRG32Float:
		return types.TextureFormatRG32Float, nil
	case texel.FormatRGBA32Float:
		return types.TextureFormatRGBA32Float, nil
	case texel.FormatDepth24PlusStencil8:
		return types.TextureFormatDepth24PlusStencil8, nil
	default:
		return types.TextureFormatUndefined, fmt.Errorf("%w: %s", ErrFormatUnsupported, format)
	}
}

// convertDimension maps a texture type onto its HAL dimensionality.
// Array layers and cube faces do not change the dimensionality; they
// ride in Extent3D.DepthOrArrayLayers.
func convertDimension(t texel.TextureType) types.TextureDimension {
	switch t {
	case texel.TextureType1D, texel.TextureType1DArray:
		return types.TextureDimension1D
	case texel.TextureType3D:
		return types.TextureDimension3D
	default:
		return types.TextureDimension2D
	}
}

// halExtent maps a texture shape onto HAL's packed extent, which carries
// array layers and cube faces in DepthOrArrayLayers. This differs from
// texel.RegionExtent, whose result follows the layout convention of
// putting 1D array layers in Height.
func halExtent(t texel.TextureType, extent texel.Extent3D, arrayLayers uint32) hal.Extent3D {
	switch {
	case t == texel.TextureType3D:
		return hal.Extent3D{Width: extent.Width, Height: extent.Height, DepthOrArrayLayers: extent.Depth}
	case t.IsArray() || t.IsCube():
		return hal.Extent3D{Width: extent.Width, Height: extent.Height, DepthOrArrayLayers: arrayLayers}
	default:
		return hal.Extent3D{Width: extent.Width, Height: extent.Height, DepthOrArrayLayers: 1}
	}
}

// convertUsage maps bind flags onto HAL usage bits.
func convertUsage(flags texel.BindFlags) gputypes.TextureUsage {
	var usage gputypes.TextureUsage
	if flags.Contains(texel.BindSampled) {
		usage |= gputypes.TextureUsageTextureBinding
	}
	if flags.Contains(texel.BindStorage) {
		usage |= gputypes.TextureUsageStorageBinding
	}
	if flags.Contains(texel.BindColorAttachment) || flags.Contains(texel.BindDepthStencilAttachment) {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	if flags.Contains(texel.BindCopySrc) {
		usage |= gputypes.TextureUsageCopySrc
	}
	if flags.Contains(texel.BindCopyDst) {
		usage |= gputypes.TextureUsageCopyDst
	}
	return usage
}
