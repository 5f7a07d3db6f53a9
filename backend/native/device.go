// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texel"
	"github.com/gogpu/wgpu/hal"
)

// Limits guaranteed by the WebGPU core feature set. Adapters in scope
// meet or exceed them.
const (
	maxTextureSize      = 8192
	maxColorAttachments = 8
	maxArrayLayers      = 256
)

// deviceSampleCounts lists the per-texel sample counts the WebGPU core
// feature set guarantees.
var deviceSampleCounts = []uint32{1, 4}

// Device creates and owns the package's GPU resources on top of an open
// HAL device and queue. The HAL pair itself stays with the caller;
// Destroy releases only what the Device created.
type Device struct {
	mu        sync.RWMutex
	device    gpuDevice
	queue     gpuQueue
	caps      texel.RenderingCapabilities
	destroyed bool
}

// NewDevice wraps an open HAL device and its queue.
func NewDevice(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	return newDevice(halDevice{device}, queue), nil
}

// newDevice is the seam constructor shared with tests.
func newDevice(device gpuDevice, queue gpuQueue) *Device {
	d := &Device{
		device: device,
		queue:  queue,
		caps: texel.RenderingCapabilities{
			SampleCounts:        append([]uint32(nil), deviceSampleCounts...),
			MaxTextureSize:      maxTextureSize,
			MaxColorAttachments: maxColorAttachments,
			MaxArrayLayers:      maxArrayLayers,
		},
	}
	slogger().Info("device created",
		"maxTextureSize", maxTextureSize,
		"sampleCounts", deviceSampleCounts)
	return d
}

// Caps returns the device's rendering capabilities. The returned value
// is a copy and safe to retain.
func (d *Device) Caps() texel.RenderingCapabilities {
	d.mu.RLock()
	defer d.mu.RUnlock()
	caps := d.caps
	caps.SampleCounts = append([]uint32(nil), d.caps.SampleCounts...)
	return caps
}

// SetLogger routes this package's logging to l. A nil logger restores
// the fallback to the root texel logger.
func (d *Device) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// Destroy marks the device destroyed. Resources created from it must be
// destroyed by their owners; the underlying HAL device stays with the
// caller. Idempotent.
func (d *Device) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return
	}
	d.destroyed = true
	slogger().Info("device destroyed")
}

// CreateTexture creates a texture for the given descriptor. Zero
// descriptor fields resolve to their defaults (full mip chain, one layer
// or six cube faces, one sample, sampled plus copy usage).
//
// When initial is non-nil and MiscNoInitialData is clear, its pixels are
// uploaded to mip zero of every array layer; the image extent must equal
// the texture's storage extent. MiscGenerateMips additionally fills the
// remaining mip levels of 2D textures from a CPU-generated chain.
func (d *Device) CreateTexture(desc texel.TextureDescriptor, initial *texel.Image) (*Texture, error) {
	d.mu.RLock()
	destroyed := d.destroyed
	d.mu.RUnlock()
	if destroyed {
		return nil, ErrDeviceDestroyed
	}
	if err := validateTextureDesc(&desc); err != nil {
		return nil, err
	}

	// Resolve defaults once so the texture's identity is fully explicit.
	desc.MipLevels = desc.MipLevelCount()
	desc.ArrayLayers = desc.LayerCount()
	desc.Samples = desc.SampleCount()
	if desc.BindFlags == 0 {
		desc.BindFlags = texel.BindSampled | texel.BindCopySrc | texel.BindCopyDst
	}

	t := &Texture{
		device:      d.device,
		queue:       d.queue,
		texType:     desc.Type,
		format:      desc.Format,
		extent:      desc.Extent,
		mipLevels:   desc.MipLevels,
		arrayLayers: desc.ArrayLayers,
		samples:     desc.Samples,
		residency:   desc.Residency,
		label:       desc.Label,
	}

	switch desc.Residency {
	case texel.ResidencyDirectlyMappable:
		buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
			Label: desc.Label,
			Size:  desc.Footprint(),
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("create mappable texture: %w", err)
		}
		t.halBuffer = buf
	default:
		halFormat, err := convertFormat(desc.Format)
		if err != nil {
			return nil, err
		}
		tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
			Label:         desc.Label,
			Size:          halExtent(desc.Type, desc.Extent, desc.ArrayLayers),
			MipLevelCount: desc.MipLevels,
			SampleCount:   desc.Samples,
			Dimension:     convertDimension(desc.Type),
			Format:        halFormat,
			Usage:         convertUsage(desc.BindFlags),
		})
		if err != nil {
			return nil, fmt.Errorf("create texture: %w", err)
		}
		t.halTexture = tex
	}

	slogger().Debug("texture created",
		"label", desc.Label,
		"type", desc.Type,
		"format", desc.Format,
		"extent", desc.Extent,
		"mips", desc.MipLevels,
		"layers", desc.ArrayLayers,
		"residency", desc.Residency)

	if initial != nil && desc.MiscFlags&texel.MiscNoInitialData == 0 {
		if err := d.uploadInitial(t, initial, desc.MiscFlags); err != nil {
			t.Destroy()
			return nil, err
		}
	}
	return t, nil
}

// NewStagingBuffer creates a staging buffer for device-private reads,
// pre-grown to size when size is non-zero.
func (d *Device) NewStagingBuffer(size uint64) (*StagingBuffer, error) {
	d.mu.RLock()
	destroyed := d.destroyed
	d.mu.RUnlock()
	if destroyed {
		return nil, ErrDeviceDestroyed
	}
	s := &StagingBuffer{device: d.device}
	if size > 0 {
		if err := s.Grow(size); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewCopyContext creates a command-submission context for transfers and
// resolves. Contexts are cheap; one per calling goroutine.
func (d *Device) NewCopyContext() (*CopyContext, error) {
	d.mu.RLock()
	destroyed := d.destroyed
	d.mu.RUnlock()
	if destroyed {
		return nil, ErrDeviceDestroyed
	}
	return &CopyContext{device: d.device, queue: d.queue}, nil
}

// validateTextureDesc rejects descriptor combinations the device cannot
// honor before any HAL object is created.
func validateTextureDesc(desc *texel.TextureDescriptor) error {
	if desc.Extent.IsEmpty() {
		return fmt.Errorf("%w: %v", texel.ErrInvalidExtent, desc.Extent)
	}
	if desc.Format == texel.FormatUndefined {
		return fmt.Errorf("%w: undefined format", ErrFormatUnsupported)
	}
	if desc.Extent.Width > maxTextureSize || desc.Extent.Height > maxTextureSize {
		return fmt.Errorf("%w: %v", ErrInvalidTextureSize, desc.Extent)
	}
	samples := desc.SampleCount()
	if samples > 1 && !desc.Type.IsMultisample() {
		return fmt.Errorf("%w: %d samples on %s", ErrSampleCountTypeMismatch, samples, desc.Type)
	}
	if samples == 1 && desc.Type.IsMultisample() {
		return fmt.Errorf("%w: one sample on %s", ErrSampleCountTypeMismatch, desc.Type)
	}
	if desc.Type == texel.TextureType3D && desc.ArrayLayers > 1 {
		return fmt.Errorf("native: 3D textures cannot carry array layers")
	}
	if desc.Type.IsCube() && desc.LayerCount()%6 != 0 {
		return fmt.Errorf("native: cube textures need a multiple of six layers, got %d", desc.LayerCount())
	}
	if desc.LayerCount() > maxArrayLayers {
		return fmt.Errorf("%w: %d layers", ErrInvalidTextureSize, desc.LayerCount())
	}
	switch desc.Residency {
	case texel.ResidencyDirectlyMappable:
		if desc.Format.IsDepthOrStencil() {
			return fmt.Errorf("%w: %s", ErrMappableDepthStencil, desc.Format)
		}
		if desc.Type.IsMultisample() {
			return fmt.Errorf("native: multisampled textures must be device-private")
		}
	}
	return nil
}

// uploadInitial writes the base mip of every array layer from the image
// and, for MiscGenerateMips on 2D textures, the CPU-generated chain.
func (d *Device) uploadInitial(t *Texture, initial *texel.Image, misc texel.MiscFlags) error {
	if t.samples > 1 {
		return fmt.Errorf("native: multisampled textures cannot take initial data")
	}
	want := texel.RegionExtent(t.texType, t.extent, t.arrayLayers)
	if initial.Extent() != want {
		return fmt.Errorf("%w: initial data is %v, texture storage is %v",
			texel.ErrInvalidExtent, initial.Extent(), want)
	}

	base := texel.TextureRegion{
		Extent: t.extent,
		Subresource: texel.TextureSubresource{
			NumMipLevels:   1,
			NumArrayLayers: t.arrayLayers,
		},
	}
	src := texel.SrcImageDescriptor{Format: initial.Format(), DataType: initial.DataType(), Data: initial.Data()}
	if err := t.WriteRegion(base, src); err != nil {
		return fmt.Errorf("upload initial data: %w", err)
	}

	if misc&texel.MiscGenerateMips == 0 || t.mipLevels <= 1 {
		return nil
	}
	if t.texType != texel.TextureType2D {
		slogger().Warn("mip generation needs a 2D texture, uploading base level only",
			"label", t.label, "type", t.texType)
		return nil
	}
	chain, err := initial.GenerateMipChain(t.mipLevels-1, texel.MipFilterCatmullRom)
	if err != nil {
		return fmt.Errorf("generate mip chain: %w", err)
	}
	for i, m := range chain {
		mip := uint32(i) + 1
		region := texel.TextureRegion{
			Extent: m.Extent(),
			Subresource: texel.TextureSubresource{
				BaseMipLevel:   mip,
				NumMipLevels:   1,
				NumArrayLayers: 1,
			},
		}
		src := texel.SrcImageDescriptor{Format: m.Format(), DataType: m.DataType(), Data: m.Data()}
		if err := t.WriteRegion(region, src); err != nil {
			return fmt.Errorf("upload mip %d: %w", mip, err)
		}
	}
	return nil
}
