// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/texel"
	"github.com/gogpu/wgpu/hal"
)

// Attachment binder sentinel errors.
var (
	// ErrRenderTargetDestroyed is returned when operating on a destroyed
	// render target.
	ErrRenderTargetDestroyed = errors.New("native: render target has been destroyed")

	// ErrFormatNotRenderable is returned when an attachment format
	// cannot be rendered to, or sits in the wrong attachment class.
	ErrFormatNotRenderable = errors.New("native: format is not renderable")

	// ErrMipResolutionMismatch is returned when an attached mip level
	// does not match the render target resolution.
	ErrMipResolutionMismatch = errors.New("native: attachment resolution does not match the render target")

	// ErrDepthStencilAlreadySet is returned when a second depth-stencil
	// attachment is requested.
	ErrDepthStencilAlreadySet = errors.New("native: render target already has a depth-stencil attachment")

	// ErrResolveWithoutMultisample is returned when a resolve attachment
	// is requested on a single-sampled render target.
	ErrResolveWithoutMultisample = errors.New("native: resolve attachments require a multisampled render target")

	// ErrAttachmentIndexOutOfRange is returned when a color attachment
	// index does not name a bound attachment.
	ErrAttachmentIndexOutOfRange = errors.New("native: color attachment index out of range")
)

// AttachmentDescriptor selects the storage behind one attachment slot.
// Supplying a Texture binds its (MipLevel, ArrayLayer) subresource;
// supplying only a Format allocates an implicit renderbuffer owned by
// the target. The zero value disables the slot.
type AttachmentDescriptor struct {
	Format     texel.Format
	Texture    *Texture
	MipLevel   uint32
	ArrayLayer uint32
}

// enabled reports whether the slot participates in the target.
func (a AttachmentDescriptor) enabled() bool {
	return a.Texture != nil || a.Format != texel.FormatUndefined
}

// attachmentFormat returns the effective format of an attachment: the
// attached texture's when present, the declared renderbuffer format
// otherwise.
func attachmentFormat(att AttachmentDescriptor) texel.Format {
	if att.Texture != nil {
		return att.Texture.Format()
	}
	return att.Format
}

// RenderTargetDescriptor configures NewRenderTarget.
//
// ResolveAttachments pairs by index with ColorAttachments: entry i
// resolves color slot i into a single-sampled attachment. Disabled color
// slots do not consume draw-buffer positions; bindings are assigned
// densely in slot order. A depth-class format in a color slot is routed
// to the depth-stencil attachment.
type RenderTargetDescriptor struct {
	Label  string
	Width  uint32
	Height uint32

	// Samples above one selects a multisampled target; the count is
	// negotiated down to the nearest supported value.
	Samples uint32

	ColorAttachments       []AttachmentDescriptor
	ResolveAttachments     []AttachmentDescriptor
	DepthStencilAttachment AttachmentDescriptor
}

// colorAttachment is one bound color slot.
type colorAttachment struct {
	slot    int
	binding uint32
	format  texel.Format
	texture *Texture
	view    *TextureView
	resolve *resolveAttachment
}

// resolveAttachment is the single-sample pairing of a color attachment.
type resolveAttachment struct {
	format  texel.Format
	texture *Texture
	view    *TextureView
}

// depthStencilAttachment is the target's depth-stencil binding. The
// binding class derives from the format flags.
type depthStencilAttachment struct {
	format     texel.Format
	texture    *Texture
	view       *TextureView
	hasDepth   bool
	hasStencil bool
}

// RenderTarget is an assembled attachment set: densely bound color
// attachments, their optional resolve pairings, and at most one
// depth-stencil attachment. Attachment slots without a caller texture
// are backed by renderbuffers owned by the target and released by
// Destroy. A target with no attachments is legal.
type RenderTarget struct {
	mu      sync.RWMutex
	device  *Device
	label   string
	width   uint32
	height  uint32
	samples uint32

	colors        []*colorAttachment
	depthStencil  *depthStencilAttachment
	drawBuffers   []uint32
	renderbuffers []*Texture
	views         []*TextureView
	destroyed     bool
}

// CreateRenderTarget assembles a render target from the descriptor; see
// NewRenderTarget.
func (d *Device) CreateRenderTarget(desc RenderTargetDescriptor) (*RenderTarget, error) {
	return NewRenderTarget(d, desc)
}

// NewRenderTarget builds the attachment set described by desc. Sample
// counts above one are negotiated against the device capabilities once
// per construction. On error every resource created so far is released.
func NewRenderTarget(d *Device, desc RenderTargetDescriptor) (*RenderTarget, error) {
	if d == nil {
		return nil, ErrNilDevice
	}
	d.mu.RLock()
	destroyed := d.destroyed
	d.mu.RUnlock()
	if destroyed {
		return nil, ErrDeviceDestroyed
	}
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: render target %dx%d", texel.ErrInvalidExtent, desc.Width, desc.Height)
	}
	if len(desc.ColorAttachments) > maxColorAttachments {
		return nil, fmt.Errorf("native: %d color attachments, device supports %d",
			len(desc.ColorAttachments), maxColorAttachments)
	}

	samples := uint32(1)
	if desc.Samples > 1 {
		negotiated, err := d.Caps().PickSamples(desc.Samples)
		if err != nil {
			return nil, err
		}
		samples = negotiated
	}

	rt := &RenderTarget{
		device:  d,
		label:   desc.Label,
		width:   desc.Width,
		height:  desc.Height,
		samples: samples,
	}
	if err := rt.build(&desc); err != nil {
		rt.release()
		return nil, err
	}
	rt.SetDrawBuffers()
	slogger().Debug("render target created",
		"label", rt.label,
		"size", fmt.Sprintf("%dx%d", rt.width, rt.height),
		"samples", rt.samples,
		"colors", len(rt.colors),
		"depthStencil", rt.depthStencil != nil)
	return rt, nil
}

// build binds every enabled attachment in descriptor order. The
// dedicated depth-stencil slot binds first so a depth-class color entry
// is reported as the duplicate.
func (rt *RenderTarget) build(desc *RenderTargetDescriptor) error {
	if desc.DepthStencilAttachment.enabled() {
		if err := rt.buildDepthStencilAttachment(desc.DepthStencilAttachment); err != nil {
			return err
		}
	}
	for slot, att := range desc.ColorAttachments {
		if !att.enabled() {
			continue
		}
		if attachmentFormat(att).IsDepthOrStencil() {
			if err := rt.buildDepthStencilAttachment(att); err != nil {
				return fmt.Errorf("color slot %d: %w", slot, err)
			}
			continue
		}
		if err := rt.buildColorAttachment(slot, att); err != nil {
			return err
		}
		if slot < len(desc.ResolveAttachments) && desc.ResolveAttachments[slot].enabled() {
			if err := rt.buildResolveAttachment(slot, desc.ResolveAttachments[slot]); err != nil {
				return err
			}
		}
	}
	for slot, att := range desc.ResolveAttachments {
		if !att.enabled() {
			continue
		}
		if rt.colorBySlot(slot) == nil {
			return fmt.Errorf("native: resolve attachment %d has no color attachment to pair with", slot)
		}
	}
	return nil
}

// buildColorAttachment binds one color slot at the next dense
// draw-buffer position.
func (rt *RenderTarget) buildColorAttachment(slot int, att AttachmentDescriptor) error {
	format := attachmentFormat(att)
	if !format.IsRenderable() {
		return fmt.Errorf("%w: %s at color slot %d", ErrFormatNotRenderable, format, slot)
	}
	view, tex, err := rt.attachmentStorage(att, rt.samples, fmt.Sprintf("%s color %d", rt.label, slot))
	if err != nil {
		return fmt.Errorf("color slot %d: %w", slot, err)
	}
	rt.colors = append(rt.colors, &colorAttachment{
		slot:    slot,
		binding: uint32(len(rt.colors)),
		format:  format,
		texture: tex,
		view:    view,
	})
	return nil
}

// buildResolveAttachment pairs a single-sampled attachment with the
// color attachment at the same slot.
func (rt *RenderTarget) buildResolveAttachment(slot int, att AttachmentDescriptor) error {
	if rt.samples <= 1 {
		return fmt.Errorf("%w: resolve at color slot %d", ErrResolveWithoutMultisample, slot)
	}
	c := rt.colorBySlot(slot)
	if c == nil {
		return fmt.Errorf("native: resolve attachment %d has no color attachment to pair with", slot)
	}
	format := attachmentFormat(att)
	if format != c.format {
		return fmt.Errorf("native: resolve attachment %d is %s, color is %s", slot, format, c.format)
	}
	view, tex, err := rt.attachmentStorage(att, 1, fmt.Sprintf("%s resolve %d", rt.label, slot))
	if err != nil {
		return fmt.Errorf("resolve slot %d: %w", slot, err)
	}
	c.resolve = &resolveAttachment{format: format, texture: tex, view: view}
	return nil
}

// buildDepthStencilAttachment binds the target's single depth-stencil
// attachment.
func (rt *RenderTarget) buildDepthStencilAttachment(att AttachmentDescriptor) error {
	if rt.depthStencil != nil {
		return ErrDepthStencilAlreadySet
	}
	format := attachmentFormat(att)
	if !format.IsDepthOrStencil() || !format.IsRenderable() {
		return fmt.Errorf("%w: %s is not a depth-stencil format", ErrFormatNotRenderable, format)
	}
	view, tex, err := rt.attachmentStorage(att, rt.samples, rt.label+" depth-stencil")
	if err != nil {
		return fmt.Errorf("depth-stencil: %w", err)
	}
	rt.depthStencil = &depthStencilAttachment{
		format:     format,
		texture:    tex,
		view:       view,
		hasDepth:   format.HasDepth(),
		hasStencil: format.HasStencil(),
	}
	return nil
}

// attachmentStorage returns the view backing one attachment: a
// subresource view of the supplied texture, or a freshly allocated
// renderbuffer when the descriptor carries only a format. Views and
// renderbuffers are tracked for release.
func (rt *RenderTarget) attachmentStorage(att AttachmentDescriptor, samples uint32, label string) (*TextureView, *Texture, error) {
	if att.Texture != nil {
		tex := att.Texture
		if tex.Samples() != samples {
			return nil, nil, fmt.Errorf("native: attachment has %d samples, target needs %d", tex.Samples(), samples)
		}
		if err := ValidateMipResolution(tex, att.MipLevel, rt.width, rt.height); err != nil {
			return nil, nil, err
		}
		view, err := tex.CreateSubresourceView(texel.TextureSubresource{
			BaseMipLevel:   att.MipLevel,
			NumMipLevels:   1,
			BaseArrayLayer: att.ArrayLayer,
			NumArrayLayers: 1,
		})
		if err != nil {
			return nil, nil, err
		}
		rt.views = append(rt.views, view)
		return view, tex, nil
	}

	texType := texel.TextureType2D
	if samples > 1 {
		texType = texel.TextureType2DMultisample
	}
	bind := texel.BindColorAttachment | texel.BindCopySrc
	if att.Format.IsDepthOrStencil() {
		bind = texel.BindDepthStencilAttachment
	}
	rb, err := rt.device.CreateTexture(texel.TextureDescriptor{
		Label:     label,
		Type:      texType,
		Format:    att.Format,
		Extent:    texel.Extent3D{Width: rt.width, Height: rt.height, Depth: 1},
		MipLevels: 1,
		Samples:   samples,
		BindFlags: bind,
	}, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("allocate renderbuffer: %w", err)
	}
	rt.renderbuffers = append(rt.renderbuffers, rb)
	view, err := rb.CreateSubresourceView(texel.TextureSubresource{NumMipLevels: 1, NumArrayLayers: 1})
	if err != nil {
		return nil, nil, err
	}
	rt.views = append(rt.views, view)
	return view, rb, nil
}

// ValidateMipResolution checks that a texture mip level matches a render
// target resolution exactly.
func ValidateMipResolution(tex *Texture, mipLevel, width, height uint32) error {
	ext := tex.MipExtent(mipLevel)
	if ext.Width != width || ext.Height != height {
		return fmt.Errorf("%w: mip %d is %dx%d, target is %dx%d",
			ErrMipResolutionMismatch, mipLevel, ext.Width, ext.Height, width, height)
	}
	return nil
}

// colorBySlot returns the color attachment bound at a descriptor slot,
// nil when the slot is disabled or depth-routed.
func (rt *RenderTarget) colorBySlot(slot int) *colorAttachment {
	for _, c := range rt.colors {
		if c.slot == slot {
			return c
		}
	}
	return nil
}

// SetDrawBuffers recomputes the ordered draw-buffer list from the bound
// color attachments and returns it. Idempotent: with unchanged
// attachments the list is identical.
func (rt *RenderTarget) SetDrawBuffers() []uint32 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	bufs := make([]uint32, 0, len(rt.colors))
	for _, c := range rt.colors {
		if c.view == nil {
			continue
		}
		bufs = append(bufs, c.binding)
	}
	rt.drawBuffers = bufs
	return append([]uint32(nil), bufs...)
}

// Framebuffer is a read-only snapshot of one attachment set: the HAL
// views in dense draw-buffer order plus the optional depth-stencil view.
// A render target has a primary framebuffer and, when resolve pairings
// exist, a single-sampled resolve sibling related index for index.
type Framebuffer struct {
	// Colors holds one view per draw-buffer position. Entries of the
	// resolve framebuffer are nil where the color attachment has no
	// resolve pairing.
	Colors []hal.TextureView

	// DepthStencil is the depth-stencil view, nil when none is bound.
	// Resolve framebuffers never carry one.
	DepthStencil hal.TextureView

	// Samples is the framebuffer's per-texel sample count.
	Samples uint32
}

// Framebuffer returns the primary framebuffer: every bound color view in
// draw-buffer order and the depth-stencil view. The snapshot is a copy;
// the views stay owned by the target.
func (rt *RenderTarget) Framebuffer() Framebuffer {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	fb := Framebuffer{Samples: rt.samples}
	for _, c := range rt.colors {
		fb.Colors = append(fb.Colors, c.view.Raw())
	}
	if rt.depthStencil != nil {
		fb.DepthStencil = rt.depthStencil.view.Raw()
	}
	return fb
}

// ResolveFramebuffer returns the single-sampled sibling the primary
// framebuffer resolves into. Positions without a resolve pairing are nil
// so the index correspondence with the primary is preserved. The second
// result is false when the target has no pairings at all.
func (rt *RenderTarget) ResolveFramebuffer() (Framebuffer, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	fb := Framebuffer{Samples: 1}
	any := false
	for _, c := range rt.colors {
		if c.resolve == nil {
			fb.Colors = append(fb.Colors, nil)
			continue
		}
		fb.Colors = append(fb.Colors, c.resolve.view.Raw())
		any = true
	}
	return fb, any
}

// DrawBuffers returns a copy of the cached draw-buffer list.
func (rt *RenderTarget) DrawBuffers() []uint32 {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return append([]uint32(nil), rt.drawBuffers...)
}

// Width returns the target resolution width.
func (rt *RenderTarget) Width() uint32 { return rt.width }

// Height returns the target resolution height.
func (rt *RenderTarget) Height() uint32 { return rt.height }

// Samples returns the negotiated sample count.
func (rt *RenderTarget) Samples() uint32 { return rt.samples }

// Label returns the debug label.
func (rt *RenderTarget) Label() string { return rt.label }

// NumColorAttachments returns the number of bound color attachments.
func (rt *RenderTarget) NumColorAttachments() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.colors)
}

// ColorFormat returns the format bound at a draw-buffer position.
func (rt *RenderTarget) ColorFormat(binding uint32) (texel.Format, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	if binding >= uint32(len(rt.colors)) {
		return texel.FormatUndefined, fmt.Errorf("%w: %d of %d", ErrAttachmentIndexOutOfRange, binding, len(rt.colors))
	}
	return rt.colors[binding].format, nil
}

// DepthStencilFormat returns the depth-stencil attachment's format, or
// FormatUndefined when none is bound.
func (rt *RenderTarget) DepthStencilFormat() texel.Format {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	if rt.depthStencil == nil {
		return texel.FormatUndefined
	}
	return rt.depthStencil.format
}

// Destroy releases owned views and renderbuffers in reverse creation
// order. Attached caller textures stay alive. Idempotent.
func (rt *RenderTarget) Destroy() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.destroyed {
		return
	}
	rt.destroyed = true
	rt.release()
	slogger().Debug("render target destroyed", "label", rt.label)
}

// release tears down created resources in reverse order, views before
// the textures they view.
func (rt *RenderTarget) release() {
	for i := len(rt.views) - 1; i >= 0; i-- {
		rt.views[i].Destroy()
	}
	rt.views = nil
	for i := len(rt.renderbuffers) - 1; i >= 0; i-- {
		rt.renderbuffers[i].Destroy()
	}
	rt.renderbuffers = nil
	rt.colors = nil
	rt.depthStencil = nil
	rt.drawBuffers = nil
}
