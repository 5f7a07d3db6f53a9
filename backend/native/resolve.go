// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texel"
	"github.com/gogpu/wgpu/hal"
)

// ErrBackbufferFormatMismatch is returned when resolving into a
// backbuffer whose surface format differs from the color attachment.
var ErrBackbufferFormatMismatch = errors.New("native: backbuffer format does not match the color attachment")

// Backbuffer is a presentation surface to resolve into. Handle is
// optional; when it reports a surface format the resolve source must
// match it.
type Backbuffer struct {
	View   hal.TextureView
	Handle texel.DeviceHandle
}

// ResolveMultisampled resolves every color attachment that has a resolve
// pairing, one render pass per pairing on a single submission. A target
// without pairings is a no-op. Blocks until the GPU finishes.
func (rt *RenderTarget) ResolveMultisampled(ctx *CopyContext) error {
	if ctx == nil {
		return ErrMissingCopyContext
	}
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	if rt.destroyed {
		return ErrRenderTargetDestroyed
	}

	var pairs []*colorAttachment
	for _, c := range rt.colors {
		if c.resolve != nil {
			pairs = append(pairs, c)
		}
	}
	if len(pairs) == 0 {
		return nil
	}

	encoder, err := ctx.begin("resolve_multisampled")
	if err != nil {
		return err
	}
	for _, c := range pairs {
		if err := recordResolvePass(encoder, fmt.Sprintf("%s resolve %d", rt.label, c.slot),
			c.view.Raw(), c.resolve.view.Raw(), c.texture, c.resolve.texture); err != nil {
			encoder.DiscardEncoding()
			return err
		}
	}
	if err := ctx.submit(encoder); err != nil {
		return fmt.Errorf("resolve multisampled: %w", err)
	}
	for _, c := range pairs {
		c.texture.markUsage(gputypes.TextureUsageRenderAttachment)
		c.resolve.texture.markUsage(gputypes.TextureUsageRenderAttachment)
	}
	slogger().Debug("resolved multisampled attachments", "label", rt.label, "pairings", len(pairs))
	return nil
}

// ResolveMultisampledIntoBackbuffer resolves one color attachment into a
// backbuffer view. colorIndex addresses the dense draw-buffer order.
// Blocks until the GPU finishes.
func (rt *RenderTarget) ResolveMultisampledIntoBackbuffer(ctx *CopyContext, backbuffer Backbuffer, colorIndex int) error {
	if ctx == nil {
		return ErrMissingCopyContext
	}
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	if rt.destroyed {
		return ErrRenderTargetDestroyed
	}
	if rt.samples <= 1 {
		return fmt.Errorf("%w: target has %d samples", ErrResolveWithoutMultisample, rt.samples)
	}
	if colorIndex < 0 || colorIndex >= len(rt.colors) {
		return fmt.Errorf("%w: %d of %d", ErrAttachmentIndexOutOfRange, colorIndex, len(rt.colors))
	}
	if backbuffer.View == nil {
		return errors.New("native: backbuffer view is nil")
	}
	c := rt.colors[colorIndex]
	if backbuffer.Handle != nil {
		if surface := backbuffer.Handle.SurfaceFormat(); surface != gputypes.TextureFormatUndefined {
			have, err := convertFormat(c.format)
			if err != nil {
				return err
			}
			if have != surface {
				return fmt.Errorf("%w: attachment %v, surface %v", ErrBackbufferFormatMismatch, have, surface)
			}
		}
	}

	encoder, err := ctx.begin("resolve_backbuffer")
	if err != nil {
		return err
	}
	if err := recordResolvePass(encoder, rt.label+" resolve backbuffer",
		c.view.Raw(), backbuffer.View, c.texture, nil); err != nil {
		encoder.DiscardEncoding()
		return err
	}
	if err := ctx.submit(encoder); err != nil {
		return fmt.Errorf("resolve into backbuffer: %w", err)
	}
	c.texture.markUsage(gputypes.TextureUsageRenderAttachment)
	slogger().Debug("resolved into backbuffer", "label", rt.label, "colorIndex", colorIndex)
	return nil
}

// recordResolvePass records a load-and-store pass whose only effect is
// the multisample resolve from src into dst. Textures the queue has
// touched in another usage get a transition barrier first; dstTexture is
// nil when the destination is an external backbuffer.
func recordResolvePass(encoder gpuEncoder, label string, src, dst hal.TextureView, srcTexture, dstTexture *Texture) error {
	if src == nil || dst == nil {
		return ErrTextureViewDestroyed
	}
	var barriers []hal.TextureBarrier
	for _, t := range []*Texture{srcTexture, dstTexture} {
		if t == nil {
			continue
		}
		u := t.currentUsage()
		if u == 0 || u == gputypes.TextureUsageRenderAttachment {
			continue
		}
		barriers = append(barriers, hal.TextureBarrier{
			Texture: t.Raw(),
			Usage: hal.TextureUsageTransition{
				OldUsage: u,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		})
	}
	if len(barriers) > 0 {
		encoder.TransitionTextures(barriers)
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:          src,
			ResolveTarget: dst,
			LoadOp:        gputypes.LoadOpLoad,
			StoreOp:       gputypes.StoreOpStore,
		}},
	})
	rp.End()
	return nil
}
