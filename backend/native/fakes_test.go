// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"sync/atomic"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
)

// =============================================================================
// Fake HAL Types for Testing
// =============================================================================
//
// The fakes implement the package's gpu seam with byte-accurate storage:
// buffers hold real bytes, textures hold one slab per mip level, and the
// transfer commands execute immediately so tests can assert on content.

// fakeBuffer is a test double for hal.Buffer backed by real bytes.
type fakeBuffer struct {
	label string
	data  []byte
	usage types.BufferUsage
}

func (b *fakeBuffer) Destroy()              {}
func (b *fakeBuffer) NativeHandle() uintptr { return 0 }

// fakeTexture is a test double for hal.Texture with per-mip storage.
type fakeTexture struct {
	desc  hal.TextureDescriptor
	slabs map[uint32][]byte
}

func (t *fakeTexture) Destroy()              {}
func (t *fakeTexture) NativeHandle() uintptr { return 0 }

// levelSize returns the storage shape of one mip level. Array layers do
// not shrink with the mip chain; 3D depth does.
func (t *fakeTexture) levelSize(mip uint32) (w, h, d uint32) {
	w = max(t.desc.Size.Width>>mip, 1)
	h = max(t.desc.Size.Height>>mip, 1)
	d = t.desc.Size.DepthOrArrayLayers
	if t.desc.Dimension == gputypes.TextureDimension3D {
		d = max(d>>mip, 1)
	}
	return w, h, d
}

// slab returns the level's backing bytes, allocating on first touch.
func (t *fakeTexture) slab(mip uint32) []byte {
	if s, ok := t.slabs[mip]; ok {
		return s
	}
	w, h, d := t.levelSize(mip)
	s := make([]byte, uint64(w)*uint64(h)*uint64(d)*uint64(fakeFormatSize(t.desc.Format)))
	t.slabs[mip] = s
	return s
}

// fakeFormatSize returns bytes per texel for the formats the tests use.
func fakeFormatSize(f gputypes.TextureFormat) uint32 {
	switch f {
	case types.TextureFormatR8Unorm:
		return 1
	case types.TextureFormatRGBA8Unorm, types.TextureFormatRGBA8UnormSrgb,
		types.TextureFormatBGRA8Unorm, types.TextureFormatBGRA8UnormSrgb,
		types.TextureFormatR32Float, types.TextureFormatDepth24PlusStencil8:
		return 4
	case types.TextureFormatRG32Float:
		return 8
	case types.TextureFormatRGBA32Float:
		return 16
	default:
		return 4
	}
}

// fakeView is a test double for hal.TextureView.
type fakeView struct {
	texture hal.Texture
	desc    hal.TextureViewDescriptor
}

func (v *fakeView) Destroy()              {}
func (v *fakeView) NativeHandle() uintptr { return 0 }

// fakeFence is a test double for hal.Fence.
type fakeFence struct{}

func (f *fakeFence) Destroy()              {}
func (f *fakeFence) NativeHandle() uintptr { return 0 }

// fakeCommandBuffer is a test double for hal.CommandBuffer.
type fakeCommandBuffer struct{ label string }

func (c *fakeCommandBuffer) Destroy()              {}
func (c *fakeCommandBuffer) NativeHandle() uintptr { return 0 }

// =============================================================================
// fakeEncoder
// =============================================================================

// fakePass records pass completion on its encoder.
type fakePass struct{ encoder *fakeEncoder }

func (p *fakePass) End() { p.encoder.passesEnded++ }

// fakeEncoder records passes and barriers, and executes copy commands
// immediately so the staged bytes are visible right after submit.
type fakeEncoder struct {
	label     string
	began     bool
	ended     bool
	discarded bool

	beginErr error
	endErr   error

	passes      []hal.RenderPassDescriptor
	passesEnded int
	barriers    [][]hal.TextureBarrier

	textureToBufferCalls int
}

func (e *fakeEncoder) BeginEncoding(label string) error {
	if e.beginErr != nil {
		return e.beginErr
	}
	e.began = true
	e.label = label
	return nil
}

func (e *fakeEncoder) EndEncoding() (hal.CommandBuffer, error) {
	if e.endErr != nil {
		return nil, e.endErr
	}
	e.ended = true
	return &fakeCommandBuffer{label: e.label}, nil
}

func (e *fakeEncoder) DiscardEncoding() { e.discarded = true }

func (e *fakeEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) gpuRenderPass {
	d := *desc
	d.ColorAttachments = append([]hal.RenderPassColorAttachment(nil), desc.ColorAttachments...)
	e.passes = append(e.passes, d)
	return &fakePass{encoder: e}
}

func (e *fakeEncoder) TransitionTextures(barriers []hal.TextureBarrier) {
	e.barriers = append(e.barriers, append([]hal.TextureBarrier(nil), barriers...))
}

func (e *fakeEncoder) CopyTextureToBuffer(src hal.Texture, dst hal.Buffer, regions []hal.BufferTextureCopy) {
	e.textureToBufferCalls++
	tex := src.(*fakeTexture)
	buf := dst.(*fakeBuffer)
	bpp := uint64(fakeFormatSize(tex.desc.Format))
	for _, r := range regions {
		w, h, _ := tex.levelSize(r.TextureBase.MipLevel)
		slab := tex.slab(r.TextureBase.MipLevel)
		rowBytes := uint64(r.Size.Width) * bpp
		for z := uint32(0); z < r.Size.DepthOrArrayLayers; z++ {
			for row := uint32(0); row < r.Size.Height; row++ {
				srcOff := ((uint64(r.TextureBase.Origin.Z+z)*uint64(h) + uint64(r.TextureBase.Origin.Y+row)) * uint64(w) * bpp) +
					uint64(r.TextureBase.Origin.X)*bpp
				dstOff := r.BufferLayout.Offset +
					uint64(z)*uint64(r.BufferLayout.RowsPerImage)*uint64(r.BufferLayout.BytesPerRow) +
					uint64(row)*uint64(r.BufferLayout.BytesPerRow)
				copy(buf.data[dstOff:dstOff+rowBytes], slab[srcOff:srcOff+rowBytes])
			}
		}
	}
}

// =============================================================================
// fakeDevice
// =============================================================================

// fakeDevice is a test double for the gpu device seam.
type fakeDevice struct {
	createTextureFunc func(*hal.TextureDescriptor) (hal.Texture, error)
	createBufferFunc  func(*hal.BufferDescriptor) (hal.Buffer, error)
	createViewFunc    func(hal.Texture, *hal.TextureViewDescriptor) (hal.TextureView, error)
	createEncoderFunc func(*hal.CommandEncoderDescriptor) (gpuEncoder, error)
	createFenceFunc   func() (hal.Fence, error)

	// waitDenials makes Wait report unsignalled this many times before
	// it signals; waitErr fails the wait outright.
	waitDenials int
	waitErr     error

	textures []*fakeTexture
	buffers  []*fakeBuffer
	views    []*fakeView
	encoders []*fakeEncoder

	texturesCreated     int32
	texturesDestroyed   int32
	buffersCreated      int32
	buffersDestroyed    int32
	viewsCreated        int32
	viewsDestroyed      int32
	encodersCreated     int32
	fencesCreated       int32
	fencesDestroyed     int32
	commandBuffersFreed int32
	waitCalls           int32
}

func (d *fakeDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	atomic.AddInt32(&d.texturesCreated, 1)
	if d.createTextureFunc != nil {
		return d.createTextureFunc(desc)
	}
	tex := &fakeTexture{desc: *desc, slabs: make(map[uint32][]byte)}
	d.textures = append(d.textures, tex)
	return tex, nil
}

func (d *fakeDevice) CreateTextureView(texture hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	atomic.AddInt32(&d.viewsCreated, 1)
	if d.createViewFunc != nil {
		return d.createViewFunc(texture, desc)
	}
	view := &fakeView{texture: texture, desc: *desc}
	d.views = append(d.views, view)
	return view, nil
}

func (d *fakeDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	atomic.AddInt32(&d.buffersCreated, 1)
	if d.createBufferFunc != nil {
		return d.createBufferFunc(desc)
	}
	buf := &fakeBuffer{label: desc.Label, data: make([]byte, desc.Size), usage: desc.Usage}
	d.buffers = append(d.buffers, buf)
	return buf, nil
}

func (d *fakeDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (gpuEncoder, error) {
	atomic.AddInt32(&d.encodersCreated, 1)
	if d.createEncoderFunc != nil {
		return d.createEncoderFunc(desc)
	}
	encoder := &fakeEncoder{}
	d.encoders = append(d.encoders, encoder)
	return encoder, nil
}

func (d *fakeDevice) CreateFence() (hal.Fence, error) {
	atomic.AddInt32(&d.fencesCreated, 1)
	if d.createFenceFunc != nil {
		return d.createFenceFunc()
	}
	return &fakeFence{}, nil
}

func (d *fakeDevice) DestroyTexture(hal.Texture)         { atomic.AddInt32(&d.texturesDestroyed, 1) }
func (d *fakeDevice) DestroyTextureView(hal.TextureView) { atomic.AddInt32(&d.viewsDestroyed, 1) }
func (d *fakeDevice) DestroyBuffer(hal.Buffer)           { atomic.AddInt32(&d.buffersDestroyed, 1) }
func (d *fakeDevice) DestroyFence(hal.Fence)             { atomic.AddInt32(&d.fencesDestroyed, 1) }
func (d *fakeDevice) FreeCommandBuffer(hal.CommandBuffer) {
	atomic.AddInt32(&d.commandBuffersFreed, 1)
}

func (d *fakeDevice) Wait(_ hal.Fence, _ uint64, _ time.Duration) (bool, error) {
	atomic.AddInt32(&d.waitCalls, 1)
	if d.waitErr != nil {
		return false, d.waitErr
	}
	if d.waitDenials > 0 {
		d.waitDenials--
		return false, nil
	}
	return true, nil
}

// lastEncoder returns the most recently created encoder.
func (d *fakeDevice) lastEncoder() *fakeEncoder {
	if len(d.encoders) == 0 {
		return nil
	}
	return d.encoders[len(d.encoders)-1]
}

// =============================================================================
// fakeQueue
// =============================================================================

// fakeQueue is a test double for the gpu queue seam operating on
// fakeBuffer and fakeTexture storage.
type fakeQueue struct {
	submitErr error
	readErr   error

	submits           int32
	writeBufferCalls  int32
	writeTextureCalls int32
	readBufferCalls   int32

	// One entry per WriteTexture call, in call order.
	writtenCopies []hal.ImageCopyTexture
}

func (q *fakeQueue) Submit(_ []hal.CommandBuffer, _ hal.Fence, _ uint64) error {
	atomic.AddInt32(&q.submits, 1)
	return q.submitErr
}

func (q *fakeQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) {
	atomic.AddInt32(&q.writeBufferCalls, 1)
	buf := buffer.(*fakeBuffer)
	copy(buf.data[offset:], data)
}

func (q *fakeQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) {
	atomic.AddInt32(&q.writeTextureCalls, 1)
	q.writtenCopies = append(q.writtenCopies, *dst)
	tex := dst.Texture.(*fakeTexture)
	bpp := uint64(fakeFormatSize(tex.desc.Format))
	w, h, _ := tex.levelSize(dst.MipLevel)
	slab := tex.slab(dst.MipLevel)
	rowBytes := uint64(size.Width) * bpp
	for z := uint32(0); z < size.DepthOrArrayLayers; z++ {
		for row := uint32(0); row < size.Height; row++ {
			srcOff := layout.Offset +
				uint64(z)*uint64(layout.RowsPerImage)*uint64(layout.BytesPerRow) +
				uint64(row)*uint64(layout.BytesPerRow)
			dstOff := ((uint64(dst.Origin.Z+z)*uint64(h) + uint64(dst.Origin.Y+row)) * uint64(w) * bpp) +
				uint64(dst.Origin.X)*bpp
			copy(slab[dstOff:dstOff+rowBytes], data[srcOff:srcOff+rowBytes])
		}
	}
}

func (q *fakeQueue) ReadBuffer(buffer hal.Buffer, offset uint64, data []byte) error {
	atomic.AddInt32(&q.readBufferCalls, 1)
	if q.readErr != nil {
		return q.readErr
	}
	buf := buffer.(*fakeBuffer)
	copy(data, buf.data[offset:])
	return nil
}

// newFakeGPU returns the fake seam pair and a Device built on it.
func newFakeGPU() (*fakeDevice, *fakeQueue, *Device) {
	fd := &fakeDevice{}
	fq := &fakeQueue{}
	return fd, fq, newDevice(fd, fq)
}
