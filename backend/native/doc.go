// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements the texel device layer on top of wgpu-hal.
//
// A Device wraps an open hal.Device and hal.Queue pair and creates
// textures in two residency modes: device-private textures backed by HAL
// textures, and directly mappable textures backed by linear HAL buffers
// laid out mip-major. RenderTarget assembles color, resolve, and
// depth-stencil attachments into densely numbered draw buffers and
// resolves multisampled attachments through render-pass resolve targets.
// Region transfers out of device-private memory stage through a grow-only
// StagingBuffer, submit through a CopyContext, and block the caller until
// the device signals completion.
package native
