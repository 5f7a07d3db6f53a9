// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texel provides render-target composition and texture transfer
// for the GoGPU ecosystem.
//
// # Overview
//
// texel sits between a portable resource-description API and a GPU backend.
// It assembles framebuffer attachment sets (color, resolve, depth/stencil)
// from render-target descriptors, issues multisample-resolve passes, and
// moves pixel data between CPU memory and GPU texture storage for arbitrary
// subregions, converting between pixel representations when they differ.
//
// The root package is the portable core: pixel formats and their CPU-side
// (ImageFormat, DataType) representations, subresource layout arithmetic,
// the format converter, texture-type mip math, capability queries with
// sample-count negotiation, and a CPU-side Image utility. It performs no
// GPU work itself.
//
// The wgpu-HAL backend lives in backend/native. Hosts that own a GPU device
// hand it to the backend; texel never creates one.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/texel"
//	    "github.com/gogpu/texel/backend/native"
//	)
//
//	dev, err := native.NewDevice(halDevice, halQueue)
//	if err != nil {
//	    return err
//	}
//	defer dev.Destroy()
//
//	tex, err := dev.CreateTexture(texel.TextureDescriptor{
//	    Type:   texel.TextureType2D,
//	    Format: texel.FormatRGBA8Unorm,
//	    Extent: texel.Extent3D{Width: 256, Height: 256, Depth: 1},
//	}, nil)
//	if err != nil {
//	    return err
//	}
//	defer tex.Destroy()
//
//	region := texel.WholeRegion(tex.MipExtent(0))
//	err := tex.WriteRegion(region, texel.SrcImageDescriptor{
//	    Format:   texel.ImageFormatRGBA,
//	    DataType: texel.DataTypeUint8,
//	    Data:     pixels,
//	})
//
// # Architecture
//
// The library is organized into:
//   - Public API: Format, Image, TextureRegion, SubresourceLayout,
//     RenderingCapabilities, descriptors
//   - Backend: native (gogpu/wgpu HAL), providing Device, Texture,
//     StagingBuffer, RenderTarget, CopyContext
//
// # Memory Residency
//
// Textures declare one of two residency modes. DirectlyMappable textures
// back their storage with a linear, CPU-reachable buffer: reads and writes
// are direct copies. DevicePrivate textures live in GPU-optimal memory:
// writes upload through the queue, reads stage through a GPU copy followed
// by a blocking wait. ReadRegion on a device-private texture stalls the
// calling thread until the device signals completion; callers needing
// asynchrony must pipeline above this layer.
package texel

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
