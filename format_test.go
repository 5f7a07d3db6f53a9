// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

import (
	"strings"
	"testing"
)

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dataType DataType
		want     uint32
	}{
		{DataTypeUndefined, 0},
		{DataTypeInt8, 1},
		{DataTypeUint8, 1},
		{DataTypeInt16, 2},
		{DataTypeUint16, 2},
		{DataTypeInt32, 4},
		{DataTypeUint32, 4},
		{DataTypeFloat16, 2},
		{DataTypeFloat32, 4},
	}
	for _, tt := range tests {
		if got := tt.dataType.Size(); got != tt.want {
			t.Errorf("%v.Size() = %d, want %d", tt.dataType, got, tt.want)
		}
	}
}

func TestImageFormatChannels(t *testing.T) {
	tests := []struct {
		format ImageFormat
		want   uint32
	}{
		{ImageFormatUndefined, 0},
		{ImageFormatR, 1},
		{ImageFormatRG, 2},
		{ImageFormatRGB, 3},
		{ImageFormatRGBA, 4},
		{ImageFormatBGRA, 4},
		{ImageFormatDepth, 1},
		{ImageFormatDepthStencil, 1},
		{ImageFormatCompressed, 0},
	}
	for _, tt := range tests {
		if got := tt.format.Channels(); got != tt.want {
			t.Errorf("%v.Channels() = %d, want %d", tt.format, got, tt.want)
		}
	}
}

func TestPixelSize(t *testing.T) {
	tests := []struct {
		format   ImageFormat
		dataType DataType
		want     uint32
	}{
		{ImageFormatRGBA, DataTypeUint8, 4},
		{ImageFormatBGRA, DataTypeUint8, 4},
		{ImageFormatRGB, DataTypeUint8, 3},
		{ImageFormatRGBA, DataTypeFloat32, 16},
		{ImageFormatRGBA, DataTypeFloat16, 8},
		{ImageFormatR, DataTypeUint16, 2},
		{ImageFormatDepth, DataTypeFloat32, 4},
		{ImageFormatDepthStencil, DataTypeUint32, 4},
		// Compressed layouts have no per-texel size.
		{ImageFormatCompressed, DataTypeUint8, 0},
		{ImageFormatUndefined, DataTypeUint8, 0},
		{ImageFormatRGBA, DataTypeUndefined, 0},
	}
	for _, tt := range tests {
		if got := PixelSize(tt.format, tt.dataType); got != tt.want {
			t.Errorf("PixelSize(%v, %v) = %d, want %d", tt.format, tt.dataType, got, tt.want)
		}
	}
}

// TestFormatAttribsConsistency verifies every format's attribute row is
// internally consistent.
func TestFormatAttribsConsistency(t *testing.T) {
	for f := Format(0); f < formatCount; f++ {
		a := f.Attribs()

		if f == FormatUndefined {
			if a.BytesPerBlock != 0 {
				t.Errorf("FormatUndefined.BytesPerBlock = %d, want 0", a.BytesPerBlock)
			}
			continue
		}

		if a.BytesPerBlock == 0 {
			t.Errorf("%v.BytesPerBlock = 0", f)
		}
		if a.BlockWidth == 0 || a.BlockHeight == 0 {
			t.Errorf("%v has zero block footprint %dx%d", f, a.BlockWidth, a.BlockHeight)
		}

		if f.IsCompressed() {
			if a.BlockWidth == 1 && a.BlockHeight == 1 {
				t.Errorf("%v is compressed but has a 1x1 block", f)
			}
			if a.ImageFormat != ImageFormatCompressed {
				t.Errorf("%v.ImageFormat = %v, want Compressed", f, a.ImageFormat)
			}
			continue
		}

		if a.BlockWidth != 1 || a.BlockHeight != 1 {
			t.Errorf("%v is uncompressed but has a %dx%d block", f, a.BlockWidth, a.BlockHeight)
		}
		// For uncompressed formats BytesPerBlock is the pixel size of the
		// matching CPU representation.
		if got := PixelSize(a.ImageFormat, a.DataType); got != a.BytesPerBlock {
			t.Errorf("%v: PixelSize(%v, %v) = %d, want BytesPerBlock %d",
				f, a.ImageFormat, a.DataType, got, a.BytesPerBlock)
		}
	}
}

func TestFormatBlockGeometry(t *testing.T) {
	tests := []struct {
		format        Format
		bytesPerBlock uint32
		blockWidth    uint32
		blockHeight   uint32
	}{
		{FormatR8Unorm, 1, 1, 1},
		{FormatRGBA8Unorm, 4, 1, 1},
		{FormatRGBA32Float, 16, 1, 1},
		{FormatDepth24PlusStencil8, 4, 1, 1},
		{FormatBC1RGBAUnorm, 8, 4, 4},
		{FormatBC3RGBAUnorm, 16, 4, 4},
	}
	for _, tt := range tests {
		a := tt.format.Attribs()
		if a.BytesPerBlock != tt.bytesPerBlock || a.BlockWidth != tt.blockWidth || a.BlockHeight != tt.blockHeight {
			t.Errorf("%v: got %d bytes %dx%d block, want %d bytes %dx%d block",
				tt.format, a.BytesPerBlock, a.BlockWidth, a.BlockHeight,
				tt.bytesPerBlock, tt.blockWidth, tt.blockHeight)
		}
	}
}

func TestFormatClassification(t *testing.T) {
	tests := []struct {
		format         Format
		compressed     bool
		hasDepth       bool
		hasStencil     bool
		depthOrStencil bool
		renderable     bool
	}{
		{FormatUndefined, false, false, false, false, false},
		{FormatRGBA8Unorm, false, false, false, false, true},
		{FormatBGRA8UnormSrgb, false, false, false, false, true},
		{FormatRGBA32Float, false, false, false, false, true},
		{FormatDepth16Unorm, false, true, false, true, true},
		{FormatDepth24PlusStencil8, false, true, true, true, true},
		{FormatDepth32Float, false, true, false, true, true},
		{FormatBC1RGBAUnorm, true, false, false, false, false},
		{FormatBC3RGBAUnorm, true, false, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.format.IsCompressed(); got != tt.compressed {
			t.Errorf("%v.IsCompressed() = %v, want %v", tt.format, got, tt.compressed)
		}
		if got := tt.format.HasDepth(); got != tt.hasDepth {
			t.Errorf("%v.HasDepth() = %v, want %v", tt.format, got, tt.hasDepth)
		}
		if got := tt.format.HasStencil(); got != tt.hasStencil {
			t.Errorf("%v.HasStencil() = %v, want %v", tt.format, got, tt.hasStencil)
		}
		if got := tt.format.IsDepthOrStencil(); got != tt.depthOrStencil {
			t.Errorf("%v.IsDepthOrStencil() = %v, want %v", tt.format, got, tt.depthOrStencil)
		}
		if got := tt.format.IsRenderable(); got != tt.renderable {
			t.Errorf("%v.IsRenderable() = %v, want %v", tt.format, got, tt.renderable)
		}
	}
}

func TestFormatAttribsOutOfRange(t *testing.T) {
	a := Format(255).Attribs()
	if a != (FormatAttributes{}) {
		t.Errorf("out-of-range format attribs = %+v, want zero", a)
	}
}

// TestFormatStringUnique verifies every known format has a distinct,
// non-placeholder name.
func TestFormatStringUnique(t *testing.T) {
	seen := make(map[string]Format)
	for f := Format(0); f < formatCount; f++ {
		name := f.String()
		if strings.HasPrefix(name, "Unknown") {
			t.Errorf("format %d has placeholder name %q", f, name)
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("formats %d and %d share name %q", prev, f, name)
		}
		seen[name] = f
	}
	if name := Format(255).String(); !strings.HasPrefix(name, "Unknown") {
		t.Errorf("out-of-range format name = %q, want Unknown prefix", name)
	}
}
