// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texel

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"sync"
)

// minTexelsPerLane keeps small conversions on the calling goroutine; the
// fan-out only pays off on larger buffers.
const minTexelsPerLane = 4096

// ConvertImageBuffer converts pixel data from the source representation to
// the (dstFormat, dstType) representation.
//
// It returns (nil, nil) when the source and target representations are
// identical: no conversion was performed and the caller keeps using the
// source buffer. Otherwise it returns a newly allocated buffer holding the
// same texels in the target representation.
//
// Channel counts may differ between the representations: missing color
// channels read as 0, missing alpha as fully opaque. Integer channels are
// treated as normalized values, so bit-depth changes and integer-to-float
// conversions preserve intensity rather than raw bits.
//
// Block-compressed payloads have no per-texel structure; requesting a
// conversion where either side is compressed returns ErrCompressedConversion.
// Packed depth-stencil data returns ErrConversionUnsupported.
//
// lanes bounds the number of goroutines used; 0 or negative selects
// GOMAXPROCS. The output is identical regardless of lane count.
func ConvertImageBuffer(src SrcImageDescriptor, dstFormat ImageFormat, dstType DataType, lanes int) ([]byte, error) {
	if src.Format == dstFormat && src.DataType == dstType {
		return nil, nil
	}
	if src.Format == ImageFormatCompressed || dstFormat == ImageFormatCompressed {
		return nil, fmt.Errorf("%w: %v/%v to %v/%v",
			ErrCompressedConversion, src.Format, src.DataType, dstFormat, dstType)
	}
	if src.Format == ImageFormatDepthStencil || dstFormat == ImageFormatDepthStencil {
		return nil, fmt.Errorf("%w: %v/%v to %v/%v",
			ErrConversionUnsupported, src.Format, src.DataType, dstFormat, dstType)
	}

	srcSlots, ok := channelSlots(src.Format)
	if !ok {
		return nil, fmt.Errorf("%w: source %v/%v", ErrConversionUnsupported, src.Format, src.DataType)
	}
	dstSlots, ok := channelSlots(dstFormat)
	if !ok {
		return nil, fmt.Errorf("%w: target %v/%v", ErrConversionUnsupported, dstFormat, dstType)
	}
	srcPixel := int(PixelSize(src.Format, src.DataType))
	dstPixel := int(PixelSize(dstFormat, dstType))
	if srcPixel == 0 || dstPixel == 0 {
		return nil, fmt.Errorf("%w: %v/%v to %v/%v",
			ErrConversionUnsupported, src.Format, src.DataType, dstFormat, dstType)
	}
	if len(src.Data)%srcPixel != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of the %d-byte pixel",
			ErrSrcDataSizeTooSmall, len(src.Data), srcPixel)
	}

	texels := len(src.Data) / srcPixel
	out := make([]byte, texels*dstPixel)
	if texels == 0 {
		return out, nil
	}

	cv := converter{
		src:      src.Data,
		dst:      out,
		srcSlots: srcSlots,
		dstSlots: dstSlots,
		srcType:  src.DataType,
		dstType:  dstType,
		srcPixel: srcPixel,
		dstPixel: dstPixel,
	}

	lanes = convertLanes(lanes, texels)
	if lanes <= 1 {
		cv.convertRange(0, texels)
		return out, nil
	}

	var wg sync.WaitGroup
	chunk := (texels + lanes - 1) / lanes
	for begin := 0; begin < texels; begin += chunk {
		end := min(begin+chunk, texels)
		wg.Add(1)
		go func(begin, end int) {
			defer wg.Done()
			cv.convertRange(begin, end)
		}(begin, end)
	}
	wg.Wait()
	return out, nil
}

// convertLanes resolves the lane count. Zero or negative selects
// GOMAXPROCS; the count never exceeds one lane per minTexelsPerLane texels.
func convertLanes(lanes, texels int) int {
	if lanes <= 0 {
		lanes = runtime.GOMAXPROCS(0)
	}
	if byWork := texels / minTexelsPerLane; lanes > byWork {
		lanes = byWork
	}
	return max(lanes, 1)
}

// channelSlots maps each storage channel of a layout to its logical RGBA
// slot (0=R, 1=G, 2=B, 3=A). The bool is false for layouts without
// per-texel channels.
func channelSlots(f ImageFormat) ([]uint8, bool) {
	switch f {
	case ImageFormatR, ImageFormatDepth:
		return []uint8{0}, true
	case ImageFormatRG:
		return []uint8{0, 1}, true
	case ImageFormatRGB:
		return []uint8{0, 1, 2}, true
	case ImageFormatRGBA:
		return []uint8{0, 1, 2, 3}, true
	case ImageFormatBGRA:
		return []uint8{2, 1, 0, 3}, true
	default:
		return nil, false
	}
}

// converter carries one conversion's immutable state; convertRange may run
// on several goroutines over disjoint texel ranges.
type converter struct {
	src      []byte
	dst      []byte
	srcSlots []uint8
	dstSlots []uint8
	srcType  DataType
	dstType  DataType
	srcPixel int
	dstPixel int
}

func (c *converter) convertRange(begin, end int) {
	srcStep := int(c.srcType.Size())
	dstStep := int(c.dstType.Size())
	for i := begin; i < end; i++ {
		// Missing channels read as 0, missing alpha as opaque.
		rgba := [4]float64{0, 0, 0, 1}

		off := i * c.srcPixel
		for ch, slot := range c.srcSlots {
			rgba[slot] = readChannel(c.src[off+ch*srcStep:], c.srcType)
		}

		off = i * c.dstPixel
		for ch, slot := range c.dstSlots {
			writeChannel(c.dst[off+ch*dstStep:], c.dstType, rgba[slot])
		}
	}
}

// readChannel decodes one channel as a normalized float: integer types map
// to [0, 1] (unsigned) or [-1, 1] (signed), float types pass through.
// Multi-byte channels are little-endian.
func readChannel(b []byte, t DataType) float64 {
	switch t {
	case DataTypeUint8:
		return float64(b[0]) / math.MaxUint8
	case DataTypeInt8:
		return max(float64(int8(b[0]))/math.MaxInt8, -1)
	case DataTypeUint16:
		return float64(binary.LittleEndian.Uint16(b)) / math.MaxUint16
	case DataTypeInt16:
		return max(float64(int16(binary.LittleEndian.Uint16(b)))/math.MaxInt16, -1)
	case DataTypeUint32:
		return float64(binary.LittleEndian.Uint32(b)) / math.MaxUint32
	case DataTypeInt32:
		return max(float64(int32(binary.LittleEndian.Uint32(b)))/math.MaxInt32, -1)
	case DataTypeFloat16:
		return float64(float16ToFloat32(binary.LittleEndian.Uint16(b)))
	case DataTypeFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	default:
		return 0
	}
}

// writeChannel encodes one normalized channel value: integer types clamp
// and round, float types store the value unclamped.
func writeChannel(b []byte, t DataType, v float64) {
	switch t {
	case DataTypeUint8:
		b[0] = uint8(math.Round(clamp01(v) * math.MaxUint8))
	case DataTypeInt8:
		b[0] = uint8(int8(math.Round(clamp11(v) * math.MaxInt8)))
	case DataTypeUint16:
		binary.LittleEndian.PutUint16(b, uint16(math.Round(clamp01(v)*math.MaxUint16)))
	case DataTypeInt16:
		binary.LittleEndian.PutUint16(b, uint16(int16(math.Round(clamp11(v)*math.MaxInt16))))
	case DataTypeUint32:
		binary.LittleEndian.PutUint32(b, uint32(math.Round(clamp01(v)*math.MaxUint32)))
	case DataTypeInt32:
		binary.LittleEndian.PutUint32(b, uint32(int32(math.Round(clamp11(v)*math.MaxInt32))))
	case DataTypeFloat16:
		binary.LittleEndian.PutUint16(b, float32ToFloat16(float32(v)))
	case DataTypeFloat32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp11(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// float16ToFloat32 expands an IEEE 754 binary16 value (1 sign, 5 exponent,
// 10 mantissa bits) to float32.
func float16ToFloat32(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1f
	man := uint32(h & 0x3ff)
	switch {
	case exp == 0x1f: // Inf or NaN
		return math.Float32frombits(sign | 0x7f800000 | man<<13)
	case exp == 0:
		if man == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: renormalize into the float32 exponent range.
		e := int32(0)
		for man&0x400 == 0 {
			man <<= 1
			e--
		}
		man &= 0x3ff
		return math.Float32frombits(sign | uint32(int32(127-15+1)+e)<<23 | man<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | man<<13)
	}
}

// float32ToFloat16 narrows a float32 to IEEE 754 binary16 with
// round-to-nearest-even. Values beyond the half range become Inf, values
// below the smallest subnormal become signed zero.
func float32ToFloat16(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23) & 0xff
	man := bits & 0x7fffff

	switch {
	case exp == 0xff: // Inf or NaN
		if man != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	case exp == 0 && man == 0:
		return sign
	}

	e := exp - 127 + 15
	switch {
	case e >= 0x1f:
		return sign | 0x7c00
	case e <= 0:
		if e < -10 {
			return sign
		}
		// Subnormal half: shift the implicit-one mantissa into place.
		man |= 0x800000
		shift := uint32(14 - e)
		half := man >> shift
		rem := man & (1<<shift - 1)
		halfway := uint32(1) << (shift - 1)
		if rem > halfway || (rem == halfway && half&1 != 0) {
			half++
		}
		return sign | uint16(half)
	default:
		// Rounding may carry through the mantissa into the exponent;
		// the carry produces the correct larger exponent, or Inf.
		half := uint32(e)<<10 | man>>13
		rem := man & 0x1fff
		if rem > 0x1000 || (rem == 0x1000 && half&1 != 0) {
			half++
		}
		return sign | uint16(half)
	}
}
