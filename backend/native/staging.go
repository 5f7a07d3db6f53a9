// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// stagingAlignment rounds staging capacities up to whole words, as HAL
// buffer copies require.
const stagingAlignment = 4

// StagingBuffer is grow-only CPU/GPU-shared scratch for device-private
// transfers. Capacity never shrinks and is reused across calls. One
// instance must not serve two in-flight transfers at once; the caller
// serializes.
type StagingBuffer struct {
	mu        sync.Mutex
	device    gpuDevice
	buf       hal.Buffer
	size      uint64
	destroyed bool
}

// Grow ensures the buffer holds at least size bytes. Capacity is
// monotonically non-decreasing; the previous contents are scratch and
// are not preserved across a reallocation.
func (s *StagingBuffer) Grow(size uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrStagingBufferDestroyed
	}
	if size <= s.size {
		return nil
	}
	size = (size + stagingAlignment - 1) &^ uint64(stagingAlignment-1)
	buf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "texel_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("grow staging buffer to %d: %w", size, err)
	}
	if s.buf != nil {
		s.device.DestroyBuffer(s.buf)
	}
	s.buf = buf
	s.size = size
	slogger().Debug("staging buffer grown", "size", size)
	return nil
}

// Size reports the current capacity in bytes.
func (s *StagingBuffer) Size() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Destroy releases the HAL buffer. Idempotent.
func (s *StagingBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	s.destroyed = true
	if s.buf != nil {
		s.device.DestroyBuffer(s.buf)
		s.buf = nil
	}
	s.size = 0
}

// buffer returns the backing HAL buffer, nil before the first Grow or
// after Destroy.
func (s *StagingBuffer) buffer() hal.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}
