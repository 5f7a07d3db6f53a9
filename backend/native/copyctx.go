// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// fenceWaitSlice bounds a single HAL wait call. Submission polls until
// the fence signals; completion has no deadline at this API.
const fenceWaitSlice = 100 * time.Millisecond

// CopyContext is the command-submission context for device-private
// transfers and resolve passes: it wraps encoder creation, queue
// submission, and the blocking fence wait. Create one with
// Device.NewCopyContext; one context per calling goroutine.
type CopyContext struct {
	device gpuDevice
	queue  gpuQueue
}

// begin opens a command encoder ready for recording.
func (c *CopyContext) begin(label string) (gpuEncoder, error) {
	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	return encoder, nil
}

// submit ends encoding, submits the commands, and blocks the calling
// goroutine until the device signals the fence. Submission errors
// propagate; the wait itself has no timeout.
func (c *CopyContext) submit(encoder gpuEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	fence, err := c.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer c.device.DestroyFence(fence)

	if err := c.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	for {
		ok, err := c.device.Wait(fence, 1, fenceWaitSlice)
		if err != nil {
			return fmt.Errorf("wait for fence: %w", err)
		}
		if ok {
			return nil
		}
	}
}
