// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

// depthTracker counts nested nesting frames (array/map/indefinite-item
// recursion) for one encoder or decoder instance. Both [Encoder] and
// [Decoder] embed one; the bookkeeping is identical on either side.
type depthTracker struct {
	cur, max int
}

func (d *depthTracker) enter() error {
	d.cur++
	if d.cur > d.max {
		d.cur--
		return errf(DepthExceeded, "nesting depth exceeds limit %d", d.max)
	}
	return nil
}

func (d *depthTracker) exit() {
	d.cur--
}
