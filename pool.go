// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

import "sync"

// pooledBuffer is a growable writer substrate reused across Marshal
// calls, the same sync.Pool-backed scratch-buffer-reuse trick
// glint.Buffer's NewBufferFromPool/ReturnToPool apply to its own
// append-heavy encode path.
type pooledBuffer struct {
	buf []byte
}

var bufferPool = sync.Pool{
	New: func() any { return &pooledBuffer{buf: make([]byte, 0, 256)} },
}

func getPooledBuffer() *pooledBuffer {
	return bufferPool.Get().(*pooledBuffer)
}

func putPooledBuffer(b *pooledBuffer) {
	b.buf = b.buf[:0]
	bufferPool.Put(b)
}

func (b *pooledBuffer) writeByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

func (b *pooledBuffer) writeSpan(s []byte) error {
	b.buf = append(b.buf, s...)
	return nil
}
