package byteutil

import (
	"bytes"
	"sync"
)

var bytesBuffer = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

// GetBytesBuf returns an empty buffer from the pool. Callers reset it
// before handing it back with PutBytesBuf.
func GetBytesBuf() *bytes.Buffer {
	p, ok := bytesBuffer.Get().(*bytes.Buffer)
	if !ok {
		return &bytes.Buffer{}
	}
	return p
}

func PutBytesBuf(p *bytes.Buffer) {
	if p == nil {
		return
	}
	bytesBuffer.Put(p)
}
