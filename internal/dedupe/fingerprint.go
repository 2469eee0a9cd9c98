package dedupe

import (
	"encoding/hex"
	"os"
	"sync"

	"github.com/zeebo/blake3"
)

// fingerprintBufferSize is the 256KiB streaming buffer used to feed a
// class's first member into its BLAKE3 digest.
const fingerprintBufferSize = 256 << 10

var fingerprintBufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, fingerprintBufferSize)
		return &buf
	},
}

// fingerprintClass computes a stable BLAKE3 digest over a confirmed
// class's sorted member paths plus a stream of its (already
// content-confirmed-identical) first member, giving callers a single
// stable identifier for that duplicate set across runs.
func fingerprintClass(c Class) string {
	h := blake3.New()
	for _, p := range c.Paths {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}

	if len(c.Paths) > 0 {
		if f, err := os.Open(c.Paths[0]); err == nil {
			defer f.Close()
			bufPtr := fingerprintBufPool.Get().(*[]byte)
			defer fingerprintBufPool.Put(bufPtr)
			buf := *bufPtr
			for {
				n, err := f.Read(buf)
				if n > 0 {
					h.Write(buf[:n])
				}
				if err != nil {
					break
				}
			}
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
