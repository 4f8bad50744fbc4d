package life

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
)

// Fingerprint returns a content hash of the board, dimensions included.
func Fingerprint(g Grid) string {
	h := md5.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(g.rows))
	binary.LittleEndian.PutUint64(dims[8:], uint64(g.cols))
	h.Write(dims[:])
	h.Write(g.cells)
	return hex.EncodeToString(h.Sum(nil))
}

// History remembers the fingerprints of the most recent boards so repeating
// patterns can be detected.
type History struct {
	size    int
	entries []string
}

// NewHistory keeps up to size fingerprints. size below 1 is treated as 1.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{size: size, entries: make([]string, 0, size)}
}

// Observe records g and returns the period at which it repeats an earlier
// board: 1 when g equals the previous board (still life or empty), k when it
// equals the board k observations back, and 0 when no repeat is in the
// window.
func (h *History) Observe(g Grid) int {
	fp := Fingerprint(g)
	period := 0
	for k := 1; k <= len(h.entries); k++ {
		if h.entries[len(h.entries)-k] == fp {
			period = k
			break
		}
	}
	h.entries = append(h.entries, fp)
	if len(h.entries) > h.size {
		h.entries = h.entries[1:]
	}
	return period
}

// Reset forgets every recorded board.
func (h *History) Reset() {
	h.entries = h.entries[:0]
}
