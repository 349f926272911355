package features

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Fingerprint identifies the vector by its columns and exact value bits.
func (v Vector) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	for i, col := range v.Columns {
		h.Write([]byte(col))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.Values[i]))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
