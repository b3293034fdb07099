package beam

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
)

// fingerprintNamespace scopes design fingerprints to this problem.
var fingerprintNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("beamdex:cantilevered-beam"))

// Fingerprint returns a deterministic UUIDv5 for a decoded design.
// Raw vectors that decode to the same design share a fingerprint.
func Fingerprint(d Design) uuid.UUID {
	var buf [Dimensions * 8]byte
	for i, x := range d.Vector() {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(x))
	}
	return uuid.NewSHA1(fingerprintNamespace, buf[:])
}
