package engine

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/mesh-intelligence/editions/pkg/types"
)

// commitment computes the immutable per-token hash: legacy Keccak-256 over
// the packed issuance timestamp, minter address, and token ID. The packing
// length-prefixes the address so distinct inputs can never collide on the
// byte level.
func commitment(ts time.Time, minter types.Address, id types.TokenID) types.Commitment {
	buf := make([]byte, 0, 20+len(minter))
	buf = binary.BigEndian.AppendUint64(buf, uint64(ts.Unix()))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(minter)))
	buf = append(buf, minter...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(id))

	h := sha3.NewLegacyKeccak256()
	h.Write(buf)
	return h.Sum(nil)
}
