package consensushashing

import (
	"encoding/binary"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/hashes"
)

// hashWriter serializes consensus elements into a HashWriter in
// little-endian order.
type hashWriter struct {
	hashes.HashWriter
	scratch [8]byte
}

func (w *hashWriter) writeUint16(value uint16) {
	binary.LittleEndian.PutUint16(w.scratch[:2], value)
	w.InfallibleWrite(w.scratch[:2])
}

func (w *hashWriter) writeUint32(value uint32) {
	binary.LittleEndian.PutUint32(w.scratch[:4], value)
	w.InfallibleWrite(w.scratch[:4])
}

func (w *hashWriter) writeUint64(value uint64) {
	binary.LittleEndian.PutUint64(w.scratch[:], value)
	w.InfallibleWrite(w.scratch[:])
}

func (w *hashWriter) writeBytes(value []byte) {
	w.writeUint64(uint64(len(value)))
	w.InfallibleWrite(value)
}

func (w *hashWriter) writeHash(hash *externalapi.DomainHash) {
	w.InfallibleWrite(hash.ByteSlice())
}
