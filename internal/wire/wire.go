// Package wire implements the length-prefixed little-endian framing shared
// by every client-node connection: the Announce/Verify/Ingest messages of
// the three-phase protocol, over a reliable byte stream. Every read fully
// drains its frame or returns an error — partial frames are never handed
// back to a caller, and no implicit retry happens at this layer.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/FairForge/chunkstore/internal/chunkerr"
)

// DigestSize is the length of a SHA-1 digest exchanged during Verify.
const DigestSize = 20

// recordSize is the wire size of a single Record: 8 bytes weak_fp + 4 bytes
// node_id, both little-endian, with no alignment padding.
const recordSize = 12

// Record is one {weak_fp, node_id} pair, the unit exchanged in Phase A's
// reply and Phase B's match list.
type Record struct {
	WeakFP uint64
	NodeID int32
}

// WriteUint32 writes a little-endian u32, the length prefix used throughout
// the protocol for counts and sizes.
func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return chunkerr.NewIOError("write-u32", "", err)
	}
	return nil
}

// ReadUint32 reads a little-endian u32.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, chunkerr.NewIOError("read-u32", "", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteInt64 writes a little-endian i64, used for Phase A's file_size.
func WriteInt64(w io.Writer, v int64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	if _, err := w.Write(buf[:]); err != nil {
		return chunkerr.NewIOError("write-i64", "", err)
	}
	return nil
}

// ReadInt64 reads a little-endian i64.
func ReadInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, chunkerr.NewIOError("read-i64", "", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

// WriteUint64 writes a little-endian u64, used for bare weak_fp values.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return chunkerr.NewIOError("write-u64", "", err)
	}
	return nil
}

// ReadUint64 reads a little-endian u64.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, chunkerr.NewIOError("read-u64", "", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteBytes writes raw bytes with no framing of their own — callers that
// already wrote an explicit length (name_len, file_size, chunk_size) use
// this for the payload that follows.
func WriteBytes(w io.Writer, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if _, err := w.Write(data); err != nil {
		return chunkerr.NewIOError("write-bytes", "", err)
	}
	return nil
}

// ReadBytes reads exactly n raw bytes.
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, chunkerr.NewIOError("read-bytes", "", err)
	}
	return buf, nil
}

// Discard reads and throws away exactly n bytes, used for Phase A's file
// content preamble (the node never stores the monolithic file).
func Discard(r io.Reader, n int64) error {
	copied, err := io.CopyN(io.Discard, r, n)
	if err != nil || copied != n {
		return chunkerr.NewIOError("discard", "", chunkerr.ErrShortRead)
	}
	return nil
}

// EncodeRecord writes a single fixed-size Record: u64 weak_fp, i32 node_id.
func EncodeRecord(w io.Writer, rec Record) error {
	var buf [recordSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], rec.WeakFP)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(rec.NodeID))
	if _, err := w.Write(buf[:]); err != nil {
		return chunkerr.NewIOError("write-record", "", err)
	}
	return nil
}

// DecodeRecord reads a single fixed-size Record.
func DecodeRecord(r io.Reader) (Record, error) {
	var buf [recordSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Record{}, chunkerr.NewIOError("read-record", "", err)
	}
	return Record{
		WeakFP: binary.LittleEndian.Uint64(buf[0:8]),
		NodeID: int32(binary.LittleEndian.Uint32(buf[8:12])),
	}, nil
}

// WriteRecords writes a u32 count prefix followed by that many Records. Used
// for Phase A's node→client advertisement and Phase B2's match list.
func WriteRecords(w io.Writer, records []Record) error {
	if err := WriteUint32(w, uint32(len(records))); err != nil {
		return err
	}
	for _, rec := range records {
		if err := EncodeRecord(w, rec); err != nil {
			return err
		}
	}
	return nil
}

// ReadRecords reads a u32 count prefix followed by that many Records.
func ReadRecords(r io.Reader) ([]Record, error) {
	count, err := ReadUint32(r)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, count)
	for i := uint32(0); i < count; i++ {
		rec, err := DecodeRecord(r)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteWeakFPs writes a u32 count prefix followed by that many bare u64
// weak_fp values. Used for Phase B1's full file fingerprint set.
func WriteWeakFPs(w io.Writer, fps []uint64) error {
	if err := WriteUint32(w, uint32(len(fps))); err != nil {
		return err
	}
	for _, fp := range fps {
		if err := WriteUint64(w, fp); err != nil {
			return err
		}
	}
	return nil
}

// ReadWeakFPs reads a u32 count prefix followed by that many bare u64
// weak_fp values.
func ReadWeakFPs(r io.Reader) ([]uint64, error) {
	count, err := ReadUint32(r)
	if err != nil {
		return nil, err
	}
	fps := make([]uint64, 0, count)
	for i := uint32(0); i < count; i++ {
		fp, err := ReadUint64(r)
		if err != nil {
			return nil, err
		}
		fps = append(fps, fp)
	}
	return fps, nil
}

// WriteDigest writes one fixed 20-byte SHA-1 digest, or all zero bytes if
// the caller has no chunk to report (per spec, a node with no chunk for a
// match sends 20 zero bytes rather than omitting the slot).
func WriteDigest(w io.Writer, digest [DigestSize]byte) error {
	if _, err := w.Write(digest[:]); err != nil {
		return chunkerr.NewIOError("write-digest", "", err)
	}
	return nil
}

// ReadDigest reads one fixed 20-byte SHA-1 digest.
func ReadDigest(r io.Reader) ([DigestSize]byte, error) {
	var digest [DigestSize]byte
	if _, err := io.ReadFull(r, digest[:]); err != nil {
		return digest, chunkerr.NewIOError("read-digest", "", err)
	}
	return digest, nil
}
