package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives(t *testing.T) {
	t.Run("u32 round-trips", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteUint32(&buf, 123456))

		got, err := ReadUint32(&buf)

		require.NoError(t, err)
		assert.Equal(t, uint32(123456), got)
	})

	t.Run("i64 round-trips", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteInt64(&buf, 104857600))

		got, err := ReadInt64(&buf)

		require.NoError(t, err)
		assert.Equal(t, int64(104857600), got)
	})

	t.Run("u64 round-trips", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteUint64(&buf, 0xdeadbeefcafef00d))

		got, err := ReadUint64(&buf)

		require.NoError(t, err)
		assert.Equal(t, uint64(0xdeadbeefcafef00d), got)
	})

	t.Run("short read on u32 is an error", func(t *testing.T) {
		_, err := ReadUint32(bytes.NewReader([]byte{1, 2}))
		assert.Error(t, err)
	})

	t.Run("discard consumes exactly n bytes", func(t *testing.T) {
		buf := bytes.NewReader([]byte("0123456789"))
		require.NoError(t, Discard(buf, 5))
		rest, _ := ReadBytes(buf, 5)
		assert.Equal(t, []byte("56789"), rest)
	})

	t.Run("discard past EOF is an error", func(t *testing.T) {
		buf := bytes.NewReader([]byte("abc"))
		assert.Error(t, Discard(buf, 10))
	})
}

func TestRecord(t *testing.T) {
	t.Run("round-trips a single record", func(t *testing.T) {
		var buf bytes.Buffer
		rec := Record{WeakFP: 0x0102030405060708, NodeID: 3}
		require.NoError(t, EncodeRecord(&buf, rec))

		got, err := DecodeRecord(&buf)

		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("record is exactly 12 bytes on the wire, no padding", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeRecord(&buf, Record{WeakFP: 1, NodeID: 1}))
		assert.Len(t, buf.Bytes(), 12)
	})

	t.Run("a short read returns an error rather than a zero value", func(t *testing.T) {
		_, err := DecodeRecord(bytes.NewReader([]byte{1, 2, 3}))
		assert.Error(t, err)
	})
}

func TestRecords(t *testing.T) {
	t.Run("round-trips a list with its count prefix", func(t *testing.T) {
		var buf bytes.Buffer
		records := []Record{
			{WeakFP: 1, NodeID: 0},
			{WeakFP: 2, NodeID: 1},
			{WeakFP: 3, NodeID: 2},
		}
		require.NoError(t, WriteRecords(&buf, records))

		got, err := ReadRecords(&buf)

		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("empty list round-trips to an empty, non-nil slice", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRecords(&buf, nil))

		got, err := ReadRecords(&buf)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestWeakFPs(t *testing.T) {
	t.Run("round-trips a bare fingerprint list", func(t *testing.T) {
		var buf bytes.Buffer
		fps := []uint64{1, 2, 3, 4}
		require.NoError(t, WriteWeakFPs(&buf, fps))

		got, err := ReadWeakFPs(&buf)

		require.NoError(t, err)
		assert.Equal(t, fps, got)
	})
}

func TestDigest(t *testing.T) {
	t.Run("round-trips a 20-byte digest", func(t *testing.T) {
		var buf bytes.Buffer
		var digest [DigestSize]byte
		digest[0] = 0xAB
		digest[19] = 0xCD
		require.NoError(t, WriteDigest(&buf, digest))

		got, err := ReadDigest(&buf)

		require.NoError(t, err)
		assert.Equal(t, digest, got)
	})

	t.Run("all-zero digest signals no stored chunk", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteDigest(&buf, [DigestSize]byte{}))

		got, err := ReadDigest(&buf)

		require.NoError(t, err)
		assert.Equal(t, [DigestSize]byte{}, got)
	})

	t.Run("truncated digest is an error", func(t *testing.T) {
		_, err := ReadDigest(bytes.NewReader(make([]byte, 10)))
		assert.Error(t, err)
	})
}

func TestBytesHelpers(t *testing.T) {
	t.Run("round-trips an arbitrary byte payload", func(t *testing.T) {
		var buf bytes.Buffer
		data := []byte("chunk contents go here")
		require.NoError(t, WriteBytes(&buf, data))

		got, err := ReadBytes(&buf, len(data))

		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("reading fewer bytes than written leaves the remainder for the next read", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBytes(&buf, []byte("helloworld")))

		first, err := ReadBytes(&buf, 5)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), first)

		second, err := ReadBytes(&buf, 5)
		require.NoError(t, err)
		assert.Equal(t, []byte("world"), second)
	})
}
