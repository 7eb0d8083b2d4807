package amt8000

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeFrame(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		require.Equal(t, []byte{
			0x00, 0x00, 0x8f, 0xff, 0x00, 0x02, 0x0b, 0x4a, 0xcc,
		}, makeFrame(cmdStatus, nil))
	})

	t.Run("auth", func(t *testing.T) {
		require.Equal(t, []byte{
			0x00, 0x00, 0x8f, 0xff, 0x00, 0x0a, 0xf0, 0xf0,
			0x01, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x10,
			0x93,
		}, makeAuthFrame("123456"))
	})

	t.Run("arm all partitions", func(t *testing.T) {
		frame := makeFrame(cmdArm, []byte{0xff, subCmdArm})
		require.Equal(t, []byte{0x40, 0x1e}, frame[6:8])
		require.Equal(t, []byte{0xff, 0x01}, frame[8:10])
	})
}

func TestParseFrame(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		in := []byte{0x01, 0x02, 0x03, 0xaa}
		payload, err := parseFrame(makeFrame(cmdStatus, in))
		require.NoError(t, err)
		require.Equal(t, in, payload)
	})

	t.Run("empty payload", func(t *testing.T) {
		payload, err := parseFrame(makeFrame(cmdStatus, nil))
		require.NoError(t, err)
		require.Empty(t, payload)
	})

	t.Run("trailing bytes ignored", func(t *testing.T) {
		frame := makeFrame(cmdStatus, []byte{0x01})
		frame = append(frame, 0xde, 0xad, 0xbe, 0xef)
		payload, err := parseFrame(frame)
		require.NoError(t, err)
		require.Equal(t, []byte{0x01}, payload)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		frame := makeFrame(cmdStatus, []byte{0x01, 0x02})
		frame[9] ^= 0x10
		_, err := parseFrame(frame)
		require.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("corrupted checksum", func(t *testing.T) {
		frame := makeFrame(cmdStatus, []byte{0x01, 0x02})
		frame[len(frame)-1] ^= 0xff
		_, err := parseFrame(frame)
		require.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("truncated", func(t *testing.T) {
		frame := makeFrame(cmdStatus, []byte{0x01, 0x02, 0x03})
		for n := 0; n < len(frame); n++ {
			_, err := parseFrame(frame[:n])
			require.ErrorIs(t, err, ErrShortFrame, "%d bytes", n)
		}
	})

	t.Run("length smaller than cmd", func(t *testing.T) {
		frame := []byte{0x00, 0x00, 0x8f, 0xff, 0x00, 0x01, 0x0b, 0x4a, 0x00}
		_, err := parseFrame(frame)
		require.ErrorIs(t, err, ErrShortFrame)
	})
}

func TestChecksum(t *testing.T) {
	require.Equal(t, byte(0xff), checksum(nil))
	require.Equal(t, byte(0x00), checksum([]byte{0xff}))
	require.Equal(t, byte(0xff), checksum([]byte{0xaa, 0xaa}))
}

func TestOctets(t *testing.T) {
	for _, n := range []int{0, 1, 0x0b4a, 0x8fff, 0xffff} {
		require.Equal(t, n, mergeOctets(splitIntoOctets(n)))
	}
}

// panelFrame builds a frame the way the central does, source and
// destination swapped relative to ours.
func panelFrame(cmd int, payload []byte) []byte {
	frame := []byte{}
	frame = append(frame, splitIntoOctets(mobileID)...)
	frame = append(frame, splitIntoOctets(centralID)...)
	frame = append(frame, splitIntoOctets(len(payload)+2)...)
	frame = append(frame, splitIntoOctets(cmd)...)
	frame = append(frame, payload...)
	frame = append(frame, checksum(frame))
	return frame
}
