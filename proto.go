package amt8000

import "fmt"

const (
	centralID = 0x0000
	mobileID  = 0x8fff
)

const (
	cmdAuth          = 0xf0f0
	cmdDisconnect    = 0xf0f1
	cmdStatus        = 0x0b4a
	cmdPanic         = 0x401a
	cmdArm           = 0x401e
	cmdPairedSensors = 0x0b01
)

// headerSize covers dst, src, length, and cmd.
const headerSize = 8

const (
	deviceTypeMobile     = 0x01
	softwareVersionToken = 0x10
)

// makeFrame builds a complete frame for the given command. The length field
// counts cmd plus payload, the checksum does not count itself.
func makeFrame(cmd int, input []byte) []byte {
	frame := []byte{}
	frame = append(frame, splitIntoOctets(centralID)...)
	frame = append(frame, splitIntoOctets(mobileID)...)
	frame = append(frame, splitIntoOctets(len(input)+2)...)
	frame = append(frame, splitIntoOctets(cmd)...)
	frame = append(frame, input...)
	frame = append(frame, checksum(frame))
	return frame
}

func makeAuthFrame(pwd string) []byte {
	payload := []byte{deviceTypeMobile}
	for i := 0; i < len(pwd); i++ {
		payload = append(payload, pwd[i]-'0')
	}
	payload = append(payload, softwareVersionToken)
	return makeFrame(cmdAuth, payload)
}

// parseFrame validates a frame and returns its payload. Bytes past the
// advertised length are ignored, the central pads its reads.
func parseFrame(raw []byte) ([]byte, error) {
	if len(raw) < headerSize+1 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrShortFrame, len(raw))
	}
	length := mergeOctets(raw[4:6])
	if length < 2 {
		return nil, fmt.Errorf("%w: advertised length %d", ErrShortFrame, length)
	}
	total := headerSize + length - 2 + 1
	if len(raw) < total {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrShortFrame, total, len(raw))
	}
	if sum := checksum(raw[:total-1]); sum != raw[total-1] {
		return nil, fmt.Errorf("%w: calculated 0x%02x, frame has 0x%02x", ErrChecksumMismatch, sum, raw[total-1])
	}
	return raw[headerSize : total-1], nil
}

// framePayload slices the payload out of an already validated frame.
func framePayload(raw []byte) []byte {
	return raw[headerSize : headerSize+mergeOctets(raw[4:6])-2]
}

func splitIntoOctets(n int) []byte {
	return []byte{byte(n / 256), byte(n % 256)}
}

func mergeOctets(buf []byte) int {
	return int(buf[0])*256 + int(buf[1])
}

func checksum(buf []byte) byte {
	var check byte
	for _, n := range buf {
		check ^= n
	}
	check ^= 0xff
	return check
}
