package bootloader

import (
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/moffa90/go-lg69t/protocol"
)

// mockDevice simulates the serial channel for testing. Inbound data is
// scripted as a queue of bursts; each Read serves bytes from the front burst
// only, the way a serial port hands over whatever has arrived. An empty
// queue behaves like a read timeout: the call blocks briefly and returns
// zero bytes.
type mockDevice struct {
	bursts   [][]byte
	writes   [][]byte
	timeout  time.Duration
	readErr  error
	writeErr error
}

// maxMockBlock caps how long an empty read blocks so tests with long
// configured timeouts still finish quickly.
const maxMockBlock = 20 * time.Millisecond

func (m *mockDevice) Read(p []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}

	for len(m.bursts) > 0 && len(m.bursts[0]) == 0 {
		m.bursts = m.bursts[1:]
	}
	if len(m.bursts) == 0 {
		block := m.timeout
		if block > maxMockBlock {
			block = maxMockBlock
		}
		time.Sleep(block)
		return 0, nil
	}

	n := copy(p, m.bursts[0])
	m.bursts[0] = m.bursts[0][n:]
	if len(m.bursts[0]) == 0 {
		m.bursts = m.bursts[1:]
	}
	return n, nil
}

func (m *mockDevice) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (m *mockDevice) SetReadTimeout(t time.Duration) error {
	m.timeout = t
	return nil
}

// queue appends one inbound burst.
func (m *mockDevice) queue(data []byte) {
	m.bursts = append(m.bursts, data)
}

// syncBytes returns the little-endian wire form of a sync word.
func syncBytes(word uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, word)
	return b
}

// ackResponse assembles a valid 14-byte bootloader response frame.
func ackResponse(classID, msgID byte, code uint16) []byte {
	frame := make([]byte, protocol.ResponseSize)
	binary.BigEndian.PutUint16(frame[3:5], protocol.ResponsePayloadSize)
	frame[5] = classID
	frame[6] = msgID
	binary.BigEndian.PutUint16(frame[7:9], code)
	binary.BigEndian.PutUint32(frame[9:13], crc32.ChecksumIEEE(frame[1:9]))
	return frame
}

// queueHandshake scripts a successful sync exchange, with some leading noise
// the way a rebooting device spews boot messages.
func (m *mockDevice) queueHandshake() {
	m.queue(append([]byte{0x47, 0x50, 0x53, 0xAA}, syncBytes(protocol.SyncResponse1)...))
	m.queue(syncBytes(protocol.SyncResponse2))
}

// commandFrames returns the bootloader command frames written to the device,
// skipping raw sync words and reset requests.
func (m *mockDevice) commandFrames() [][]byte {
	var frames [][]byte
	for _, w := range m.writes {
		if len(w) > 0 && w[0] == protocol.FrameHeader {
			frames = append(frames, w)
		}
	}
	return frames
}

// framesWithMsgID filters command frames by message id.
func (m *mockDevice) framesWithMsgID(msgID byte) [][]byte {
	var frames [][]byte
	for _, f := range m.commandFrames() {
		if f[2] == msgID {
			frames = append(frames, f)
		}
	}
	return frames
}
