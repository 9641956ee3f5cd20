package protocol

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"hash/crc32"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex fixture %q: %v", s, err)
	}
	return b
}

// fixtureImage is the 8-byte image used by the golden fixtures below.
var fixtureImage = []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

func TestEncodeMessage(t *testing.T) {
	tests := []struct {
		name    string
		classID byte
		msgID   byte
		payload []byte
	}{
		{
			name:    "empty payload",
			classID: ClassApp,
			msgID:   MsgStartUpgrade,
			payload: nil,
		},
		{
			name:    "small payload",
			classID: ClassGNSS,
			msgID:   MsgFirmwareAddress,
			payload: []byte{0x00, 0x00, 0x00, 0x00},
		},
		{
			name:    "max length payload",
			classID: ClassApp,
			msgID:   MsgSendFirmware,
			payload: make([]byte, MaxChunkSize+4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := EncodeMessage(tt.classID, tt.msgID, tt.payload)

			if len(frame) != FrameOverhead+len(tt.payload) {
				t.Fatalf("frame length = %d, want %d", len(frame), FrameOverhead+len(tt.payload))
			}
			if frame[0] != FrameHeader {
				t.Errorf("header = 0x%02X, want 0x%02X", frame[0], FrameHeader)
			}
			if frame[1] != tt.classID {
				t.Errorf("class = 0x%02X, want 0x%02X", frame[1], tt.classID)
			}
			if frame[2] != tt.msgID {
				t.Errorf("msg = 0x%02X, want 0x%02X", frame[2], tt.msgID)
			}
			if got := binary.BigEndian.Uint16(frame[3:5]); got != uint16(len(tt.payload)) {
				t.Errorf("length field = %d, want %d", got, len(tt.payload))
			}
			if !bytes.Equal(frame[5:5+len(tt.payload)], tt.payload) {
				t.Errorf("payload not embedded verbatim")
			}

			wantCRC := crc32.ChecksumIEEE(frame[1 : len(frame)-5])
			if got := binary.BigEndian.Uint32(frame[len(frame)-5 : len(frame)-1]); got != wantCRC {
				t.Errorf("crc = 0x%08X, want 0x%08X", got, wantCRC)
			}
			if frame[len(frame)-1] != FrameTail {
				t.Errorf("tail = 0x%02X, want 0x%02X", frame[len(frame)-1], FrameTail)
			}
		})
	}
}

func TestBuildFirmwareAddressCmd(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   string
	}{
		{"app", TargetApp, "aa020100040000000074f0756055"},
		{"gnss", TargetGNSS, "aa0101000400000000fa7f728355"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFirmwareAddressCmd(tt.target)
			if !bytes.Equal(got, mustHex(t, tt.want)) {
				t.Errorf("frame = %x, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildStartUpgradeCmd(t *testing.T) {
	got := BuildStartUpgradeCmd(TargetApp)
	want := mustHex(t, "aa02030000890ba9ce55")
	if !bytes.Equal(got, want) {
		t.Errorf("frame = %x, want %x", got, want)
	}
}

func TestBuildSendFirmwareCmd(t *testing.T) {
	t.Run("golden", func(t *testing.T) {
		got, err := BuildSendFirmwareCmd(TargetApp, 0, []byte{0x01, 0x02, 0x03})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := mustHex(t, "aa02040007000000000102039a38f84155")
		if !bytes.Equal(got, want) {
			t.Errorf("frame = %x, want %x", got, want)
		}
	})

	t.Run("sequence number is big-endian", func(t *testing.T) {
		frame, err := BuildSendFirmwareCmd(TargetGNSS, 0x01020304, []byte{0xFF})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Payload starts after HEADER + CLASS + MSG + LEN.
		if got := binary.BigEndian.Uint32(frame[5:9]); got != 0x01020304 {
			t.Errorf("sequence = 0x%08X, want 0x01020304", got)
		}
	})

	t.Run("empty chunk", func(t *testing.T) {
		if _, err := BuildSendFirmwareCmd(TargetApp, 0, nil); err == nil {
			t.Error("expected error for empty chunk")
		}
	})

	t.Run("oversize chunk", func(t *testing.T) {
		if _, err := BuildSendFirmwareCmd(TargetApp, 0, make([]byte, MaxChunkSize+1)); err == nil {
			t.Error("expected error for oversize chunk")
		}
	})
}

func TestBuildAppInfoCmd(t *testing.T) {
	got := BuildAppInfoCmd(fixtureImage)
	want := mustHex(t, "aa02020010000000082731e73d00020000010000005cd3408a55")
	if !bytes.Equal(got, want) {
		t.Errorf("frame = %x, want %x", got, want)
	}

	payload := got[5 : 5+AppInfoSize]
	if !bytes.Equal(payload, mustHex(t, "000000082731e73d0002000001000000")) {
		t.Errorf("payload = %x", payload)
	}
}

func TestBuildGNSSInfoCmd(t *testing.T) {
	got := BuildGNSSInfoCmd(fixtureImage)
	want := mustHex(t, "aa01020020000000082731e73d100000000000040000180000000800000100000000000000115b633055")
	if !bytes.Equal(got, want) {
		t.Errorf("frame = %x, want %x", got, want)
	}

	payload := got[5 : 5+GNSSInfoSize]
	if !bytes.Equal(payload, mustHex(t, "000000082731e73d100000000000040000180000000800000100000000000000")) {
		t.Errorf("payload = %x", payload)
	}
}

func TestBuildFirmwareInfoCmdDispatch(t *testing.T) {
	if !bytes.Equal(BuildFirmwareInfoCmd(TargetApp, fixtureImage), BuildAppInfoCmd(fixtureImage)) {
		t.Error("app target did not produce the application info frame")
	}
	if !bytes.Equal(BuildFirmwareInfoCmd(TargetGNSS, fixtureImage), BuildGNSSInfoCmd(fixtureImage)) {
		t.Error("gnss target did not produce the GNSS info frame")
	}
}
