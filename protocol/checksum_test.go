package protocol

import (
	"hash/crc32"
	"testing"
)

func TestFirmwareCRC(t *testing.T) {
	tests := []struct {
		name  string
		image []byte
		want  uint32
	}{
		{
			name:  "fixture image",
			image: fixtureImage,
			want:  0x2731E73D,
		},
		{
			name:  "empty image is the CRC of four zero bytes",
			image: nil,
			want:  0x2144DF1C,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirmwareCRC(tt.image); got != tt.want {
				t.Errorf("FirmwareCRC = 0x%08X, want 0x%08X", got, tt.want)
			}
		})
	}
}

func TestFirmwareCRCIncludesLengthPrefix(t *testing.T) {
	// The device checksums a length prefix plus the image, not the image
	// alone. A plain CRC of the bytes must not match.
	if FirmwareCRC(fixtureImage) == crc32.ChecksumIEEE(fixtureImage) {
		t.Error("FirmwareCRC should differ from a plain CRC-32 of the image bytes")
	}
}
