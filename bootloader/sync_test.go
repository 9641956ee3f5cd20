package bootloader

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moffa90/go-lg69t/protocol"
)

func TestSynchronize(t *testing.T) {
	tests := []struct {
		name  string
		noise []byte
	}{
		{"clean stream", nil},
		{"leading noise", []byte{0x01, 0x02, 0x03}},
		{"noise containing response prefix", append([]byte{0x4D}, syncBytes(protocol.SyncResponse1)[:2]...)},
		{"long noise", bytes.Repeat([]byte{0xAB}, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := &mockDevice{}
			device.queue(append(tt.noise, syncBytes(protocol.SyncResponse1)...))
			device.queue(syncBytes(protocol.SyncResponse2))

			upg := New(device)
			if err := upg.Synchronize(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// The handshake must have sent sync word 2 after matching the
			// first response.
			last := device.writes[len(device.writes)-1]
			if !bytes.Equal(last, syncBytes(protocol.SyncWord2)) {
				t.Errorf("last write = %x, want sync word 2 %x", last, syncBytes(protocol.SyncWord2))
			}
		})
	}
}

func TestSynchronizeTimeout(t *testing.T) {
	device := &mockDevice{}

	upg := New(device, WithSyncTimeout(120*time.Millisecond))
	err := upg.Synchronize(context.Background())
	if !errors.Is(err, ErrSyncTimeout) {
		t.Fatalf("error = %v, want ErrSyncTimeout", err)
	}

	// Sync word 1 must have been retransmitted while waiting.
	sends := 0
	for _, w := range device.writes {
		if bytes.Equal(w, syncBytes(protocol.SyncWord1)) {
			sends++
		}
	}
	if sends < 2 {
		t.Errorf("sync word 1 sent %d times, want at least 2", sends)
	}
}

func TestSynchronizeWrongSecondResponse(t *testing.T) {
	device := &mockDevice{}
	device.queue(syncBytes(protocol.SyncResponse1))
	device.queue([]byte{0x00, 0x11, 0x22, 0x33})

	upg := New(device, WithSyncTimeout(120*time.Millisecond))
	if err := upg.Synchronize(context.Background()); !errors.Is(err, ErrSyncTimeout) {
		t.Fatalf("error = %v, want ErrSyncTimeout", err)
	}
}

func TestSynchronizeRestartsAfterFailedSecondExchange(t *testing.T) {
	device := &mockDevice{}
	// First attempt gets a bad second response, the retry succeeds.
	device.queue(syncBytes(protocol.SyncResponse1))
	device.queue([]byte{0x00, 0x11, 0x22, 0x33})
	device.queue(syncBytes(protocol.SyncResponse1))
	device.queue(syncBytes(protocol.SyncResponse2))

	upg := New(device, WithSyncTimeout(2*time.Second))
	if err := upg.Synchronize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSynchronizeContextCancelled(t *testing.T) {
	device := &mockDevice{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	upg := New(device)
	if err := upg.Synchronize(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
