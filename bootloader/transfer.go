package bootloader

import (
	"context"
	"time"

	"github.com/moffa90/go-lg69t/protocol"
)

// sendFirmware splits the image into chunks of at most the configured chunk
// size and drives the send/ack loop.
//
// Each chunk is framed as a Send Firmware command whose payload is a 4-byte
// big-endian sequence number followed by the chunk bytes. The sequence
// number starts at 0 and increments by one per chunk. Every chunk must be
// individually acknowledged before the next is sent; on the first invalid or
// missing acknowledgment the transfer aborts and the remaining chunks are
// never transmitted.
func (u *Upgrader) sendFirmware(ctx context.Context, target protocol.Target, image []byte, start time.Time) error {
	chunkSize := u.config.ChunkSize
	total := len(image)
	chunks := (total + chunkSize - 1) / chunkSize

	remaining := image
	var seq uint32

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := len(remaining)
		if n > chunkSize {
			n = chunkSize
		}

		frame, err := protocol.BuildSendFirmwareCmd(target, seq, remaining[:n])
		if err != nil {
			return err
		}

		if _, err := u.device.Write(frame); err != nil {
			return &TransferError{Chunk: int(seq) + 1, Chunks: chunks, Err: err}
		}
		if err := u.awaitResponse(target.ClassID(), protocol.MsgSendFirmware, u.config.ResponseTimeout); err != nil {
			return &TransferError{Chunk: int(seq) + 1, Chunks: chunks, Err: err}
		}

		remaining = remaining[n:]
		seq++

		sent := total - len(remaining)
		u.reportProgress(Progress{
			Phase:        PhaseTransferring,
			Target:       target,
			CurrentChunk: int(seq),
			TotalChunks:  chunks,
			Percentage:   sent * 100 / total,
			BytesSent:    sent,
			TotalBytes:   total,
			ElapsedTime:  time.Since(start),
		})
	}

	return nil
}
