// Package fusion implements the LG69T control message envelope used outside
// of bootloader mode.
//
// While the device is running its application firmware it does not speak the
// bootloader frame format. Commands such as reset requests travel in a
// separate general-purpose envelope with its own sync bytes, header, and
// CRC-32. This package encodes the reset request needed to drop the device
// into its bootloader, and decodes the command responses that acknowledge it.
//
// Typical use:
//
//	frame := fusion.EncodeResetRequest(fusion.ResetRebootProcessor)
//	port.Write(frame)
//
//	var dec fusion.Decoder
//	for _, msg := range dec.Decode(inbound) {
//	    if msg.Header.MessageType == fusion.TypeCommandResponse {
//	        resp, err := fusion.ParseCommandResponse(msg.Payload)
//	        // ...
//	    }
//	}
//
// The Decoder is a streaming scanner: it tolerates leading noise, split
// reads, and corrupt frames, discarding unalignable bytes one at a time.
package fusion
