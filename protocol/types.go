package protocol

// Target identifies which device subsystem a firmware image is destined for.
// The LG69T carries two independently upgradable subsystems: the application
// processor and the GNSS (Teseo) receiver.
type Target byte

const (
	// TargetGNSS is the GNSS receiver
	TargetGNSS Target = ClassGNSS

	// TargetApp is the application processor
	TargetApp Target = ClassApp
)

// ClassID returns the wire class id for the target.
func (t Target) ClassID() byte {
	return byte(t)
}

func (t Target) String() string {
	switch t {
	case TargetGNSS:
		return "gnss"
	case TargetApp:
		return "app"
	default:
		return "unknown"
	}
}

// Response is a decoded 14-byte bootloader response frame.
// It is produced by DecodeResponse and consumed once per command.
type Response struct {
	// PayloadSize is the response size field; must equal ResponsePayloadSize
	PayloadSize uint16

	// ClassID is the subsystem the response came from
	ClassID byte

	// MessageID echoes the command message id
	MessageID byte

	// Code is the response code; StatusSuccess indicates acceptance
	Code uint16

	// CRC is the checksum transmitted by the device
	CRC uint32

	// calculated is the checksum recomputed from the received bytes
	calculated uint32
}
