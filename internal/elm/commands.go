package elm

// ELM327 AT configuration commands.
const (
	CommandReset           = "ATZ"
	CommandEchoOff         = "ATE0"
	CommandLineFeedsOff    = "ATL0"
	CommandHeadersOff      = "ATH0"
	CommandSpacesOff       = "ATS0"
	CommandSetProtocolAuto = "ATSP0"
	CommandCloseProtocol   = "ATPC"
	CommandLowPower        = "ATLP"
	CommandProtocolNum     = "ATDPN"
	CommandReadVoltage     = "ATRV"
)

// handshake is the fixed initialization sequence, issued in this order.
var handshake = []string{
	CommandReset,
	CommandEchoOff,
	CommandLineFeedsOff,
	CommandHeadersOff,
	CommandSpacesOff,
	CommandSetProtocolAuto,
}

// ModeCurrentData is the only OBD-II mode this session speaks. Replies
// echo the mode with the response flag set (01 -> 41).
const (
	ModeCurrentData  byte = 0x01
	responseModeFlag byte = 0x40
)

// protocolNames maps ATDPN protocol IDs to their descriptions.
var protocolNames = map[string]string{
	"0": "Auto",
	"1": "SAE J1850 PWM (41.6 kbaud)",
	"2": "SAE J1850 VPW (10.4 kbaud)",
	"3": "ISO 9141-2 (5 baud init)",
	"4": "ISO 14230-4 KWP (5 baud init)",
	"5": "ISO 14230-4 KWP (fast init)",
	"6": "ISO 15765-4 CAN (11 bit ID, 500 kbaud)",
	"7": "ISO 15765-4 CAN (29 bit ID, 500 kbaud)",
	"8": "ISO 15765-4 CAN (11 bit ID, 250 kbaud)",
	"9": "ISO 15765-4 CAN (29 bit ID, 250 kbaud)",
	"A": "SAE J1939 CAN (29 bit ID, 250 kbaud)",
}

// ProtocolName returns a human-readable name for an ATDPN protocol ID.
func ProtocolName(id string) string {
	if name, ok := protocolNames[id]; ok {
		return name
	}
	return "Unknown"
}
