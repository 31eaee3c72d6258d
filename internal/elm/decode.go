package elm

import (
	"encoding/hex"
	"strconv"
	"strings"

	"elmlink/internal/transport"
	"elmlink/pkg/log"

	"go.uber.org/zap"
)

// decodeLine parses a raw reply line into a typed Reading. It is
// deliberately tolerant: prompts, echoes, error strings ("NO DATA"),
// unknown PIDs and mismatched modes all yield (nil, false) without error,
// because most adapter output is not a data frame.
func decodeLine(reg *registry, mode byte, line transport.Line) (*Reading, bool) {
	text := strings.ReplaceAll(strings.TrimSpace(line.Text), " ", "")
	if len(text) <= 4 {
		return nil, false
	}

	mb, err := parseHexByte(text[0:2])
	if err != nil || mb != mode|responseModeFlag {
		return nil, false
	}

	pb, err := parseHexByte(text[2:4])
	if err != nil {
		return nil, false
	}

	dec, ok := reg.lookup(pb)
	if !ok {
		// Unregistered PIDs are not errors, just unrecognized.
		return nil, false
	}

	payload, err := hex.DecodeString(text[4:])
	if err != nil {
		return nil, false
	}

	value, err := dec.Decode(payload)
	if err != nil {
		log.Debug("payload rejected by decoder",
			zap.String("line", line.Text),
			zap.Error(err))
		return nil, false
	}

	return &Reading{PID: pb, Value: value, At: line.At}, true
}

func parseHexByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}
