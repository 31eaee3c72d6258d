package root

import (
	"context"
	"fmt"
	"time"

	"elmlink/internal/elm"
	"elmlink/internal/elm/pid"
	"elmlink/internal/transport"
	"elmlink/internal/transport/mock"
	"elmlink/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func Run(cmd *cobra.Command, args []string) {
	var tr transport.Transport
	if viper.GetBool("mock") {
		tr = mock.NewSimulated()
	} else {
		tr = transport.NewSerial(transport.Config{
			Port: viper.GetString("port"),
			Baud: viper.GetInt("baud"),
		})
	}

	session := elm.NewSession(tr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := session.Initialize(ctx); err != nil {
		log.Fatal("failed to initialize adapter", zap.Error(err))
	}
	defer session.Close(true)

	printSummary(ctx, session)
}

func printSummary(ctx context.Context, session *elm.Session) {
	if id, err := session.ProtocolNumber(ctx); err == nil {
		fmt.Printf("Protocol: %s (%s)\n", id, elm.ProtocolName(id))
	}
	if v, err := session.BatteryVoltage(ctx); err == nil {
		fmt.Printf("Battery:  %.1f V\n", v)
	}

	requests := []struct {
		name  string
		proto pid.Decoder
	}{
		{"Engine RPM", pid.EngineRPM{}},
		{"Vehicle speed", pid.VehicleSpeed{}},
		{"Coolant temp", pid.CoolantTemp{}},
		{"Throttle", pid.ThrottlePosition{}},
	}

	for _, r := range requests {
		v, err := session.Request(ctx, r.proto)
		if err != nil {
			log.Error("request failed", zap.String("pid", r.name), zap.Error(err))
			continue
		}
		if v == nil {
			fmt.Printf("%-14s no data\n", r.name+":")
			continue
		}
		fmt.Printf("%-14s %s\n", r.name+":", v)
	}
}
