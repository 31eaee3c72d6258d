package cmd

import (
	"fmt"
	"os"

	"elmlink/internal/cmd/root"
	"elmlink/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use: "elmlink",
	Run: root.Run,
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().Bool("mock", false, "Use a simulated adapter instead of a serial port")
	rootCmd.PersistentFlags().String("port", "/dev/ttyUSB0", "Serial port of the ELM327 adapter")
	rootCmd.PersistentFlags().Int("baud", 38400, "Baud rate for the serial connection")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("mock", rootCmd.PersistentFlags().Lookup("mock"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("baud", rootCmd.PersistentFlags().Lookup("baud"))

	// Set default values
	viper.SetDefault("debug", false)
	viper.SetDefault("mock", false)
	viper.SetDefault("port", "/dev/ttyUSB0")
	viper.SetDefault("baud", 38400)
}

func initLogger() {
	log.InitLogger(viper.GetBool("debug"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
