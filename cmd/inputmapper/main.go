package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/function61/gokit/app/dynversion"
	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/os/osutil"
	"github.com/spf13/cobra"
)

func main() {
	app := &cobra.Command{
		Use:     os.Args[0],
		Short:   "Binds input devices (tablets, touchscreens, pointers) to one monitor of the virtual screen",
		Version: dynversion.Version,
		Args:    cobra.NoArgs,
	}

	app.AddCommand(mapToOutputEntrypoint())
	app.AddCommand(listDevicesEntrypoint())
	app.AddCommand(listOutputsEntrypoint())

	osutil.ExitIfError(app.Execute())
}

func mapToOutputEntrypoint() *cobra.Command {
	verbose := false

	cmd := &cobra.Command{
		Use:   "map-to-output [device] [output]",
		Short: "Confines a device's motion to one output of the virtual screen",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(mapToOutput(args[0], args[1], verbose, logex.StandardLogger()))
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log the computed transformation matrix")

	return cmd
}

func listDevicesEntrypoint() *cobra.Command {
	return &cobra.Command{
		Use:   "list-devices",
		Short: "Lists input devices",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(listDevices())
		},
	}
}

func listOutputsEntrypoint() *cobra.Command {
	return &cobra.Command{
		Use:   "list-outputs",
		Short: "Lists connected outputs and their placement in the virtual screen",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(listOutputs())
		},
	}
}

func connectX11() (*xgb.Conn, error) {
	xutil, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	return xutil.Conn(), nil
}

func mapToOutput(deviceIdentifier string, outputName string, verbose bool, logger *log.Logger) error {
	X, err := connectX11()
	if err != nil {
		return err
	}

	if err := initXI2(X); err != nil {
		return err
	}

	device, err := findDevice(X, deviceIdentifier)
	if err != nil {
		return err
	}

	logl := logex.Levels(logger)
	if !verbose {
		logl.Debug = log.New(ioutil.Discard, "", 0)
	}

	return mapDeviceToOutput(X, device.Deviceid, outputName, logl)
}

func listDevices() error {
	X, err := connectX11()
	if err != nil {
		return err
	}

	if err := initXI2(X); err != nil {
		return err
	}

	devices, err := queryAllDevices(X)
	if err != nil {
		return err
	}

	for _, device := range devices {
		disabledNote := ""
		if !device.Enabled {
			disabledNote = "  (disabled)"
		}

		fmt.Printf("%-40s\tid=%d\t[%s]%s\n",
			device.Name,
			device.Deviceid,
			deviceUse(device.Type),
			disabledNote)
	}

	return nil
}

func listOutputs() error {
	X, err := connectX11()
	if err != nil {
		return err
	}

	if err := randr.Init(X); err != nil {
		return err
	}

	outputs, err := getConnectedOutputs(X, xproto.Setup(X).DefaultScreen(X).Root)
	if err != nil {
		return err
	}

	for _, output := range outputs {
		region := output.Region()

		fmt.Printf("%s  %dx%d+%d+%d\n",
			output.Name(),
			region.Width(), region.Height(),
			region.X(), region.Y())
	}

	return nil
}
