package cmd

import (
	"fmt"

	"github.com/Cable-s/PianoGame/mididev"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(devicesCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Lists MIDI input devices",
	Long:  `Lists MIDI input devices`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer mididev.CloseDriver()

		names, err := mididev.ListInputs()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("no MIDI input devices found")
			return nil
		}
		for i, name := range names {
			fmt.Printf("%v: %v\n", i, name)
		}
		return nil
	},
}
