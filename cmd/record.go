package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Cable-s/PianoGame/mididev"
	"github.com/Cable-s/PianoGame/model"
	"github.com/Cable-s/PianoGame/perflog"
	"github.com/spf13/cobra"
)

var recordDevice string

func init() {
	recordCmd.Flags().StringVar(&recordDevice, "device", "", "substring of the MIDI input to use")
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record <out.mid>",
	Short: "Records keyboard input to a performance log",
	Long:  `Records keyboard input to a performance log until interrupted`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return record(args[0])
	},
}

func record(path string) error {
	defer mididev.CloseDriver()
	dec, err := mididev.Open(recordDevice)
	if err != nil {
		return err
	}
	defer dec.Close()

	fmt.Printf("recording from %v, ctrl-c to stop\n", dec.Name())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	var events []model.InputEvent
	for {
		select {
		case <-interrupt:
			// drain whatever the producer already decoded
			dec.Dispatch(func(ev model.InputEvent) {
				events = append(events, ev)
			})
			if err := perflog.Write(path, events); err != nil {
				return err
			}
			fmt.Printf("\nwrote %v events to %v\n", len(events), path)
			return nil
		case <-ticker.C:
			dec.Dispatch(func(ev model.InputEvent) {
				events = append(events, ev)
			})
		}
	}
}
