package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Cable-s/PianoGame/mididev"
	"github.com/Cable-s/PianoGame/musicxml"
	"github.com/Cable-s/PianoGame/session"
	"github.com/spf13/cobra"
)

var (
	playDevice    string
	playTempoMode bool
	playTempo     float64
	playLeft      bool
	playRight     bool
)

func init() {
	playCmd.Flags().StringVar(&playDevice, "device", "", "substring of the MIDI input to use")
	playCmd.Flags().BoolVar(&playTempoMode, "tempo-mode", false, "clock never waits for input")
	playCmd.Flags().Float64Var(&playTempo, "tempo", 0, "override the score tempo (bpm)")
	playCmd.Flags().BoolVar(&playLeft, "left", true, "play the left hand (lower staff)")
	playCmd.Flags().BoolVar(&playRight, "right", true, "play the right hand (upper staff)")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <score.musicxml>",
	Short: "Plays a score against a live keyboard",
	Long:  `Plays a score against a live keyboard`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(args[0])
	},
}

func play(path string) error {
	score, err := musicxml.ParseFile(path)
	if err != nil {
		return err
	}

	defer mididev.CloseDriver()
	dec, err := mididev.Open(playDevice)
	if err != nil {
		return err
	}
	defer dec.Close()

	cfg := session.DefaultConfig()
	cfg.Tempo = playTempo
	cfg.LeftHand = playLeft
	cfg.RightHand = playRight
	if playTempoMode {
		cfg.Mode = session.Tempo
	}

	s := session.New(cfg)
	s.Load(score)

	fmt.Printf("playing %q on %v (%v mode)\n", score.Title, dec.Name(), cfg.Mode)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	last := time.Now()
	lastCountdown := -1
	for s.State() != session.Complete {
		select {
		case <-interrupt:
			fmt.Println("\ninterrupted")
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			s.Tick(dt)
			dec.Dispatch(s.HandleEvent)

			if !dec.Connected() {
				dec.RequestReconnect()
			}
			if s.State() == session.Countdown {
				left := int(s.CountdownLeft()) + 1
				if left != lastCountdown {
					fmt.Printf("%v...\n", left)
					lastCountdown = left
				}
			}
		}
	}

	report := s.Report()
	fmt.Printf("\nsession %v complete\n", report.ID)
	fmt.Printf("groups: %v\n", report.Groups)
	fmt.Printf("correct notes: %v\n", report.Stats.Correct)
	fmt.Printf("mistakes: %v\n", report.Stats.Mistakes)
	fmt.Printf("missed notes: %v\n", report.Stats.MissedNotes)
	fmt.Printf("hold breaks: %v\n", report.Stats.HoldBreaks)
	return nil
}
