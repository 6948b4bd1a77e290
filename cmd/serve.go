package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/Cable-s/PianoGame/match"
	"github.com/Cable-s/PianoGame/model"
	"github.com/Cable-s/PianoGame/musicxml"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves parse and grade endpoints for a UI",
	Long:  `Serves parse and grade endpoints for a UI`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

type noteJSON struct {
	Pitch        string  `json:"pitch,omitempty"`
	Midi         uint8   `json:"midi,omitempty"`
	Rest         bool    `json:"rest,omitempty"`
	Beat         float64 `json:"beat"`
	StartSeconds float64 `json:"start_seconds"`
	Beats        float64 `json:"beats"`
	Measure      int     `json:"measure"`
	Staff        int     `json:"staff,omitempty"`
}

type parseResponse struct {
	Title    string     `json:"title"`
	Composer string     `json:"composer"`
	Tempo    float64    `json:"tempo"`
	Notes    []noteJSON `json:"notes"`
}

type gradeRequest struct {
	Score  string `json:"score"`
	Events []struct {
		Note   uint8 `json:"note"`
		TimeMS int32 `json:"time_ms"`
	} `json:"events"`
}

type errorResponse struct {
	Error string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func handleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	score, err := musicxml.Parse(body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	res := parseResponse{
		Title:    score.Title,
		Composer: score.Composer,
		Tempo:    score.Tempo,
		Notes:    make([]noteJSON, 0),
	}
	for _, n := range score.FlatNotes() {
		nj := noteJSON{
			Rest:         n.Rest,
			Beat:         n.Beat,
			StartSeconds: n.StartSeconds,
			Beats:        n.Beats(),
			Measure:      n.MeasureNumber,
			Staff:        n.Staff,
		}
		if !n.Rest {
			nj.Pitch = n.Pitch.String()
			nj.Midi = n.Pitch.MidiNote()
		}
		res.Notes = append(res.Notes, nj)
	}
	json.NewEncoder(w).Encode(res)
}

func handleGrade(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req gradeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not unmarshal request body: %w", err))
		return
	}
	score, err := musicxml.Parse([]byte(req.Score))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	var events []model.InputEvent
	for _, e := range req.Events {
		events = append(events, model.InputEvent{
			Kind:        model.NoteOn,
			Note:        e.Note,
			Velocity:    64,
			TimestampMS: e.TimeMS,
		})
	}

	notes := score.PlayedNotes(true, true)
	results := match.Run(events, notes, match.DefaultTolerance())
	summary := match.Score(results, len(notes))
	json.NewEncoder(w).Encode(summary)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", handleParse).Methods("POST")
	router.HandleFunc("/grade", handleGrade).Methods("POST")

	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(serveAddr, handler))
}
