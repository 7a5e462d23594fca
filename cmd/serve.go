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

	"github.com/lcrosetto/midicanon/midi"
	"github.com/lcrosetto/midicanon/mididict"
	"github.com/lcrosetto/midicanon/pair"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves conversion over HTTP",
	Long:  `Serves MIDI-to-canonical-JSON conversion and content hashing over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

type errorResponse struct {
	Error string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// HandleConvert accepts raw MIDI bytes and responds with the canonical
// JSON document.
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	dat, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body")
		return
	}

	s, err := midi.ReadMidiBytes(dat)
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}
	d, err := pair.FromSMF(s)
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}

	out, err := d.ToJSON()
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

type hashResponse struct {
	Hash string `json:"hash"`
}

// HandleHash accepts a canonical JSON document and responds with its
// content hash. Documents with an unexpected key set are rejected.
func HandleHash(w http.ResponseWriter, r *http.Request) {
	dat, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body")
		return
	}

	d, err := mididict.FromJSON(dat)
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}
	hash, err := d.Hash()
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hashResponse{Hash: hash})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(200)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/hash", HandleHash).Methods("POST")
	router.HandleFunc("/healthz", handleHealth).Methods("GET")

	handler := cors.Default().Handler(router)
	addr := fmt.Sprintf(":%v", servePort)
	fmt.Printf("Listening on %v\n", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
