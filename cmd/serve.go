package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/export"
	"github.com/inference-sim/pagesim/sim/reference"
)

var (
	serveAddr   string // Listen address for the HTTP API
	openBrowser bool   // Open the API index once listening
)

// serveCmd exposes the engine over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over an HTTP JSON API",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		listener, err := net.Listen("tcp", serveAddr)
		if err != nil {
			logrus.Fatalf("Cannot listen on %s: %v", serveAddr, err)
		}
		url := fmt.Sprintf("http://localhost:%d/api/policies", listener.Addr().(*net.TCPAddr).Port)
		logrus.Infof("Serving simulations on %s", listener.Addr())
		fmt.Fprintf(cmd.ErrOrStderr(), "Serving simulations with %s\n", url)

		if openBrowser {
			if err := browser.OpenURL(url); err != nil {
				logrus.Warnf("Could not open browser: %v", err)
			}
		}

		if err := http.Serve(listener, NewRouter()); err != nil {
			logrus.Fatalf("HTTP server stopped: %v", err)
		}
	},
}

// runRequest is the body of POST /api/run. References may be a JSON array of
// integers or a reference string.
// maxRequestBytes caps the body of POST /api/run.
const maxRequestBytes = 1 << 20

type runRequest struct {
	Policy     string          `json:"policy"`
	Frames     int             `json:"frames"`
	References json.RawMessage `json:"references"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the HTTP API:
//
//	GET  /api/policies
//	POST /api/run                  {"policy":"LRU","frames":3,"references":[7,0,1]}
//	GET  /api/run/{policy}?frames=3&refs=7,0,1
//	GET  /api/run/{policy}/csv?frames=3&refs=7,0,1
func NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/policies", listPolicies).Methods(http.MethodGet)
	r.HandleFunc("/api/run", runFromBody).Methods(http.MethodPost)
	r.HandleFunc("/api/run/{policy}", runFromQuery).Methods(http.MethodGet)
	r.HandleFunc("/api/run/{policy}/csv", runCSVFromQuery).Methods(http.MethodGet)
	return r
}

func listPolicies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sim.Policies())
}

func runFromBody(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	refs, err := decodeReferences(req.References)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	simulateAndRespond(w, req.Policy, refs, req.Frames, export.FormatJSON)
}

func runFromQuery(w http.ResponseWriter, r *http.Request) {
	respondFromQuery(w, r, export.FormatJSON)
}

func runCSVFromQuery(w http.ResponseWriter, r *http.Request) {
	respondFromQuery(w, r, export.FormatCSV)
}

func respondFromQuery(w http.ResponseWriter, r *http.Request, format export.Format) {
	q := r.URL.Query()
	frameCount, err := strconv.Atoi(q.Get("frames"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: frames must be an integer", sim.ErrInvalidInput))
		return
	}
	refs, err := reference.Parse(q.Get("refs"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	simulateAndRespond(w, mux.Vars(r)["policy"], refs, frameCount, format)
}

func simulateAndRespond(w http.ResponseWriter, policy string, refs []sim.PageID, frameCount int, format export.Format) {
	res, err := sim.RunNamed(policy, refs, frameCount)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	runID := export.NewRunID()
	logrus.WithFields(logrus.Fields{
		"run":    runID,
		"policy": string(res.Policy),
		"frames": res.Frames,
		"faults": res.Faults,
	}).Debug("served simulation")

	switch format {
	case export.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	if err := export.Write(w, format, runID, res); err != nil {
		logrus.Errorf("Writing response for run %s: %v", runID, err)
	}
}

// decodeReferences accepts either [7,0,1] or "7 0 1".
func decodeReferences(raw json.RawMessage) ([]sim.PageID, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: references missing", sim.ErrInvalidInput)
	}
	var ints []int
	if err := json.Unmarshal(raw, &ints); err == nil {
		refs := make([]sim.PageID, len(ints))
		for i, p := range ints {
			refs[i] = sim.PageID(p)
		}
		return refs, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: references must be an integer array or a string", sim.ErrInvalidInput)
	}
	return reference.Parse(s)
}

func statusFor(err error) int {
	if errors.Is(err, sim.ErrInvalidInput) || errors.Is(err, sim.ErrUnknownPolicy) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	logrus.Debugf("Rejecting request: %v", err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Encoding response: %v", err)
	}
}
