package kinetic

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	Ko "github.com/maroda/kinetic/obvy"
	Ks "github.com/maroda/kinetic/server"
	Kt "github.com/maroda/kinetic/types"
	"go.opentelemetry.io/otel/attribute"
)

const maxBodyBytes = 1 << 16

// SetupMux handles all data serving:
// - Prometheus metric endpoint
// - Websocket for next option lookups
// - Version for programmatic use
// - Continuation API
func (v *View) SetupMux() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", v.Stats.Handler())
	r.HandleFunc("/ws", v.WebsocketHandler)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(v.StatsMiddleware)

	api.HandleFunc("/version", v.VersionHandler).Methods(http.MethodGet)
	api.HandleFunc("/next/{position}", v.NextHandler).Methods(http.MethodGet)
	api.HandleFunc("/stats/{position}", v.StatsHandler).Methods(http.MethodGet)
	api.HandleFunc("/positions", v.PositionsHandler).Methods(http.MethodGet)
	api.HandleFunc("/integrity", v.IntegrityHandler).Methods(http.MethodGet)
	api.HandleFunc("/orientation", v.OrientationHandler).Methods(http.MethodPost)
	api.HandleFunc("/dash", v.DashHandler).Methods(http.MethodPost)

	return r
}

var Version = "dev"

// MotionView is the wire shape of one hand's motion
type MotionView struct {
	Hand              string `json:"hand"`
	MotionType        string `json:"motion_type"`
	RotationDirection string `json:"prop_rot_dir,omitempty"`
	StartLoc          string `json:"start_loc"`
	EndLoc            string `json:"end_loc"`
	StartOrientation  string `json:"start_ori"`
	EndOrientation    string `json:"end_ori"`
	Turns             string `json:"turns"`
	DashLoc           string `json:"dash_loc,omitempty"`
}

// OptionView is the wire shape of a resolved pictograph
type OptionView struct {
	Letter        string       `json:"letter"`
	Type          string       `json:"type"`
	StartPosition string       `json:"start_pos"`
	EndPosition   string       `json:"end_pos"`
	Motions       []MotionView `json:"motions"`
}

func NewOptionView(r Kt.PictographRecord, lc *Ks.LetterClassifier) OptionView {
	ov := OptionView{
		Letter:        r.Letter,
		Type:          lc.CategoryOf(r.Letter).Type.String(),
		StartPosition: r.StartPosition,
		EndPosition:   r.EndPosition,
		Motions:       make([]MotionView, 0, len(r.Motions)),
	}
	for _, h := range Kt.Hands {
		m, ok := r.Motions[h]
		if !ok {
			continue
		}
		ov.Motions = append(ov.Motions, newMotionView(h, m, r.Resolved[h]))
	}
	return ov
}

func newMotionView(h Kt.Hand, m Kt.MotionDescriptor, rm Kt.ResolvedMotion) MotionView {
	return MotionView{
		Hand:              h.String(),
		MotionType:        m.MotionType.String(),
		RotationDirection: m.RotationDirection.String(),
		StartLoc:          m.StartLoc.String(),
		EndLoc:            m.EndLoc.String(),
		StartOrientation:  m.StartOrientation.String(),
		EndOrientation:    rm.EndOrientation.String(),
		Turns:             m.Turns.String(),
		DashLoc:           rm.DashLocation.String(),
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	data, err := sonic.Marshal(body)
	if err != nil {
		slog.Error("Could not encode response", slog.Any("error", err))
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func readJSON(r *http.Request, into any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := sonic.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func (v *View) VersionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}

// NextHandler answers every valid next pictograph from a position.
// An unknown position is an empty list, not an error.
func (v *View) NextHandler(w http.ResponseWriter, r *http.Request) {
	position := mux.Vars(r)["position"]

	_, span := Ko.Tracer().Start(r.Context(), "next_options")
	defer span.End()

	svc := v.CurrentService()
	opts := svc.NextOptions(position)
	v.Stats.RecLookup("api", len(opts))
	span.SetAttributes(
		attribute.String("kinetic.position", position),
		attribute.Int("kinetic.options", len(opts)))

	views := make([]OptionView, 0, len(opts))
	for _, o := range opts {
		views = append(views, NewOptionView(o, svc.Letters))
	}
	writeJSON(w, http.StatusOK, views)
}

func (v *View) StatsHandler(w http.ResponseWriter, r *http.Request) {
	position := mux.Vars(r)["position"]
	writeJSON(w, http.StatusOK, v.CurrentService().PositionStatistics(position))
}

func (v *View) PositionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, v.CurrentService().Positions())
}

// IntegrityReport joins missing-field issues with parse diagnostics
type IntegrityReport struct {
	Records     int                 `json:"records"`
	Issues      []Ks.IntegrityIssue `json:"issues"`
	Diagnostics []Ks.Diagnostic     `json:"diagnostics"`
}

func (v *View) IntegrityHandler(w http.ResponseWriter, r *http.Request) {
	svc := v.CurrentService()
	writeJSON(w, http.StatusOK, IntegrityReport{
		Records:     svc.Dataset.Len(),
		Issues:      svc.ValidateIntegrity(),
		Diagnostics: svc.Dataset.Diagnostics(),
	})
}

// OrientationResponse carries the resolved end orientation
type OrientationResponse struct {
	EndOrientation string          `json:"end_ori"`
	Diagnostics    []Ks.Diagnostic `json:"diagnostics"`
}

// OrientationHandler resolves one motion posted as a hand row
func (v *View) OrientationHandler(w http.ResponseWriter, r *http.Request) {
	var hr Kt.HandRow
	if err := readJSON(r, &hr); err != nil {
		slog.Error("Bad orientation request", slog.Any("error", err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, diags := Ks.ParseMotion(Kt.Blue, &hr)
	writeJSON(w, http.StatusOK, OrientationResponse{
		EndOrientation: Ks.ResolveEndOrientation(m).String(),
		Diagnostics:    diags,
	})
}

// DashRequest is a dash motion, the letter it belongs to
// and optionally the other hand's motion
type DashRequest struct {
	Letter string      `json:"letter"`
	Motion Kt.HandRow  `json:"motion"`
	Other  *Kt.HandRow `json:"other"`
}

type DashResponse struct {
	DashLoc     string          `json:"dash_loc"`
	ShiftLoc    string          `json:"shift_loc,omitempty"`
	Grid        string          `json:"grid"`
	Diagnostics []Ks.Diagnostic `json:"diagnostics"`
}

// DashHandler places the dash anchor for a posted motion
func (v *View) DashHandler(w http.ResponseWriter, r *http.Request) {
	var req DashRequest
	if err := readJSON(r, &req); err != nil {
		slog.Error("Bad dash request", slog.Any("error", err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, diags := Ks.ParseMotion(Kt.Blue, &req.Motion)
	if m.MotionType != Kt.Dash {
		writeError(w, http.StatusUnprocessableEntity, "motion is not a dash")
		return
	}

	shift := Kt.NoLocation
	if req.Other != nil {
		other, od := Ks.ParseMotion(Kt.Red, req.Other)
		diags = append(diags, od...)
		shift = Ks.ShiftLocation(other)
	}

	cat := v.CurrentService().Letters.CategoryOf(req.Letter)
	grid := Ks.GridModeOf(m.StartLoc)

	writeJSON(w, http.StatusOK, DashResponse{
		DashLoc:     Ks.ResolveDashLocation(m, cat, shift, grid).String(),
		ShiftLoc:    shift.String(),
		Grid:        grid.String(),
		Diagnostics: diags,
	})
}
