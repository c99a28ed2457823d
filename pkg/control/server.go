// Package control serves a bank's parameter surface over HTTP so knobs can
// be inspected and set while the bank is routing.
package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/justyntemme/realknobs/pkg/framework/debug"
	"github.com/justyntemme/realknobs/pkg/knobs"
)

// Param is the JSON view of one parameter slot.
type Param struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Default     float64 `json:"default"`
	Integer     bool    `json:"integer"`
	Automatable bool    `json:"automatable"`
	Value       float64 `json:"value"`
	Normalized  float64 `json:"normalized"`
	Display     string  `json:"display"`
}

// SetRequest is the body of PUT /params/{index}. Exactly one field is
// used, in order: Value, Normalized (0-1 across the declared range), then
// Text parsed with the parameter's formatter ("CC 74", "Ch 2", "x1.5").
type SetRequest struct {
	Value      *float64 `json:"value,omitempty"`
	Normalized *float64 `json:"normalized,omitempty"`
	Text       string   `json:"text,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Server exposes a bank over HTTP.
type Server struct {
	bank    *knobs.Bank
	log     *debug.Logger
	router  *mux.Router
	handler http.Handler
}

// NewServer builds the routes. allowedOrigins configures CORS; empty
// allows any origin.
func NewServer(bank *knobs.Bank, log *debug.Logger, allowedOrigins ...string) *Server {
	if log == nil {
		log = debug.Default()
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	s := &Server{bank: bank, log: log}

	r := mux.NewRouter().StrictSlash(true)
	r.HandleFunc("/params", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/params/{index:[0-9]+}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/params/{index:[0-9]+}", s.handleSet).Methods(http.MethodPut)
	r.HandleFunc("/knobs", s.handleKnobs).Methods(http.MethodGet)
	r.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	s.router = r

	s.handler = cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
	return s
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("control surface listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("control: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) view(index int) (Param, bool) {
	p := s.bank.Parameters().GetByIndex(index)
	if p == nil {
		return Param{}, false
	}
	v := s.bank.Get(index)
	return Param{
		Index:       index,
		Name:        p.Name,
		Symbol:      p.Symbol,
		Min:         p.Min,
		Max:         p.Max,
		Default:     p.DefaultValue,
		Integer:     p.Integer(),
		Automatable: p.Automatable(),
		Value:       v,
		Normalized:  p.Normalize(v),
		Display:     p.FormatValue(v),
	}, true
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	out := make([]Param, 0, s.bank.ParamCount())
	for i := 0; i < s.bank.ParamCount(); i++ {
		if v, ok := s.view(i); ok {
			out = append(out, v)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	index, _ := strconv.Atoi(mux.Vars(r)["index"])
	v, ok := s.view(index)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %d", knobs.ErrUnknownParameter, index))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	index, _ := strconv.Atoi(mux.Vars(r)["index"])
	p := s.bank.Parameters().GetByIndex(index)
	if p == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %d", knobs.ErrUnknownParameter, index))
		return
	}

	var req SetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("control: decode body: %w", err))
		return
	}

	var value float64
	switch {
	case req.Value != nil:
		value = *req.Value
	case req.Normalized != nil:
		value = p.Denormalize(*req.Normalized)
	case req.Text != "":
		v, err := p.ParseValue(req.Text)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		value = v
	default:
		writeError(w, http.StatusBadRequest, errors.New("control: body needs value, normalized or text"))
		return
	}

	if err := s.bank.SetStrict(index, value); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, knobs.ErrUnknownParameter) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}

	v, _ := s.view(index)
	s.log.Debug("set %s = %s", v.Name, v.Display)
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleKnobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.bank.Reset()
	s.log.Info("bank reset")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}
