package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/isomers/pkg/errors"
	"github.com/matzehuels/isomers/pkg/service"
)

func (s *Server) handleTrees(w http.ResponseWriter, r *http.Request) {
	s.handleCount(w, r, service.KindTrees, "degree")
}

func (s *Server) handleRooted(w http.ResponseWriter, r *http.Request) {
	s.handleCount(w, r, service.KindRooted, "branching")
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request, kind, boundParam string) {
	vertices, err := errors.ParseInt("vertices", chi.URLParam(r, "vertices"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	bound, err := queryInt(r, boundParam, 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := service.CountOptions{Kind: kind, Vertices: vertices, Bound: bound}
	if kind == service.KindTrees {
		opts.Workers = s.opts.Workers
	}
	res, err := s.runner.Count(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handlePartitions(w http.ResponseWriter, r *http.Request) {
	sum, err := errors.ParseInt("sum", chi.URLParam(r, "sum"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var opts service.PartitionOptions
	opts.Sum = sum
	for _, q := range []struct {
		name string
		dst  *int
	}{
		{"parts", &opts.MaxParts},
		{"max", &opts.MaxValue},
		{"limit", &opts.Limit},
	} {
		if *q.dst, err = queryInt(r, q.name, 0); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	res, err := s.runner.Partitions(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	maxVertices, err := queryInt(r, "max", 20)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	degrees := []int{1, 2, 3, 4}
	if raw := r.URL.Query().Get("degrees"); raw != "" {
		if degrees, err = errors.ParseIntList("degrees", raw); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	tbl, err := s.runner.Table(r.Context(), maxVertices, degrees)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tbl)
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return errors.ParseInt(name, raw)
}
