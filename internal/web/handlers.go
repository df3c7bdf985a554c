package web

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/convertidor/internal/core"
	"github.com/JonMunkholm/convertidor/internal/web/middleware"
)

// healthResponse is the liveness payload.
type healthResponse struct {
	Status      string             `json:"status"`
	Conversions core.LimiterStatus `json:"conversions"`
}

// handleHealth reports liveness and conversion slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, healthResponse{Status: "ok", Conversions: s.service.Status()})
}

// strategiesResponse lists the registered strategies and the active setup.
type strategiesResponse struct {
	Strategies []string `json:"strategies"`
	Active     string   `json:"active"`
	Delimiter  string   `json:"delimiter,omitempty"`
	Headers    []string `json:"headers"`
}

// handleListStrategies returns the registered strategies and the default
// descriptors requests are converted with.
func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, strategiesResponse{
		Strategies: core.Names(),
		Active:     s.descriptors.Format.Tipo,
		Delimiter:  s.descriptors.Format.Delimitador,
		Headers:    s.descriptors.Headers,
	})
}

// handleConvert converts an uploaded input file and returns the CSV.
//
// The input is either the multipart field "file" or the raw request body.
// Query parameters tipo, delimitador, codificacion and codificacionSalida
// override the server's format descriptor for this request only.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Server.MaxBodySize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	input, name, err := requestInput(r, maxSize)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	defer input.Close()

	d := s.requestDescriptors(r)

	out, err := s.service.Convert(r.Context(), d, input, name)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", mime.FormatMediaType("text/csv", map[string]string{"charset": core.CharsetName(out.Encoding)}))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.Header().Set(middleware.ConversionIDHeader, out.RunID)
	w.Header().Set("X-Record-Count", strconv.Itoa(out.Records))
	w.WriteHeader(http.StatusOK)
	w.Write(out.Data)
}

// requestInput returns the uploaded input and a name for logging.
func requestInput(r *http.Request, maxSize int64) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxSize); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, "", err
			}
			return nil, "", fmt.Errorf("%w: invalid form: %v", core.ErrFileRead, err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("%w: no file provided", core.ErrMissingArgument)
		}
		return file, header.Filename, nil
	}

	if r.ContentLength == 0 {
		return nil, "", fmt.Errorf("%w: empty request body", core.ErrMissingArgument)
	}
	return r.Body, "request-body", nil
}

// requestDescriptors applies query overrides to a copy of the defaults.
func (s *Server) requestDescriptors(r *http.Request) *core.Descriptors {
	d := *s.descriptors
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("tipo")); v != "" {
		d.Format.Tipo = v
	}
	if v := q.Get("delimitador"); v != "" {
		d.Format.Delimitador = v
	}
	if v := q.Get("codificacion"); v != "" {
		d.Format.Codificacion = v
	}
	if v := q.Get("codificacionSalida"); v != "" {
		d.Format.CodificacionSalida = v
	}

	return &d
}
