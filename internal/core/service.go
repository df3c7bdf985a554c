package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"

	"github.com/JonMunkholm/convertidor/internal/config"
	"github.com/JonMunkholm/convertidor/internal/logging"
)

// OutputTimestampLayout is the local-time stamp in generated file names.
const OutputTimestampLayout = "20060102-150405"

// OutputFileName returns the generated name for a conversion finished at t.
func OutputFileName(t time.Time) string {
	return "salida-" + t.Format(OutputTimestampLayout) + ".csv"
}

// Service runs conversions. It holds no per-conversion state, so one
// Service may serve concurrent callers.
type Service struct {
	cfg     *config.Config
	limiter *Limiter
	now     func() time.Time
	newID   func() string
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock sets the clock used for output file names.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets the run ID generator.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a Service from runtime configuration.
func NewService(cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	s := &Service{
		cfg:     cfg,
		limiter: NewLimiter(cfg.Limits.MaxConcurrent, cfg.Limits.QueueWait),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Status reports conversion slot usage.
func (s *Service) Status() LimiterStatus {
	return s.limiter.Status()
}

// Drain waits for running conversions to finish or ctx to end.
func (s *Service) Drain(ctx context.Context) error {
	return s.limiter.Drain(ctx)
}

// LoadDescriptors loads the format and header descriptors named in config.
func (s *Service) LoadDescriptors() (*Descriptors, error) {
	return LoadDescriptors(s.cfg.Paths.FormatDescriptor, s.cfg.Paths.HeaderDescriptor)
}

// plan is everything resolved from the descriptors before input is touched.
type plan struct {
	strategy    Strategy
	opts        Options
	headers     []string
	inputEnc    encoding.Encoding
	outputEnc   encoding.Encoding
	outputLabel string
}

func (s *Service) prepare(d *Descriptors) (*plan, error) {
	if d == nil || len(d.Headers) == 0 {
		return nil, fmt.Errorf("%w: no header fields", ErrMalformedConfig)
	}

	strategy, err := Lookup(d.Format.Tipo)
	if err != nil {
		return nil, err
	}

	inputEnc, err := LookupEncoding(d.Format.InputEncoding())
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	outputLabel := d.Format.CodificacionSalida
	if strings.TrimSpace(outputLabel) == "" {
		outputLabel = s.cfg.Output.Encoding
	}
	if strings.TrimSpace(outputLabel) == "" {
		outputLabel = DefaultOutputEncoding
	}
	outputEnc, err := LookupEncoding(outputLabel)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	return &plan{
		strategy:    strategy,
		opts:        d.Format.Options(),
		headers:     d.Headers,
		inputEnc:    inputEnc,
		outputEnc:   outputEnc,
		outputLabel: outputLabel,
	}, nil
}

// ConvertFile converts the file at inputPath using the descriptors from
// config and writes salida-<timestamp>.csv into the output directory.
func (s *Service) ConvertFile(ctx context.Context, inputPath string) (*Result, error) {
	d, err := s.LoadDescriptors()
	if err != nil {
		return nil, err
	}
	return s.ConvertFileWith(ctx, d, inputPath)
}

// ConvertFileWith is ConvertFile with already loaded descriptors.
func (s *Service) ConvertFileWith(ctx context.Context, d *Descriptors, inputPath string) (*Result, error) {
	if strings.TrimSpace(inputPath) == "" {
		return nil, ErrMissingArgument
	}

	start := time.Now()

	// Resolve strategy and encodings first so a bad descriptor never
	// leaves an output file behind.
	p, err := s.prepare(d)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	defer f.Close()

	out, lines, err := s.run(ctx, p, f, inputPath)
	if err != nil {
		return nil, err
	}

	outputPath := filepath.Join(s.cfg.Paths.OutputDir, out.FileName)
	if err := os.WriteFile(outputPath, out.Data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileWrite, err)
	}

	result := &Result{
		RunID:      out.RunID,
		Strategy:   out.Strategy,
		InputPath:  inputPath,
		OutputPath: outputPath,
		Encoding:   out.Encoding,
		Lines:      lines,
		Records:    out.Records,
		Duration:   time.Since(start),
	}

	logging.WithFields(ctx, "run_id", result.RunID).Info("output written",
		"path", outputPath,
		"bytes", len(out.Data),
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// Convert converts input read from r and returns the encoded CSV without
// touching the filesystem. name is used for logging only.
func (s *Service) Convert(ctx context.Context, d *Descriptors, r io.Reader, name string) (*Output, error) {
	p, err := s.prepare(d)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	out, _, err := s.run(ctx, p, r, name)
	return out, err
}

// run reads, transforms, renders and encodes. It returns the output and the
// number of input lines after blank removal.
func (s *Service) run(ctx context.Context, p *plan, r io.Reader, name string) (*Output, int, error) {
	runID := s.newID()
	logger := logging.WithFields(ctx,
		"run_id", runID,
		"strategy", p.strategy.Name(),
	)

	lines, bytesRead, err := ReadLines(r, p.inputEnc)
	if err != nil {
		logger.Error("read input failed", "input", name, "error", err)
		return nil, 0, err
	}
	logger.Info("conversion started",
		"input", name,
		"bytes", bytesRead,
		"lines", len(lines),
		"headers", len(p.headers),
	)

	records := p.strategy.Execute(lines, p.headers, p.opts)
	csvText := RenderCSV(p.headers, records)

	data, err := EncodeText(p.outputEnc, csvText)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFileWrite, err)
	}

	logger.Info("conversion finished",
		"records", len(records),
		"encoding", p.outputLabel,
	)

	return &Output{
		RunID:    runID,
		Strategy: p.strategy.Name(),
		FileName: OutputFileName(s.now()),
		Encoding: p.outputLabel,
		Records:  len(records),
		Data:     data,
	}, len(lines), nil
}
