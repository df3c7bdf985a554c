// Command convertidor converts a line-oriented text file into a
// semicolon-separated CSV file.
//
// Usage:
//
//	convertidor [-formato formato-entrada.json] [-encabezado encabezado-tabla.json] [-salida DIR] <archivo-entrada>
//
// The output file is written as salida-YYYYMMDD-HHMMSS.csv in the output
// directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/convertidor/internal/config"
	"github.com/JonMunkholm/convertidor/internal/core"
	"github.com/JonMunkholm/convertidor/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if config.LoadDotEnv() {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, core.FormatUserError(fmt.Errorf("%w: %v", core.ErrMalformedConfig, err)))
		return 1
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	fs := flag.NewFlagSet("convertidor", flag.ContinueOnError)
	fs.StringVar(&cfg.Paths.FormatDescriptor, "formato", cfg.Paths.FormatDescriptor, "format descriptor file (JSON or YAML)")
	fs.StringVar(&cfg.Paths.HeaderDescriptor, "encabezado", cfg.Paths.HeaderDescriptor, "header descriptor file (JSON or YAML)")
	fs.StringVar(&cfg.Paths.OutputDir, "salida", cfg.Paths.OutputDir, "directory for the generated CSV")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Uso: convertidor [opciones] <archivo-entrada>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	inputPath := fs.Arg(0)
	if inputPath == "" {
		fs.Usage()
		fmt.Fprintln(os.Stderr, core.FormatUserError(fmt.Errorf("%w: input file path", core.ErrMissingArgument)))
		return 1
	}

	service, err := core.NewService(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		return 1
	}

	result, err := service.ConvertFile(context.Background(), inputPath)
	if err != nil {
		slog.Debug("conversion failed", "error", err)
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		return 1
	}

	fmt.Printf("Modo: %s\n", result.Strategy)
	fmt.Printf("Archivo generado: %s\n", result.OutputPath)
	fmt.Printf("Codificación: %s\n", result.Encoding)
	fmt.Printf("Registros: %d\n", result.Records)
	return 0
}
