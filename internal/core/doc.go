// Package core provides the conversion logic for line-oriented data files.
//
// This package holds all domain logic independent of the transport. It is
// used by the convertidor CLI, the HTTP server and tests without change.
//
// # Architecture
//
// A conversion is driven by two descriptor documents:
//
//   - The format descriptor names the strategy ("tipo"), an optional
//     delimiter and the input and output encodings.
//   - The header descriptor lists the output columns ("campos") in order.
//
// The [Service] resolves both, reads the input, runs the strategy, renders
// the records as CSV and encodes the result.
//
// # Strategy Registry
//
// Strategies register themselves at init time using [Register]:
//
//	func init() {
//	    Register(KeyValueStrategy{})
//	}
//
// [Lookup] resolves the "tipo" of a format descriptor. An unknown name fails
// before any input is read, so no output file is produced.
//
// # Conversion Flow
//
//  1. [Service.ConvertFile] loads the descriptors from the configured paths
//  2. The strategy and both encodings are resolved
//  3. A conversion slot is taken from the [Limiter]
//  4. [ReadLines] decodes the input, trims every line and drops blank ones
//  5. The strategy turns lines into [Record] values
//  6. [RenderCSV] quotes every cell; [EncodeText] applies the output encoding
//  7. The bytes are written as salida-YYYYMMDD-HHMMSS.csv
//
// [Service.Convert] runs steps 2 to 6 on an io.Reader without touching the
// filesystem; the HTTP server uses it.
//
// # Error Handling
//
// Failures wrap the sentinel errors in this package. [MapError] turns them
// into a [UserMessage] with a code such as CFG001 or STR001.
package core
