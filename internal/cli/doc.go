// Package cli implements the altercycle command line interface.
//
// Commands operate on YAML sequence files (an ordered list of values
// with optional forced orientations and metadata) or on conformance
// scenario files:
//
//	validate    - ingest a sequence and re-check strict alternation
//	patterns    - recurring window detection around the ring
//	palindromes - orientation-aware mirror search
//	run         - execute conformance scenarios
//
// Output is plain text by default; --format json wraps results in the
// standard {status, data} envelope. Exit codes: 0 success, 1 domain
// failure (invalid sequence, failed scenario), 2 command error.
package cli
