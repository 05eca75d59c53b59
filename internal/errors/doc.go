// Package errors provides coded, structured errors for the marks tools.
//
// The reconcile path itself never returns errors. Everything around it does:
// loading configuration, decoding frame files, writing SVG and PNG output,
// publishing snapshots. Those failures are reported as *Error values carrying
// a stable code, a category, a short message, an optional detail and hint,
// and the wrapped cause.
//
// # Error Codes
//
//   - M1xx: configuration
//   - M2xx: dataset decoding
//   - M3xx: rendering and output
//   - M4xx: publishing
//   - M5xx: live server
//
// # Usage
//
//	err := errors.New("M201").
//	    WithLocation("frames.yaml", 12).
//	    WithSuggestion("Every frame needs a data list").
//	    Wrap(cause)
//
//	fmt.Fprint(os.Stderr, err.Format())
package errors
