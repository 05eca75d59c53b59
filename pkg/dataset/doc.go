// Package dataset loads frame sequences for scatter lines.
//
// A dataset is a list of frames. Each frame holds one or more named rows of
// numbers and may override the x domain. Successive frames are reconciled
// against the same containers, so values that persist between frames
// animate, new values enter and missing values exit.
//
//	title: Request latency
//	domain: [0, 100]
//	frames:
//	  - name: monday
//	    rows:
//	      - {name: api, data: [12, 40, 55]}
//	      - {name: web, data: [8, 21]}
//	  - name: tuesday
//	    domain: [0, 200]
//	    data: [12, 90, 140]
//
// A frame's bare data list is shorthand for a single row named "default".
// Files are decoded as JSON or YAML depending on their extension.
package dataset
