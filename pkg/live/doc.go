// Package live serves a browser preview of a playing dataset.
//
// The server owns a playback.Player and its transition scheduler. A frame
// ticker advances the dataset, a step ticker advances running transitions,
// and after every change the chart is diffed against the previous snapshot.
// The resulting vdom patches are broadcast to every connected browser over a
// WebSocket, so marks move in the page exactly as they move in the
// reconciled tree.
//
// Routes:
//
//	GET  /              preview page
//	GET  /ws            patch stream
//	GET  /snapshot.svg  current chart
//	GET  /metrics       Prometheus metrics
//	GET  /healthz       liveness
//	POST /frames        append a frame (JSON) and jump to it
//	POST /seek/{frame}  jump to a frame
package live
