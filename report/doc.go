// Package report renders and exports the per-call artifacts: the plain
// transcript, the full JSON analysis, a one-row CSV summary, and an HTML
// report. Artifacts are written through the storage abstraction under a
// directory named by the call ID.
package report
