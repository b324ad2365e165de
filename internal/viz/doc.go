// Package viz renders solved trajectories as terminal text: asciigraph
// time-series charts, braille phase portraits, and lipgloss-styled
// summaries.
package viz
