// Package ui implements the pollwatch terminal interface using Bubbletea:
// a live change log, an activity map of the busiest subtrees, and a help
// overlay, all driven by a core.Controller.
package ui
