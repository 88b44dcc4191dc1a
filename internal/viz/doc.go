// Package viz renders Monte Carlo results in the terminal.
//
// [Report] writes a plain-text summary with asciigraph plots and is used
// whenever stdout is not a terminal. [Show] opens an interactive Bubble Tea
// viewer over the same panels.
//
// # Key Bindings
//
//	Tab/→/l       - Next panel
//	Shift+Tab/←/h - Previous panel
//	T             - Cycle color themes
//	Q/Esc         - Quit
package viz
