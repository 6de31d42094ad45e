// Package tui renders the period x account value matrix produced by
// Engine.Compute as an interactive Bubble Tea table, with an
// account-detail overlay for inspecting one account's full time series.
package tui
