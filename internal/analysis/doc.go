// Package analysis turns the recent samples of a playing sound into the two
// signals the visualizer draws from: a frequency spectrum and a loudness level.
//
// Both analyzers follow the browser audio conventions the visuals were tuned
// against: spectrum magnitudes are windowed, scaled by 1/N, smoothed over time
// and mapped from a decibel range onto [0,1]; the level is a smoothed RMS.
package analysis
