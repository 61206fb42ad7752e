// Package main provides the effect capture training command. It fits a
// dilated temporal convolutional network to a single pair of clean and
// processed recordings of the same performance, keeping the best
// checkpoint on disk as it goes.
package main
