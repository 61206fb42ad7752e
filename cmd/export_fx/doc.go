// Package main provides the model export command. It converts a training
// checkpoint into one of the two downstream inference formats: a flat
// binary weight blob or a compilable Go source file.
package main
