// Package main provides the effect rendering command. It pushes a WAV file
// through a trained capture model and writes the processed result, cutting
// the clip into overlapped blocks so workers can render concurrently.
package main
