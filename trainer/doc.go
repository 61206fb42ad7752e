// Package trainer provides high-level training orchestration for effect
// capture. It drives the example pair through the network epoch by epoch,
// validates on the held-out tail and keeps the best checkpoint on disk.
package trainer
