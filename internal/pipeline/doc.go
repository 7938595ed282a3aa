// Package pipeline turns a directory of numbered images into a looping GIF.
//
// ParseArgs validates the three positional arguments without touching the
// filesystem. Run loads every frame with package frames, derives the output
// path from the parent of the input directory, and hands the frames to
// package gifenc. Every failure is terminal and carries a failures marker so
// callers can tell usage mistakes from environment problems.
package pipeline
