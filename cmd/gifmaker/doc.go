// Package main hosts the gifmaker CLI entrypoint and command graph.
//
// The root command takes a directory of numbered images and two delays and
// writes a looping GIF beside that directory. Subcommands preview the frame
// order and timing without encoding (plan) and scaffold or check the
// configuration file (config). Configuration resolution, flag overrides, and
// per-run logging are centralized here so the internal packages stay free of
// CLI concerns.
package main
