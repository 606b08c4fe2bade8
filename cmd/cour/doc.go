// Package main hosts the cour CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the transfer runner
// from it, and renders run reports as tables or JSON. Credentials are read
// from configuration or the environment here and handed to the pipeline as
// explicit arguments; nothing below this package looks them up on its own.
package main
