// Package pipeline implements the Markdown rendering pipeline: tokenizing
// source text into a structural event stream, transforming events into a
// highlighted HTML fragment, and assembling the fragment into a complete
// self-contained document.
package pipeline
