package main

import (
	"errors"

	mdpress "github.com/alnah/mdpress"
	"github.com/alnah/mdpress/internal/config"
)

// Exit codes returned to the shell.
const (
	ExitSuccess = 0 // conversion completed
	ExitGeneral = 1 // unclassified failure
	ExitUsage   = 2 // bad flags, bad config, or invalid input
	ExitIO      = 3 // file read or write failure
	ExitBrowser = 4 // browser launch, page load, or render failure
)

// exitCodeFor maps an error to its exit code. Classification uses
// errors.Is so wrapped errors resolve to the right group.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, mdpress.ErrBrowserConnect),
		errors.Is(err, mdpress.ErrPageCreate),
		errors.Is(err, mdpress.ErrPageLoad),
		errors.Is(err, mdpress.ErrPDFGeneration),
		errors.Is(err, mdpress.ErrRenderTimeout):
		return ExitBrowser

	case errors.Is(err, ErrReadMarkdown),
		errors.Is(err, ErrWriteOutput):
		return ExitIO

	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrInvalidExtension),
		errors.Is(err, ErrInvalidTimeout),
		errors.Is(err, mdpress.ErrInvalidMargin),
		errors.Is(err, mdpress.ErrEmptyMarkdown),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrInvalidConfig):
		return ExitUsage

	default:
		return ExitGeneral
	}
}
