package loader

import "errors"

var (
	errInvalidUTF8 = errors.New("module source is not valid UTF-8")
	errNoFetcher   = errors.New("no remote fetcher configured")
)
