package scraper

import "errors"

var (
	// ErrProfileUnavailable means the seed account does not exist or could not be scraped.
	ErrProfileUnavailable = errors.New("scraper: profile unavailable")
	// ErrSearchUnavailable means video search cannot run, usually because no Apify token is configured.
	ErrSearchUnavailable = errors.New("scraper: search unavailable")
)
