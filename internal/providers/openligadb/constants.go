package openligadb

import "time"

const (
	providerName       = "openligadb"
	defaultBaseURL     = "https://api.openligadb.de"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)
