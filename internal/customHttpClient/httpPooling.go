package customHttpClient

import (
	"net/http"

	"github.com/akolanti/LabAPI/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: customTransport}

// GetPooledClient returns the shared outbound client so generation calls
// reuse connections instead of redialing per request.
func GetPooledClient() *http.Client {
	return pooledClient
}
