package platform

import (
	"crypto/tls"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

// HTTPPool round-robins a fixed set of fasthttp clients so concurrent
// moderation calls don't contend on a single connection pool.
type HTTPPool struct {
	clients []*fasthttp.Client
	size    uint64
	index   uint64
}

func NewHTTPPool(size int) *HTTPPool {
	if size < 1 {
		size = 1
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ClientSessionCache: tls.NewLRUClientSessionCache(128),
	}

	clients := make([]*fasthttp.Client, size)
	for i := 0; i < size; i++ {
		clients[i] = &fasthttp.Client{
			MaxConnsPerHost:     512,
			MaxIdleConnDuration: 180 * time.Second,
			ReadTimeout:         2 * time.Second,
			WriteTimeout:        2 * time.Second,
			MaxResponseBodySize: 4 * 1024 * 1024,

			// Moderation calls are never retried; a failed attempt is
			// reported and the next qualifying event re-triggers it
			MaxIdemponentCallAttempts: 1,

			DialDualStack:            true,
			TLSConfig:                tlsConfig,
			NoDefaultUserAgentHeader: true,
		}
	}

	return &HTTPPool{
		clients: clients,
		size:    uint64(size),
	}
}

func (hp *HTTPPool) Client() *fasthttp.Client {
	n := atomic.AddUint64(&hp.index, 1)
	return hp.clients[n%hp.size]
}
