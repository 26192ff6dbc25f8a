package platform

import (
	"errors"
	"net/url"
	"strings"
	"sync"
)

// URLDispatcher forwards URL-open requests to the one registered handler.
type URLDispatcher struct {
	mu      sync.Mutex
	handler func(urls []string)
	pending [][]string
}

// OnOpenURLs registers the handler. Requests dispatched before registration
// are delivered to it immediately.
func (d *URLDispatcher) OnOpenURLs(fn func(urls []string)) error {
	if fn == nil {
		return errors.New("nil URL handler")
	}
	d.mu.Lock()
	if d.handler != nil {
		d.mu.Unlock()
		return errors.New("URL handler already registered")
	}
	d.handler = fn
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, urls := range pending {
		fn(urls)
	}
	return nil
}

// Dispatch delivers urls to the handler, or queues them until one is set.
func (d *URLDispatcher) Dispatch(urls []string) {
	if len(urls) == 0 {
		return
	}
	d.mu.Lock()
	fn := d.handler
	if fn == nil {
		d.pending = append(d.pending, urls)
	}
	d.mu.Unlock()

	if fn != nil {
		fn(urls)
	}
}

// URLArgs picks the arguments that are absolute URLs with one of the given
// schemes, the way a protocol handler is launched by the shell.
func URLArgs(args []string, schemes ...string) []string {
	var urls []string
	for _, arg := range args {
		u, err := url.Parse(arg)
		if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
			// single letter schemes are drive letters
			continue
		}
		for _, s := range schemes {
			if strings.EqualFold(u.Scheme, s) {
				urls = append(urls, arg)
				break
			}
		}
	}
	return urls
}
