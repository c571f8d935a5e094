// Package health is the backend status indicator shown in the footer.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Status string

const (
	Checking Status = "checking"
	Online   Status = "online"
	Offline  Status = "offline"
)

// Label is the footer text for the status.
func (s Status) Label() string {
	switch s {
	case Online:
		return "Online"
	case Offline:
		return "Offline"
	default:
		return "Revisando..."
	}
}

// Probe checks <api base>/store/health/ once per Run.
type Probe struct {
	URL    string
	Client *http.Client
	log    *zap.Logger

	mu     sync.RWMutex
	status Status
}

func NewProbe(url string, logger *zap.Logger) *Probe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
		log:    logger,
		status: Checking,
	}
}

func (p *Probe) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Run performs the probe. A 2xx answer means online; any other answer or a
// transport error means offline. If ctx is cancelled the status is left as
// it was, since the caller went away rather than the backend.
func (p *Probe) Run(ctx context.Context) Status {
	next, err := p.check(ctx)
	if err != nil && ctx.Err() != nil {
		return p.Status()
	}
	if err != nil {
		p.log.Debug("backend probe failed", zap.String("url", p.URL), zap.Error(err))
	}

	p.mu.Lock()
	p.status = next
	p.mu.Unlock()
	return next
}

func (p *Probe) check(ctx context.Context) (Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return Offline, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return Offline, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Offline, nil
	}
	return Online, nil
}
