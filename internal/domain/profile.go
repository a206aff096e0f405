package domain

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const ContextProfileKey = "requestProfile"

type Span struct {
	Name    string    `json:"name"`
	startTs time.Time
	Elapsed *int64    `json:"elapsedMs"`
}

func (s *Span) End() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
}

// Profile records named latency spans for one request. Safe for
// concurrent use.
type Profile struct {
	mu      sync.Mutex
	Spans   []*Span `json:"spans"`
	startTs time.Time
	TotalMs *int64 `json:"totalMs"`
}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
	return newProfile, newProfile.End
}

func (p *Profile) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

func (p *Profile) StartSpan(name string) (*Span, func()) {
	s := &Span{
		Name:    name,
		startTs: time.Now(),
	}
	p.mu.Lock()
	p.Spans = append(p.Spans, s)
	p.mu.Unlock()
	return s, s.End
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return json.Marshal(p.Spans)
}

// StartSpan opens a span on the profile stored in ctx. Without a
// profile the returned end func is a no-op.
func StartSpan(ctx context.Context, name string) func() {
	profile, ok := ctx.Value(ContextProfileKey).(*Profile)
	if !ok || profile == nil {
		return func() {}
	}
	_, end := profile.StartSpan(name)
	return end
}
