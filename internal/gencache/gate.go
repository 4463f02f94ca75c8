package gencache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/vanguard/internal/constants"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/llm"
	"github.com/julianstephens/vanguard/internal/models"
)

// ErrCacheWrite wraps a failure to persist freshly generated content. The
// content in the accompanying Result is still valid.
var ErrCacheWrite = errors.New("caching generated artifact")

// Store is the slice of the row store the gate needs.
type Store interface {
	// GetArtifact returns nil, nil when no artifact exists.
	GetArtifact(userID string, kind constants.ArtifactKind, periodKey string, variant int) (*models.Artifact, error)
	UpsertArtifact(a models.Artifact) error
}

// Request describes one artifact to resolve.
type Request struct {
	UserID          string
	Kind            constants.ArtifactKind
	Period          Period
	Variant         int
	SourceUpdatedAt time.Time
	Prompt          string
	// Ceiling, if positive, caps Variant per period before any other work.
	Ceiling int
	// Validate rejects unusable output. The output is then treated as a
	// generation failure and not cached.
	Validate func(content string) error
}

// Result is the resolved artifact content.
type Result struct {
	Content   string
	FromCache bool
	// Stale is set when generation failed and a previous artifact is served.
	Stale bool
}

// Gate reads, regenerates and caches artifacts.
type Gate struct {
	store  Store
	client llm.Client
	now    func() time.Time
	group  singleflight.Group
}

// NewGate creates a Gate. now supplies the freshness marker for new artifacts.
func NewGate(store Store, client llm.Client, now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{store: store, client: client, now: now}
}

func (r Request) key() string {
	return fmt.Sprintf("%s|%s|%s|%d", r.UserID, r.Kind, r.Period.Key, r.Variant)
}

// Resolve returns the cached artifact when it is reusable and generates a new
// one otherwise. A generation failure returns a *errors.GenerationError and
// leaves the cache untouched; if an older artifact exists its content is
// returned alongside the error with Stale set.
func (g *Gate) Resolve(ctx context.Context, req Request) (Result, error) {
	if req.Ceiling > 0 {
		if err := (BatchGate{Ceiling: req.Ceiling}).Check(req.Variant); err != nil {
			return Result{}, err
		}
	}

	cached, err := g.store.GetArtifact(req.UserID, req.Kind, req.Period.Key, req.Variant)
	if err != nil {
		return Result{}, fmt.Errorf("reading cached %s: %w", req.Kind, err)
	}
	if !ShouldRegenerate(cached, req.SourceUpdatedAt, req.Period) {
		return Result{Content: cached.Content, FromCache: true}, nil
	}

	v, err, _ := g.group.Do(req.key(), func() (interface{}, error) {
		return g.generate(ctx, req, cached)
	})
	res, _ := v.(Result)
	if err == nil || !apperr.IsTransient(err) || cached == nil {
		return res, err
	}
	return Result{Content: cached.Content, FromCache: true, Stale: true}, err
}

func (g *Gate) generate(ctx context.Context, req Request, cached *models.Artifact) (Result, error) {
	resp, err := g.client.Complete(ctx, req.Prompt)
	if err != nil {
		return Result{}, &apperr.GenerationError{Kind: string(req.Kind), Err: err}
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return Result{}, &apperr.GenerationError{Kind: string(req.Kind), Err: errors.New("empty response")}
	}
	content := strings.TrimSpace(resp.Content)
	if req.Validate != nil {
		if err := req.Validate(content); err != nil {
			return Result{}, &apperr.GenerationError{Kind: string(req.Kind), Err: err}
		}
	}

	now := g.now()
	artifact := models.Artifact{
		UserID:          req.UserID,
		Kind:            req.Kind,
		PeriodKey:       req.Period.Key,
		Variant:         req.Variant,
		Content:         content,
		SourceUpdatedAt: req.SourceUpdatedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if cached != nil {
		artifact.CreatedAt = cached.CreatedAt
	}
	if err := g.store.UpsertArtifact(artifact); err != nil {
		return Result{Content: content}, fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return Result{Content: content}, nil
}
