// Package recommender suggests a technology shortlist for a free-text
// project idea by ranking a fixed catalog on embedding similarity.
package recommender

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/2riing/vibe-promptgen/pkg/embedding"
	"github.com/2riing/vibe-promptgen/pkg/model"
)

// TopN is the shortlist length.
const TopN = 8

// DefaultQueryCacheSize bounds the query-embedding cache.
const DefaultQueryCacheSize = 256

// ModelLoadError means the embedding model could not be prepared.
type ModelLoadError struct {
	Model string
	Err   error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("loading embedding model %s: %v", e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// InferenceError means embedding failed or the vectors do not fit the corpus.
type InferenceError struct {
	Reason string
	Err    error
}

func (e *InferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("embedding inference failed: %s: %v", e.Reason, e.Err)
	}
	return "embedding inference failed: " + e.Reason
}

func (e *InferenceError) Unwrap() error { return e.Err }

// Recommender ranks Catalog against ideas. The model is loaded and the
// catalog embedded on first use; a failed load leaves nothing behind so the
// next call retries. After loading, Recommend is safe for concurrent use.
type Recommender struct {
	embedder embedding.Embedder
	logger   *logrus.Logger
	catalog  []model.TechItem
	bridge   []BridgeRule

	group singleflight.Group

	mu     sync.RWMutex
	corpus [][]float32

	watchMu  sync.Mutex
	watchers map[int]*progressTracker
	nextID   int

	queries *lru.Cache[string, []float32]
}

// Option customises a Recommender.
type Option func(*Recommender)

// WithBridge replaces DefaultBridge.
func WithBridge(rules []BridgeRule) Option {
	return func(r *Recommender) { r.bridge = rules }
}

// WithCatalog replaces Catalog.
func WithCatalog(items []model.TechItem) Option {
	return func(r *Recommender) { r.catalog = items }
}

func New(e embedding.Embedder, logger *logrus.Logger, cacheSize int, opts ...Option) (*Recommender, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultQueryCacheSize
	}
	cache, err := lru.New[string, []float32](cacheSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r := &Recommender{
		embedder: e,
		logger:   logger,
		catalog:  Catalog,
		bridge:   DefaultBridge,
		watchers: make(map[int]*progressTracker),
		queries:  cache,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Loaded reports whether the model and corpus are ready.
func (r *Recommender) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.corpus != nil
}

// Recommend returns the TopN catalog names closest to idea, best first.
// onProgress, if set, sees model download progress in percent; it is only
// called while the model loads, never during inference. Callers refuse
// blank ideas before calling.
func (r *Recommender) Recommend(ctx context.Context, idea string, onProgress func(percent float64)) ([]string, error) {
	corpus, err := r.ensureLoaded(ctx, onProgress)
	if err != nil {
		return nil, err
	}

	query := BuildQuery(idea, r.bridge)
	q, err := r.embedQuery(ctx, query, len(corpus[0]))
	if err != nil {
		return nil, err
	}

	type scored struct {
		name  string
		score float64
	}
	scores := make([]scored, len(r.catalog))
	for i, item := range r.catalog {
		scores[i] = scored{name: item.Name, score: embedding.Cosine(q, corpus[i])}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	n := min(TopN, len(scores))
	top := make([]string, n)
	for i := 0; i < n; i++ {
		top[i] = scores[i].name
	}
	top = ApplyCompanion(top)

	r.logger.WithFields(logrus.Fields{
		"query": query,
		"techs": top,
	}).Debug("Recommendation computed")
	return top, nil
}

// ApplyCompanion makes sure TypeScript accompanies JavaScript-ecosystem
// picks: it drops the last entry of a full shortlist and inserts TypeScript
// in second place.
func ApplyCompanion(top []string) []string {
	hasJS := false
	for _, name := range top {
		if name == companion {
			return top
		}
		if jsEcosystem[name] {
			hasJS = true
		}
	}
	if !hasJS {
		return top
	}
	out := append([]string(nil), top...)
	if len(out) >= TopN {
		out = out[:len(out)-1]
	}
	at := min(1, len(out))
	out = append(out[:at], append([]string{companion}, out[at:]...)...)
	return out
}

func (r *Recommender) ensureLoaded(ctx context.Context, onProgress func(float64)) ([][]float32, error) {
	r.mu.RLock()
	corpus := r.corpus
	r.mu.RUnlock()
	if corpus != nil {
		return corpus, nil
	}

	if onProgress != nil {
		id := r.watch(&progressTracker{fn: onProgress})
		defer r.unwatch(id)
	}

	// The load outlives any single caller so that a cancelled first caller
	// does not fail the others waiting on it.
	ch := r.group.DoChan("load", func() (any, error) {
		return r.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([][]float32), nil
	}
}

func (r *Recommender) load(ctx context.Context) ([][]float32, error) {
	r.mu.RLock()
	corpus := r.corpus
	r.mu.RUnlock()
	if corpus != nil {
		return corpus, nil
	}

	name := r.embedder.Name()
	r.logger.WithField("model", name).Info("Loading embedding model")
	if err := r.embedder.Load(ctx, r.broadcast); err != nil {
		r.logger.WithError(err).WithField("model", name).Error("Embedding model load failed")
		return nil, &ModelLoadError{Model: name, Err: err}
	}

	descs := make([]string, len(r.catalog))
	for i, item := range r.catalog {
		descs[i] = item.Description
	}
	vecs, err := r.embedder.Embed(ctx, descs)
	if err != nil {
		return nil, &InferenceError{Reason: "embedding catalog", Err: err}
	}
	if err := checkCorpus(vecs, len(r.catalog)); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.corpus = vecs
	r.mu.Unlock()
	r.logger.WithFields(logrus.Fields{
		"model": name,
		"items": len(vecs),
		"dims":  len(vecs[0]),
	}).Info("Catalog embedded")
	return vecs, nil
}

func checkCorpus(vecs [][]float32, want int) error {
	if want == 0 {
		return &InferenceError{Reason: "catalog is empty"}
	}
	if len(vecs) != want {
		return &InferenceError{Reason: fmt.Sprintf("got %d catalog vectors for %d items", len(vecs), want)}
	}
	dims := len(vecs[0])
	for i, v := range vecs {
		if len(v) != dims || dims == 0 {
			return &InferenceError{Reason: fmt.Sprintf("catalog vector %d has %d dims, want %d", i, len(v), dims)}
		}
		if isZero(v) {
			return &InferenceError{Reason: fmt.Sprintf("catalog vector %d is zero", i)}
		}
	}
	return nil
}

func (r *Recommender) embedQuery(ctx context.Context, query string, dims int) ([]float32, error) {
	if v, ok := r.queries.Get(query); ok {
		return v, nil
	}
	vecs, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, &InferenceError{Reason: "embedding query", Err: err}
	}
	if len(vecs) != 1 {
		return nil, &InferenceError{Reason: fmt.Sprintf("got %d query vectors, want 1", len(vecs))}
	}
	v := vecs[0]
	if len(v) != dims {
		return nil, &InferenceError{Reason: fmt.Sprintf("query vector has %d dims, corpus has %d", len(v), dims)}
	}
	if isZero(v) {
		return nil, &InferenceError{Reason: "query vector is zero"}
	}
	r.queries.Add(query, v)
	return v, nil
}

func isZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// progressTracker forwards clamped, non-decreasing percentages.
type progressTracker struct {
	mu   sync.Mutex
	last float64
	fn   func(float64)
}

func (p *progressTracker) report(percent float64) {
	if math.IsNaN(percent) {
		return
	}
	percent = math.Max(0, math.Min(100, percent))
	p.mu.Lock()
	defer p.mu.Unlock()
	if percent < p.last {
		return
	}
	p.last = percent
	p.fn(percent)
}

func (r *Recommender) watch(t *progressTracker) int {
	r.watchMu.Lock()
	defer r.watchMu.Unlock()
	r.nextID++
	r.watchers[r.nextID] = t
	return r.nextID
}

func (r *Recommender) unwatch(id int) {
	r.watchMu.Lock()
	defer r.watchMu.Unlock()
	delete(r.watchers, id)
}

// broadcast fans load progress out to every caller waiting on the load.
func (r *Recommender) broadcast(percent float64) {
	r.watchMu.Lock()
	trackers := make([]*progressTracker, 0, len(r.watchers))
	for _, t := range r.watchers {
		trackers = append(trackers, t)
	}
	r.watchMu.Unlock()
	for _, t := range trackers {
		t.report(percent)
	}
}
