package recommender

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2riing/vibe-promptgen/pkg/embedding"
)

// fakeEmbedder wraps the hash embedder and lets tests script Load.
type fakeEmbedder struct {
	*embedding.HashEmbedder

	loads    atomic.Int32
	embeds   atomic.Int32
	gate     chan struct{}
	failLoad atomic.Int32
	progress []float64
	shorten  bool
}

func newFake() *fakeEmbedder {
	return &fakeEmbedder{HashEmbedder: embedding.NewHashEmbedder(64)}
}

func (f *fakeEmbedder) Load(ctx context.Context, progress embedding.ProgressFunc) error {
	f.loads.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.failLoad.Load() > 0 {
		f.failLoad.Add(-1)
		return errors.New("network unreachable")
	}
	for _, p := range f.progress {
		progress(p)
	}
	return nil
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.embeds.Add(1)
	vecs, err := f.HashEmbedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if f.shorten && len(vecs) > 1 {
		vecs = vecs[:len(vecs)-1]
	}
	return vecs, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newRecommender(t *testing.T, e embedding.Embedder, opts ...Option) *Recommender {
	t.Helper()
	r, err := New(e, quietLogger(), 16, opts...)
	require.NoError(t, err)
	return r
}

func catalogNames() map[string]bool {
	names := make(map[string]bool, len(Catalog))
	for _, item := range Catalog {
		names[item.Name] = true
	}
	return names
}

func TestCatalog(t *testing.T) {
	assert.Len(t, Catalog, 37)
	assert.Len(t, catalogNames(), len(Catalog))
	for name := range jsEcosystem {
		assert.True(t, catalogNames()[name], name)
	}
	assert.True(t, catalogNames()[companion])
}

func TestRecommend_ShortlistShape(t *testing.T) {
	r := newRecommender(t, embedding.NewHashEmbedder(embedding.DefaultHashDims))
	names := catalogNames()

	for _, idea := range []string{
		"여러 사용자가 동시에 편집하는 실시간 협업 웹 문서 에디터",
		"사진 공유 모바일 앱 for iOS and Android",
		"대규모 엔터프라이즈 결제 백엔드",
		"간단한 블로그",
		"AI 챗봇 추천 서비스",
	} {
		got, err := r.Recommend(context.Background(), idea, nil)
		require.NoError(t, err, idea)
		require.Len(t, got, TopN, idea)

		seen := map[string]bool{}
		hasJS := false
		for _, name := range got {
			assert.True(t, names[name], name)
			assert.False(t, seen[name], "duplicate %s", name)
			seen[name] = true
			hasJS = hasJS || jsEcosystem[name]
		}
		if hasJS {
			assert.Contains(t, got, companion, idea)
		}
	}
}

// rankingEmbedder puts every catalog item on its own axis and any other
// text on the axes of picks, weighted so that picks rank in order.
type rankingEmbedder struct {
	axes  map[string]int
	picks []string
}

func newRankingEmbedder(picks ...string) *rankingEmbedder {
	axes := make(map[string]int, len(Catalog))
	for i, item := range Catalog {
		axes[item.Description] = i
	}
	return &rankingEmbedder{axes: axes, picks: picks}
}

func (e *rankingEmbedder) Name() string { return "ranking" }

func (e *rankingEmbedder) Load(ctx context.Context, progress embedding.ProgressFunc) error {
	return nil
}

func (e *rankingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, len(Catalog))
		if axis, ok := e.axes[text]; ok {
			v[axis] = 1
		} else {
			for rank, name := range e.picks {
				for j, item := range Catalog {
					if item.Name == name {
						v[j] = float32(len(e.picks) - rank)
					}
				}
			}
		}
		out[i] = v
	}
	return out, nil
}

func TestRecommend_TypeScriptJoinsWebShortlist(t *testing.T) {
	e := newRankingEmbedder("Next.js", "React", "Supabase", "Redis", "Hono", "PostgreSQL", "Vercel", "Docker", "Tailwind CSS")
	r := newRecommender(t, e)

	got, err := r.Recommend(context.Background(), "실시간 협업 웹 앱", nil)
	require.NoError(t, err)
	require.Len(t, got, TopN)
	assert.Equal(t, "TypeScript", got[1])
	assert.Equal(t, []string{"Next.js", "TypeScript", "React", "Supabase", "Redis", "Hono", "PostgreSQL", "Vercel"}, got)
}

func TestRecommend_NoTypeScriptWithoutJSPicks(t *testing.T) {
	e := newRankingEmbedder("Go", "PostgreSQL", "Redis", "Docker", "Kubernetes", "AWS", "Rust", "MySQL")
	r := newRecommender(t, e)

	got, err := r.Recommend(context.Background(), "대규모 백엔드 서버", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Redis", "Docker", "Kubernetes", "AWS", "Rust", "MySQL"}, got)
}

func TestRecommend_Deterministic(t *testing.T) {
	idea := "실시간 채팅 웹"
	a, err := newRecommender(t, embedding.NewHashEmbedder(0)).Recommend(context.Background(), idea, nil)
	require.NoError(t, err)
	b, err := newRecommender(t, embedding.NewHashEmbedder(0)).Recommend(context.Background(), idea, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRecommend_SingleLoadUnderConcurrency(t *testing.T) {
	f := newFake()
	f.gate = make(chan struct{})
	r := newRecommender(t, f)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Recommend(context.Background(), "실시간 협업 에디터", nil)
			errs <- err
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(f.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), f.loads.Load())
	assert.True(t, r.Loaded())
}

func TestRecommend_FailedLoadIsRetried(t *testing.T) {
	f := newFake()
	f.failLoad.Store(1)
	r := newRecommender(t, f)

	_, err := r.Recommend(context.Background(), "웹 앱", nil)
	var loadErr *ModelLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "hash", loadErr.Model)
	assert.ErrorContains(t, err, "network unreachable")
	assert.False(t, r.Loaded())

	got, err := r.Recommend(context.Background(), "웹 앱", nil)
	require.NoError(t, err)
	assert.Len(t, got, TopN)
	assert.Equal(t, int32(2), f.loads.Load())
}

func TestRecommend_CorpusMismatch(t *testing.T) {
	f := newFake()
	f.shorten = true
	r := newRecommender(t, f)

	got, err := r.Recommend(context.Background(), "웹 앱", nil)
	assert.Nil(t, got)
	var infErr *InferenceError
	require.True(t, errors.As(err, &infErr))
	assert.Contains(t, infErr.Reason, "36 catalog vectors for 37 items")
	assert.False(t, r.Loaded())
}

func TestRecommend_ZeroQueryVector(t *testing.T) {
	r := newRecommender(t, newFake())
	_, err := r.Recommend(context.Background(), "   ", nil)
	var infErr *InferenceError
	require.True(t, errors.As(err, &infErr))
	assert.Equal(t, "query vector is zero", infErr.Reason)
}

func TestRecommend_ProgressMonotonicAndClamped(t *testing.T) {
	f := newFake()
	f.progress = []float64{10, 50, 30, math.NaN(), 120, -5}
	r := newRecommender(t, f)

	var got []float64
	_, err := r.Recommend(context.Background(), "게임", func(p float64) { got = append(got, p) })
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 50, 100}, got)

	got = nil
	_, err = r.Recommend(context.Background(), "게임", func(p float64) { got = append(got, p) })
	require.NoError(t, err)
	assert.Empty(t, got, "no progress once loaded")
}

func TestRecommend_QueryCache(t *testing.T) {
	f := newFake()
	r := newRecommender(t, f)

	first, err := r.Recommend(context.Background(), "검색 엔진", nil)
	require.NoError(t, err)
	embeds := f.embeds.Load()

	second, err := r.Recommend(context.Background(), "검색 엔진", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, embeds, f.embeds.Load())
}

func TestRecommend_CancelledWhileLoading(t *testing.T) {
	f := newFake()
	f.gate = make(chan struct{})
	r := newRecommender(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := r.Recommend(ctx, "웹", nil)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(f.gate)
	_, err := r.Recommend(context.Background(), "웹", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.loads.Load())
}

func TestApplyCompanion(t *testing.T) {
	top := []string{"React", "Redis", "Docker", "AWS", "Go", "Rust", "MySQL", "GCP"}
	got := ApplyCompanion(top)
	assert.Equal(t, []string{"React", "TypeScript", "Redis", "Docker", "AWS", "Go", "Rust", "MySQL"}, got)
	assert.Equal(t, "GCP", top[7], "input untouched")

	noJS := []string{"Go", "Rust", "Docker", "AWS", "GCP", "MySQL", "Redis", "Swift"}
	assert.Equal(t, noJS, ApplyCompanion(noJS))

	withTS := []string{"Vue", "Go", "TypeScript", "AWS", "GCP", "MySQL", "Redis", "Swift"}
	assert.Equal(t, withTS, ApplyCompanion(withTS))

	assert.Equal(t, []string{"Hono", "TypeScript"}, ApplyCompanion([]string{"Hono"}))
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery("React 기반 실시간 협업 에디터", DefaultBridge)
	assert.Equal(t,
		"React React 기반 실시간 협업 에디터 realtime websocket live collaboration team sharing realtime sync editor editing rich text document",
		q)

	assert.Equal(t, "", BuildQuery("  ", DefaultBridge))
	assert.Equal(t, "iOS iOS 앱 app application iOS Apple mobile native",
		BuildQuery("iOS 앱", DefaultBridge))
}

func TestLoadBridge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - pattern: \"(?i)saas\"\n    keywords: \"subscription billing\"\n"), 0o644))

	rules, err := LoadBridge(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "SaaS SaaS subscription billing", BuildQuery("SaaS", rules))

	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - pattern: \"(\"\n    keywords: x\n"), 0o644))
	_, err = LoadBridge(path)
	assert.ErrorContains(t, err, "bridge rule 1")

	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - pattern: \"x\"\n"), 0o644))
	_, err = LoadBridge(path)
	assert.ErrorContains(t, err, "required")

	_, err = LoadBridge(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithBridgeAndCatalog(t *testing.T) {
	r := newRecommender(t, embedding.NewHashEmbedder(0),
		WithBridge(nil),
		WithCatalog(Catalog[:3]),
	)
	got, err := r.Recommend(context.Background(), "frontend UI", nil)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Contains(t, got, "TypeScript")
}
