package boundary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"name":"France"},"geometry":{"type":"Polygon","coordinates":[[[2.0,48.0],[3.0,48.0],[3.0,49.0],[2.0,49.0],[2.0,48.0]]]}},
{"type":"Feature","properties":{"name":"Japan"},"geometry":{"type":"MultiPolygon","coordinates":[[[[139.0,35.0],[140.0,35.0],[140.0,36.0],[139.0,35.0]]]]}}
]}`

func mustCollection(t *testing.T) *geojson.FeatureCollection {
	t.Helper()
	fc, err := decodeCollection([]byte(testDataset))
	require.NoError(t, err)
	return fc
}

type stubSource struct {
	fc    *geojson.FeatureCollection
	err   error
	calls int
}

func (s *stubSource) FetchCollection(ctx context.Context) (*geojson.FeatureCollection, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fc, nil
}

func (s *stubSource) FetchTargetBoundary(ctx context.Context, name string) (*geojson.Feature, error) {
	fc, err := s.FetchCollection(ctx)
	if err != nil {
		return nil, err
	}
	return findTarget(fc, name)
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testDataset))
	}))
	defer srv.Close()
	s := NewHTTPSource(srv.URL, srv.Client())

	fc, err := s.FetchCollection(context.Background())
	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
	assert.Equal(t, []string{"France", "Japan"}, Names(fc))

	f, err := s.FetchTargetBoundary(context.Background(), "France")
	require.NoError(t, err)
	_, ok := f.Geometry.(orb.Polygon)
	assert.True(t, ok)
}

func TestHTTPSourceExactNameMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testDataset))
	}))
	defer srv.Close()
	s := NewHTTPSource(srv.URL, srv.Client())
	_, err := s.FetchTargetBoundary(context.Background(), "france")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.FetchTargetBoundary(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPSourceTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	_, err := NewHTTPSource(srv.URL, srv.Client()).FetchCollection(context.Background())
	require.ErrorIs(t, err, ErrTransport)

	srv.Close()
	_, err = NewHTTPSource(srv.URL, nil).FetchCollection(context.Background())
	require.ErrorIs(t, err, ErrTransport)
}

func TestHTTPSourceDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()
	_, err := NewHTTPSource(srv.URL, srv.Client()).FetchCollection(context.Background())
	require.ErrorIs(t, err, ErrDecode)
}

func TestFileSource(t *testing.T) {
	p := filepath.Join(t.TempDir(), "countries.geo.json")
	require.NoError(t, os.WriteFile(p, []byte(testDataset), 0o644))
	f, err := NewFileSource(p).FetchTargetBoundary(context.Background(), "Japan")
	require.NoError(t, err)
	_, ok := f.Geometry.(orb.MultiPolygon)
	assert.True(t, ok)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).FetchCollection(context.Background())
	require.ErrorIs(t, err, ErrTransport)
}

func TestChainSourceFallback(t *testing.T) {
	bad := &stubSource{err: fmt.Errorf("%w: down", ErrTransport)}
	good := &stubSource{fc: mustCollection(t)}
	f, err := NewChainSource(bad, good).FetchTargetBoundary(context.Background(), "France")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, 1, bad.calls)
	assert.Equal(t, 1, good.calls)
}

func TestChainSourceNotFoundIsFinal(t *testing.T) {
	other := geojson.NewFeatureCollection()
	g := geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
	g.Properties["name"] = "Germany"
	other.Append(g)

	first := &stubSource{fc: other}
	second := &stubSource{fc: mustCollection(t)}
	_, err := NewChainSource(first, second).FetchTargetBoundary(context.Background(), "France")
	require.ErrorIs(t, err, ErrNotFound)
	// 第一个源的数据集已生效，目标缺失不再回退
	assert.Equal(t, 0, second.calls)
}

func TestCachedSourceDegradesWithoutRedis(t *testing.T) {
	inner := &stubSource{fc: mustCollection(t)}
	rc := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	cs := NewCachedSource(inner, rc, time.Minute)
	for i := 0; i < 2; i++ {
		fc, err := cs.FetchCollection(context.Background())
		require.NoError(t, err)
		assert.Len(t, fc.Features, 2)
	}
	// Redis 不可用时每次都直透内层
	assert.Equal(t, 2, inner.calls)
}
