package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/trophic/pkg/cache"
	"github.com/matzehuels/trophic/pkg/errors"
	graphio "github.com/matzehuels/trophic/pkg/io"
	"github.com/matzehuels/trophic/pkg/network"
	"github.com/matzehuels/trophic/pkg/network/transform"
	"github.com/matzehuels/trophic/pkg/observability"
	"github.com/matzehuels/trophic/pkg/trophic"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLevels   = "levels"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind default entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedLevels is the cache payload of a leveling run.
type cachedLevels struct {
	Heights map[string]float64 `json:"heights"`
	Rows    int                `json:"rows,omitempty"`
	Graph   json.RawMessage    `json:"graph"`
}

// Level computes trophic heights for g and returns a leveled copy.
//
// Failures carry a code: ErrCodeDisconnected, ErrCodeSingular and
// ErrCodeEmptyGraph when the graph cannot be leveled, ErrCodeInvalidInput or
// ErrCodeInvalidGraph when the options or coordinates are unusable. g is not
// modified.
func (r *Runner) Level(ctx context.Context, g *network.Network, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(g); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	logger = logger.With("run", runID[:8])

	start := time.Now()
	result := &Result{
		RunID: runID,
		Stats: Stats{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()},
	}

	graphData, err := graphio.MarshalJSON(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	result.GraphHash = cache.Hash(graphData)
	key := r.Keyer.LevelsKey(result.GraphHash, opts.LevelsKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookupLevels(ctx, key); ok {
			result.Network = cached.network
			result.Heights = cached.payload.Heights
			result.Cached = true
			result.Stats.Leveled = len(cached.payload.Heights)
			result.Stats.Isolated = len(result.Network.Isolated())
			result.Stats.Rows = cached.payload.Rows
			result.Stats.Duration = time.Since(start)
			logger.Debug("levels cache hit", "hash", result.GraphHash[:12])
			return result, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLevelStart(ctx, g.NodeCount(), g.EdgeCount())
	out, heights, err := level(g, opts)
	hooks.OnLevelComplete(ctx, g.NodeCount(), time.Since(start), err)
	if err != nil {
		logger.Warn("leveling failed", "code", errors.GetCode(err), "nodes", g.NodeCount(), "edges", g.EdgeCount())
		return nil, err
	}

	result.Network = out
	result.Heights = heights
	result.Stats.Leveled = len(heights)
	if isolated := out.Isolated(); len(isolated) > 0 {
		result.Stats.Isolated = len(isolated)
		logger.Warn("isolated nodes keep their coordinates", "ids", network.NodeIDs(isolated))
	}
	if opts.Rows {
		result.Stats.Rows = transform.AssignTrophicRows(out, heights, opts.RowStep)
	}
	result.Stats.Duration = time.Since(start)

	r.storeLevels(ctx, key, result)

	logger.Info("computed trophic levels",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.Duration)
	return result, nil
}

// level runs the solver over a copy of g.
func level(g *network.Network, opts Options) (*network.Network, map[string]float64, error) {
	if g.NodeCount() == 0 {
		return nil, nil, errors.Wrap(errors.ErrCodeEmptyGraph, trophic.ErrEmptyGraph, "level network")
	}
	if g.EdgeCount() == 0 {
		return nil, nil, errors.Wrap(errors.ErrCodeDisconnected, trophic.ErrDisconnected, "network has no edges")
	}

	edges := make([]trophic.Edge[string], 0, g.EdgeCount())
	for _, e := range g.Edges() {
		edges = append(edges, trophic.Edge[string]{From: e.From, To: e.To})
	}
	nodes := make([]trophic.Node[string], 0, g.NodeCount())
	for _, n := range g.Nodes() {
		nodes = append(nodes, trophic.Node[string]{ID: n.ID, Label: n.Label, X: n.X, Y: n.Y})
	}

	placed, levels, err := trophic.Compute(edges, nodes, trophic.WithPrecision(opts.Precision))
	if err != nil {
		return nil, nil, classify(err)
	}

	out := g.Clone()
	for _, p := range placed {
		if n, ok := out.Node(p.ID); ok {
			n.X = p.X
		}
	}
	return out, levels.Map(), nil
}

// classify attaches an error code to a solver failure.
func classify(err error) error {
	switch {
	case stderrors.Is(err, trophic.ErrDisconnected):
		return errors.Wrap(errors.ErrCodeDisconnected, err, "level network")
	case stderrors.Is(err, trophic.ErrSingular):
		return errors.Wrap(errors.ErrCodeSingular, err, "level network")
	case stderrors.Is(err, trophic.ErrEmptyGraph):
		return errors.Wrap(errors.ErrCodeEmptyGraph, err, "level network")
	default:
		return errors.Wrap(errors.ErrCodeInternal, err, "level network")
	}
}

type levelsHit struct {
	payload cachedLevels
	network *network.Network
}

func (r *Runner) lookupLevels(ctx context.Context, key string) (levelsHit, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeLevels)
		return levelsHit{}, false
	}

	var payload cachedLevels
	if err := json.Unmarshal(data, &payload); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeLevels)
		return levelsHit{}, false
	}
	g, err := graphio.ReadJSON(bytes.NewReader(payload.Graph))
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeLevels)
		return levelsHit{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeLevels)
	return levelsHit{payload: payload, network: g}, true
}

func (r *Runner) storeLevels(ctx context.Context, key string, res *Result) {
	graph, err := graphio.MarshalJSON(res.Network)
	if err != nil {
		return
	}
	data, err := json.Marshal(cachedLevels{Heights: res.Heights, Rows: res.Stats.Rows, Graph: graph})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLLevels)); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeLevels, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
