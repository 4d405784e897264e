package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/trophic/pkg/cache"
	"github.com/matzehuels/trophic/pkg/errors"
	graphio "github.com/matzehuels/trophic/pkg/io"
	"github.com/matzehuels/trophic/pkg/network"
	"github.com/matzehuels/trophic/pkg/observability"
	"github.com/matzehuels/trophic/pkg/render"
	"github.com/matzehuels/trophic/pkg/render/nodelink"
)

// Render draws a leveled network as a node-link diagram in opts.Format.
// Artifacts are cached by the content hash of the leveled network. The
// second return value reports a cache hit.
func (r *Runner) Render(ctx context.Context, g *network.Network, opts RenderOptions) ([]byte, bool, error) {
	opts.SetDefaults()
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}

	graphData, err := graphio.MarshalJSON(g)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	key := r.Keyer.ArtifactKey(cache.Hash(graphData), opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := RenderNetwork(ctx, g, opts)
	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	r.Logger.Info("rendered diagram",
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start))
	return data, false, nil
}

// RenderNetwork renders g without caching.
func RenderNetwork(ctx context.Context, g *network.Network, opts RenderOptions) ([]byte, error) {
	opts.SetDefaults()
	dot := nodelink.ToDOT(g, nodelink.Options{
		Detailed:  opts.Detailed,
		Scale:     opts.Scale,
		ColorRows: opts.ColorRows,
	})

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, 2.0)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	default:
		return nil, ValidateFormat(opts.Format)
	}
	switch {
	case err == nil:
		return data, nil
	case stderrors.Is(err, render.ErrConverterMissing):
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "render %s", opts.Format)
	default:
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}
}
