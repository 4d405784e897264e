// Package pipeline provides the load → level → render pipeline shared by the
// CLI and the HTTP API.
//
// Centralizing the stages here keeps caching, logging, observability hooks
// and error codes identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Level(ctx, g, pipeline.DefaultOptions())
//	if errors.Is(err, errors.ErrCodeDisconnected) { ... }
//	svg, _, err := runner.Render(ctx, res.Network, pipeline.RenderOptions{Format: pipeline.FormatSVG})
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trophic/pkg/cache"
	"github.com/matzehuels/trophic/pkg/errors"
	"github.com/matzehuels/trophic/pkg/network"
	"github.com/matzehuels/trophic/pkg/network/transform"
	"github.com/matzehuels/trophic/pkg/trophic"
)

const (
	// DefaultPrecision is the number of decimals heights are rounded to.
	DefaultPrecision = trophic.DefaultPrecision

	// DefaultRowStep is the height interval per row when rows are assigned.
	DefaultRowStep = transform.DefaultRowStep

	// DefaultMaxNodes caps the graph size the solver accepts. The solve is
	// cubic in the node count.
	DefaultMaxNodes = 2000
)

// Format constants for render outputs.
const (
	FormatSVG = "svg"
	FormatDOT = "dot"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatDOT: true,
	FormatPNG: true,
	FormatPDF: true,
}

// Options configures a leveling run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Precision is the number of decimal places heights are rounded to.
	// A negative value disables rounding. Use DefaultOptions for the
	// standard precision; the zero value rounds to integers.
	Precision int `json:"precision"`

	// Rows assigns each node the row round(height/RowStep).
	Rows    bool    `json:"rows,omitempty"`
	RowStep float64 `json:"row_step,omitempty"`

	// MaxNodes rejects larger graphs. Zero selects DefaultMaxNodes and a
	// negative value disables the limit.
	MaxNodes int `json:"max_nodes,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Logger replaces the runner's logger for this run when set, so hosts
	// can attach request-scoped fields.
	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns Options with every default applied.
func DefaultOptions() Options {
	o := Options{Precision: DefaultPrecision}
	o.SetDefaults()
	return o
}

// SetDefaults fills zero-valued fields other than Precision.
func (o *Options) SetDefaults() {
	if o.RowStep <= 0 {
		o.RowStep = DefaultRowStep
	}
	if o.MaxNodes == 0 {
		o.MaxNodes = DefaultMaxNodes
	}
}

// Validate checks the options against g.
func (o *Options) Validate(g *network.Network) error {
	if err := errors.ValidatePrecision(o.Precision); err != nil {
		return err
	}
	if err := errors.ValidateGraphSize(g.NodeCount(), o.MaxNodes); err != nil {
		return err
	}
	for _, n := range g.Nodes() {
		if err := errors.ValidateCoordinate(n.ID, n.X); err != nil {
			return err
		}
	}
	return nil
}

// LevelsKeyOpts returns cache key options for leveling.
func (o *Options) LevelsKeyOpts() cache.LevelsKeyOpts {
	k := cache.LevelsKeyOpts{Precision: o.Precision, Rows: o.Rows}
	if o.Rows {
		k.RowStep = o.RowStep
	}
	return k
}

// RenderOptions configures rendering of a leveled network.
type RenderOptions struct {
	Format    string  `json:"format"`
	Detailed  bool    `json:"detailed,omitempty"`
	ColorRows bool    `json:"color_rows,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Refresh   bool    `json:"refresh,omitempty"`
}

// SetDefaults fills zero-valued fields.
func (o *RenderOptions) SetDefaults() {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
}

// ArtifactKeyOpts returns cache key options for rendering.
func (o *RenderOptions) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    o.Format,
		Detailed:  o.Detailed,
		ColorRows: o.ColorRows,
		Scale:     o.Scale,
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, dot, png, pdf)", format)
	}
	return nil
}

// Result contains the outputs of a leveling run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Network is a copy of the input with X replaced by the rescaled
	// trophic height (and Row set when requested). Isolated nodes keep
	// their coordinates.
	Network *network.Network

	// Heights maps every leveled node to its trophic height.
	Heights map[string]float64

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Stats contains timing and size information.
	Stats Stats

	// Cached reports whether the result came from the cache.
	Cached bool
}

// Stats contains leveling statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	Leveled   int
	Isolated  int
	Rows      int
	Duration  time.Duration
}

// String formats stats for log lines.
func (s Stats) String() string {
	return fmt.Sprintf("%d nodes, %d edges, %d leveled", s.NodeCount, s.EdgeCount, s.Leveled)
}
