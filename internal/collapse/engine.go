package collapse

import (
	"context"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nlaracuente/personalspace/internal/floor"
	"github.com/nlaracuente/personalspace/internal/fx"
	"github.com/nlaracuente/personalspace/internal/telemetry"
)

// Response identifies which collapse path a destroy call took.
type Response int

const (
	// ResponseNone: the removal neither cut the land mass nor felled any
	// neighbor.
	ResponseNone Response = iota
	// ResponseLandMassCut: the removal split the grid in two and the
	// losing side collapsed.
	ResponseLandMassCut
	// ResponseLocalUnsupported: one or more neighbors lost support and
	// fell, alone or with their whole region.
	ResponseLocalUnsupported
)

// String returns the response name.
func (r Response) String() string {
	switch r {
	case ResponseNone:
		return "none"
	case ResponseLandMassCut:
		return "land_mass_cut"
	case ResponseLocalUnsupported:
		return "local_unsupported"
	default:
		return "unknown"
	}
}

// AvatarLocator reports the tile under the primary controllable avatar.
// The engine consults it only to break exact region-size ties.
type AvatarLocator interface {
	AvatarTile() *floor.Tile
}

// Config tunes the engine.
type Config struct {
	// MinSupport is how many of a tile's four cardinal rays must reach a
	// grid edge for the tile to count as supported.
	MinSupport int
	// DragMin and DragMax bound the randomized drag drawn for every
	// drop, so tiles in one collapse fall at slightly different speeds.
	DragMin, DragMax float64
	// LargeCollapseSize is the region size a collapse must exceed to
	// play the large cue instead of the small one.
	LargeCollapseSize int
	// AckDelay is how long after a terminal hit a tile keeps reporting
	// the hit as unprocessed.
	AckDelay time.Duration
}

// DefaultConfig returns the tuning used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		MinSupport:        1,
		DragMin:           0.5,
		DragMax:           3.0,
		LargeCollapseSize: 8,
		AckDelay:          200 * time.Millisecond,
	}
}

// Result reports what a destroy call did.
type Result struct {
	// Direct is the tile the call removed, nil when the target was
	// already out of play and the call was a no-op.
	Direct *floor.Tile
	// Response is the path taken after the direct removal.
	Response Response
	// Collapsed lists every tile that fell as a consequence, in collapse
	// order. The direct tile is not included.
	Collapsed []*floor.Tile
	// ClusterSize is the size of the unavailable cluster around the
	// direct tile, the direct tile included, that the cut heuristic
	// examined. Zero when the removal was isolated.
	ClusterSize int
}

// removal distinguishes the direct hit from support-loss falls.
type removal int

const (
	directHit removal = iota
	supportLoss
)

// Engine is the collapse orchestrator. All grid mutation after level
// build goes through it; collaborators observe the outcome through the
// effect sink and the returned Result.
type Engine struct {
	grid    *floor.Grid
	sink    fx.Sink
	avatars AvatarLocator
	support *Support
	rng     *rand.Rand
	cfg     Config
	log     *zap.Logger
	tracer  trace.Tracer
}

// NewEngine wires an engine to a built grid. The grid must already be
// neighbor-wired; rng must be non-nil and seeds every drag draw. A nil
// sink discards effects and a nil logger stays quiet. The avatar locator
// may be nil when no avatar exists.
func NewEngine(grid *floor.Grid, sink fx.Sink, avatars AvatarLocator, rng *rand.Rand, cfg Config, log *zap.Logger) *Engine {
	if grid == nil || !grid.Wired() {
		panic("collapse: engine requires a wired grid")
	}
	if sink == nil {
		sink = fx.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.DragMax < cfg.DragMin {
		cfg.DragMax = cfg.DragMin
	}
	return &Engine{
		grid:    grid,
		sink:    sink,
		avatars: avatars,
		support: NewSupport(grid, cfg.MinSupport),
		rng:     rng,
		cfg:     cfg,
		log:     log,
		tracer:  telemetry.Tracer("collapse"),
	}
}

// Grid returns the grid the engine mutates.
func (e *Engine) Grid() *floor.Grid {
	return e.grid
}

// Support returns the engine's support analyzer.
func (e *Engine) Support() *Support {
	return e.support
}

// Destroy removes a tile by direct hit and drives whatever collapse the
// removal causes: first the land-mass-cut response, and only when that
// does not trigger, the local unsupported-neighbor response. Destroying
// a tile already out of play is a guarded no-op.
func (e *Engine) Destroy(ctx context.Context, t *floor.Tile) Result {
	ctx, span := e.tracer.Start(ctx, "collapse.destroy")
	defer span.End()

	if t == nil || !t.Available() {
		span.SetAttributes(attribute.Bool("noop", true))
		return Result{Response: ResponseNone}
	}
	span.SetAttributes(
		attribute.Int("tile.x", t.Coord().X),
		attribute.Int("tile.y", t.Coord().Y),
	)

	e.removeTile(t, directHit)
	res := Result{Direct: t, Response: ResponseNone}

	collapsed, clusterSize, cut := e.landMassCut(ctx, t)
	res.ClusterSize = clusterSize
	if cut {
		res.Response = ResponseLandMassCut
		res.Collapsed = collapsed
	} else if fell := e.localUnsupported(ctx, t); len(fell) > 0 {
		res.Response = ResponseLocalUnsupported
		res.Collapsed = fell
	}

	span.SetAttributes(
		attribute.String("response", res.Response.String()),
		attribute.Int("collapsed", len(res.Collapsed)),
		attribute.Int("cluster_size", res.ClusterSize),
	)
	e.log.Debug("destroy resolved",
		zap.Stringer("tile", t.Coord()),
		zap.Stringer("response", res.Response),
		zap.Int("collapsed", len(res.Collapsed)),
		zap.Int("cluster_size", res.ClusterSize),
	)
	return res
}

// removeTile transitions the tile, drops it, and kills its occupants.
// The destruction cue fires only for direct hits; region collapses play
// one aggregate cue instead.
func (e *Engine) removeTile(t *floor.Tile, kind removal) bool {
	ackAt := time.Now().Add(e.cfg.AckDelay)
	var ok bool
	if kind == directHit {
		ok = t.ToDestroyed(ackAt)
	} else {
		ok = t.ToFallen(ackAt)
	}
	if !ok {
		return false
	}
	e.drop(t)
	for _, o := range t.Occupants() {
		o.DieByFall()
	}
	if kind == directHit {
		e.sink.PlayCue(fx.CueTileDestroyed)
	}
	return true
}

func (e *Engine) drop(t *floor.Tile) {
	drag := e.cfg.DragMin
	if e.cfg.DragMax > e.cfg.DragMin {
		drag += e.rng.Float64() * (e.cfg.DragMax - e.cfg.DragMin)
	}
	e.sink.StartDrop(t, drag)
}

// landMassCut attempts the cut response: measure the unavailable cluster
// around the destroyed tile, classify which boundary edges it touches,
// probe for an available tile on two sides of the cut, and collapse the
// losing region when the probes land in two confirmed-distinct regions.
// An isolated removal, a missing probe, or matching regions all mean the
// response does not trigger.
func (e *Engine) landMassCut(ctx context.Context, seed *floor.Tile) (collapsed []*floor.Tile, clusterSize int, triggered bool) {
	_, span := e.tracer.Start(ctx, "collapse.land_mass_cut")
	defer span.End()

	fill := floor.ReachableUnavailable(seed)
	if len(fill) == 0 {
		return nil, 0, false
	}
	cluster := make([]*floor.Tile, 0, len(fill)+1)
	cluster = append(cluster, seed)
	cluster = append(cluster, fill...)
	clusterSize = len(cluster)
	span.SetAttributes(attribute.Int("cluster.size", clusterSize))

	probeA, probeB, wild := e.pickProbes(cluster, e.classifySides(cluster))
	if probeB == nil {
		// A candidate scan can end in a map gap; the wild direction
		// still probes the same axis.
		probeB, wild = wild, nil
	}
	if probeA == nil || probeB == nil {
		return nil, clusterSize, false
	}

	regionA := regionWith(probeA)
	regionB := regionWith(probeB)
	if sameRegion(regionA, regionB) {
		if wild == nil {
			return nil, clusterSize, false
		}
		regionB = regionWith(wild)
		if sameRegion(regionA, regionB) {
			return nil, clusterSize, false
		}
	}

	victim := e.pickVictim(regionA, regionB)
	collapsed = e.collapseRegion(victim)
	span.SetAttributes(attribute.Int("collapsed", len(collapsed)))
	return collapsed, clusterSize, true
}

// sides records which grid boundary edges a cluster touches.
type sides struct {
	left, right, top, bottom bool
}

func (e *Engine) classifySides(cluster []*floor.Tile) sides {
	maxX, maxY := e.grid.Bounds()
	var s sides
	for _, t := range cluster {
		c := t.Coord()
		if c.X == 0 {
			s.left = true
		}
		if c.X == maxX {
			s.right = true
		}
		if c.Y == 0 {
			s.top = true
		}
		if c.Y == maxY {
			s.bottom = true
		}
	}
	return s
}

// pickProbes chooses the two flood-fill seeds for the cut comparison from
// the cluster's boundary classification, plus an optional wild retry for
// the single-edge case. A cluster touching opposite edges is probed on
// the perpendicular axis; a corner cut gets one probe per axis aimed at
// the open sides; a single-edge cut anchors on the probe pointing away
// from that edge and tries both perpendicular directions. A cluster
// touching no edge cannot have split the map under this heuristic.
func (e *Engine) pickProbes(cluster []*floor.Tile, s sides) (a, b, wild *floor.Tile) {
	switch {
	case s.left && s.right:
		return e.probe(cluster, floor.DirUp), e.probe(cluster, floor.DirDown), nil
	case s.top && s.bottom:
		return e.probe(cluster, floor.DirLeft), e.probe(cluster, floor.DirRight), nil
	case (s.left || s.right) && (s.top || s.bottom):
		h := floor.DirRight
		if s.right {
			h = floor.DirLeft
		}
		v := floor.DirDown
		if s.bottom {
			v = floor.DirUp
		}
		return e.probe(cluster, h), e.probe(cluster, v), nil
	case s.left || s.right:
		h := floor.DirRight
		if s.right {
			h = floor.DirLeft
		}
		return e.probe(cluster, h), e.probe(cluster, floor.DirUp), e.probe(cluster, floor.DirDown)
	case s.top || s.bottom:
		v := floor.DirDown
		if s.bottom {
			v = floor.DirUp
		}
		return e.probe(cluster, v), e.probe(cluster, floor.DirLeft), e.probe(cluster, floor.DirRight)
	default:
		return nil, nil, nil
	}
}

// probe scans outward from each cluster member in turn along d and
// returns the first available tile found past the cluster, or nil when
// every scan leaves the map first.
func (e *Engine) probe(cluster []*floor.Tile, d floor.Direction) *floor.Tile {
	for _, member := range cluster {
		for c := member.Coord().Step(d); ; c = c.Step(d) {
			t := e.grid.TileAt(c)
			if t == nil {
				break
			}
			if t.Available() {
				return t
			}
		}
	}
	return nil
}

// regionWith returns the available region seeded at the probe, probe
// included.
func regionWith(probe *floor.Tile) []*floor.Tile {
	region := make([]*floor.Tile, 0, 8)
	region = append(region, probe)
	return append(region, floor.ReachableAvailable(probe)...)
}

// sameRegion reports whether two fills found the same land mass.
// Available components partition the grid, so equal size plus one shared
// member means identical membership.
func sameRegion(a, b []*floor.Tile) bool {
	if len(a) != len(b) {
		return false
	}
	set := mapset.New[*floor.Tile]()
	for _, t := range a {
		set.Put(t)
	}
	return set.Has(b[0])
}

// pickVictim returns the region to collapse: the smaller one, or on an
// exact tie whichever does not hold the avatar.
func (e *Engine) pickVictim(a, b []*floor.Tile) []*floor.Tile {
	if len(a) < len(b) {
		return a
	}
	if len(b) < len(a) {
		return b
	}
	if at := e.avatarTile(); at != nil && containsTile(a, at) {
		return b
	}
	return a
}

func (e *Engine) avatarTile() *floor.Tile {
	if e.avatars == nil {
		return nil
	}
	return e.avatars.AvatarTile()
}

func containsTile(region []*floor.Tile, target *floor.Tile) bool {
	for _, t := range region {
		if t == target {
			return true
		}
	}
	return false
}

// localUnsupported runs the fallback response: each direct neighbor that
// lost support either falls alone, when it has no available peers, or
// takes its whole region down, when no region member has an alternate
// support path of its own.
func (e *Engine) localUnsupported(ctx context.Context, seed *floor.Tile) []*floor.Tile {
	_, span := e.tracer.Start(ctx, "collapse.local_unsupported")
	defer span.End()

	var collapsed []*floor.Tile
	for _, n := range seed.Neighbors() {
		if !n.Available() || e.support.Supported(n) {
			continue
		}
		region := floor.ReachableAvailable(n)
		if len(region) == 0 {
			collapsed = append(collapsed, e.collapseRegion([]*floor.Tile{n})...)
			continue
		}
		if e.anySupported(region) {
			continue
		}
		group := make([]*floor.Tile, 0, len(region)+1)
		group = append(group, n)
		group = append(group, region...)
		collapsed = append(collapsed, e.collapseRegion(group)...)
	}
	span.SetAttributes(attribute.Int("collapsed", len(collapsed)))
	return collapsed
}

func (e *Engine) anySupported(region []*floor.Tile) bool {
	for _, t := range region {
		if e.support.Supported(t) {
			return true
		}
	}
	return false
}

// collapseRegion fells every tile in the region with its own randomized
// drop, pans the view to the region once, and plays one aggregate cue
// sized by how much fell.
func (e *Engine) collapseRegion(region []*floor.Tile) []*floor.Tile {
	if len(region) == 0 {
		return nil
	}
	e.sink.LookAt(region[0])
	fallen := make([]*floor.Tile, 0, len(region))
	for _, t := range region {
		if e.removeTile(t, supportLoss) {
			fallen = append(fallen, t)
		}
	}
	if len(fallen) > e.cfg.LargeCollapseSize {
		e.sink.PlayCue(fx.CueCollapseLarge)
	} else {
		e.sink.PlayCue(fx.CueCollapseSmall)
	}
	return fallen
}
