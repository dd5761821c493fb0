package search

// RadiusState is the current phase of the radius-expansion flow.
type RadiusState string

const (
	// RadiusNormal: enough results, nothing to offer.
	RadiusNormal RadiusState = "normal"
	// RadiusSparse: too few results at a small radius; expansion is offered.
	RadiusSparse RadiusState = "sparse"
	// RadiusExpanding: the user accepted and a wider fetch is underway.
	RadiusExpanding RadiusState = "expanding"
	// RadiusExhausted: zero results, or the ceiling was reached empty-handed.
	RadiusExhausted RadiusState = "exhausted"
)

// RadiusConfig carries the expansion tuning knobs.
type RadiusConfig struct {
	InitialKm       float64
	StepKm          float64
	CeilingKm       float64
	SparseThreshold int
	SparseMaxKm     float64
}

// RadiusController is the small state machine driving radius expansion:
// a UX-level retry analogue. Accepting expansion widens the radius by a
// fixed step up to a ceiling; requests past the ceiling are no-ops.
type RadiusController struct {
	cfg      RadiusConfig
	radiusKm float64
	state    RadiusState
}

// NewRadiusController starts a controller at the given radius (the config
// initial when zero).
func NewRadiusController(cfg RadiusConfig, radiusKm float64) *RadiusController {
	if radiusKm <= 0 {
		radiusKm = cfg.InitialKm
	}
	if radiusKm > cfg.CeilingKm {
		radiusKm = cfg.CeilingKm
	}
	return &RadiusController{cfg: cfg, radiusKm: radiusKm, state: RadiusNormal}
}

// Restore rebuilds a controller from persisted session state.
func (c *RadiusController) Restore(state RadiusState) *RadiusController {
	c.state = state
	return c
}

// Evaluate transitions on a fresh result count. Zero results go straight to
// the exhausted ("no results") presentation, bypassing Sparse. A count at or
// below the sparse threshold while the radius is still small offers
// expansion.
func (c *RadiusController) Evaluate(resultCount int) RadiusState {
	switch {
	case resultCount == 0:
		c.state = RadiusExhausted
	case resultCount <= c.cfg.SparseThreshold &&
		c.radiusKm <= c.cfg.SparseMaxKm &&
		c.radiusKm < c.cfg.CeilingKm:
		c.state = RadiusSparse
	default:
		c.state = RadiusNormal
	}
	return c.state
}

// Accept widens the radius by one step, capped at the ceiling, and moves to
// Expanding. Returns the new radius and whether anything changed; at the
// ceiling it is an idempotent no-op.
func (c *RadiusController) Accept() (float64, bool) {
	if c.radiusKm >= c.cfg.CeilingKm {
		return c.radiusKm, false
	}
	c.radiusKm += c.cfg.StepKm
	if c.radiusKm > c.cfg.CeilingKm {
		c.radiusKm = c.cfg.CeilingKm
	}
	c.state = RadiusExpanding
	return c.radiusKm, true
}

// Decline keeps the current (possibly sparse) result set and returns to
// Normal.
func (c *RadiusController) Decline() RadiusState {
	c.state = RadiusNormal
	return c.state
}

// State returns the current phase.
func (c *RadiusController) State() RadiusState { return c.state }

// RadiusKm returns the current search radius.
func (c *RadiusController) RadiusKm() float64 { return c.radiusKm }

// OffersExpansion reports whether the UI should surface the expand action.
func (c *RadiusController) OffersExpansion() bool {
	return c.state == RadiusSparse && c.radiusKm < c.cfg.CeilingKm
}
