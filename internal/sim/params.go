package sim

import "lifegrid/internal/core"

const densityKey = "density"

// Parameters reports the values shown on the HUD.
func (l *Loop) Parameters() core.ParameterSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.cfg.Rules
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Run",
			Params: []core.Parameter{
				core.StringParam("state", "State", l.state.String()),
				core.IntParam("generation", "Generation", l.generation),
				core.IntParam("population", "Population", l.grid.Population()),
			},
		},
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("rows", "Rows", l.cfg.Rows),
				core.IntParam("cols", "Columns", l.cfg.Cols),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				core.IntParam("underpopulation", "Dies below", r.Underpopulation),
				core.IntParam("overpopulation", "Dies above", r.Overpopulation),
				core.IntParam("revival", "Born at", r.Revival),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				core.FloatParam(densityKey, "Density", l.density),
				core.StringParam("seeder", "Seeder", l.seeder.Name()),
				core.Int64Param("seed", "Seed", l.cfg.Seed),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values. Only the seeding density
// is adjustable; the rule thresholds are fixed at startup.
func (l *Loop) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{
		Key:   densityKey,
		Label: "Density",
		Type:  core.ParamTypeFloat,
		Step:  0.01,
		Min:   0,
		Max:   1,
	}}
}

// SetFloatParameter implements core.FloatParameterSetter.
func (l *Loop) SetFloatParameter(key string, value float64) bool {
	if key != densityKey {
		return false
	}
	return l.SetDensity(value) == nil
}
