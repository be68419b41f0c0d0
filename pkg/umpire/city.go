package umpire

// City is a fixed production point on the map. A city is productive when
// Production is non-nil; it accrues ProductionProgress by one for every
// turn its owner begins, and spawns a unit of Production's type once
// progress reaches that type's cost.
type City struct {
	ID                      CityID    `json:"city_id"`
	Loc                     Location  `json:"loc"`
	Alignment               Alignment `json:"alignment"`
	Name                    string    `json:"name"`
	Production              *UnitType `json:"production,omitempty"`
	ProductionProgress      uint16    `json:"production_progress"`
	IgnoreClearedProduction bool      `json:"ignore_cleared_production"`
}

func newCity(id CityID, loc Location, alignment Alignment, name string) City {
	return City{ID: id, Loc: loc, Alignment: alignment, Name: name}
}

// Productive reports whether the city currently has a production target.
func (c *City) Productive() bool {
	return c.Production != nil
}

// NeedsProductionOrder reports whether a city is an "outstanding" request:
// it has no production target and has not been explicitly set to ignore
// that fact.
func (c *City) NeedsProductionOrder() bool {
	return c.Production == nil && !c.IgnoreClearedProduction
}

// advanceProduction increments ProductionProgress by one turn's worth and
// returns the UnitType to spawn, if production completed this turn.
// Progress resets to zero when a unit is produced.
func (c *City) advanceProduction() *UnitType {
	if c.Production == nil {
		return nil
	}
	c.ProductionProgress++
	if c.ProductionProgress >= c.Production.Cost() {
		produced := *c.Production
		c.ProductionProgress = 0
		return &produced
	}
	return nil
}
