package components

// Country groups units by CountryID. Population is recomputed every tick and
// Territory only ever grows.
type Country struct {
	ID         string
	Name       string
	Color      string // "#rrggbb"
	Population int
	Resources  float64 // treasury, independent of unit resources
	Territory  []Vec2
	Capital    Vec2
}

// Clone returns a copy that does not share the territory slice.
func (c *Country) Clone() Country {
	cp := *c
	cp.Territory = append([]Vec2(nil), c.Territory...)
	return cp
}
