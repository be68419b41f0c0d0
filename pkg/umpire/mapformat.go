package umpire

import (
	"fmt"
	"strings"
)

// ParseMapText builds a MapData from the one-character-per-tile fixture
// format used by tests: ' ' is Water; a digit d is Land with a city
// belonging to player d; lowercase is a player-0 unit of that type;
// uppercase is a player-1 unit; any other non-space character is plain
// Land. All lines must be the same length. Unit characters always sit on
// Land regardless of the unit's transport mode; fixtures that need a unit
// on Water retile the tile afterward with SetTerrain.
func ParseMapText(text string, wrapping Wrap2d) (*MapData, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("umpire: empty map text")
	}
	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("umpire: map text line %d has length %d, want %d", i, len(line), width)
		}
	}
	dims := Dims{Width: uint16(width), Height: uint16(len(lines))}
	tiles := make([]Tile, dims.Area())

	nextUnitID := uint64(0)
	nextCityID := uint64(0)

	for y, line := range lines {
		for x, ch := range line {
			loc := Location{X: uint16(x), Y: uint16(y)}
			idx := int(loc.Y)*int(dims.Width) + int(loc.X)

			switch {
			case ch == ' ':
				tiles[idx] = newTile(loc, Water)
			case ch >= '0' && ch <= '9':
				tiles[idx] = newTile(loc, Land)
				nextCityID++
				player := PlayerNum(ch - '0')
				city := newCity(CityID(nextCityID), loc, Belligerent(player), fmt.Sprintf("City%d", nextCityID))
				tiles[idx].City = &city
			case isUnitKey(ch):
				tiles[idx] = newTile(loc, Land)
				nextUnitID++
				player := PlayerNum(0)
				if ch >= 'A' && ch <= 'Z' {
					player = 1
				}
				t, _ := UnitTypeByKey(byte(ch))
				unit := newUnit(UnitID(nextUnitID), loc, t, Belligerent(player), fmt.Sprintf("Unit%d", nextUnitID))
				tiles[idx].Unit = &unit
			default:
				tiles[idx] = newTile(loc, Land)
			}
		}
	}

	return newMapDataFromTiles(dims, wrapping, tiles), nil
}

func isUnitKey(ch rune) bool {
	lower := ch
	if lower >= 'A' && lower <= 'Z' {
		lower += 'a' - 'A'
	}
	_, ok := UnitTypeByKey(byte(lower))
	return ok
}

// RenderMapText prints a MapData's current state in ParseMapText's format,
// for tests and debugging tools. It is not a full inverse: a tile with a
// unit shows only the unit (not the terrain or a city under it), and a
// neutral city renders as '.'.
func RenderMapText(m *MapData) string {
	var b strings.Builder
	for y := uint16(0); y < m.dims.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := uint16(0); x < m.dims.Width; x++ {
			tile := m.tiles[m.index(Location{X: x, Y: y})]
			b.WriteByte(renderCell(tile))
		}
	}
	return b.String()
}

func renderCell(tile Tile) byte {
	if tile.Unit != nil {
		key := tile.Unit.Type.Key()
		if p, _ := tile.Unit.Alignment.Player(); p == 1 {
			if key >= 'a' && key <= 'z' {
				key -= 'a' - 'A'
			}
		}
		return key
	}
	if tile.City != nil {
		if p, belligerent := tile.City.Alignment.Player(); belligerent {
			return byte('0' + p)
		}
	}
	if tile.Terrain == Water {
		return ' '
	}
	return '.'
}
