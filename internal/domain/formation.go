package domain

import "sort"

const DefaultFormation = "4-4-2"

// Slot is a default pitch location, in percent of the pitch width (X) and length (Y).
type Slot struct {
	Position Position `json:"position"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
}

type Formation struct {
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

var goalkeeperSlot = Slot{PositionGoalkeeper, 50, 88}

var formations = map[string]Formation{
	"4-4-2": {
		Name: "4-4-2",
		Slots: []Slot{
			goalkeeperSlot,
			{PositionDefender, 15, 70}, {PositionDefender, 38, 72}, {PositionDefender, 62, 72}, {PositionDefender, 85, 70},
			{PositionMidfielder, 15, 48}, {PositionMidfielder, 38, 50}, {PositionMidfielder, 62, 50}, {PositionMidfielder, 85, 48},
			{PositionForward, 38, 25}, {PositionForward, 62, 25},
		},
	},
	"4-3-3": {
		Name: "4-3-3",
		Slots: []Slot{
			goalkeeperSlot,
			{PositionDefender, 15, 70}, {PositionDefender, 38, 72}, {PositionDefender, 62, 72}, {PositionDefender, 85, 70},
			{PositionMidfielder, 30, 50}, {PositionMidfielder, 50, 52}, {PositionMidfielder, 70, 50},
			{PositionForward, 20, 25}, {PositionForward, 50, 20}, {PositionForward, 80, 25},
		},
	},
	"3-5-2": {
		Name: "3-5-2",
		Slots: []Slot{
			goalkeeperSlot,
			{PositionDefender, 30, 72}, {PositionDefender, 50, 74}, {PositionDefender, 70, 72},
			{PositionMidfielder, 12, 48}, {PositionMidfielder, 31, 52}, {PositionMidfielder, 50, 45}, {PositionMidfielder, 69, 52}, {PositionMidfielder, 88, 48},
			{PositionForward, 38, 25}, {PositionForward, 62, 25},
		},
	},
}

func FormationByName(name string) (Formation, bool) {
	f, ok := formations[name]
	return f, ok
}

func FormationNames() []string {
	names := make([]string, 0, len(formations))
	for name := range formations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Formations() []Formation {
	list := make([]Formation, 0, len(formations))
	for _, name := range FormationNames() {
		list = append(list, formations[name])
	}
	return list
}

func (f Formation) SlotsFor(p Position) []Slot {
	var slots []Slot
	for _, s := range f.Slots {
		if s.Position == p {
			slots = append(slots, s)
		}
	}
	return slots
}
