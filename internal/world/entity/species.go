package entity

import (
	"fmt"
	"strings"
)

// Species представляет вид моба
type Species uint8

const (
	SpeciesCow Species = iota
	SpeciesSheep
	SpeciesChicken
	SpeciesPig
)

// DefaultTalkInterval интервал звуков по умолчанию, в тиках
const DefaultTalkInterval = 80

// SpeciesInfo описывает параметры вида
type SpeciesInfo struct {
	Name         string
	LivingSound  string
	TalkInterval int     // средний интервал между звуками
	MoveSpeed    float64 // скорость ходьбы по земле
	Width        float64
	Height       float64
	EyeHeight    float64
	MaxHealth    int
}

var speciesTable = map[Species]SpeciesInfo{
	SpeciesCow: {
		Name:         "cow",
		LivingSound:  "mob.cow.say",
		TalkInterval: DefaultTalkInterval,
		MoveSpeed:    0.2,
		Width:        0.9,
		Height:       1.4,
		EyeHeight:    1.3,
		MaxHealth:    10,
	},
	SpeciesSheep: {
		Name:         "sheep",
		LivingSound:  "mob.sheep.say",
		TalkInterval: DefaultTalkInterval,
		MoveSpeed:    0.23,
		Width:        0.9,
		Height:       1.3,
		EyeHeight:    1.235,
		MaxHealth:    8,
	},
	SpeciesChicken: {
		Name:         "chicken",
		LivingSound:  "mob.chicken.say",
		TalkInterval: 120, // куры кудахчут реже
		MoveSpeed:    0.25,
		Width:        0.4,
		Height:       0.7,
		EyeHeight:    0.644,
		MaxHealth:    4,
	},
	SpeciesPig: {
		Name:         "pig",
		LivingSound:  "mob.pig.say",
		TalkInterval: DefaultTalkInterval,
		MoveSpeed:    0.25,
		Width:        0.9,
		Height:       0.9,
		EyeHeight:    0.765,
		MaxHealth:    10,
	},
}

// Info возвращает параметры вида
func (s Species) Info() SpeciesInfo {
	if info, ok := speciesTable[s]; ok {
		return info
	}
	return speciesTable[SpeciesCow]
}

func (s Species) String() string {
	return s.Info().Name
}

// ParseSpecies находит вид по имени
func ParseSpecies(name string) (Species, error) {
	for s, info := range speciesTable {
		if strings.EqualFold(info.Name, name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("неизвестный вид моба: %q", name)
}

// AllSpecies возвращает все виды в порядке объявления
func AllSpecies() []Species {
	return []Species{SpeciesCow, SpeciesSheep, SpeciesChicken, SpeciesPig}
}
