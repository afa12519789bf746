package config

import "sort"

var Presets = map[string]*Config{
	"single": {
		Alphabet: DefaultAlphabet, Rounds: 1, MovesFile: DefaultMovesFile,
		MaxHistory: DefaultMaxHistory, KeepHistory: true,
	},
	"billion": {
		Alphabet: DefaultAlphabet, Rounds: LongRunRounds, MovesFile: DefaultMovesFile,
		MaxHistory: DefaultMaxHistory, KeepHistory: true,
	},
	"probe": {
		Alphabet: DefaultAlphabet, Rounds: 1000, MovesFile: DefaultMovesFile,
		MaxHistory: DefaultMaxHistory, KeepHistory: true,
	},
	"example": {
		Alphabet: "abcde", Rounds: 2, MovesFile: DefaultMovesFile,
		MaxHistory: DefaultMaxHistory, KeepHistory: true,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	if c.Metrics == nil {
		c.Metrics = DefaultConfig().Metrics
	}
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
