package config

import (
	"fmt"
	"strconv"
)

// The fixed coordinate all presets sample at: ten diameters downstream.
const presetFixed = 10

// Resolution compares the velocity u of three mesh resolutions at x=10.
// The files simple_res10.csv, simple_res20.csv and simple_res50.csv are
// read from dir.
func Resolution(dir string) *Config {
	return &Config{
		Name:    "resolution",
		DataDir: dir,
		Datasets: []Dataset{
			{Key: "50", Template: "simple_res{key}.csv", Label: "dx=D/50",
				Style: map[string]string{"geom": "point", "color": "red", "shape": "plus", "size": "3.5", "every": "5"}},
			{Key: "20", Template: "simple_res{key}.csv", Label: "dx=D/20",
				Style: map[string]string{"geom": "point", "color": "green", "shape": "dot", "size": "2", "every": "3"}},
			{Key: "10", Template: "simple_res{key}.csv", Label: "dx=D/10",
				Style: map[string]string{"geom": "line", "color": "blue", "size": "1"}},
		},
		Fields: []string{"u"},
		Line:   Line{Axis: "y", Fixed: presetFixed, Points: 100, From: "10"},
		Figure: Figure{
			Title:         "velocity profile at x=10D",
			ValueLabel:    "u",
			PositionLabel: "y/D",
			Grid:          true,
			Width:         5,
			Height:        6,
		},
		Output: "res-sensitivity.png",
	}
}

// Sampling compares the mean and variance of u computed by niPCE and by
// Monte Carlo with three sample counts. n holds the sample counts of
// niPCE, MC few, MC mid and MC many, in this order. The mean input
// deterministic run is overlaid on E[u].
func Sampling(dir, prefix string, n [4]int, title string) *Config {
	key := func(i int) string { return strconv.Itoa(n[i]) }
	mc := "{prefix}-mc-{key}-samples/statistics.csv"
	return &Config{
		Name:    "sampling",
		DataDir: dir,
		Vars:    map[string]string{"prefix": prefix},
		Datasets: []Dataset{
			{Key: key(1), Template: mc, Label: fmt.Sprintf("Monte Carlo (%d samples)", n[1]),
				Style: map[string]string{"color": "red", "size": "1"}},
			{Key: key(2), Template: mc, Label: fmt.Sprintf("Monte Carlo (%d samples)", n[2]),
				Style: map[string]string{"color": "black", "size": "1"}},
			{Key: key(3), Template: mc, Label: fmt.Sprintf("Monte Carlo (%d samples)", n[3]),
				Style: map[string]string{"geom": "point", "color": "green", "shape": "cross", "size": "2.2", "every": "2"}},
			{Key: "nipce", Template: "{prefix}-nipce-" + key(0) + "-samples/statistics.csv",
				Label: fmt.Sprintf("niPCE (%d samples)", n[0]),
				Style: map[string]string{"color": "blue", "size": "1"}},
			{Key: "det", Template: "{prefix}-det/result.csv", Label: "one deterministic run with mean input",
				Style:     map[string]string{"geom": "point", "color": "m", "shape": "dot", "size": "2", "every": "4"},
				Field:     "u",
				Reference: true,
				Fields:    []string{"E[u]"}},
		},
		Fields: []string{"E[u]", "Var[u]"},
		Line:   Line{Axis: "y", Fixed: presetFixed, Points: 100, From: "nipce"},
		Figure: Figure{
			Title:  title,
			Unit:   "D",
			Legend: "upper left",
			Grid:   true,
			Width:  5,
			Height: 6,
		},
		Output: "{prefix}_sampling_{field}.png",
	}
}

// LegacySampling is Sampling for the older file layout
// {prefix}_nipce_sample.statistics.csv and
// {prefix}_mc_sample.statistics-{few,mid,many}.csv. The sample counts
// only show up in the labels; coordinates carry no unit and there is no
// deterministic overlay.
func LegacySampling(dir, prefix string, n [4]string, title string) *Config {
	mc := "{prefix}_mc_sample.statistics-{key}.csv"
	return &Config{
		Name:    "legacy-sampling",
		DataDir: dir,
		Vars:    map[string]string{"prefix": prefix},
		Datasets: []Dataset{
			{Key: "few", Template: mc, Label: fmt.Sprintf("Monte Carlo (%s samples)", n[1]),
				Style: map[string]string{"color": "red", "size": "1"}},
			{Key: "mid", Template: mc, Label: fmt.Sprintf("Monte Carlo (%s samples)", n[2]),
				Style: map[string]string{"color": "black", "size": "1"}},
			{Key: "many", Template: mc, Label: fmt.Sprintf("Monte Carlo (%s samples)", n[3]),
				Style: map[string]string{"geom": "point", "color": "green", "shape": "cross", "size": "2.2", "every": "2"}},
			{Key: "nipce", Path: "{prefix}_nipce_sample.statistics.csv", Label: fmt.Sprintf("niPCE (%s samples)", n[0]),
				Style: map[string]string{"color": "blue", "size": "1"}},
		},
		Fields: []string{"E[u]", "Var[u]"},
		Line:   Line{Axis: "y", Fixed: presetFixed, Points: 100, From: "nipce"},
		Figure: Figure{
			Title:  title,
			Legend: "upper left",
			Grid:   true,
			Width:  5,
			Height: 6,
		},
		Output: "{prefix}_sampling_{field}.png",
	}
}
