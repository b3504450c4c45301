package service

import "github.com/prometheus/client_golang/prometheus"

var (
	StateSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_state_saves_total",
			Help: "Game state save attempts by outcome",
		},
		[]string{"outcome"},
	)
	StateLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_state_loads_total",
			Help: "Game state loads by source",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(StateSaves)
	prometheus.MustRegister(StateLoads)
}
