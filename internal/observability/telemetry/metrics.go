package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Métricas de negócio
	ActiveOnboardingSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "habitua_active_onboarding_sessions",
		Help: "Número de sessões de onboarding em andamento",
	})

	OnboardingsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "habitua_onboardings_completed_total",
		Help: "Total de onboardings concluídos",
	})

	CardsRevealedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "habitua_cards_revealed_total",
		Help: "Total de cartas da sorte reveladas",
	}, []string{"type"})

	LevelUpsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "habitua_level_ups_total",
		Help: "Total de subidas de nível aplicadas",
	})

	// Métricas de infraestrutura
	CommitLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "habitua_commit_latency_seconds",
		Help:    "Latência do commit do onboarding no armazenamento",
		Buckets: prometheus.DefBuckets,
	})
)
