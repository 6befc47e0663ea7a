package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RewardsMetrics holds the counters for the points ledger.
type RewardsMetrics struct {
	tasksCompleted metric.Int64Counter
	pointsEarned   metric.Int64Counter
	pointsRedeemed metric.Int64Counter
}

// NewRewardsMetrics registers the rewards counters on the global meter
// provider. It must run after InitTelemetry.
func NewRewardsMetrics() (*RewardsMetrics, error) {
	meter := otel.Meter("wellness-api/rewards")

	tasksCompleted, err := meter.Int64Counter("rewards_tasks_completed_total",
		metric.WithDescription("Health tasks completed, by period class"))
	if err != nil {
		return nil, err
	}

	pointsEarned, err := meter.Int64Counter("rewards_points_earned_total",
		metric.WithDescription("Points credited for task completions"))
	if err != nil {
		return nil, err
	}

	pointsRedeemed, err := meter.Int64Counter("rewards_points_redeemed_total",
		metric.WithDescription("Points debited through checkout or direct deduction"))
	if err != nil {
		return nil, err
	}

	return &RewardsMetrics{
		tasksCompleted: tasksCompleted,
		pointsEarned:   pointsEarned,
		pointsRedeemed: pointsRedeemed,
	}, nil
}

// TaskCompleted records one completed task and its credited points.
func (m *RewardsMetrics) TaskCompleted(ctx context.Context, period string, points int64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("period", period))
	m.tasksCompleted.Add(ctx, 1, attrs)
	m.pointsEarned.Add(ctx, points, attrs)
}

// PointsRedeemed records a points debit.
func (m *RewardsMetrics) PointsRedeemed(ctx context.Context, points int64) {
	if m == nil {
		return
	}
	m.pointsRedeemed.Add(ctx, points)
}
