package summary

import (
	"context"
	"time"
)

type SummaryRepository interface {
	// AggregatePresentDays groups complete records by employee code and the
	// year and month of punch-in as seen in loc
	AggregatePresentDays(ctx context.Context, loc *time.Location, filter SummaryFilter) ([]PresentDayGroup, error)

	// ListOverrides returns overrides, optionally restricted to one month label
	ListOverrides(ctx context.Context, month *string) ([]Override, error)

	UpsertOverride(ctx context.Context, override Override) (Override, error)
}
