package timeline

import "NewsTimeline/internal/domain"

const chartHeadlineLimit = 50

// Chart flattens buckets into parallel label/count sequences. Points carry
// the main headline of the matching event, empty for days without one.
func Chart(buckets []domain.DayBucket, events []domain.TimelineEvent) domain.ChartSeries {
	headlines := make(map[string]string, len(events))
	for _, e := range events {
		headlines[e.Date] = truncate(e.MainHeadline, chartHeadlineLimit, "...")
	}

	series := domain.ChartSeries{
		Labels: make([]string, 0, len(buckets)),
		Counts: make([]int, 0, len(buckets)),
		Points: make([]domain.ChartPoint, 0, len(buckets)),
	}
	for _, bucket := range buckets {
		label := bucket.Date.Format(dateKeyLayout)
		series.Labels = append(series.Labels, label)
		series.Counts = append(series.Counts, bucket.Count)
		series.Points = append(series.Points, domain.ChartPoint{
			Date:     label,
			Count:    bucket.Count,
			Headline: headlines[label],
		})
	}
	return series
}
