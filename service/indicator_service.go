package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"backend/model"

	"github.com/rs/zerolog/log"
)

// IndicatorFetcher is the outbound capability the service needs. Satisfied by
// client.WorldBankClient.
type IndicatorFetcher interface {
	FetchIndicator(ctx context.Context, country, code, start, end string) ([]byte, error)
}

type IndicatorService interface {
	GetIndicators(ctx context.Context, country string, codes []string, start, end int) (*model.IndicatorResponse, error)
}

type IndicatorServiceImpl struct {
	fetcher IndicatorFetcher
}

func NewIndicatorService(fetcher IndicatorFetcher) IndicatorService {
	return &IndicatorServiceImpl{fetcher: fetcher}
}

// GetIndicators fetches each requested code sequentially, reshapes and sorts
// the points, and assembles the combined response. The first upstream or
// processing failure aborts the whole request; there are no partial results.
// Codes whose body is not a [metadata, dataPoints] envelope are skipped
// silently, which is how the World Bank signals an unknown code.
func (s *IndicatorServiceImpl) GetIndicators(ctx context.Context, country string, codes []string, start, end int) (*model.IndicatorResponse, error) {
	startStr := strconv.Itoa(start)
	endStr := strconv.Itoa(end)

	series := make([]model.IndicatorSeries, 0, len(codes))
	for _, raw := range codes {
		code := strings.TrimSpace(raw)

		body, err := s.fetcher.FetchIndicator(ctx, country, code, startStr, endStr)
		if err != nil {
			log.Error().Err(err).Str("code", code).Msg("World Bank fetch failed")
			return nil, err
		}

		var envelope []json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil || len(envelope) < 2 {
			continue
		}

		var points []model.WorldBankPoint
		if err := json.Unmarshal(envelope[1], &points); err != nil {
			return nil, fmt.Errorf("decoding data points for %s: %w", code, err)
		}

		out, err := reshapePoints(points)
		if err != nil {
			return nil, fmt.Errorf("reshaping series %s: %w", code, err)
		}

		name := code
		if len(points) > 0 {
			name = points[0].Indicator.Value
		}

		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date < out[j].Date
		})

		series = append(series, model.IndicatorSeries{
			Code:   code,
			Name:   name,
			Points: out,
		})
	}

	return &model.IndicatorResponse{
		Country: country,
		Start:   start,
		End:     end,
		Series:  series,
	}, nil
}

func reshapePoints(points []model.WorldBankPoint) ([]model.IndicatorPoint, error) {
	out := make([]model.IndicatorPoint, 0, len(points))
	for _, p := range points {
		date, err := strconv.Atoi(p.Date)
		if err != nil {
			return nil, fmt.Errorf("unparseable date %q: %w", p.Date, err)
		}
		out = append(out, model.IndicatorPoint{
			Date:  date,
			Value: p.Value,
		})
	}
	return out, nil
}
