package crop

import (
	"fmt"
	"math"
	"sort"

	"krishimitra/internal/storage/dataset"
	"krishimitra/pkg/errors"
)

// FertilizerInput is a fertilizer recommendation request. The crop is
// chosen by the user, not predicted.
type FertilizerInput struct {
	Crop string `json:"crop"`
	Input
}

// FertilizerRecommendation is the result of the nearest-match fertilizer
// lookup over the reference dataset.
type FertilizerRecommendation struct {
	Crop                   string   `json:"crop"`
	CropConfidence         float64  `json:"crop_confidence"`
	RecommendedFertilizer  string   `json:"recommended_fertilizer"`
	FertilizerConfidence   float64  `json:"fertilizer_confidence"`
	TutorialLink           string   `json:"tutorial_link"`
	AlternativeFertilizers []string `json:"alternative_fertilizers"`
}

// recommendFertilizer selects the fertilizer of the reference row closest
// to the requested soil conditions by absolute N/P/K distance, among rows
// matching the chosen crop. Confidence is that fertilizer's frequency share
// among the matching rows. Alternatives are the most frequent fertilizers
// excluding the recommended one, capped at two.
func recommendFertilizer(table *dataset.Table, in *FertilizerInput) (*FertilizerRecommendation, error) {
	if !ValidCrop(in.Crop) {
		return nil, errors.NewValidationError("crop",
			fmt.Sprintf("invalid crop, valid options: %v", Crops()), in.Crop)
	}

	matches := table.FilterByCrop(in.Crop)
	if len(matches) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "no fertilizer data available for %s", in.Crop)
	}

	best := matches[0]
	bestDist := npkDistance(best, in)
	for _, row := range matches[1:] {
		if d := npkDistance(row, in); d < bestDist {
			best = row
			bestDist = d
		}
	}

	counts := make(map[string]int)
	for _, row := range matches {
		counts[row.Fertilizer]++
	}
	confidence := float64(counts[best.Fertilizer]) / float64(len(matches))

	return &FertilizerRecommendation{
		Crop:                   in.Crop,
		CropConfidence:         1.0, // user-selected crop
		RecommendedFertilizer:  best.Fertilizer,
		FertilizerConfidence:   round4(confidence),
		TutorialLink:           best.Link,
		AlternativeFertilizers: alternatives(counts, best.Fertilizer),
	}, nil
}

func npkDistance(row dataset.Row, in *FertilizerInput) float64 {
	return math.Abs(row.Nitrogen-in.Nitrogen) +
		math.Abs(row.Phosphorus-in.Phosphorus) +
		math.Abs(row.Potassium-in.Potassium)
}

// alternatives keeps the original ranking rule: take the top four
// fertilizers by descending frequency, drop the recommended one, and cap
// the remainder at two.
func alternatives(counts map[string]int, recommended string) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > 4 {
		names = names[:4]
	}

	out := []string{}
	for _, name := range names {
		if name == recommended {
			continue
		}
		out = append(out, name)
		if len(out) == 2 {
			break
		}
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
