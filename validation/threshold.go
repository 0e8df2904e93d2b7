package validation

import (
	"fmt"
	"io"
	"sort"

	"github.com/montanaflynn/stats"
)

// ThresholdRow is one candidate cutoff in a species' precision table: the
// record counts and precision among detections scoring at or above the
// threshold.
type ThresholdRow struct {
	Threshold float64
	Total     int
	Valid     int
	Precision float64
}

// PrecisionTable computes precision at every observed confidence value,
// ascending. Raising the cutoff always shrinks the record set, so the table
// walks from keeping everything to keeping only the top-scoring clips.
func PrecisionTable(rs *ResultSet) []ThresholdRow {
	seen := make(map[float64]bool)
	var thresholds []float64
	for _, rec := range rs.Records {
		if !seen[rec.Confidence] {
			seen[rec.Confidence] = true
			thresholds = append(thresholds, rec.Confidence)
		}
	}
	sort.Float64s(thresholds)

	rows := make([]ThresholdRow, 0, len(thresholds))
	for _, t := range thresholds {
		total, valid := 0, 0
		for _, rec := range rs.Records {
			if rec.Confidence >= t {
				total++
				if rec.Valid {
					valid++
				}
			}
		}
		row := ThresholdRow{Threshold: t, Total: total, Valid: valid}
		if total > 0 {
			row.Precision = float64(valid) / float64(total)
		}
		rows = append(rows, row)
	}
	return rows
}

// SelectThreshold returns the smallest observed threshold whose precision
// meets the target. An error means no cutoff achieves the target and the
// species needs more review effort (or the detector is not usable for it).
func SelectThreshold(rs *ResultSet, targetPrecision float64) (ThresholdRow, error) {
	for _, row := range PrecisionTable(rs) {
		if row.Precision >= targetPrecision {
			return row, nil
		}
	}
	return ThresholdRow{}, fmt.Errorf("species %q: no threshold reaches precision %.2f over %d records",
		rs.Species, targetPrecision, len(rs.Records))
}

// ConfidenceSummary returns the mean and standard deviation of a species'
// validated confidence scores.
func ConfidenceSummary(rs *ResultSet) (mean, stdDev float64, err error) {
	if len(rs.Records) == 0 {
		return 0, 0, fmt.Errorf("no records to summarize")
	}
	scores := make([]float64, len(rs.Records))
	for i, rec := range rs.Records {
		scores[i] = rec.Confidence
	}
	mean, err = stats.Mean(scores)
	if err != nil {
		return 0, 0, err
	}
	stdDev, err = stats.StandardDeviation(scores)
	if err != nil {
		return 0, 0, err
	}
	return mean, stdDev, nil
}

// WriteReport writes the per-species threshold table, tab-separated, sorted
// by species. Species that never reach the target precision are reported
// with an empty threshold rather than failing the run; the reviewer decides
// what to do with them.
func WriteReport(w io.Writer, results map[string]*ResultSet, targetPrecision float64) error {
	species := make([]string, 0, len(results))
	for name := range results {
		species = append(species, name)
	}
	sort.Strings(species)

	if _, err := fmt.Fprint(w, "Species\tRecords\tValid\tThreshold\tPrecision\tMean Conf\tSD Conf\n"); err != nil {
		return err
	}

	for _, name := range species {
		rs := results[name]

		// A header-only table is a species reviewed with nothing to log;
		// it gets an all-dash row rather than failing the report.
		if len(rs.Records) == 0 {
			if _, err := fmt.Fprintf(w, "%s\t0\t0\t-\t-\t-\t-\n", name); err != nil {
				return err
			}
			continue
		}

		valid := 0
		for _, rec := range rs.Records {
			if rec.Valid {
				valid++
			}
		}
		mean, sd, err := ConfidenceSummary(rs)
		if err != nil {
			return fmt.Errorf("species %q: %w", name, err)
		}

		threshold, precision := "-", "-"
		if row, err := SelectThreshold(rs, targetPrecision); err == nil {
			threshold = fmt.Sprintf("%.3f", row.Threshold)
			precision = fmt.Sprintf("%.3f", row.Precision)
		}

		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%.3f\t%.3f\n",
			name, len(rs.Records), valid, threshold, precision, mean, sd); err != nil {
			return err
		}
	}
	return nil
}
