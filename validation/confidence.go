package validation

import "strconv"

// ConfidenceWidth is the fixed width of the leading confidence token in
// validation clip filenames ("0.875_swth_20240612_051500.wav" -> 0.875).
// The clip exporter zero-pads scores to three decimals, so the token is
// always exactly five characters regardless of filename length.
const ConfidenceWidth = 5

// ConfidenceScore parses the leading fixed-width confidence token of a clip
// filename. A short filename or a non-numeric token is a malformed record.
func ConfidenceScore(fileName string) (float64, error) {
	if len(fileName) < ConfidenceWidth {
		return 0, &MalformedRecordError{Field: "file name too short for confidence token", Value: fileName}
	}
	token := fileName[:ConfidenceWidth]
	score, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &MalformedRecordError{Field: "confidence token", Value: token}
	}
	return score, nil
}
