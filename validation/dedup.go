package validation

import "unicode"

// DedupKey trims everything before the first alphabetic character of a clip
// filename. Clips drawn in both the 0.1-1.0 pull and the 0.85-1.0 pull
// carry different confidence prefixes but share the same recording suffix,
// so the suffix identifies the underlying clip.
func DedupKey(fileName string) string {
	for i, r := range fileName {
		if unicode.IsLetter(r) {
			return fileName[i:]
		}
	}
	return fileName
}

// Deduplicate keeps the first-seen record per dedup key, preserving input
// order. Running it on already-deduplicated input is a no-op.
func Deduplicate(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		key := DedupKey(rec.FileName)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}
