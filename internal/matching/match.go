package matching

import (
	"context"
	"log/slog"
	"strings"

	"pdfmatch/internal/dataset"
	"pdfmatch/internal/filename"
	"pdfmatch/internal/inventory"
	"pdfmatch/internal/logging"
	"pdfmatch/internal/profile"
	"pdfmatch/internal/textutil"
)

// KeyIndex groups files by normalized key, keeping keys in order of first
// discovery.
type KeyIndex struct {
	keys  []string
	files map[string][]inventory.FileRecord
}

// BuildIndex decodes and folds every file name under p.
func BuildIndex(files []inventory.FileRecord, p profile.SourceProfile) *KeyIndex {
	idx := &KeyIndex{files: make(map[string][]inventory.FileRecord, len(files))}
	for _, f := range files {
		key := filename.Key(f.Name, p)
		if _, seen := idx.files[key]; !seen {
			idx.keys = append(idx.keys, key)
		}
		idx.files[key] = append(idx.files[key], f)
	}
	return idx
}

// Keys returns the distinct keys in discovery order.
func (idx *KeyIndex) Keys() []string {
	return append([]string(nil), idx.keys...)
}

// Candidates returns every file whose non-empty key is a prefix of rowKey.
func (idx *KeyIndex) Candidates(rowKey string) []inventory.FileRecord {
	var out []inventory.FileRecord
	for _, key := range idx.keys {
		if key == "" || !strings.HasPrefix(rowKey, key) {
			continue
		}
		out = append(out, idx.files[key]...)
	}
	return out
}

// Classify returns the outcome for a row whose match column holds value.
// Only a missing or zero-length value is an empty field; whitespace is
// normalized like any other text.
func (idx *KeyIndex) Classify(value string, retainDigits bool) Outcome {
	if value == "" {
		return Unmatched(ReasonEmptyField)
	}
	candidates := idx.Candidates(textutil.Normalize(value, retainDigits))
	switch len(candidates) {
	case 0:
		return Unmatched(ReasonNoMatch)
	case 1:
		return Matched(candidates[0])
	default:
		return MultiMatched(candidates)
	}
}

// Match classifies every row against files using the value in column and
// the naming conventions of p. logger may be nil.
func Match(files []inventory.FileRecord, rows []dataset.Row, column string, p profile.SourceProfile, logger *slog.Logger) Result {
	if logger == nil {
		logger = logging.NewNop()
	}
	idx := BuildIndex(files, p)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		for _, f := range files {
			logger.Debug("file key",
				logging.String("file", f.Name),
				logging.String("key", filename.Key(f.Name, p)),
			)
		}
	}

	retain := p.RetainDigits()
	var result Result
	for _, row := range rows {
		value := row.Get(column)
		outcome := idx.Classify(value, retain)
		logOutcome(logger, row, column, value, retain, outcome)
		result.add(row, outcome)
	}
	return result
}

func logOutcome(logger *slog.Logger, row dataset.Row, column, value string, retain bool, outcome Outcome) {
	switch outcome.Kind {
	case KindMatched:
		logger.Debug("row key",
			logging.Int("row", row.Index),
			logging.String("key", textutil.Normalize(value, retain)),
		)
		logger.Info("row matched",
			logging.Int("row", row.Index),
			logging.String("file", outcome.Files[0].Name),
			logging.String(logging.FieldEventType, "row_matched"),
		)
	case KindMultiMatched:
		logging.WarnWithContext(logger, "row matched several files", "row_multi_matched",
			logging.Int("row", row.Index),
			logging.String(column, value),
			logging.Int("match_count", len(outcome.Files)),
			logging.String(logging.FieldErrorHint, "pick the right file from the multi_matched output"),
			logging.String(logging.FieldImpact, "row is reported as ambiguous"),
		)
	default:
		if outcome.Reason == ReasonEmptyField {
			logging.WarnWithContext(logger, "match field is empty", "row_empty_field",
				logging.Int("row", row.Index),
				logging.String("column", column),
				logging.String(logging.FieldErrorHint, "fill in the "+column+" value in the dataset"),
				logging.String(logging.FieldImpact, "row cannot be matched"),
			)
			return
		}
		logger.Debug("row unmatched",
			logging.Int("row", row.Index),
			logging.String("key", textutil.Normalize(value, retain)),
		)
	}
}
