package reconciliation

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is one normalized bank-statement credit. Entries live only for
// the duration of one reconciliation run and are never persisted; the
// date stays exactly as the bank wrote it.
type Entry struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

// ParseStatement parses a delimited bank-statement export into credit
// entries. The delimiter is a semicolon when one appears anywhere in
// the text, otherwise a comma. The first line is the header; columns
// are located by case-insensitive substring match (date: "data"/"date",
// description: "desc", amount: "valor"/"credit"). Rows with a
// non-positive amount are debits or noise and are dropped — only
// incoming credits are reconciliation candidates.
func ParseStatement(text string) ([]Entry, error) {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, ErrEmptyStatement
	}

	delimiter := ","
	if strings.Contains(text, ";") {
		delimiter = ";"
	}

	headers := strings.Split(lines[0], delimiter)
	dateIdx, descIdx, valueIdx := -1, -1, -1
	for i, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		switch {
		case dateIdx == -1 && (strings.Contains(h, "data") || strings.Contains(h, "date")):
			dateIdx = i
		case descIdx == -1 && strings.Contains(h, "desc"):
			descIdx = i
		case valueIdx == -1 && (strings.Contains(h, "valor") || strings.Contains(h, "credit")):
			valueIdx = i
		}
	}
	if dateIdx == -1 || valueIdx == -1 {
		missing := make([]string, 0, 2)
		if dateIdx == -1 {
			missing = append(missing, "date")
		}
		if valueIdx == -1 {
			missing = append(missing, "amount")
		}
		return nil, &MissingColumnsError{Columns: missing}
	}

	entries := make([]Entry, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(line, delimiter)
		if len(fields) < 2 {
			continue
		}
		for i, field := range fields {
			fields[i] = stripQuotes(strings.TrimSpace(field))
		}

		value := parseAmount(fieldAt(fields, valueIdx))
		if value <= 0 {
			continue
		}
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("entry-%d", len(entries)+1),
			Date:        fieldAt(fields, dateIdx),
			Description: fieldAt(fields, descIdx),
			Value:       value,
		})
	}
	if len(entries) == 0 {
		return nil, ErrNoCredits
	}
	return entries, nil
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// parseAmount normalizes a bank amount: everything but digits, comma,
// period and minus is stripped, then a decimal comma becomes a period.
// When a comma is present the periods are thousands separators and are
// dropped. Unparseable amounts read as zero and the row is dropped by
// the caller.
func parseAmount(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	if strings.Contains(normalized, ",") {
		normalized = strings.ReplaceAll(normalized, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
	}
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	return value
}
