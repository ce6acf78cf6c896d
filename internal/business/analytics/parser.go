package analytics

import (
	"strconv"
	"strings"

	"github.com/pehchaan-index/pulse-api/pkg/model"
	"github.com/pehchaan-index/pulse-api/pkg/util"
)

// ParseStats records counters for one CSV parse. FieldsCoerced and
// ShortRows surface data quality problems that the lenient parser would
// otherwise swallow silently.
type ParseStats struct {
	RowsParsed    int
	ShortRows     int
	FieldsCoerced int
}

// SplitLine splits one CSV line into trimmed fields. A double quote toggles
// an in-quotes flag: commas inside quotes do not split the field and the
// quote characters themselves are dropped. No RFC 4180 escaped-quote
// handling; the source export never doubles quotes.
func SplitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// ParseCSV parses a full export document. The first line is a header and is
// discarded; every remaining non-empty line becomes one record by field
// position (month, state, district, age_0_5, age_5_17, age_18_plus). State
// and district names are normalized here so every aggregation key formed
// downstream is consistent. Numeric fields that fail to parse are coerced
// to zero and counted rather than rejected; government exports are messy
// and one bad cell should not sink the month.
func ParseCSV(text string) ([]model.UpdateRecord, ParseStats) {
	var stats ParseStats
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) <= 1 {
		return nil, stats
	}
	records := make([]model.UpdateRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitLine(line)
		if len(fields) < 6 {
			stats.ShortRows++
		}
		records = append(records, model.UpdateRecord{
			Month:     fieldAt(fields, 0),
			State:     util.NormalizeCase(fieldAt(fields, 1)),
			District:  util.NormalizeCase(fieldAt(fields, 2)),
			Age0to5:   atoiOrZero(fieldAt(fields, 3), &stats),
			Age5to17:  atoiOrZero(fieldAt(fields, 4), &stats),
			Age18Plus: atoiOrZero(fieldAt(fields, 5), &stats),
		})
		stats.RowsParsed++
	}
	return records, stats
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func atoiOrZero(s string, stats *ParseStats) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		stats.FieldsCoerced++
		return 0
	}
	return n
}
