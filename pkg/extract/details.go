// Package extract parses semi-structured chat input into typed sourcing
// records. Every extractor is a pure function over its input: no state, no
// I/O, never an error. Missing fields come back as zero values and the
// calling action owns validation.
package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/procura-ai/procura/pkg/models"
)

var (
	emailTokenRe   = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	emailLabeledRe = regexp.MustCompile(`(?i)email\s*[:=]\s*["']?([^\s,"']+)`)

	// Label and value separate on a colon or plain whitespace; an unquoted
	// value runs until the next comma, newline or end of input. The
	// whitespace-separated bare form runs last so quoted values keep
	// priority, and it skips filler words between label and value.
	titleLabeledRe      = regexp.MustCompile(`(?i)(?:project\s+)?title\s*:\s*(?:"([^"\n]+)"|'([^'\n]+)'|([^,\n]+))`)
	titleQuotedAfterRe  = regexp.MustCompile(`(?i)title[^"'\n]*(?:"([^"\n]+)"|'([^'\n]+)')`)
	titleCalledQuotedRe = regexp.MustCompile(`(?i)(?:called|named|titled)\s+(?:"([^"\n]+)"|'([^'\n]+)')`)
	titleSpacedRe       = regexp.MustCompile(`(?i)(?:project\s+)?title\s+(?:(?:is|to|as|of|=)\s+)?([^,\n]+)`)

	descLabeledRe     = regexp.MustCompile(`(?i)(?:project\s+)?description\s*:\s*(?:"([^"\n]+)"|'([^'\n]+)'|([^,\n]+))`)
	descQuotedAfterRe = regexp.MustCompile(`(?i)description[^"'\n]*(?:"([^"\n]+)"|'([^'\n]+)')`)
	descSpacedRe      = regexp.MustCompile(`(?i)(?:project\s+)?description\s+(?:(?:is|to|as|of|=)\s+)?([^,\n]+)`)

	budgetApproxRe  = regexp.MustCompile(`(?i)approx\.?\s+total\s+budget\s*:?\s*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
	budgetLabeledRe = regexp.MustCompile(`(?i)budget\s*:?\s*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)

	isoTimestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z`)
	bareDateRe     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// ProjectDetails extracts project fields from free text or a JSON object
// snippet. JSON parsing is attempted first when the trimmed input looks like
// an object; a malformed document falls through to pattern extraction
// instead of failing the whole call.
func ProjectDetails(input string) models.ProjectDetails {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		if details, ok := detailsFromJSON(trimmed); ok {
			return details
		}
	}

	return detailsFromText(input)
}

// detailsFromJSON reads recognized keys with synonym fallback. The long key
// form wins when both are present.
func detailsFromJSON(input string) (models.ProjectDetails, bool) {
	var doc map[string]any

	if err := json.Unmarshal([]byte(input), &doc); err != nil {
		return models.ProjectDetails{}, false
	}

	details := models.ProjectDetails{
		Title:       jsonString(doc, "projectTitle", "title"),
		Description: jsonString(doc, "projectDescription", "description"),
		Email:       jsonString(doc, "emailId", "email"),
		Budget:      jsonNumber(doc, "approxTotalBudget", "budget"),
		StartDate:   jsonDate(doc, "engagementStartDate", "startDate"),
		EndDate:     jsonDate(doc, "engagementEndDate", "endDate"),
	}

	return details, true
}

// jsonString returns the first present key, long form first.
func jsonString(doc map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := doc[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}

// jsonNumber accepts either a numeric literal or a numeric string.
func jsonNumber(doc map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch value := doc[key].(type) {
		case float64:
			return value
		case string:
			parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", ""), 64)
			if err == nil {
				return parsed
			}
		}
	}

	return 0
}

func jsonDate(doc map[string]any, keys ...string) *time.Time {
	for _, key := range keys {
		value, ok := doc[key].(string)
		if !ok {
			continue
		}

		if parsed, ok := parseAnyDate(strings.TrimSpace(value)); ok {
			return &parsed
		}
	}

	return nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

func parseAnyDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}

	return time.Time{}, false
}

func detailsFromText(input string) models.ProjectDetails {
	details := models.ProjectDetails{
		Email:       extractEmail(input),
		Title:       extractLabeled(input, titleLabeledRe, titleQuotedAfterRe, titleCalledQuotedRe, titleSpacedRe),
		Description: extractLabeled(input, descLabeledRe, descQuotedAfterRe, descSpacedRe),
		Budget:      extractBudget(input),
	}

	details.StartDate, details.EndDate = extractDates(input)

	return details
}

func extractEmail(input string) string {
	if match := emailTokenRe.FindString(input); match != "" {
		return match
	}

	if match := emailLabeledRe.FindStringSubmatch(input); match != nil {
		return match[1]
	}

	return ""
}

// extractLabeled runs the matcher chain in order and takes the first
// non-empty capture group of the first regexp that matches.
func extractLabeled(input string, matchers ...*regexp.Regexp) string {
	for _, matcher := range matchers {
		match := matcher.FindStringSubmatch(input)
		if match == nil {
			continue
		}

		for _, group := range match[1:] {
			value := cleanFieldValue(group)
			if value != "" {
				return value
			}
		}
	}

	return ""
}

func cleanFieldValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"'`)

	return strings.TrimSpace(value)
}

func extractBudget(input string) float64 {
	for _, matcher := range []*regexp.Regexp{budgetApproxRe, budgetLabeledRe} {
		match := matcher.FindStringSubmatch(input)
		if match == nil {
			continue
		}

		parsed, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
		if err == nil {
			return parsed
		}
	}

	return 0
}

// extractDates prefers full ISO-8601 timestamps in document order, then
// fills still-missing slots from bare YYYY-MM-DD tokens.
func extractDates(input string) (*time.Time, *time.Time) {
	var start, end *time.Time

	for _, match := range isoTimestampRe.FindAllString(input, 2) {
		if parsed, ok := parseAnyDate(match); ok {
			if start == nil {
				start = &parsed
			} else if end == nil {
				end = &parsed
			}
		}
	}

	if start != nil && end != nil {
		return start, end
	}

	for _, loc := range bareDateRe.FindAllStringIndex(input, -1) {
		// Skip the date component of an ISO timestamp.
		if loc[1] < len(input) && input[loc[1]] == 'T' {
			continue
		}

		parsed, ok := parseAnyDate(input[loc[0]:loc[1]])
		if !ok {
			continue
		}

		if start == nil {
			start = &parsed
		} else if end == nil {
			end = &parsed

			break
		}
	}

	return start, end
}
