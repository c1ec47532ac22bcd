package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/procura-ai/procura/pkg/models"
)

// Milestone extraction layers four independent patterns over the same input
// and merges their matches. Real user phrasing is inconsistent; the union
// maximizes recall while title-based dedup bounds double counting of the
// same deliverable expressed in two styles.
var milestonePatterns = []*regexp.Regexp{
	// Bullet or dash list: "• Ship laptops - due 2025-11-01"
	regexp.MustCompile(`(?im)^[ \t]*[-•*][ \t]+(.+?)[ \t]*[-–][ \t]*(?:due[ \t]+)?(\d{4}-\d{2}-\d{2})`),
	// Numbered list: "1. Ship laptops - 2025-11-01" or "2) ..."
	regexp.MustCompile(`(?im)^[ \t]*\d+[.)][ \t]+(.+?)[ \t]*[-–][ \t]*(?:due[ \t]+)?(\d{4}-\d{2}-\d{2})`),
	// Natural sentence: "Ship laptops by 2025-11-01" / "... due 2025-11-01"
	regexp.MustCompile(`(?i)([a-z][^.!?;\n]*?)\s+(?:by|due(?:\s+by)?)\s+(\d{4}-\d{2}-\d{2})`),
	// Colon/index list: "1: Ship laptops, Date : 2025-11-01"
	regexp.MustCompile(`(?im)^[ \t]*\d+[ \t]*:[ \t]*(.+?),[ \t]*date[ \t]*:[ \t]*(\d{4}-\d{2}-\d{2})`),
}

var (
	listMarkerRe     = regexp.MustCompile(`^\s*(?:[-•*]|\d+[.)]|\d+\s*:)\s*`)
	dateLabelTailRe  = regexp.MustCompile(`(?i)[,\s]*date\s*:?\s*$`)
	sentenceSplitRe  = regexp.MustCompile(`[.!?;\n]`)
	titleTrimCutset  = " \t-–,:"
	minFallbackTitle = 3
)

type milestoneMatch struct {
	offset    int
	milestone models.ProjectMilestone
}

// Milestones extracts an ordered list of (title, delivery date) pairs from
// chat text. Order is first-seen position in the input; duplicates by
// case-insensitive title are dropped. If no pattern matches at all, a
// generic date-proximity recovery pass runs as a last resort.
func Milestones(input string) []models.ProjectMilestone {
	matches := make([]milestoneMatch, 0)

	for _, pattern := range milestonePatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(input, -1) {
			title := cleanMilestoneTitle(input[loc[2]:loc[3]])
			if title == "" {
				continue
			}

			date, ok := parseAnyDate(input[loc[4]:loc[5]])
			if !ok {
				continue
			}

			matches = append(matches, milestoneMatch{
				offset:    loc[0],
				milestone: models.ProjectMilestone{Title: title, DeliveryDate: date},
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].offset < matches[j].offset
	})

	milestones := dedupeMilestones(matches)
	if len(milestones) > 0 {
		return milestones
	}

	return fallbackMilestones(input)
}

func dedupeMilestones(matches []milestoneMatch) []models.ProjectMilestone {
	milestones := make([]models.ProjectMilestone, 0, len(matches))
	seen := make(map[string]bool, len(matches))

	for _, match := range matches {
		key := strings.ToLower(match.milestone.Title)
		if seen[key] {
			continue
		}

		seen[key] = true

		milestones = append(milestones, match.milestone)
	}

	return milestones
}

func cleanMilestoneTitle(raw string) string {
	title := listMarkerRe.ReplaceAllString(raw, "")
	title = dateLabelTailRe.ReplaceAllString(title, "")

	return strings.Trim(title, titleTrimCutset)
}

// fallbackMilestones recovers milestones from free text when none of the
// structured patterns matched: every bare date token claims its enclosing
// line or sentence as a title.
func fallbackMilestones(input string) []models.ProjectMilestone {
	matches := make([]milestoneMatch, 0)
	segments := splitSegments(input)

	for _, loc := range bareDateRe.FindAllStringIndex(input, -1) {
		date, ok := parseAnyDate(input[loc[0]:loc[1]])
		if !ok {
			continue
		}

		title := fallbackTitle(segments, loc[0], input[loc[0]:loc[1]])
		if len(title) <= minFallbackTitle {
			continue
		}

		matches = append(matches, milestoneMatch{
			offset:    loc[0],
			milestone: models.ProjectMilestone{Title: title, DeliveryDate: date},
		})
	}

	return dedupeMilestones(matches)
}

type segment struct {
	start int
	end   int
	text  string
}

func splitSegments(input string) []segment {
	segments := make([]segment, 0)
	start := 0

	for _, loc := range sentenceSplitRe.FindAllStringIndex(input, -1) {
		segments = append(segments, segment{start: start, end: loc[0], text: input[start:loc[0]]})
		start = loc[1]
	}

	if start < len(input) {
		segments = append(segments, segment{start: start, end: len(input), text: input[start:]})
	}

	return segments
}

// fallbackTitle derives a title from the segment enclosing the date. A
// segment that holds nothing but the date (users often end the sentence
// right before it) borrows the nearest preceding segment instead.
func fallbackTitle(segments []segment, dateOffset int, dateText string) string {
	enclosing := -1

	for i, seg := range segments {
		if dateOffset >= seg.start && dateOffset < seg.end {
			enclosing = i

			break
		}
	}

	if enclosing < 0 {
		return ""
	}

	title := cleanMilestoneTitle(strings.Replace(segments[enclosing].text, dateText, "", 1))

	for i := enclosing - 1; i >= 0 && len(title) <= minFallbackTitle; i-- {
		title = cleanMilestoneTitle(segments[i].text)
	}

	return title
}
