package textutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/saanj-studio/anthology-core/internal/models"
)

const readTimeWPM = 200

var (
	nicknamePattern = regexp.MustCompile(`(.+?)\s*"(.+?)"\s*(.+)`)
	slugStrip       = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse    = regexp.MustCompile(`[\s_-]+`)
	slugTrim        = regexp.MustCompile(`^-+|-+$`)
	hexPattern      = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)
)

// ParseAuthorName splits a display name written in the `First "Nickname" Last`
// convention. The explicit nickname field always beats a quoted segment
// embedded in the name. Names without a quoted segment split on the first
// space: first word is the first name, the rest the last name.
func ParseAuthorName(author models.Author) models.ParsedAuthorName {
	name := strings.TrimSpace(author.Name)

	parts := nicknamePattern.FindStringSubmatch(name)
	var first, parsedNick, last string
	if parts != nil {
		first = parts[1]
		parsedNick = parts[2]
		last = parts[3]
	} else {
		words := strings.Fields(name)
		if len(words) > 0 {
			first = words[0]
			last = strings.Join(words[1:], " ")
		}
	}

	nickname := author.Nickname
	if nickname == "" {
		nickname = parsedNick
	}

	return models.ParsedAuthorName{
		FirstName: first,
		Nickname:  nickname,
		LastName:  last,
	}
}

// ReadTime estimates reading time of content at 200 words per minute,
// formatted as a zero-padded minute label ("04 MIN").
func ReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + readTimeWPM - 1) / readTimeWPM
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%02d MIN", minutes)
}

// FormatDate renders an ISO date as the site's display form, month first
// with a two-digit year ("MAR 15 24"). Unparseable input is returned
// unchanged.
func FormatDate(iso string) string {
	t, err := ParseISODate(iso)
	if err != nil {
		return iso
	}
	return strings.ToUpper(t.Format("Jan 02 06"))
}

// ParseISODate accepts the date shapes the CMS emits: RFC 3339 timestamps
// and bare dates.
func ParseISODate(iso string) (time.Time, error) {
	s := strings.TrimSpace(iso)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", iso)
}

// Truncate shortens text to at most maxLen characters, appending an ellipsis.
func Truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return strings.TrimSpace(text[:maxLen]) + "..."
}

// Slugify converts free text to a URL-safe slug.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return slugTrim.ReplaceAllString(s, "")
}

// HexToRGB parses a "#rrggbb" color into its components. Returns ok=false
// for anything that is not a six-digit hex color.
func HexToRGB(hex string) (r, g, b uint8, ok bool) {
	m := hexPattern.FindStringSubmatch(strings.TrimSpace(hex))
	if m == nil {
		return 0, 0, 0, false
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(m[1]+m[2]+m[3], "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}
