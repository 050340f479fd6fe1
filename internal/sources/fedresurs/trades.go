package fedresurs

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TradesTitle is the heading of the trades block on a card page.
const TradesTitle = "Торги"

// maxSectionClimb bounds how far above the heading a container is searched.
const maxSectionClimb = 6

var (
	tradeMarkers   = []string{"МЭТС", "ЭТП", "LOT", "№"}
	sectionMarkers = []string{"card", "section", "block"}
)

// CountTrades counts the trades listed on a public card page. found reports
// whether a trades block exists at all.
//
// Inside the block, links whose text carries a trade number marker (МЭТС,
// ЭТП, LOT, №) are counted. When no link qualifies, list items and rows are
// counted instead.
func CountTrades(r io.Reader) (count int, found bool) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return 0, false
	}

	block := findSection(doc, TradesTitle)
	if block == nil {
		return 0, false
	}

	block.Find("a").Each(func(_ int, s *goquery.Selection) {
		text := strings.ToUpper(strings.TrimSpace(s.Text()))
		for _, marker := range tradeMarkers {
			if strings.Contains(text, marker) {
				count++
				return
			}
		}
	})

	if count == 0 {
		if rows := block.Find("li, .row, .table-row").Length(); rows > 0 {
			return rows, true
		}
	}
	return count, true
}

// findSection returns the nearest section-like container above the first
// element whose whole text is title.
func findSection(doc *goquery.Document, title string) *goquery.Selection {
	var section *goquery.Selection
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(s.Text()), title) {
			return true
		}
		cur := s
		for i := 0; i < maxSectionClimb && cur.Length() > 0; i++ {
			if looksLikeSection(cur) {
				section = cur
				return false
			}
			cur = cur.Parent()
		}
		return true
	})
	return section
}

func looksLikeSection(s *goquery.Selection) bool {
	if goquery.NodeName(s) == "section" {
		return true
	}
	class := strings.ToLower(s.AttrOr("class", ""))
	for _, marker := range sectionMarkers {
		if strings.Contains(class, marker) {
			return true
		}
	}
	return false
}
