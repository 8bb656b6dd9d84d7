package source

import (
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"bazaar-engine/internal/domain"
)

// parseDirectory extracts records from a server-rendered directory page
// (format "html"). These pages carry one .listing element per record
// with the usual child classes; anything unreadable is skipped rather
// than failing the whole page.
func parseDirectory(r io.Reader) ([]domain.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []domain.Record

	doc.Find(".listing").Each(func(i int, sel *goquery.Selection) {
		rec := domain.Record{
			Name:        cleanText(sel.Find(".name").First().Text()),
			Description: cleanText(sel.Find(".description").First().Text()),
			Category:    cleanText(sel.Find(".category").First().Text()),
			Price:       domain.Price(cleanText(sel.Find(".price").First().Text())),
		}
		if rec.Name == "" {
			// some directories wrap the name in the heading instead
			rec.Name = cleanText(sel.Find("h3").First().Text())
		}

		if id, ok := sel.Attr("data-id"); ok {
			rec.ID = strings.TrimSpace(id)
		}
		if rec.ID == "" {
			rec.ID = "row:" + strconv.Itoa(i)
		}
		if seen[rec.ID] {
			return
		}
		seen[rec.ID] = true

		if loc := cleanText(sel.Find(".location").First().Text()); loc != "" {
			rec.Location = domain.Location{Raw: loc}
		}
		if stage := cleanText(sel.Find(".stage").First().Text()); stage != "" {
			rec.Stage = stage
		}
		if rec.Name == "" && rec.Description == "" {
			return
		}
		out = append(out, rec)
	})

	return out, nil
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
