package selection

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

// composeContentBody builds the HTML body of the content panel: title,
// address, photos, the year-round flag text, the accessibility flag if
// set, and up to five venue entries in provider order.
func composeContentBody(c types.EnrichmentContent) string {
	var b strings.Builder

	b.WriteString("<h3>" + html.EscapeString(c.Title) + "</h3>")
	if c.Address != "" {
		b.WriteString("<p>" + html.EscapeString(c.Address) + "</p>")
	}
	for _, photo := range c.PhotoURLs {
		b.WriteString(`<img src="` + html.EscapeString(photo) + `" alt="` + html.EscapeString(c.Title) + `">`)
	}

	if c.OpenYearRound {
		b.WriteString("<p>Open year round</p>")
	} else {
		b.WriteString("<p>Closed during winter</p>")
	}
	if c.HandicapAccessible {
		b.WriteString("<p>Handicap accessible</p>")
	}

	if len(c.Venues) > 0 {
		b.WriteString("<h4>Nearby venues</h4><ul>")
		for _, v := range c.Venues {
			b.WriteString("<li>" + html.EscapeString(v.Name))
			if v.Category != "" {
				b.WriteString(" (" + html.EscapeString(v.Category) + ")")
			}
			for _, line := range v.AddressLines {
				b.WriteString("<br>" + html.EscapeString(line))
			}
			if v.Phone != "" {
				b.WriteString("<br>" + html.EscapeString(v.Phone))
			}
			if v.URL != "" {
				b.WriteString(`<br><a href="` + html.EscapeString(v.URL) + `">` + html.EscapeString(v.URL) + "</a>")
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
	}

	return b.String()
}

// composeErrorBody renders the error panel: a short human-readable
// message embedding the failure status or reason.
func composeErrorBody(err error) string {
	var detailsErr *types.DetailsLookupError
	if errors.As(err, &detailsErr) {
		return fmt.Sprintf("<p>Could not load place details: %s</p>", html.EscapeString(detailsErr.Status))
	}
	var venuesErr *types.VenuesLookupError
	if errors.As(err, &venuesErr) {
		return fmt.Sprintf("<p>Could not load nearby venues: %s</p>", html.EscapeString(venuesErr.Reason))
	}
	return fmt.Sprintf("<p>Could not load location data: %s</p>", html.EscapeString(err.Error()))
}
