package location

import (
	"net/url"
	"strings"

	"github.com/straye-as/estimate-api/internal/domain"
)

const searchURL = "https://www.google.com/search?q="

// BuildSearchLinks returns the four permit and code searches offered with
// every estimate, in display order. Queries name the resolved city and state
// when there are any and fall back to the postal code otherwise.
func BuildSearchLinks(zip string, guess domain.LocationGuess) []domain.SearchLink {
	permits := query(guess, "building department permit", "permit office "+zip)
	inspections := query(guess, "inspection scheduling", "inspection scheduling "+zip)
	codes := query(guess, "adopted building code", "adopted building code "+zip)

	return []domain.SearchLink{
		link("Find local Building Department (AHJ)", permits),
		link("Permit applications & fees", permits+" application fee"),
		link("Inspection scheduling", inspections),
		link("Adopted codes (best-effort)", codes),
	}
}

func query(guess domain.LocationGuess, topic, fallback string) string {
	place := make([]string, 0, 3)
	for _, part := range []string{guess.City, guess.State} {
		if p := strings.TrimSpace(part); p != "" {
			place = append(place, p)
		}
	}
	if len(place) == 0 {
		return strings.TrimSpace(fallback)
	}
	return strings.Join(append(place, topic), " ")
}

func link(label, q string) domain.SearchLink {
	return domain.SearchLink{Label: label, URL: searchURL + url.QueryEscape(q)}
}
