package catalog

// StaffMember is a named contributor with a free-text role label.
type StaffMember struct {
	Name     string `json:"name"`
	RoleText string `json:"role_text"`
}

// CastMember is a voice performer paired with the character they voice.
type CastMember struct {
	Name          string `json:"name"`
	CharacterName string `json:"character_name,omitempty"`
}

// Work is one catalogued title airing in a broadcast season.
//
// SeasonYear is zero when the source embeds the year in SeasonName
// ("2025-spring"). EpisodesCount is nil when the source does not report it.
type Work struct {
	Title           string        `json:"title"`
	SeasonName      string        `json:"season_name"`
	SeasonYear      int           `json:"season_year,omitempty"`
	EpisodesCount   *int          `json:"episodes_count,omitempty"`
	OfficialSiteURL string        `json:"official_site_url,omitempty"`
	Medium          string        `json:"medium,omitempty"`
	ImageURL        string        `json:"image_url,omitempty"`
	Staff           []StaffMember `json:"staff,omitempty"`
	Cast            []CastMember  `json:"cast,omitempty"`
}

// FilterMedium returns the works whose medium does not equal excluded. The
// comparison is exact and case-sensitive. An empty excluded value keeps every
// work. Source order is preserved.
func FilterMedium(works []Work, excluded string) []Work {
	if excluded == "" {
		return works
	}
	kept := make([]Work, 0, len(works))
	for _, work := range works {
		if work.Medium == excluded {
			continue
		}
		kept = append(kept, work)
	}
	return kept
}
