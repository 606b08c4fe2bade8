package annict

import (
	"bytes"
	"encoding/json"
	"strings"

	"cour/internal/catalog"
	"cour/internal/season"
)

type graphQLResponse struct {
	Data   *responseData  `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type responseData struct {
	SearchWorks *struct {
		Nodes nodeList[rawWork] `json:"nodes"`
	} `json:"searchWorks"`
}

type rawWork struct {
	Title           string             `json:"title"`
	SeasonName      string             `json:"seasonName"`
	SeasonYear      *int               `json:"seasonYear"`
	EpisodesCount   *int               `json:"episodesCount"`
	OfficialSiteURL *string            `json:"officialSiteUrl"`
	Media           *string            `json:"media"`
	Image           imageRef           `json:"image"`
	Images          imageRef           `json:"images"`
	Staffs          nodeList[rawStaff] `json:"staffs"`
	Casts           nodeList[rawCast]  `json:"casts"`
}

type rawStaff struct {
	Name     string `json:"name"`
	RoleText string `json:"roleText"`
}

type rawCast struct {
	Name      string `json:"name"`
	Character *struct {
		Name string `json:"name"`
	} `json:"character"`
}

// nodeList accepts a connection wrapper ({"nodes": [...]}), an edge list
// ({"edges": [{"node": ...}]}), a flat array, or null.
type nodeList[T any] []T

func (l *nodeList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var wrapper struct {
		Nodes []T `json:"nodes"`
		Edges []struct {
			Node T `json:"node"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	if len(wrapper.Nodes) > 0 || len(wrapper.Edges) == 0 {
		*l = wrapper.Nodes
		return nil
	}
	items := make([]T, 0, len(wrapper.Edges))
	for _, edge := range wrapper.Edges {
		items = append(items, edge.Node)
	}
	*l = items
	return nil
}

// imageRef resolves to the first available image URL from either a single
// image object or a list of them.
type imageRef string

type rawImage struct {
	RecommendedImageURL string `json:"recommendedImageUrl"`
	URL                 string `json:"url"`
	FacebookOGImageURL  string `json:"facebookOgImageUrl"`
	TwitterImageURL     string `json:"twitterNormalAvatarUrl"`
}

func (i rawImage) first() string {
	for _, candidate := range []string{i.RecommendedImageURL, i.URL, i.FacebookOGImageURL, i.TwitterImageURL} {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return candidate
		}
	}
	return ""
}

func (r *imageRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = ""
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '[':
		var images []rawImage
		if err := json.Unmarshal(data, &images); err != nil {
			return err
		}
		for _, image := range images {
			if url := image.first(); url != "" {
				*r = imageRef(url)
				return nil
			}
		}
	case '{':
		var image rawImage
		if err := json.Unmarshal(data, &image); err != nil {
			return err
		}
		*r = imageRef(image.first())
	case '"':
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		*r = imageRef(strings.TrimSpace(url))
	}
	return nil
}

// normalize converts one raw GraphQL node into the canonical work shape.
func (w rawWork) normalize() catalog.Work {
	work := catalog.Work{
		Title:         w.Title,
		SeasonName:    strings.TrimSpace(w.SeasonName),
		EpisodesCount: w.EpisodesCount,
		ImageURL:      string(w.Image),
	}
	if work.ImageURL == "" {
		work.ImageURL = string(w.Images)
	}
	if w.SeasonYear != nil {
		work.SeasonYear = *w.SeasonYear
	}
	if work.SeasonYear <= 0 {
		if year, name, ok := season.Split(work.SeasonName); ok {
			work.SeasonYear = year
			work.SeasonName = name
		}
	}
	if w.OfficialSiteURL != nil {
		work.OfficialSiteURL = strings.TrimSpace(*w.OfficialSiteURL)
	}
	if w.Media != nil {
		work.Medium = *w.Media
	}
	if len(w.Staffs) > 0 {
		work.Staff = make([]catalog.StaffMember, 0, len(w.Staffs))
		for _, staff := range w.Staffs {
			work.Staff = append(work.Staff, catalog.StaffMember{Name: staff.Name, RoleText: staff.RoleText})
		}
	}
	if len(w.Casts) > 0 {
		work.Cast = make([]catalog.CastMember, 0, len(w.Casts))
		for _, cast := range w.Casts {
			member := catalog.CastMember{Name: cast.Name}
			if cast.Character != nil {
				member.CharacterName = cast.Character.Name
			}
			work.Cast = append(work.Cast, member)
		}
	}
	return work
}
