package notion

import (
	"cour/internal/mapper"
	"cour/internal/textutil"
)

// Placeholders written when a mapped field is blank.
const (
	PlaceholderTitle   = "タイトル不明"
	PlaceholderSeason  = "未設定"
	PlaceholderUnknown = "不明"
)

// Properties maps record fields to destination database property names. An
// empty name omits that property from the payload.
type Properties struct {
	Title        string `toml:"title" json:"title"`
	Season       string `toml:"season" json:"season"`
	Studio       string `toml:"studio" json:"studio"`
	OfficialSite string `toml:"official_site" json:"official_site"`
	Director     string `toml:"director" json:"director"`
	Cast         string `toml:"cast" json:"cast"`
	Staff        string `toml:"staff" json:"staff"`
	Episodes     string `toml:"episodes" json:"episodes"`
	Image        string `toml:"image" json:"image"`
}

// DefaultProperties returns the property names of the reference database
// layout. The episode and image properties are not part of that layout and
// are off by default; teaser images are still sent as the page cover.
func DefaultProperties() Properties {
	return Properties{
		Title:        "作品名",
		Season:       "放送時期",
		Studio:       "制作会社",
		OfficialSite: "公式サイト",
		Director:     "監督",
		Cast:         "声優",
		Staff:        "スタッフ",
	}
}

// Payload is the create-page request body.
type Payload struct {
	Parent     Parent         `json:"parent"`
	Properties map[string]any `json:"properties"`
	Cover      *File          `json:"cover,omitempty"`
}

// Parent identifies the destination database.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// File is an externally hosted file reference.
type File struct {
	Type     string       `json:"type"`
	External ExternalFile `json:"external"`
}

// ExternalFile holds the URL of an externally hosted file.
type ExternalFile struct {
	URL string `json:"url"`
}

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Text textContent `json:"text"`
}

type titleProperty struct {
	Title []richText `json:"title"`
}

type richTextProperty struct {
	RichText []richText `json:"rich_text"`
}

type selectOption struct {
	Name string `json:"name"`
}

type selectProperty struct {
	Select selectOption `json:"select"`
}

type urlProperty struct {
	URL *string `json:"url"`
}

type numberProperty struct {
	Number int `json:"number"`
}

// BuildPayload assembles the create-page body for record. Blank strings are
// replaced with placeholders; the URL stays null and the episode count stays
// numeric so they remain distinguishable from missing text.
func BuildPayload(databaseID string, record mapper.Record, props Properties) Payload {
	properties := make(map[string]any, 9)
	set := func(name string, value any) {
		if name != "" {
			properties[name] = value
		}
	}

	set(props.Title, titleProperty{Title: text(textutil.Coalesce(record.Title, PlaceholderTitle))})
	set(props.Season, selectProperty{Select: selectOption{Name: textutil.Coalesce(record.SeasonLabel, PlaceholderSeason)}})
	set(props.Studio, richTextProperty{RichText: text(textutil.Coalesce(record.Studio, PlaceholderUnknown))})
	set(props.OfficialSite, urlProperty{URL: optionalURL(record.OfficialSiteURL)})
	set(props.Director, richTextProperty{RichText: text(textutil.Coalesce(record.Director, PlaceholderUnknown))})
	set(props.Cast, richTextProperty{RichText: text(textutil.Coalesce(record.CastSummary, PlaceholderUnknown))})
	set(props.Staff, richTextProperty{RichText: text(textutil.Coalesce(record.StaffSummary, PlaceholderUnknown))})
	set(props.Episodes, numberProperty{Number: record.EpisodeCount})
	if record.ImageURL != "" {
		set(props.Image, urlProperty{URL: optionalURL(record.ImageURL)})
	}

	payload := Payload{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: properties,
	}
	if record.ImageURL != "" {
		payload.Cover = &File{Type: "external", External: ExternalFile{URL: record.ImageURL}}
	}
	return payload
}

func text(content string) []richText {
	return []richText{{Text: textContent{Content: content}}}
}

func optionalURL(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
