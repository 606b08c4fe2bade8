package mapper

import (
	"fmt"
	"strings"

	"cour/internal/catalog"
	"cour/internal/season"
	"cour/internal/textutil"
)

// DefaultMaxTextLength bounds the staff and cast summaries. It matches the
// destination's per-block rich-text limit.
const DefaultMaxTextLength = 2000

const (
	listSeparator    = ", "
	unknownCastName  = "不明"
	unknownCharacter = "？"
)

// Record is the destination-ready view of one work. String fields may be
// empty; placeholder substitution happens when the payload is built.
type Record struct {
	Title           string `json:"title"`
	SeasonLabel     string `json:"season_label"`
	Studio          string `json:"studio"`
	Director        string `json:"director"`
	StaffSummary    string `json:"staff_summary"`
	CastSummary     string `json:"cast_summary"`
	OfficialSiteURL string `json:"official_site_url,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	EpisodeCount    int    `json:"episode_count"`
}

// Mapper converts works into records under a fixed set of rules.
type Mapper struct {
	director      RoleMatcher
	studio        RoleMatcher
	maxTextLength int
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithDirectorRule overrides the director matching rule.
func WithDirectorRule(rule RoleMatcher) Option {
	return func(m *Mapper) {
		m.director = rule
	}
}

// WithStudioRule overrides the studio matching rule.
func WithStudioRule(rule RoleMatcher) Option {
	return func(m *Mapper) {
		m.studio = rule
	}
}

// WithMaxTextLength overrides the summary truncation bound. Non-positive
// values are ignored.
func WithMaxTextLength(limit int) Option {
	return func(m *Mapper) {
		if limit > 0 {
			m.maxTextLength = limit
		}
	}
}

// New returns a Mapper with the canonical rules: exact director match,
// substring studio match, 2000-character summaries.
func New(opts ...Option) *Mapper {
	m := &Mapper{
		director:      ExactRole(DirectorRole),
		studio:        ContainsRole(StudioRole),
		maxTextLength: DefaultMaxTextLength,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map converts work using the canonical rules.
func Map(work catalog.Work) Record {
	return New().Map(work)
}

// Map converts one work. It never fails; absent sub-fields degrade to empty
// strings or zero.
func (m *Mapper) Map(work catalog.Work) Record {
	record := Record{
		Title:           work.Title,
		SeasonLabel:     season.Label(work.SeasonName, work.SeasonYear),
		Director:        joinNames(work.Staff, m.director),
		Studio:          joinNames(work.Staff, m.studio),
		StaffSummary:    textutil.Truncate(staffSummary(work.Staff), m.maxTextLength),
		CastSummary:     textutil.Truncate(castSummary(work.Cast), m.maxTextLength),
		OfficialSiteURL: strings.TrimSpace(work.OfficialSiteURL),
		ImageURL:        strings.TrimSpace(work.ImageURL),
	}
	if work.EpisodesCount != nil {
		record.EpisodeCount = *work.EpisodesCount
	}
	return record
}

// Rules describes the active matching rules for logging.
func (m *Mapper) Rules() (director, studio string, maxTextLength int) {
	return m.director.String(), m.studio.String(), m.maxTextLength
}

func joinNames(staff []catalog.StaffMember, rule RoleMatcher) string {
	names := make([]string, 0, len(staff))
	for _, member := range staff {
		if rule.Match(member.RoleText) {
			names = append(names, member.Name)
		}
	}
	return strings.Join(names, listSeparator)
}

func staffSummary(staff []catalog.StaffMember) string {
	entries := make([]string, 0, len(staff))
	for _, member := range staff {
		entries = append(entries, member.RoleText+":"+member.Name)
	}
	return strings.Join(entries, listSeparator)
}

func castSummary(cast []catalog.CastMember) string {
	entries := make([]string, 0, len(cast))
	for _, member := range cast {
		entries = append(entries, fmt.Sprintf("%s（%s）",
			textutil.Coalesce(member.Name, unknownCastName),
			textutil.Coalesce(member.CharacterName, unknownCharacter),
		))
	}
	return strings.Join(entries, listSeparator)
}
