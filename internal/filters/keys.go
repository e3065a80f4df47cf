// Package filters holds the dashboard filter selections and the functions
// that narrow generated datasets down to them.
package filters

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a filter value is not one of the enumerated keys.
var ErrUnknownKey = errors.New("unknown filter key")

// Domain selects a business domain. DomainAll disables the filter.
type Domain int

const (
	DomainAll Domain = iota
	DomainGeneral
	DomainCoding
	DomainEducation
	DomainMedical
	DomainFinance
	DomainInfrastructure
	DomainLegal
)

// Domains lists every selectable domain, DomainAll first.
var Domains = []Domain{
	DomainAll, DomainGeneral, DomainCoding, DomainEducation,
	DomainMedical, DomainFinance, DomainInfrastructure, DomainLegal,
}

// Key is the query-string value of the domain.
func (d Domain) Key() string {
	switch d {
	case DomainAll:
		return "all"
	case DomainGeneral:
		return "general"
	case DomainCoding:
		return "coding"
	case DomainEducation:
		return "education"
	case DomainMedical:
		return "medical"
	case DomainFinance:
		return "finance"
	case DomainInfrastructure:
		return "infrastructure"
	case DomainLegal:
		return "legal"
	}
	return ""
}

// Label is the domain name as emitted by the generator.
func (d Domain) Label() string {
	switch d {
	case DomainAll:
		return "All Domains"
	case DomainGeneral:
		return "General"
	case DomainCoding:
		return "Coding"
	case DomainEducation:
		return "Education"
	case DomainMedical:
		return "Medical"
	case DomainFinance:
		return "Finance"
	case DomainInfrastructure:
		return "Tech Infrastructure"
	case DomainLegal:
		return "Law"
	}
	return ""
}

// ParseDomain maps a query value to a Domain. The empty string means all.
func ParseDomain(s string) (Domain, error) {
	return parseKey(s, "domain", Domains, Domain.Key)
}

// Language selects a natural language. LanguageAll disables the filter.
type Language int

const (
	LanguageAll Language = iota
	LanguageEnglish
	LanguageHindi
	LanguagePortuguese
	LanguageKorean
	LanguageChinese
	LanguagePolish
	LanguageRussian
	LanguageSpanish
	LanguageJapanese
	LanguageTurkish
	LanguageArabic
)

// Languages lists every selectable language, LanguageAll first.
var Languages = []Language{
	LanguageAll, LanguageEnglish, LanguageHindi, LanguagePortuguese,
	LanguageKorean, LanguageChinese, LanguagePolish, LanguageRussian,
	LanguageSpanish, LanguageJapanese, LanguageTurkish, LanguageArabic,
}

func (l Language) Key() string {
	switch l {
	case LanguageAll:
		return "all"
	case LanguageEnglish:
		return "english"
	case LanguageHindi:
		return "hindi"
	case LanguagePortuguese:
		return "portuguese"
	case LanguageKorean:
		return "korean"
	case LanguageChinese:
		return "chinese"
	case LanguagePolish:
		return "polish"
	case LanguageRussian:
		return "russian"
	case LanguageSpanish:
		return "spanish"
	case LanguageJapanese:
		return "japanese"
	case LanguageTurkish:
		return "turkish"
	case LanguageArabic:
		return "arabic"
	}
	return ""
}

func (l Language) Label() string {
	switch l {
	case LanguageAll:
		return "All Languages"
	case LanguageEnglish:
		return "English"
	case LanguageHindi:
		return "Hindi"
	case LanguagePortuguese:
		return "Portuguese"
	case LanguageKorean:
		return "Korean"
	case LanguageChinese:
		return "Chinese"
	case LanguagePolish:
		return "Polish"
	case LanguageRussian:
		return "Russian"
	case LanguageSpanish:
		return "Spanish"
	case LanguageJapanese:
		return "Japanese"
	case LanguageTurkish:
		return "Turkish"
	case LanguageArabic:
		return "Arabic"
	}
	return ""
}

// ParseLanguage maps a query value to a Language. The empty string means all.
func ParseLanguage(s string) (Language, error) {
	return parseKey(s, "language", Languages, Language.Key)
}

// ModelVersion selects a model line. ModelAll disables the filter.
type ModelVersion int

const (
	ModelAll ModelVersion = iota
	ModelAFM
	ModelGPT5
	ModelClaudeOpus4
	ModelO3O4
)

// ModelVersions lists every selectable model, ModelAll first.
var ModelVersions = []ModelVersion{ModelAll, ModelAFM, ModelGPT5, ModelClaudeOpus4, ModelO3O4}

func (m ModelVersion) Key() string {
	switch m {
	case ModelAll:
		return "all"
	case ModelAFM:
		return "afm"
	case ModelGPT5:
		return "gpt-5"
	case ModelClaudeOpus4:
		return "claude-opus-4"
	case ModelO3O4:
		return "o3-o4"
	}
	return ""
}

// Label is the model name as emitted by the generator.
func (m ModelVersion) Label() string {
	switch m {
	case ModelAll:
		return "All Models"
	case ModelAFM:
		return "AFM (Ours)"
	case ModelGPT5:
		return "GPT-5"
	case ModelClaudeOpus4:
		return "Claude Opus 4"
	case ModelO3O4:
		return "O3/O4"
	}
	return ""
}

// ParseModelVersion maps a query value to a ModelVersion. The empty string means all.
func ParseModelVersion(s string) (ModelVersion, error) {
	return parseKey(s, "model", ModelVersions, ModelVersion.Key)
}

// Section is a dashboard view.
type Section int

const (
	SectionOverview Section = iota
	SectionTaxonomy
	SectionDomain
	SectionMultilingual
	SectionTraining
	SectionInsights
)

// Sections lists the views in navigation order.
var Sections = []Section{
	SectionOverview, SectionTaxonomy, SectionDomain,
	SectionMultilingual, SectionTraining, SectionInsights,
}

func (s Section) Key() string {
	switch s {
	case SectionOverview:
		return "overview"
	case SectionTaxonomy:
		return "taxonomy"
	case SectionDomain:
		return "domain"
	case SectionMultilingual:
		return "multilingual"
	case SectionTraining:
		return "training"
	case SectionInsights:
		return "insights"
	}
	return ""
}

func (s Section) Label() string {
	switch s {
	case SectionOverview:
		return "Performance Overview"
	case SectionTaxonomy:
		return "Taxonomy Analysis"
	case SectionDomain:
		return "Domain Breakdown"
	case SectionMultilingual:
		return "Multilingual Insights"
	case SectionTraining:
		return "Training Impact"
	case SectionInsights:
		return "AI Insights"
	}
	return ""
}

// ParseSection maps a query value to a Section. The empty string means overview.
func ParseSection(s string) (Section, error) {
	return parseKey(s, "section", Sections, Section.Key)
}

// LanguageSortKey is a sortable column of the language table.
type LanguageSortKey int

const (
	SortByWinRate LanguageSortKey = iota
	SortByEvaluationVolume
	SortByAvgRubricScore
	SortByImprovementTrend
)

// LanguageSortKeys lists the sortable language columns.
var LanguageSortKeys = []LanguageSortKey{
	SortByWinRate, SortByEvaluationVolume, SortByAvgRubricScore, SortByImprovementTrend,
}

func (k LanguageSortKey) Key() string {
	switch k {
	case SortByWinRate:
		return "win_rate"
	case SortByEvaluationVolume:
		return "evaluation_volume"
	case SortByAvgRubricScore:
		return "avg_rubric_score"
	case SortByImprovementTrend:
		return "improvement_trend"
	}
	return ""
}

// ParseLanguageSortKey maps a query value to a sort column. The empty string means win rate.
func ParseLanguageSortKey(s string) (LanguageSortKey, error) {
	return parseKey(s, "sort", LanguageSortKeys, LanguageSortKey.Key)
}

// parseKey resolves s against the Key of each option. The first option is the default.
func parseKey[T comparable](s, kind string, options []T, key func(T) string) (T, error) {
	if s == "" {
		return options[0], nil
	}
	for _, o := range options {
		if key(o) == s {
			return o, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrUnknownKey, kind, s)
}
