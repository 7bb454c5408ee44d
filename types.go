package saucenao

import (
	"github.com/kailas-cloud/saucenao/internal/domain/lookup"
	"github.com/kailas-cloud/saucenao/internal/domain/source"
)

// Results is the ordered, classified outcome of a lookup plus account quota.
type Results = lookup.Results

// Diagnostic is the outcome of Client.Test.
type Diagnostic = lookup.Diagnostic

// Account is the quota snapshot returned with every response.
type Account = lookup.Account

// Tier is the label of an account type.
type Tier = lookup.Tier

// Account tiers.
const (
	TierUnregistered = lookup.TierUnregistered
	TierFree         = lookup.TierFree
	TierEnhanced     = lookup.TierEnhanced
	TierUnknown      = lookup.TierUnknown
)

// Source is a classified match. Type-switch on the pointer variants below
// for index specific fields.
type Source = source.Source

// Record variants.
type (
	Generic = source.Generic
	Pixiv   = source.Pixiv
	Booru   = source.Booru
	Video   = source.Video
	Anime   = source.Anime
	Manga   = source.Manga
)

// Category tags the variant a match was classified into.
type Category = source.Category

// Categories.
const (
	CategoryGeneric = source.CategoryGeneric
	CategoryPixiv   = source.CategoryPixiv
	CategoryBooru   = source.CategoryBooru
	CategoryVideo   = source.CategoryVideo
	CategoryAnime   = source.CategoryAnime
	CategoryManga   = source.CategoryManga
)

// Relations maps an anime provider to its id.
type Relations = source.Relations

// Relation providers.
const (
	ProviderAniDB   = source.ProviderAniDB
	ProviderAniList = source.ProviderAniList
	ProviderMAL     = source.ProviderMAL
	ProviderKitsu   = source.ProviderKitsu
)

// Phase is the relation resolution state of an Anime match.
type Phase = source.Phase

// Relation resolution phases.
const (
	Unresolved        = source.Unresolved
	ResolvedEmpty     = source.ResolvedEmpty
	ResolvedPopulated = source.ResolvedPopulated
)

// IndexName returns the label of a known SauceNAO index.
func IndexName(indexID int) (string, bool) {
	return source.IndexName(indexID)
}
