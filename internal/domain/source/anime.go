package source

import (
	"context"
	"maps"
	"strconv"
	"sync"

	"github.com/kailas-cloud/saucenao/internal/domain/result"
)

// Relation providers known to the id mapping service.
const (
	ProviderAniDB   = "anidb"
	ProviderAniList = "anilist"
	ProviderMAL     = "myanimelist"
	ProviderKitsu   = "kitsu"
)

// Relations maps a provider name to the anime id on that provider.
type Relations map[string]int

// Get returns the id for a provider.
func (r Relations) Get(provider string) (int, bool) {
	id, ok := r[provider]
	return id, ok && id != 0
}

// Resolver looks up cross-provider ids for an AniDB anime id.
// Implementations fail soft: any error yields an empty mapping.
type Resolver interface {
	Resolve(ctx context.Context, anidbID int) Relations
}

// Phase is the resolution state of an anime's relations.
type Phase int

// Relation resolution phases.
const (
	Unresolved Phase = iota
	ResolvedEmpty
	ResolvedPopulated
)

func (p Phase) String() string {
	switch p {
	case Unresolved:
		return "unresolved"
	case ResolvedEmpty:
		return "resolved_empty"
	case ResolvedPopulated:
		return "resolved_populated"
	default:
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Anime is a match from an anime index. Cross-provider ids are fetched on
// demand with LoadIDs and memoized for the lifetime of the record.
type Anime struct {
	Video
	anidbID  int
	resolver Resolver

	mu    sync.Mutex
	phase Phase
	ids   Relations
}

func newAnime(raw result.Raw, resolver Resolver) *Anime {
	a := &Anime{Video: newVideo(CategoryAnime, raw), resolver: resolver}
	a.anidbID, _ = intField(a.data, "anidb_aid")
	return a
}

// LoadIDs resolves the cross-provider ids once and returns them.
// Later calls return the memoized result without touching the resolver,
// including when the first resolution came back empty. An empty result
// obtained after ctx was cancelled is not memoized.
func (a *Anime) LoadIDs(ctx context.Context) Relations {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase == Unresolved {
		var ids Relations
		if a.resolver != nil && a.anidbID > 0 {
			ids = a.resolver.Resolve(ctx, a.anidbID)
		}
		if len(ids) == 0 && ctx.Err() != nil {
			return Relations{}
		}
		a.ids = maps.Clone(ids)
		if len(a.ids) == 0 {
			a.phase = ResolvedEmpty
		} else {
			a.phase = ResolvedPopulated
		}
	}
	return maps.Clone(a.ids)
}

// Phase reports whether LoadIDs has run and what it found.
func (a *Anime) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// AniDBID returns the AniDB id from the match data, zero if absent.
func (a *Anime) AniDBID() int { return a.anidbID }

// AniListID returns the AniList id. False until LoadIDs found one.
func (a *Anime) AniListID() (int, bool) { return a.relation(ProviderAniList) }

// MALID returns the MyAnimeList id. False until LoadIDs found one.
func (a *Anime) MALID() (int, bool) { return a.relation(ProviderMAL) }

// KitsuID returns the Kitsu id. False until LoadIDs found one.
func (a *Anime) KitsuID() (int, bool) { return a.relation(ProviderKitsu) }

func (a *Anime) relation(provider string) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ids.Get(provider)
}

// AniDBURL returns the AniDB page, empty without an id.
func (a *Anime) AniDBURL() string {
	if a.anidbID == 0 {
		return ""
	}
	return "https://anidb.net/anime/" + strconv.Itoa(a.anidbID)
}

// AniListURL returns the AniList page once resolved.
func (a *Anime) AniListURL() string { return a.relationURL(ProviderAniList, "https://anilist.co/anime/") }

// MALURL returns the MyAnimeList page once resolved.
func (a *Anime) MALURL() string { return a.relationURL(ProviderMAL, "https://myanimelist.net/anime/") }

// KitsuURL returns the Kitsu page once resolved.
func (a *Anime) KitsuURL() string { return a.relationURL(ProviderKitsu, "https://kitsu.io/anime/") }

func (a *Anime) relationURL(provider, prefix string) string {
	id, ok := a.relation(provider)
	if !ok {
		return ""
	}
	return prefix + strconv.Itoa(id)
}
