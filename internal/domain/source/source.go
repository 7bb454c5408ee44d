// Package source models a single SauceNAO match as one of a closed set of
// variants keyed by the index it came from.
package source

import (
	"maps"
	"slices"
	"strconv"

	"github.com/kailas-cloud/saucenao/internal/domain/result"
)

// Source is the contract shared by every variant.
type Source interface {
	Category() Category
	Similarity() float64
	Thumbnail() string
	// Title may hold a URL: some indexes only provide a "source" field,
	// which is used as the title verbatim.
	Title() string
	AuthorName() string
	AuthorURL() string
	URL() string
	URLs() []string
	// SourceURL is the link most likely to point at the original work.
	SourceURL() string
	IndexID() int
	IndexName() string
	Index() string
	Data() map[string]any
}

// Record holds the attributes common to all variants.
// Optional attributes are empty when the API did not send them.
type Record struct {
	category   Category
	similarity float64
	thumbnail  string
	title      string
	authorName string
	authorURL  string
	url        string
	urls       []string
	indexID    int
	indexName  string
	index      string
	data       map[string]any
}

func newRecord(c Category, raw result.Raw) Record {
	data := raw.Data
	if data == nil {
		data = map[string]any{}
	}
	r := Record{
		category:   c,
		similarity: float64(raw.Header.Similarity),
		thumbnail:  string(raw.Header.Thumbnail),
		indexID:    int(raw.Header.IndexID),
		indexName:  string(raw.Header.IndexName),
		data:       data,
	}
	r.index, _ = IndexName(r.indexID)

	if k, ok := firstKey(data, "title", "eng_name", "material", "source"); ok {
		r.title, _ = stringField(data, k)
	}
	if k, ok := firstKey(data, "member_name", "creator"); ok {
		r.authorName, _ = leadString(data, k)
	}

	r.urls = stringList(data, "ext_urls")
	if len(r.urls) > 0 {
		r.url = r.urls[0]
	}

	if _, ok := data["author_url"]; ok {
		r.authorURL, _ = stringField(data, "author_url")
	} else if _, ok := data["pawoo_id"]; ok && r.url != "" {
		r.authorURL = r.url
	}
	return r
}

// Category returns the variant tag.
func (r *Record) Category() Category { return r.category }

// Similarity returns the server-reported similarity percentage.
func (r *Record) Similarity() float64 { return r.similarity }

// Thumbnail returns the thumbnail URL.
func (r *Record) Thumbnail() string { return r.thumbnail }

// Title returns the title, if any.
func (r *Record) Title() string { return r.title }

// AuthorName returns the author name, if any.
func (r *Record) AuthorName() string { return r.authorName }

// AuthorURL returns the author profile URL, if any.
func (r *Record) AuthorURL() string { return r.authorURL }

// URL returns the first external URL, if any.
func (r *Record) URL() string { return r.url }

// URLs returns all external URLs.
func (r *Record) URLs() []string { return slices.Clone(r.urls) }

// SourceURL returns URL by default.
func (r *Record) SourceURL() string { return r.url }

// IndexID returns the index identifier.
func (r *Record) IndexID() int { return r.indexID }

// IndexName returns the index name as reported by the API.
func (r *Record) IndexName() string { return r.indexName }

// Index returns the known label of the index, empty for unknown ids.
func (r *Record) Index() string { return r.index }

// Data returns a shallow copy of the raw data object.
func (r *Record) Data() map[string]any { return maps.Clone(r.data) }

// Generic is a match from an index with no specialised handling.
type Generic struct {
	Record
}

// Pixiv is a match from Pixiv, the most likely original source of an illustration.
type Pixiv struct {
	Record
	memberID int
}

const pixivMemberURL = "https://www.pixiv.net/member.php?id="

func newPixiv(raw result.Raw) *Pixiv {
	p := &Pixiv{Record: newRecord(CategoryPixiv, raw)}
	id, ok := intField(p.data, "member_id")
	if !ok {
		return p
	}
	p.memberID = id
	if _, has := stringField(p.data, "author_url"); !has {
		p.authorURL = pixivMemberURL + strconv.Itoa(id)
	}
	return p
}

// MemberID returns the Pixiv member id, zero if absent.
func (p *Pixiv) MemberID() int { return p.memberID }

// Booru is a match from an image board. Rarely the original source itself,
// but often links to it.
type Booru struct {
	Record
	danbooruID int
	gelbooruID int
	characters []string
	material   []string
	source     string
}

func newBooru(raw result.Raw) *Booru {
	b := &Booru{Record: newRecord(CategoryBooru, raw)}
	b.danbooruID, _ = intField(b.data, "danbooru_id")
	b.gelbooruID, _ = intField(b.data, "gelbooru_id")
	if s, ok := stringField(b.data, "characters"); ok {
		b.characters = splitTags(s)
	}
	if s, ok := stringField(b.data, "material"); ok {
		b.material = splitTags(s)
	}
	b.source, _ = stringField(b.data, "source")
	return b
}

// SourceURL prefers the linked original source over the board page.
func (b *Booru) SourceURL() string {
	if b.source != "" {
		return b.source
	}
	return b.url
}

// DanbooruID returns the Danbooru post id, zero if absent.
func (b *Booru) DanbooruID() int { return b.danbooruID }

// GelbooruID returns the Gelbooru post id, zero if absent.
func (b *Booru) GelbooruID() int { return b.gelbooruID }

// Characters returns the tagged characters.
func (b *Booru) Characters() []string { return slices.Clone(b.characters) }

// Material returns the tagged source material.
func (b *Booru) Material() []string { return slices.Clone(b.material) }

// Video is a match from a movie or TV index.
type Video struct {
	Record
	episode   string
	timestamp string
	year      string
}

func newVideo(c Category, raw result.Raw) Video {
	v := Video{Record: newRecord(c, raw)}
	v.episode, _ = stringField(v.data, "part")
	v.timestamp, _ = stringField(v.data, "est_time")
	v.year, _ = stringField(v.data, "year")
	return v
}

// Episode returns the episode, if any.
func (v *Video) Episode() string { return v.episode }

// Timestamp returns the estimated timestamp ("00:12:34 / 00:24:00"), if any.
func (v *Video) Timestamp() string { return v.timestamp }

// Year returns the release year or range, if any.
func (v *Video) Year() string { return v.year }

// Manga is a match from a manga or doujinshi index.
type Manga struct {
	Record
	chapter string
}

func newManga(raw result.Raw) *Manga {
	m := &Manga{Record: newRecord(CategoryManga, raw)}
	m.chapter, _ = stringField(m.data, "part")
	if k, ok := firstKey(m.data, "author", "creator"); ok {
		m.authorName, _ = leadString(m.data, k)
	}
	return m
}

// Chapter returns the chapter, if any.
func (m *Manga) Chapter() string { return m.chapter }
