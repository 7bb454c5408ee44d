package source

// Category tags the variant a match was classified into.
type Category string

// Category constants.
const (
	CategoryGeneric Category = "generic"
	CategoryPixiv   Category = "pixiv"
	CategoryBooru   Category = "booru"
	CategoryVideo   Category = "video"
	CategoryAnime   Category = "anime"
	CategoryManga   Category = "manga"
)

// CategoryOf maps an index id to its category. Order matters: the first
// matching group wins and unknown ids fall back to generic.
func CategoryOf(indexID int) Category {
	switch indexID {
	case 5, 6:
		return CategoryPixiv
	case 9, 25, 26, 29:
		return CategoryBooru
	case 21, 22:
		return CategoryAnime
	case 23, 24:
		return CategoryVideo
	case 0, 3, 16, 18, 36, 37:
		return CategoryManga
	default:
		return CategoryGeneric
	}
}

var indexes = map[int]string{
	0:  "H-Magazines",
	2:  "H-Game CG",
	3:  "DoujinshiDB",
	5:  "Pixiv",
	6:  "Pixiv (Historical)",
	8:  "Nico Nico Seiga",
	9:  "Danbooru",
	10: "drawr Images",
	11: "Nijie Images",
	12: "Yande.re",
	15: "Shutterstock",
	16: "FAKKU",
	18: "H-Misc",
	19: "2D-Market",
	20: "MediBang",
	21: "Anime",
	22: "H-Anime",
	23: "Movies",
	24: "Shows",
	25: "Gelbooru",
	26: "Konachan",
	27: "Sankaku Channel",
	28: "Anime-Pictures.net",
	29: "e621.net",
	30: "Idol Complex",
	31: "bcy.net Illust",
	32: "bcy.net Cosplay",
	33: "PortalGraphics.net (Hist)",
	34: "deviantArt",
	35: "Pawoo.net",
	36: "Madokami (Manga)",
	37: "MangaDex",
	38: "E-Hentai",
	39: "ArtStation",
	40: "FurAffinity",
	41: "Twitter",
	42: "Furry Network",
}

// IndexName returns the known label of an index id.
func IndexName(indexID int) (string, bool) {
	name, ok := indexes[indexID]
	return name, ok
}
