package saucetest

// SampleAniDBID is the anime id carried by the anime match in SampleResponse.
const SampleAniDBID = 4134

// SampleRelations is a mapping for SampleAniDBID.
const SampleRelations = `{"anidb":4134,"anilist":2167,"myanimelist":2167,"kitsu":null}`

// SampleResponse is a successful search with one match per record category,
// in server order (not ranked).
const SampleResponse = `{
  "header": {
    "user_id": "12345",
    "account_type": "1",
    "short_limit": "4",
    "long_limit": "100",
    "long_remaining": 99,
    "short_remaining": 3,
    "status": 0,
    "results_requested": "6",
    "search_depth": "128",
    "minimum_similarity": 37.14,
    "results_returned": 5
  },
  "results": [
    {
      "header": {"similarity": "55.10", "thumbnail": "https://img.example/t1.jpg", "index_id": 9, "index_name": "Index #9: Danbooru - 1234.jpg", "hidden": 0},
      "data": {"ext_urls": ["https://danbooru.donmai.us/post/show/1234"], "danbooru_id": 1234, "creator": "artist_a", "material": "original", "characters": "alice, bob", "source": "https://twitter.com/a/status/1"}
    },
    {
      "header": {"similarity": "92.35", "thumbnail": "https://img.example/t2.jpg", "index_id": 5, "index_name": "Index #5: Pixiv Images - 777.jpg", "hidden": 0},
      "data": {"ext_urls": ["https://www.pixiv.net/member_illust.php?mode=medium&illust_id=777"], "title": "Sunset", "pixiv_id": 777, "member_name": "painter", "member_id": 42}
    },
    {
      "header": {"similarity": "88.00", "thumbnail": "https://img.example/t3.jpg", "index_id": 21, "index_name": "Index #21: Anime - ep3.mkv", "hidden": 0},
      "data": {"ext_urls": ["https://anidb.net/anime/4134"], "source": "Show Title", "anidb_aid": 4134, "part": "03", "year": "2006", "est_time": "00:12:34 / 00:24:00"}
    },
    {
      "header": {"similarity": "70.00", "thumbnail": "https://img.example/t4.jpg", "index_id": 37, "index_name": "Index #37: MangaDex - ch1", "hidden": 0},
      "data": {"ext_urls": ["https://mangadex.org/chapter/abc"], "source": "Some Manga", "part": " - Chapter 1", "author": "Writer"}
    },
    {
      "header": {"similarity": "20.00", "thumbnail": "https://img.example/t5.jpg", "index_id": 34, "index_name": "Index #34: deviantArt - x", "hidden": 0},
      "data": {"ext_urls": ["https://deviantart.com/view/1"], "title": "Low", "author_name": "dev"}
    }
  ]
}`
