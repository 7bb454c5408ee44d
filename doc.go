// Package saucenao is a Go client for the SauceNAO reverse image search API.
//
// A lookup submits an image by URL, local file or reader. The response is
// checked against the API's error taxonomy and, on success, the matches are
// filtered by similarity, ordered by index priority and classified into
// typed sources (Pixiv, Booru, Video, Anime, Manga, Generic).
//
//	client, _ := saucenao.New(
//	    saucenao.WithAPIKey(os.Getenv("SAUCENAO_API_KEY")),
//	    saucenao.WithMinSimilarity(60),
//	    saucenao.WithPriority(5, 9),
//	)
//	defer client.Close()
//
//	res, err := client.FromURL(ctx, "https://example.com/image.png")
//	switch {
//	case errors.Is(err, saucenao.ErrShortLimit):
//	    // wait 30 seconds
//	case err != nil:
//	    return err
//	}
//	for _, s := range res.All() {
//	    fmt.Println(s.Category(), s.Similarity(), s.Title(), s.URL())
//	}
//
// Anime matches can resolve AniList, MyAnimeList and Kitsu ids on demand:
//
//	if a, ok := s.(*saucenao.Anime); ok {
//	    a.LoadIDs(ctx)
//	    id, _ := a.AniListID()
//	}
//
// The client never retries and never enforces rate limits; remaining quota
// is reported on every result set.
package saucenao
