// Package result holds the wire shapes of a SauceNAO search response.
package result

// Response is the decoded body of a search.php call with output_type=2.
type Response struct {
	Header  Header `json:"header"`
	Results []Raw  `json:"results"`
}

// Header carries account quota and request metadata.
type Header struct {
	UserID            String `json:"user_id"`
	AccountType       String `json:"account_type"`
	ShortLimit        String `json:"short_limit"`
	LongLimit         String `json:"long_limit"`
	LongRemaining     Int    `json:"long_remaining"`
	ShortRemaining    Int    `json:"short_remaining"`
	Status            Int    `json:"status"`
	ResultsRequested  Int    `json:"results_requested"`
	ResultsReturned   Int    `json:"results_returned"`
	SearchDepth       String `json:"search_depth"`
	MinimumSimilarity Float  `json:"minimum_similarity"`
	Message           String `json:"message"`
}

// Raw is a single unprocessed match.
type Raw struct {
	Header RawHeader      `json:"header"`
	Data   map[string]any `json:"data"`
}

// RawHeader identifies the index a match came from and how close it is.
type RawHeader struct {
	IndexID    Int    `json:"index_id"`
	IndexName  String `json:"index_name"`
	Similarity Float  `json:"similarity"`
	Thumbnail  String `json:"thumbnail"`
	Hidden     Int    `json:"hidden"`
}

// Envelope pairs the transport status code with the decoded body.
// Body is nil when the payload was not valid JSON.
type Envelope struct {
	StatusCode int
	Body       *Response
}
