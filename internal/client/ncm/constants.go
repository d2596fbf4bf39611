package ncm

const (
	// SongDetailPath returns details for up to MaxBatchSize songs.
	SongDetailPath = "/eapi/v3/song/detail"
	// PlaylistDetailPath returns a playlist with its track ids.
	PlaylistDetailPath = "/eapi/v6/playlist/detail"
	// RecommendResourcePath returns the daily recommended playlists.
	RecommendResourcePath = "/eapi/v1/discovery/recommend/resource"
	// AccountPath returns the account behind the current session.
	AccountPath = "/eapi/w/nuser/account/get"
	// SearchPath searches the catalog.
	SearchPath = "/eapi/cloudsearch/pc"
	// SongURLPath resolves playback URLs.
	SongURLPath = "/eapi/song/enhance/player/url/v1"
)

const (
	// MaxBatchSize is the largest id list a single request may carry.
	MaxBatchSize = 1000

	// maxConcurrentBatches limits the number of batch requests in flight.
	maxConcurrentBatches = 4

	// contentTypeHeader is the Content-Type header name.
	contentTypeHeader = "Content-Type"
	// formContentType is used for eapi requests.
	formContentType = "application/x-www-form-urlencoded"
	// jsonContentType is used for plain requests.
	jsonContentType = "application/json"
)
