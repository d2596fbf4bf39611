package ncm

// Artist is a performer reference inside a song.
type Artist struct {
	// ID is the artist id.
	ID int64 `json:"id"`
	// Name is the artist name.
	Name string `json:"name"`
}

// Album is an album reference inside a song.
type Album struct {
	// ID is the album id.
	ID int64 `json:"id"`
	// Name is the album name.
	Name string `json:"name"`
	// PicURL is the cover image URL.
	PicURL string `json:"picUrl"`
	// Tns lists translated album names.
	Tns []string `json:"tns"`
}

// SongDetail is the song shape returned by the song detail endpoint.
// JSON names follow the wire format so cached rows keep the remote shape.
type SongDetail struct {
	// ID is the track id.
	ID int64 `json:"id"`
	// Name is the track title.
	Name string `json:"name"`
	// Artists lists performers in credit order.
	Artists []Artist `json:"ar"`
	// Album is the album the track belongs to.
	Album Album `json:"al"`
	// Duration is the track length in milliseconds.
	Duration int64 `json:"dt"`
	// Alias lists alternative titles.
	Alias []string `json:"alia"`
	// Tns lists translated titles.
	Tns []string `json:"tns"`
}

// ArtistNames returns the artist names in credit order.
func (s *SongDetail) ArtistNames() []string {
	names := make([]string, 0, len(s.Artists))
	for _, a := range s.Artists {
		names = append(names, a.Name)
	}

	return names
}

// SongDetailResponse is the response of SongDetailPath.
type SongDetailResponse struct {
	Code  int           `json:"code"`
	Songs []*SongDetail `json:"songs"`
}

// TrackID is a track reference inside a playlist.
type TrackID struct {
	// ID is the track id.
	ID int64 `json:"id"`
}

// Creator is the owner of a playlist.
type Creator struct {
	UserID   int64  `json:"userId"`
	Nickname string `json:"nickname"`
}

// Playlist is a playlist with its ordered track ids.
type Playlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CoverImgURL string    `json:"coverImgUrl"`
	TrackCount  int64     `json:"trackCount"`
	PlayCount   int64     `json:"playCount"`
	Creator     Creator   `json:"creator"`
	TrackIDs    []TrackID `json:"trackIds"`
}

// IDs returns the ordered track ids of the playlist.
func (p *Playlist) IDs() []int64 {
	ids := make([]int64, 0, len(p.TrackIDs))
	for _, t := range p.TrackIDs {
		ids = append(ids, t.ID)
	}

	return ids
}

// PlaylistDetailResponse is the response of PlaylistDetailPath.
type PlaylistDetailResponse struct {
	Code     int       `json:"code"`
	Playlist *Playlist `json:"playlist"`
}

// RecommendedPlaylist is one entry of the daily recommendations.
type RecommendedPlaylist struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Copywriter string `json:"copywriter"`
	PicURL     string `json:"picUrl"`
	TrackCount int64  `json:"trackCount"`
	PlayCount  int64  `json:"playcount"`
}

// RecommendResourceResponse is the response of RecommendResourcePath.
type RecommendResourceResponse struct {
	Code      int                   `json:"code"`
	Recommend []RecommendedPlaylist `json:"recommend"`
}

// Account is the account record of the current session.
type Account struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	VipType  int    `json:"vipType"`
}

// Profile is the public profile of the current session.
type Profile struct {
	UserID    int64  `json:"userId"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	Signature string `json:"signature"`
}

// AccountResponse is the response of AccountPath. Both parts are nil for anonymous sessions.
type AccountResponse struct {
	Code    int      `json:"code"`
	Account *Account `json:"account"`
	Profile *Profile `json:"profile"`
}

// SearchResult holds matching songs.
type SearchResult struct {
	Songs     []*SongDetail `json:"songs"`
	SongCount int64         `json:"songCount"`
}

// SearchResponse is the response of SearchPath.
type SearchResponse struct {
	Code   int          `json:"code"`
	Result SearchResult `json:"result"`
}

// SongURL is a resolved playback source.
type SongURL struct {
	ID         int64  `json:"id"`
	URL        string `json:"url"`
	Br         int64  `json:"br"`
	Size       int64  `json:"size"`
	MD5        string `json:"md5"`
	Type       string `json:"type"`
	EncodeType string `json:"encodeType"`
	Level      string `json:"level"`
	Time       int64  `json:"time"`
}

// SongURLResponse is the response of SongURLPath.
type SongURLResponse struct {
	Code int        `json:"code"`
	Data []*SongURL `json:"data"`
}
