package scraper

// Raw dataset item shapes of the Apify actors. Only the fields we read are declared.

type tiktokItem struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	WebVideoURL  string `json:"webVideoUrl"`
	CreateTime   int64  `json:"createTime"`
	PlayCount    int    `json:"playCount"`
	DiggCount    int    `json:"diggCount"`
	CommentCount int    `json:"commentCount"`
	ShareCount   int    `json:"shareCount"`
	AuthorMeta   struct {
		Name     string `json:"name"`
		Fans     int    `json:"fans"`
		Verified bool   `json:"verified"`
	} `json:"authorMeta"`
	MusicMeta struct {
		MusicID     string `json:"musicId"`
		MusicName   string `json:"musicName"`
		MusicAuthor string `json:"musicAuthor"`
	} `json:"musicMeta"`
	VideoMeta struct {
		DownloadAddr string `json:"downloadAddr"`
		CoverURL     string `json:"coverUrl"`
	} `json:"videoMeta"`
}

type instagramPost struct {
	ShortCode          string `json:"shortCode"`
	URL                string `json:"url"`
	VideoURL           string `json:"videoUrl"`
	DisplayURL         string `json:"displayUrl"`
	Timestamp          string `json:"timestamp"`
	Caption            string `json:"caption"`
	OwnerUsername      string `json:"ownerUsername"`
	OwnerFullName      string `json:"ownerFullName"`
	OwnerBiography     string `json:"ownerBiography"`
	OwnerFollowers     int    `json:"ownerFollowers"`
	OwnerProfilePicURL string `json:"ownerProfilePicUrl"`
	Biography          string `json:"biography"`
	FollowersCount     int    `json:"followersCount"`
	ProfilePicURL      string `json:"profilePicUrl"`
	LikesCount         int    `json:"likesCount"`
	CommentsCount      int    `json:"commentsCount"`
	VideoViewCount     int    `json:"videoViewCount"`
	VideoPlayCount     int    `json:"videoPlayCount"`
	MusicInfo          struct {
		AudioID    string `json:"audio_id"`
		SongName   string `json:"song_name"`
		ArtistName string `json:"artist_name"`
	} `json:"musicInfo"`
	Owner struct {
		Username       string `json:"username"`
		FullName       string `json:"full_name"`
		FollowersCount int    `json:"followersCount"`
		ProfilePicURL  string `json:"profilePicUrl"`
	} `json:"owner"`
	// Set by the actor instead of post fields when the account cannot be scraped.
	Error            string `json:"error"`
	ErrorDescription string `json:"errorDescription"`
}

type relatedAccount struct {
	Username      string   `json:"username"`
	FullName      string   `json:"full_name"`
	Biography     string   `json:"biography"`
	Followers     int      `json:"followers"`
	FollowerCount int      `json:"follower_count"`
	ProfilePicURL string   `json:"profile_pic_url"`
	Hashtags      []string `json:"hashtags"`
}
