package model

import (
	"encoding/json"
	"errors"
)

// MediaType discriminates between the two kinds of catalog content.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"

	// MediaTypeAll selects the mixed movie+TV feed. Only the trending
	// endpoint accepts it; items carry their own per-item media type.
	MediaTypeAll MediaType = "all"

	// mediaTypePerson appears in multi-search and mixed trending payloads
	// and is filtered out by the service layer; it is never a valid
	// request parameter.
	mediaTypePerson = "person"
)

func (m MediaType) IsValid() bool {
	switch m {
	case MediaTypeMovie, MediaTypeTV:
		return true
	default:
		return false
	}
}

func (m MediaType) String() string {
	return string(m)
}

var (
	ErrInvalidMediaType    = errors.New("media type must be 'movie' or 'tv'")
	ErrInvalidTrendingType = errors.New("media type must be 'movie', 'tv' or 'all'")
	ErrInvalidContentID    = errors.New("content ID must be a positive integer")
	ErrEmptyQuery          = errors.New("search query cannot be empty")
	ErrInvalidPage         = errors.New("page must be a positive integer")
	ErrInvalidWindow       = errors.New("time window must be 'day' or 'week'")

	ErrInvalidGenreFilter  = errors.New("genres must be a comma-separated list of positive integers")
	ErrInvalidRatingFilter = errors.New("min_rating must be between 0 and 10")
	ErrInvalidVotesFilter  = errors.New("min_votes must be a non-negative integer")
	ErrInvalidYearFilter   = errors.New("year is out of range")
	ErrInvalidSortFilter   = errors.New("invalid sort key or order")
)

// Content is a single movie or TV entry as served to clients. Upstream
// payloads name the title field differently per media type (title vs name,
// release_date vs first_air_date); decoding normalizes both shapes.
type Content struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	OriginalTitle string    `json:"original_title,omitempty"`
	Overview      string    `json:"overview"`
	PosterPath    *string   `json:"poster_path"`
	BackdropPath  *string   `json:"backdrop_path"`
	VoteAverage   float64   `json:"vote_average"`
	VoteCount     int64     `json:"vote_count"`
	Popularity    float64   `json:"popularity"`
	ReleaseDate   string    `json:"release_date,omitempty"`
	GenreIDs      []int64   `json:"genre_ids,omitempty"`
	Adult         bool      `json:"adult"`
	MediaType     MediaType `json:"media_type,omitempty"`
}

// contentJSON accepts both the upstream field names and our canonical ones,
// so that raw upstream payloads and cached canonical payloads decode alike.
type contentJSON struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	GenreIDs      []int64 `json:"genre_ids"`
	Adult         bool    `json:"adult"`
	MediaType     string  `json:"media_type"`
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var raw contentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.ID = raw.ID
	c.Title = raw.Title
	c.OriginalTitle = raw.OriginalTitle
	c.Overview = raw.Overview
	c.PosterPath = raw.PosterPath
	c.BackdropPath = raw.BackdropPath
	c.VoteAverage = raw.VoteAverage
	c.VoteCount = raw.VoteCount
	c.Popularity = raw.Popularity
	c.ReleaseDate = raw.ReleaseDate
	c.GenreIDs = raw.GenreIDs
	c.Adult = raw.Adult
	c.MediaType = MediaType(raw.MediaType)

	if c.Title == "" {
		c.Title = raw.Name
	}
	if c.OriginalTitle == "" {
		c.OriginalTitle = raw.OriginalName
	}
	if c.ReleaseDate == "" {
		c.ReleaseDate = raw.FirstAirDate
	}

	// Keep the inference hint for multi-search payloads that omit media_type.
	if c.MediaType == "" {
		c.MediaType = inferMediaType(raw)
	}

	return nil
}

// inferMediaType guesses the media type from which upstream fields were
// populated. Returns empty when nothing distinguishes the payload; the
// service layer then stamps the endpoint's known type.
func inferMediaType(raw contentJSON) MediaType {
	if raw.Name != "" || raw.FirstAirDate != "" {
		return MediaTypeTV
	}
	if raw.Title != "" || raw.ReleaseDate != "" {
		return MediaTypeMovie
	}
	return ""
}

// IsPerson reports whether a multi-search result refers to a person rather
// than watchable content.
func (c *Content) IsPerson() bool {
	return string(c.MediaType) == mediaTypePerson
}

// ContentPage is a paginated list of content, mirroring the upstream
// {page, results, total_pages, total_results} envelope.
type ContentPage struct {
	Page         int       `json:"page"`
	Results      []Content `json:"results"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
}

// ApplyDefaults fills pagination fields the upstream occasionally omits.
func (p *ContentPage) ApplyDefaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.TotalPages == 0 {
		p.TotalPages = 1
	}
	if p.Results == nil {
		p.Results = []Content{}
	}
}

// Genre is a single genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreList mirrors the upstream /genre/{type}/list payload.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// CastMember is a credited performer.
type CastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// CrewMember is a credited crew member.
type CrewMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath *string `json:"profile_path"`
}

// Credits holds the cast and crew for a piece of content.
type Credits struct {
	ID   int64        `json:"id,omitempty"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a trailer, teaser or clip attached to content.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// VideoList mirrors the upstream videos sub-resource.
type VideoList struct {
	Results []Video `json:"results"`
}

// Image is a poster or backdrop variant.
type Image struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	VoteAverage float64 `json:"vote_average"`
}

// ImageList mirrors the upstream images sub-resource.
type ImageList struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
}

// ContentDetails is the full detail payload for one movie or TV show,
// fetched as a single upstream call with append_to_response and cached as
// one unit.
type ContentDetails struct {
	Content

	Genres           []Genre      `json:"genres"`
	Runtime          int          `json:"runtime,omitempty"`
	NumberOfSeasons  int          `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int          `json:"number_of_episodes,omitempty"`
	Tagline          string       `json:"tagline,omitempty"`
	Status           string       `json:"status,omitempty"`
	Credits          *Credits     `json:"credits,omitempty"`
	Similar          *ContentPage `json:"similar,omitempty"`
	Recommendations  *ContentPage `json:"recommendations,omitempty"`
	Videos           *VideoList   `json:"videos,omitempty"`
	Images           *ImageList   `json:"images,omitempty"`
}

// contentDetailsJSON carries the detail-only fields; the embedded Content
// is decoded separately so its title normalization applies.
type contentDetailsJSON struct {
	Genres           []Genre      `json:"genres"`
	Runtime          int          `json:"runtime"`
	NumberOfSeasons  int          `json:"number_of_seasons"`
	NumberOfEpisodes int          `json:"number_of_episodes"`
	Tagline          string       `json:"tagline"`
	Status           string       `json:"status"`
	Credits          *Credits     `json:"credits"`
	Similar          *ContentPage `json:"similar"`
	Recommendations  *ContentPage `json:"recommendations"`
	Videos           *VideoList   `json:"videos"`
	Images           *ImageList   `json:"images"`
}

func (d *ContentDetails) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &d.Content); err != nil {
		return err
	}

	var raw contentDetailsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Genres = raw.Genres
	d.Runtime = raw.Runtime
	d.NumberOfSeasons = raw.NumberOfSeasons
	d.NumberOfEpisodes = raw.NumberOfEpisodes
	d.Tagline = raw.Tagline
	d.Status = raw.Status
	d.Credits = raw.Credits
	d.Similar = raw.Similar
	d.Recommendations = raw.Recommendations
	d.Videos = raw.Videos
	d.Images = raw.Images

	return nil
}
