package models

import "time"

// Video holds the metadata fetched for a single video.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
	Duration     string    `json:"duration"`
	Stats        Stats     `json:"stats"`
}

// Stats holds raw engagement counters for a video.
type Stats struct {
	ViewCount    int64 `json:"view_count"`
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
}

// Comment is a single piece of community feedback on a video.
type Comment struct {
	Text      string `json:"text"`
	LikeCount int64  `json:"like_count"`
}

// Playlist holds the metadata fetched for a playlist.
type Playlist struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	ItemCount    int64  `json:"item_count"`
}

// PlaylistItem is one member of a playlist, in playlist order.
type PlaylistItem struct {
	VideoID  string `json:"video_id"`
	Title    string `json:"title"`
	Position int64  `json:"position"`
}
