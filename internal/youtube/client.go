// Package youtube fetches video, comment and playlist metadata from the
// YouTube Data API.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/goccy/go-json"

	"codelearn/internal/models"
)

// Sentinel errors for missing upstream resources.
var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
)

// response carries one HTTP exchange through the retry wrapper. Only
// transport failures are retried; HTTP status handling happens outside.
type response struct {
	status int
	body   []byte
}

// Client calls the YouTube Data API v3.
type Client struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	transport retry.Retry[response]
}

// NewClient creates a metadata client. Transport failures are retried up to
// 3 times with doubling delay.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		transport: retry.New[response](retry.Config{
			MaxAttempts:   3,
			InitialDelay:  200 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    2.0,
		}),
	}
}

// get performs one API GET with retry on transport errors.
func (c *Client) get(ctx context.Context, path string, params url.Values) (response, error) {
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	return c.transport.Do(ctx, func(ctx context.Context) (response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return response{}, err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return response{}, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return response{}, err
		}
		return response{status: resp.StatusCode, body: body}, nil
	})
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string    `json:"title"`
			Description  string    `json:"description"`
			ChannelTitle string    `json:"channelTitle"`
			PublishedAt  time.Time `json:"publishedAt"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Video fetches metadata and statistics for a single video.
func (c *Client) Video(ctx context.Context, id string) (*models.Video, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", id)

	resp, err := c.get(ctx, "/videos", params)
	if err != nil {
		return nil, fmt.Errorf("fetching video %s: %w", id, err)
	}
	if resp.status != http.StatusOK {
		return nil, fmt.Errorf("youtube API %d fetching video %s", resp.status, id)
	}

	var vl videoListResponse
	if err := json.Unmarshal(resp.body, &vl); err != nil {
		return nil, fmt.Errorf("decoding video response: %w", err)
	}
	if len(vl.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	item := vl.Items[0]
	return &models.Video{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ChannelTitle: item.Snippet.ChannelTitle,
		PublishedAt:  item.Snippet.PublishedAt,
		Duration:     item.ContentDetails.Duration,
		Stats: models.Stats{
			ViewCount:    parseCount(item.Statistics.ViewCount),
			LikeCount:    parseCount(item.Statistics.LikeCount),
			CommentCount: parseCount(item.Statistics.CommentCount),
		},
	}, nil
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay string `json:"textDisplay"`
					LikeCount   int64  `json:"likeCount"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// Comments fetches up to max top-level comments for a video, most relevant
// first. Videos with comments disabled yield an empty list, not an error.
func (c *Client) Comments(ctx context.Context, videoID string, max int) ([]models.Comment, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("maxResults", strconv.Itoa(max))
	params.Set("order", "relevance")
	params.Set("textFormat", "plainText")

	resp, err := c.get(ctx, "/commentThreads", params)
	if err != nil {
		return nil, fmt.Errorf("fetching comments for %s: %w", videoID, err)
	}
	if resp.status == http.StatusForbidden {
		// Comments disabled on the video.
		return nil, nil
	}
	if resp.status != http.StatusOK {
		return nil, fmt.Errorf("youtube API %d fetching comments for %s", resp.status, videoID)
	}

	var ct commentThreadsResponse
	if err := json.Unmarshal(resp.body, &ct); err != nil {
		return nil, fmt.Errorf("decoding comments response: %w", err)
	}

	comments := make([]models.Comment, 0, len(ct.Items))
	for _, item := range ct.Items {
		s := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, models.Comment{Text: s.TextDisplay, LikeCount: s.LikeCount})
	}
	return comments, nil
}

type playlistListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
		ContentDetails struct {
			ItemCount int64 `json:"itemCount"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Playlist fetches metadata for a playlist.
func (c *Client) Playlist(ctx context.Context, id string) (*models.Playlist, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", id)

	resp, err := c.get(ctx, "/playlists", params)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist %s: %w", id, err)
	}
	if resp.status != http.StatusOK {
		return nil, fmt.Errorf("youtube API %d fetching playlist %s", resp.status, id)
	}

	var pl playlistListResponse
	if err := json.Unmarshal(resp.body, &pl); err != nil {
		return nil, fmt.Errorf("decoding playlist response: %w", err)
	}
	if len(pl.Items) == 0 {
		return nil, ErrPlaylistNotFound
	}

	item := pl.Items[0]
	return &models.Playlist{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
		ItemCount:    item.ContentDetails.ItemCount,
	}, nil
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title    string `json:"title"`
			Position int64  `json:"position"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

// PlaylistItems fetches up to max members of a playlist in playlist order.
func (c *Client) PlaylistItems(ctx context.Context, playlistID string, max int) ([]models.PlaylistItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", strconv.Itoa(max))

	resp, err := c.get(ctx, "/playlistItems", params)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist items for %s: %w", playlistID, err)
	}
	if resp.status == http.StatusNotFound {
		return nil, ErrPlaylistNotFound
	}
	if resp.status != http.StatusOK {
		return nil, fmt.Errorf("youtube API %d fetching playlist items for %s", resp.status, playlistID)
	}

	var pi playlistItemsResponse
	if err := json.Unmarshal(resp.body, &pi); err != nil {
		return nil, fmt.Errorf("decoding playlist items response: %w", err)
	}

	items := make([]models.PlaylistItem, 0, len(pi.Items))
	for _, item := range pi.Items {
		items = append(items, models.PlaylistItem{
			VideoID:  item.Snippet.ResourceID.VideoID,
			Title:    item.Snippet.Title,
			Position: item.Snippet.Position,
		})
	}
	return items, nil
}

// parseCount converts the API's string-typed counters; absent or malformed
// values count as zero.
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
