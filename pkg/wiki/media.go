package wiki

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"curio-be/pkg/store"
)

const imageInfoBatchSize = 10

var (
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".svg": true, ".webp": true,
	}
	videoExtensions = map[string]bool{
		".webm": true, ".ogv": true, ".mp4": true, ".mov": true,
	}
)

// Media lists the files attached to a page and classifies them into images
// and videos. Images are capped at max; videos at max(2, max/6) so a couple
// of videos always fit when the page has any. Failures degrade to an empty
// set, never an error.
func (c *Client) Media(ctx context.Context, title string, max int) *store.MediaSet {
	title = strings.TrimSpace(title)
	set := &store.MediaSet{Images: []store.MediaItem{}, Videos: []store.MediaItem{}}
	if title == "" || max <= 0 {
		return set
	}

	cacheKey := fmt.Sprintf("media:%s:%d", strings.ToLower(title), max)
	if val, ok := c.cache.Get(cacheKey); ok {
		return val.(*store.MediaSet)
	}

	fileTitles := c.listFileTitles(ctx, title, max)
	if len(fileTitles) == 0 {
		return set
	}

	videoCap := max / 6
	if videoCap < 2 {
		videoCap = 2
	}

	// Fetch metadata in fixed batches; each batch is one API call.
	for start := 0; start < len(fileTitles); start += imageInfoBatchSize {
		end := start + imageInfoBatchSize
		if end > len(fileTitles) {
			end = len(fileTitles)
		}
		for _, item := range c.fileInfo(ctx, fileTitles[start:end]) {
			if isVideo(item.mime, item.url) {
				if len(set.Videos) < videoCap {
					set.Videos = append(set.Videos, store.MediaItem{
						URL:    item.url,
						Poster: item.thumb,
						Title:  item.title,
					})
				}
				continue
			}
			if isImage(item.mime, item.url) && len(set.Images) < max {
				set.Images = append(set.Images, store.MediaItem{
					URL:   item.url,
					Thumb: item.thumb,
					Title: item.title,
				})
			}
		}
		if len(set.Images) >= max && len(set.Videos) >= videoCap {
			break
		}
	}

	c.cache.SetDefault(cacheKey, set)
	return set
}

// listFileTitles returns the "File:..." titles attached to a page.
func (c *Client) listFileTitles(ctx context.Context, title string, limit int) []string {
	params := url.Values{}
	params.Add("action", "query")
	params.Add("titles", title)
	params.Add("prop", "images")
	params.Add("imlimit", strconv.Itoa(limit))
	params.Add("format", "json")

	var result struct {
		Query struct {
			Pages map[string]struct {
				Images []struct {
					Title string `json:"title"`
				} `json:"images"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, c.apiBase+"?"+params.Encode(), &result); err != nil {
		return nil
	}

	var titles []string
	for _, page := range result.Query.Pages {
		for _, img := range page.Images {
			if img.Title != "" {
				titles = append(titles, img.Title)
			}
		}
	}
	return titles
}

type fileInfoItem struct {
	title string
	url   string
	thumb string
	mime  string
}

// fileInfo batch-fetches URL, thumbnail and MIME for a slice of file titles.
func (c *Client) fileInfo(ctx context.Context, fileTitles []string) []fileInfoItem {
	params := url.Values{}
	params.Add("action", "query")
	params.Add("titles", strings.Join(fileTitles, "|"))
	params.Add("prop", "imageinfo")
	params.Add("iiprop", "url|mime")
	params.Add("iiurlwidth", "640")
	params.Add("format", "json")

	var result struct {
		Query struct {
			Pages map[string]struct {
				Title     string `json:"title"`
				ImageInfo []struct {
					URL      string `json:"url"`
					ThumbURL string `json:"thumburl"`
					Mime     string `json:"mime"`
				} `json:"imageinfo"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, c.apiBase+"?"+params.Encode(), &result); err != nil {
		return nil
	}

	items := make([]fileInfoItem, 0, len(fileTitles))
	for _, page := range result.Query.Pages {
		if len(page.ImageInfo) == 0 || page.ImageInfo[0].URL == "" {
			continue
		}
		info := page.ImageInfo[0]
		items = append(items, fileInfoItem{
			title: strings.TrimPrefix(page.Title, "File:"),
			url:   info.URL,
			thumb: info.ThumbURL,
			mime:  info.Mime,
		})
	}
	return items
}

// isImage classifies by MIME type first, file extension second.
func isImage(mime, fileURL string) bool {
	if mime != "" {
		return strings.HasPrefix(mime, "image/")
	}
	return imageExtensions[strings.ToLower(path.Ext(fileURL))]
}

func isVideo(mime, fileURL string) bool {
	if mime != "" {
		return strings.HasPrefix(mime, "video/") || mime == "application/ogg"
	}
	return videoExtensions[strings.ToLower(path.Ext(fileURL))]
}
