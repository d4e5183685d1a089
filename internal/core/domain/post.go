package domain

import "time"

// DefaultBackgroundPic is the placeholder background used when the author
// did not upload one. It is never sent to the media service for deletion.
const DefaultBackgroundPic = "/background-post.jpg"

// Block is one typed node of a post's content tree. Data is opaque to the
// backend except for image blocks, whose hosted URL lives at data.file.url.
type Block struct {
	Type string         `json:"type" bson:"type"`
	Data map[string]any `json:"data" bson:"data"`
}

// BlockImage is the block type carrying a hosted media URL.
const BlockImage = "image"

// Content is the structured document stored for a post.
type Content struct {
	Time    int64   `json:"time,omitempty" bson:"time,omitempty"`
	Blocks  []Block `json:"blocks" bson:"blocks"`
	Version string  `json:"version,omitempty" bson:"version,omitempty"`
}

// ImageURLs walks the content blocks and collects the hosted URL of every
// image block, in document order. Blocks without a well-formed
// data.file.url entry are skipped.
func (c Content) ImageURLs() []string {
	var urls []string
	for _, b := range c.Blocks {
		if b.Type != BlockImage {
			continue
		}
		file, ok := b.Data["file"].(map[string]any)
		if !ok {
			continue
		}
		if url, ok := file["url"].(string); ok && url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// Post is a published article. Images duplicates the hosted URLs embedded
// in Content so deletion and update reconciliation never have to re-parse
// the content tree of a stale revision.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       Content    `json:"content"`
	BackgroundPic string     `json:"backgroundPic"`
	CreatedBy     string     `json:"createdBy"`
	Categories    []string   `json:"categories"`
	Images        []string   `json:"images,omitempty"`
	Author        *UserRef   `json:"author,omitempty"`
	CategoryRefs  []Category `json:"categoryRefs,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// UserRef is the author projection embedded in post reads.
type UserRef struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}
