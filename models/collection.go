package models

import (
	"sort"
	"time"
)

// FilterPublished returns the posts visible at now, in their original order.
// The collection is expected to be newest-first as loaded from storage; no
// re-sorting happens here.
func FilterPublished(posts []Post, now time.Time) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.VisibleAt(now) {
			out = append(out, p)
		}
	}
	return out
}

// CollectTags unions all tags across the posts into a deduplicated,
// lexicographically sorted slice.
func CollectTags(posts []Post) []string {
	seen := map[string]struct{}{}
	for _, p := range posts {
		for _, tag := range p.Tags {
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// CollectCategories unions the categories across the artworks into a
// deduplicated, sorted slice.
func CollectCategories(artworks []Artwork) []string {
	seen := map[string]struct{}{}
	for _, a := range artworks {
		if a.Category != "" {
			seen[a.Category] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// AdjacentPosts returns the chronological neighbours of slug in a newest-first
// collection. Previous is the older entry (index+1), next the newer (index-1);
// the oldest post has no previous, the newest no next, and an unknown slug
// yields neither.
func AdjacentPosts(posts []Post, slug string) (previous, next *Post) {
	idx := -1
	for i := range posts {
		if posts[i].Slug == slug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	if idx+1 < len(posts) {
		previous = &posts[idx+1]
	}
	if idx > 0 {
		next = &posts[idx-1]
	}
	return previous, next
}

// AdjacentArtworks mirrors AdjacentPosts for the gallery collection.
func AdjacentArtworks(artworks []Artwork, slug string) (previous, next *Artwork) {
	idx := -1
	for i := range artworks {
		if artworks[i].Slug == slug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	if idx+1 < len(artworks) {
		previous = &artworks[idx+1]
	}
	if idx > 0 {
		next = &artworks[idx-1]
	}
	return previous, next
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
