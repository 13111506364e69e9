// Package bloglist holds aggregation helpers over blog lists.
package bloglist

import "fullstack/internal/domain/models"

func TotalLikes(blogs []models.Blog) int {
	sum := 0
	for _, b := range blogs {
		sum += b.Likes
	}
	return sum
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty
// list. Ties keep the earlier entry.
func FavoriteBlog(blogs []models.Blog) *models.Blog {
	if len(blogs) == 0 {
		return nil
	}
	favorite := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > favorite.Likes {
			favorite = b
		}
	}
	return &favorite
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// MostBlogs returns the author with the largest number of blogs.
func MostBlogs(blogs []models.Blog) *AuthorBlogs {
	if len(blogs) == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, b := range blogs {
		counts[b.Author]++
	}
	top := blogs[0].Author
	for author, n := range counts {
		if n > counts[top] {
			top = author
		}
	}
	return &AuthorBlogs{Author: top, Blogs: counts[top]}
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// MostLikes returns the author whose blogs have the largest combined like
// count.
func MostLikes(blogs []models.Blog) *AuthorLikes {
	if len(blogs) == 0 {
		return nil
	}
	likes := map[string]int{}
	for _, b := range blogs {
		likes[b.Author] += b.Likes
	}
	top := blogs[0].Author
	for author, n := range likes {
		if n > likes[top] {
			top = author
		}
	}
	return &AuthorLikes{Author: top, Likes: likes[top]}
}
