package bloglist

import (
	"testing"

	"fullstack/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listWithManyBlogs = []models.Blog{
	{ID: "1", Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
	{ID: "2", Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html", Likes: 5},
	{ID: "3", Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: 12},
	{ID: "4", Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/05/05/TestDefinitions.html", Likes: 10},
	{ID: "5", Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/03/03/TDD-Harms-Architecture.html", Likes: 0},
	{ID: "6", Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html", Likes: 2},
}

func TestTotalLikes(t *testing.T) {
	tests := []struct {
		name  string
		blogs []models.Blog
		want  int
	}{
		{name: "empty list", blogs: []models.Blog{}, want: 0},
		{name: "single blog", blogs: listWithManyBlogs[:1], want: 7},
		{name: "many blogs", blogs: listWithManyBlogs, want: 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalLikes(tt.blogs))
		})
	}
}

func TestFavoriteBlog(t *testing.T) {
	assert.Nil(t, FavoriteBlog(nil))

	favorite := FavoriteBlog(listWithManyBlogs)
	require.NotNil(t, favorite)
	assert.Equal(t, "Canonical string reduction", favorite.Title)
	assert.Equal(t, 12, favorite.Likes)
}

func TestMostBlogs(t *testing.T) {
	assert.Nil(t, MostBlogs(nil))

	top := MostBlogs(listWithManyBlogs)
	require.NotNil(t, top)
	assert.Equal(t, "Robert C. Martin", top.Author)
	assert.Equal(t, 3, top.Blogs)
}

func TestMostLikes(t *testing.T) {
	assert.Nil(t, MostLikes(nil))

	top := MostLikes(listWithManyBlogs)
	require.NotNil(t, top)
	assert.Equal(t, "Edsger W. Dijkstra", top.Author)
	assert.Equal(t, 17, top.Likes)
}
