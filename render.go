package cheesyblog

import (
	"fmt"
	"html/template"
	"io"
	"slices"
)

// View is the state handed to a Renderer
type View struct {
	Posts []Post
	Liked []int
}

// IsLiked returns true if the post id is in the liked set of the view
func (v View) IsLiked(id int) bool {
	return slices.Contains(v.Liked, id)
}

// Renderer turns a View into UI output
type Renderer interface {
	Render(w io.Writer, view View) error
}

const blogListTemplate = `{{range .Posts}}<div class="post" id="{{.AnchorID}}">
<h2>{{.Title}}</h2>
<span class="postDate">{{.Date}}</span>
{{if .HasImage}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}
<div class="postDescription">{{description .Description}}</div>
<div class="postLikes">
<p>{{.Likes}} likes</p>
<button type="button" class="buttons" data-action="toggle-like" data-post="{{.ID}}">{{if $.IsLiked .ID}}Unlike{{else}}Like{{end}}</button>
<h4>Comments:</h4>
{{$post := .}}{{range $index, $comment := .Comments}}<div class="comment">
<p>{{$comment}}</p>
<button type="button" class="buttons" data-action="delete-comment" data-post="{{$post.ID}}" data-index="{{$index}}">Delete</button>
</div>
{{end}}<form class="commentForm" data-post="{{.ID}}">
<input type="text" name="comment" class="typeComment" placeholder="Leave a comment..." required>
<button type="submit" class="buttons">Comment</button>
</form>
</div>
</div>
{{end}}`

// HTMLRenderer renders the blog list markup. Titles and comments are escaped, descriptions are trusted HTML.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates a new HTMLRenderer
func NewHTMLRenderer() *HTMLRenderer {
	tmpl := template.Must(template.New("blogList").Funcs(template.FuncMap{
		"description": func(s string) template.HTML {
			return template.HTML(s)
		},
	}).Parse(blogListTemplate))

	return &HTMLRenderer{tmpl: tmpl}
}

// Render writes the blog list for view to w
func (r *HTMLRenderer) Render(w io.Writer, view View) error {
	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("error rendering blog list: %w", err)
	}
	return nil
}
