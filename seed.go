package cheesyblog

var seedPosts = []Post{
	{
		ID:          1,
		Title:       "Meet The Chef!",
		Image:       "../images/MouseEatingMacAndCheese.jpg",
		Date:        "Nov. 12, 2024",
		Likes:       0,
		Comments:    []string{},
		Description: "Chef Mouster Cheese, the founder of Take It Cheesy! Ever since he was a little mouse he knew he loved cheese. And now, we have Take It Cheesy!!",
	},
	{
		ID:          2,
		Title:       "Easy Cheesy Meals",
		Image:       "../images/SuperCheesyMeal.jpg",
		Date:        "Nov. 5, 2024",
		Likes:       0,
		Comments:    []string{},
		Description: "The grand opening of Take It Cheesy!",
	},
}

// SeedPosts returns a fresh copy of the built-in seed posts
func SeedPosts() []Post {
	return clonePosts(seedPosts)
}
