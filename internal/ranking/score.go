// Package ranking implements the read-model ranking engine: engagement
// scoring, listing query plans, the related-post recommender and the
// trending selector.
package ranking

// Engagement weights for the trending and suggestion scores. Comments weigh
// more than likes, and likes more than shares: discussion is treated as a
// stronger signal than passive engagement. These constants are the single
// source of truth for both the in-process score and the SQL score expression.
const (
	LikeWeight    = 2
	CommentWeight = 3
	ShareWeight   = 1
)

// Score computes the weighted engagement score shared by the trending feed
// and the related-post recommender. Absent signals count as zero; the
// function never errors.
func Score(likes, comments, shares int) int {
	return LikeWeight*likes + CommentWeight*comments + ShareWeight*shares
}

// ToggleLike computes the state transition of a like toggle: an unliked post
// becomes liked with one more like, a liked post becomes unliked with one
// fewer. The count never goes below zero. Toggling twice returns to the
// original state and count.
func ToggleLike(liked bool, count int) (nowLiked bool, newCount int) {
	if liked {
		if count > 0 {
			count--
		}
		return false, count
	}
	return true, count + 1
}
