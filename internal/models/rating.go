package models

import (
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinStars = 1
	MaxStars = 5
)

type Rating struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RequestID   primitive.ObjectID `json:"request_id" bson:"request_id"`
	RaterID     primitive.ObjectID `json:"rater_id" bson:"rater_id"`
	RatedUserID primitive.ObjectID `json:"rated_user_id" bson:"rated_user_id"`
	Category    ServiceCategory    `json:"category" bson:"category"`

	Stars           int  `json:"stars" bson:"stars"`
	QualityOfWork   *int `json:"quality_of_work,omitempty" bson:"quality_of_work,omitempty"`
	Communication   *int `json:"communication,omitempty" bson:"communication,omitempty"`
	Professionalism *int `json:"professionalism,omitempty" bson:"professionalism,omitempty"`

	Review        string               `json:"review,omitempty" bson:"review,omitempty"`
	IsAnonymous   bool                 `json:"is_anonymous" bson:"is_anonymous"`
	HelpfulCount  int64                `json:"helpful_count" bson:"helpful_count"`
	HelpfulVoters []primitive.ObjectID `json:"-" bson:"helpful_voters"`
	ResponseTime  *int64               `json:"response_time,omitempty" bson:"response_time,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// OverallScore averages the star value with whichever detailed scores are set.
func (r *Rating) OverallScore() float64 {
	sum := r.Stars
	n := 1
	for _, s := range []*int{r.QualityOfWork, r.Communication, r.Professionalism} {
		if s != nil {
			sum += *s
			n++
		}
	}
	return RoundScore(float64(sum) / float64(n))
}

func (r *Rating) Snapshot() *RatingSnapshot {
	return &RatingSnapshot{
		RatingID: r.ID,
		Stars:    r.Stars,
		Review:   r.Review,
		RatedBy:  r.RaterID,
		RatedAt:  r.CreatedAt,
	}
}

func ValidStars(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}

// RoundScore rounds to two decimal places.
func RoundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

func BreakdownKey(stars int) string {
	return strconv.Itoa(stars)
}

// NewRatingBreakdown returns a histogram with every star key present.
func NewRatingBreakdown() map[string]int64 {
	breakdown := make(map[string]int64, MaxStars)
	for s := MinStars; s <= MaxStars; s++ {
		breakdown[BreakdownKey(s)] = 0
	}
	return breakdown
}

// StarDistribution is the raw per-star count for one rated user as read from
// the rating store.
type StarDistribution struct {
	Counts      map[int]int64
	LastRatedAt *time.Time
}

// RatingAggregate is the per-user rollup cached on the user document.
type RatingAggregate struct {
	Average      float64          `json:"average" bson:"average"`
	TotalRatings int64            `json:"total_ratings" bson:"total_ratings"`
	Breakdown    map[string]int64 `json:"rating_breakdown" bson:"rating_breakdown"`
	LastRatedAt  *time.Time       `json:"last_rated_at" bson:"last_rated_at"`
}

// NewRatingAggregate derives total and average from the distribution so that
// the breakdown always sums to the total.
func NewRatingAggregate(dist *StarDistribution) RatingAggregate {
	agg := RatingAggregate{Breakdown: NewRatingBreakdown()}
	if dist == nil {
		return agg
	}

	var weighted int64
	for stars, count := range dist.Counts {
		if !ValidStars(stars) || count <= 0 {
			continue
		}
		agg.Breakdown[BreakdownKey(stars)] += count
		agg.TotalRatings += count
		weighted += int64(stars) * count
	}

	if agg.TotalRatings > 0 {
		agg.Average = RoundScore(float64(weighted) / float64(agg.TotalRatings))
		agg.LastRatedAt = dist.LastRatedAt
	}

	return agg
}

func (a RatingAggregate) Stats() *RatingStats {
	breakdown := NewRatingBreakdown()
	for k, v := range a.Breakdown {
		breakdown[k] = v
	}
	return &RatingStats{
		AverageRating:   a.Average,
		TotalRatings:    a.TotalRatings,
		RatingBreakdown: breakdown,
	}
}

type RatingStats struct {
	AverageRating   float64          `json:"average_rating"`
	TotalRatings    int64            `json:"total_ratings"`
	RatingBreakdown map[string]int64 `json:"rating_breakdown"`
}

// RatingView is a rating as shown to other users.
type RatingView struct {
	*Rating
	RaterName    string  `json:"rater_name,omitempty"`
	OverallScore float64 `json:"overall_score"`
}

type UserRatingSummary struct {
	Stats         *RatingStats  `json:"stats"`
	RecentRatings []*RatingView `json:"recent_ratings"`
}
