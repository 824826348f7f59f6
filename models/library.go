package models

import "time"

type Author struct {
	AuthorID    string    `json:"authorid" bson:"authorid"`
	Name        string    `json:"name" bson:"name"`
	Surname     string    `json:"surname,omitempty" bson:"surname,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Genres      string    `json:"written_genres,omitempty" bson:"written_genres,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Bio         string    `json:"bio,omitempty" bson:"bio,omitempty"`
}

type Genre struct {
	GenreID  string `json:"genreid" bson:"genreid"`
	Name     string `json:"name" bson:"name"`
	Category string `json:"category,omitempty" bson:"category,omitempty"`
}

type ReadingMaterial struct {
	MaterialID   string    `json:"materialid" bson:"materialid"`
	Title        string    `json:"title" bson:"title"`
	AuthorID     string    `json:"authorid,omitempty" bson:"authorid,omitempty"`
	AuthorName   string    `json:"author_name,omitempty" bson:"author_name,omitempty"`
	GenreID      string    `json:"genreid,omitempty" bson:"genreid,omitempty"`
	Genre        string    `json:"genre,omitempty" bson:"genre,omitempty"`
	Summary      string    `json:"summary,omitempty" bson:"summary,omitempty"`
	ReleaseDate  time.Time `json:"release_date,omitempty" bson:"release_date,omitempty"`
	Price        Money     `json:"price" bson:"price"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	Thumbnail    string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Enabled      bool      `json:"enabled" bson:"enabled"`
	Availability bool      `json:"availability" bson:"availability"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type Review struct {
	ReviewID   string    `json:"reviewid" bson:"reviewid"`
	MaterialID string    `json:"materialid" bson:"materialid"`
	UserID     string    `json:"userid" bson:"userid"`
	Title      string    `json:"title" bson:"title"`
	Content    string    `json:"content" bson:"content"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type Rating struct {
	MaterialID string    `json:"materialid" bson:"materialid"`
	UserID     string    `json:"userid" bson:"userid"`
	Value      int       `json:"value" bson:"value"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type SubscriptionPlan struct {
	PlanID       string `json:"planid" bson:"planid"`
	Name         string `json:"name" bson:"name"`
	Price        Money  `json:"price" bson:"price"`
	DurationDays int    `json:"duration_days" bson:"duration_days"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
}

type Subscription struct {
	SubscriptionID string    `json:"subscriptionid" bson:"subscriptionid"`
	UserID         string    `json:"userid" bson:"userid"`
	PlanID         string    `json:"planid" bson:"planid"`
	PlanName       string    `json:"plan_name,omitempty" bson:"plan_name,omitempty"`
	StartDate      time.Time `json:"start_date" bson:"start_date"`
	EndDate        time.Time `json:"end_date" bson:"end_date"`
	Active         bool      `json:"active" bson:"active"`
}

// IsActiveAt reports whether the subscription is live at the given instant.
func (s Subscription) IsActiveAt(t time.Time) bool {
	return s.Active && !s.EndDate.Before(t)
}
