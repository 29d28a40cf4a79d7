package model

import "errors"

// ErrInvalidProfile is returned by UserProfile.Validate.
var ErrInvalidProfile = errors.New("invalid user profile")

// UserProfile is the subset of a platform user the recommender reads.
type UserProfile struct {
	ID                string `json:"user_id"`
	Bio               string `json:"bio"`
	PracticeArea      string `json:"practice_area"`
	Specialization    string `json:"law_specialization"`
	YearsOfExperience int    `json:"years_of_experience"`
}

// Validate checks field ranges.
func (u UserProfile) Validate() error {
	if u.YearsOfExperience < 0 {
		return ErrInvalidProfile
	}
	return nil
}
