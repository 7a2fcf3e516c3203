package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/domain"
)

var errEndBeforeStart = errors.New("end_date must not be before start_date")

type CompetitionRequest struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Season    string     `json:"season"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Active    *bool      `json:"active"`
}

func (req *CompetitionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Type, validation.Required, validation.In(competitionTypes...)),
		validation.Field(&req.Season, validation.Required, validation.Length(1, 20)),
	)
	if err != nil {
		return err
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}

func (req *CompetitionRequest) ToDomain() domain.Competition {
	return domain.Competition{
		Name:      req.Name,
		Type:      domain.CompetitionType(req.Type),
		Season:    req.Season,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    boolOr(req.Active, true),
	}
}

type MatchRequest struct {
	OpponentTeam  string     `json:"opponent_team"`
	MatchDate     time.Time  `json:"match_date"`
	Venue         string     `json:"venue"`
	IsHome        bool       `json:"is_home"`
	HomeScore     *int       `json:"home_score"`
	AwayScore     *int       `json:"away_score"`
	Status        string     `json:"status"`
	CompetitionID *uuid.UUID `json:"competition_id"`
	Notes         string     `json:"notes"`
}

func (req *MatchRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OpponentTeam, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.MatchDate, validation.Required),
		validation.Field(&req.Status, validation.In(matchStatuses...)),
		validation.Field(&req.HomeScore, validation.Min(0)),
		validation.Field(&req.AwayScore, validation.Min(0)),
	)
}

func (req *MatchRequest) ToDomain() domain.Match {
	status := domain.MatchStatus(req.Status)
	if status == "" {
		status = domain.MatchUpcoming
	}

	return domain.Match{
		OpponentTeam:  req.OpponentTeam,
		MatchDate:     req.MatchDate,
		Venue:         req.Venue,
		IsHome:        req.IsHome,
		HomeScore:     req.HomeScore,
		AwayScore:     req.AwayScore,
		Status:        status,
		CompetitionID: req.CompetitionID,
		Notes:         req.Notes,
	}
}

type MatchQuery struct {
	Status string     `form:"status"`
	From   *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit  int        `form:"limit"`
}

func (req *MatchQuery) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In(matchStatuses...)),
		validation.Field(&req.Limit, validation.Min(0), validation.Max(100)),
	)
}

func (req *MatchQuery) ToFilter() domain.MatchFilter {
	return domain.MatchFilter{
		Status: domain.MatchStatus(req.Status),
		From:   req.From,
		Limit:  req.Limit,
	}
}
