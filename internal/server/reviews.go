package server

import (
	"net/http"

	"github.com/juju/errors"

	hh "github.com/example/hanzitutor/internal/httphelper"
	"github.com/example/hanzitutor/internal/srs"
	"github.com/example/hanzitutor/pkg/models"
)

const defaultDueLimit = 20

type reviewRequest struct {
	Quality int `json:"quality"`
}

type reviewResponse struct {
	Review   *models.Review `json:"review"`
	Mastered bool           `json:"mastered"`
}

func (s *Server) reviewsDueHandler(r *http.Request) (interface{}, error) {
	limit := queryInt(r, "limit", defaultDueLimit)
	cards, err := s.reviews.GetDue(limit)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return cards, nil
}

// reviewPostHandler records one flashcard answer and reschedules the word
// with SM-2
func (s *Server) reviewPostHandler(r *http.Request) (interface{}, error) {
	wordID, err := paramInt(r, "id")
	if err != nil {
		return nil, errors.Trace(err)
	}

	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, errors.Trace(err)
	}
	quality := srs.Quality(req.Quality)
	if !quality.Valid() {
		return nil, errors.Errorf("quality must be between %d and %d",
			srs.QualityBlackout, srs.QualityPerfect)
	}

	word, err := s.words.GetByID(wordID)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	if word == nil {
		return nil, hh.MakeNotFoundError()
	}

	review, err := s.reviews.GetByWord(wordID)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	if review == nil {
		review = srs.NewReview(wordID)
	}

	s.sm2.Apply(review, quality)
	if err := s.reviews.Upsert(review); err != nil {
		return nil, hh.MakeInternalServerError(err)
	}

	return reviewResponse{
		Review:   review,
		Mastered: s.sm2.IsMastered(review),
	}, nil
}
