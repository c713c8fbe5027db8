package server

import (
	"net/http"

	"github.com/juju/errors"

	hh "github.com/example/hanzitutor/internal/httphelper"
	"github.com/example/hanzitutor/internal/matcher"
	"github.com/example/hanzitutor/pkg/models"
)

const (
	defaultGenerateCount = 5
	defaultRecentLimit   = 20
)

type generateRequest struct {
	// WordIDs selects specific words; when empty, Count random words are
	// drawn from the vocabulary instead
	WordIDs []int `json:"word_ids"`
	Count   int   `json:"count"`
}

// sentencesPostHandler generates one practice sentence, verifies which
// vocabulary words it actually used, and persists sentence and analysis.
func (s *Server) sentencesPostHandler(r *http.Request) (interface{}, error) {
	if s.gen == nil {
		return nil, hh.MakeNotImplementedError()
	}

	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, errors.Trace(err)
	}

	var words []models.Word
	var err error
	if len(req.WordIDs) > 0 {
		words, err = s.words.GetByIDs(req.WordIDs)
	} else {
		count := req.Count
		if count <= 0 {
			count = defaultGenerateCount
		}
		words, err = s.words.GetRandom(count)
	}
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	if len(words) == 0 {
		return nil, errors.New("no vocabulary words to generate from")
	}

	generated, err := s.gen.GenerateSentence(words)
	if err != nil {
		return nil, hh.MakeInternalServerError(errors.Annotatef(err, "generating sentence"))
	}

	// The scan runs against the FULL vocabulary, not just the prompt
	// words: the model is free to use any word the learner knows.
	vocabulary, err := s.words.DistinctHeadwords()
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}

	stripped := matcher.StripPunctuation(generated.Text)
	result := matcher.Match(stripped, vocabulary)
	uncovered := matcher.Uncovered(stripped, vocabulary)

	sentence := &models.Sentence{
		Text:           generated.Text,
		Translation:    generated.Translation,
		UsedWords:      result.Matched,
		UnknownChars:   result.Unmatched,
		UncoveredChars: uncovered,
		Model:          generated.Model,
	}
	if err := s.sentences.Create(sentence); err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return sentence, nil
}

func (s *Server) sentencesGetHandler(r *http.Request) (interface{}, error) {
	limit := queryInt(r, "limit", defaultRecentLimit)
	sentences, err := s.sentences.GetRecent(limit)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return sentences, nil
}

func (s *Server) sentenceGetHandler(r *http.Request) (interface{}, error) {
	id, err := paramInt(r, "id")
	if err != nil {
		return nil, errors.Trace(err)
	}

	sentence, err := s.sentences.GetByID(id)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	if sentence == nil {
		return nil, hh.MakeNotFoundError()
	}
	return sentence, nil
}

func (s *Server) sentenceDeleteHandler(r *http.Request) (interface{}, error) {
	id, err := paramInt(r, "id")
	if err != nil {
		return nil, errors.Trace(err)
	}

	sentence, err := s.sentences.GetByID(id)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	if sentence == nil {
		return nil, hh.MakeNotFoundError()
	}

	if err := s.sentences.Delete(id); err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return map[string]interface{}{"deleted": id}, nil
}
