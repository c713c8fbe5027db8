package server

import (
	"net/http"
	"strings"

	"github.com/juju/errors"

	hh "github.com/example/hanzitutor/internal/httphelper"
	"github.com/example/hanzitutor/pkg/models"
)

type wordRequest struct {
	Chinese string `json:"chinese"`
	Pinyin  string `json:"pinyin"`
	English string `json:"english"`
	Notes   string `json:"notes"`
}

func (wr *wordRequest) validate() error {
	wr.Chinese = strings.TrimSpace(wr.Chinese)
	wr.English = strings.TrimSpace(wr.English)
	if wr.Chinese == "" {
		return errors.New("chinese headword is required")
	}
	if wr.English == "" {
		return errors.New("english gloss is required")
	}
	return nil
}

func (s *Server) wordsGetHandler(r *http.Request) (interface{}, error) {
	if q := r.URL.Query().Get("q"); q != "" {
		words, err := s.words.Search(q)
		if err != nil {
			return nil, hh.MakeInternalServerError(err)
		}
		return words, nil
	}

	words, err := s.words.GetAll()
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return words, nil
}

func (s *Server) wordsPostHandler(r *http.Request) (interface{}, error) {
	var req wordRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, errors.Trace(err)
	}
	if err := req.validate(); err != nil {
		return nil, errors.Trace(err)
	}

	existing, err := s.words.GetByChinese(req.Chinese)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	if existing != nil {
		return nil, errors.Errorf("word %q already exists", req.Chinese)
	}

	word := &models.Word{
		Chinese: req.Chinese,
		Pinyin:  req.Pinyin,
		English: req.English,
		Notes:   req.Notes,
	}
	if err := s.words.Create(word); err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return word, nil
}

func (s *Server) wordGetHandler(r *http.Request) (interface{}, error) {
	id, err := paramInt(r, "id")
	if err != nil {
		return nil, errors.Trace(err)
	}

	word, err := s.words.GetByID(id)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	if word == nil {
		return nil, hh.MakeNotFoundError()
	}
	return word, nil
}

func (s *Server) wordPutHandler(r *http.Request) (interface{}, error) {
	id, err := paramInt(r, "id")
	if err != nil {
		return nil, errors.Trace(err)
	}

	var req wordRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, errors.Trace(err)
	}
	if err := req.validate(); err != nil {
		return nil, errors.Trace(err)
	}

	word, err := s.words.GetByID(id)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	if word == nil {
		return nil, hh.MakeNotFoundError()
	}

	word.Chinese = req.Chinese
	word.Pinyin = req.Pinyin
	word.English = req.English
	word.Notes = req.Notes
	if err := s.words.Update(word); err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return word, nil
}

func (s *Server) wordDeleteHandler(r *http.Request) (interface{}, error) {
	id, err := paramInt(r, "id")
	if err != nil {
		return nil, errors.Trace(err)
	}

	word, err := s.words.GetByID(id)
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	if word == nil {
		return nil, hh.MakeNotFoundError()
	}

	if err := s.words.Delete(id); err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return map[string]interface{}{"deleted": id}, nil
}
