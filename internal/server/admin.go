package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/juju/errors"

	hh "github.com/example/hanzitutor/internal/httphelper"
)

// Uploads larger than this are rejected outright
const maxImportSize = 32 << 20 // 32 MiB

func (s *Server) backupHandler(r *http.Request) (interface{}, error) {
	snapshot, err := s.backups.Run()
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return snapshot, nil
}

func (s *Server) backupsListHandler(r *http.Request) (interface{}, error) {
	snapshots, err := s.backups.List()
	if err != nil {
		return nil, hh.MakeInternalServerError(err)
	}
	return snapshots, nil
}

type restoreRequest struct {
	Name string `json:"name"`
}

func (s *Server) restoreHandler(r *http.Request) (interface{}, error) {
	var req restoreRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, errors.Trace(err)
	}

	result, err := s.backups.Restore(req.Name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return result, nil
}

// exportHandler streams the vocabulary as an xlsx download
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) error {
	filename := fmt.Sprintf("vocabulary-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := s.backups.WriteExport(w); err != nil {
		return hh.MakeInternalServerError(err)
	}
	return nil
}

// importHandler accepts an xlsx or CSV upload with vocabulary rows
func (s *Server) importHandler(r *http.Request) (interface{}, error) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		return nil, errors.Annotatef(err, "parsing upload")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errors.Annotatef(err, "reading uploaded file")
	}
	defer file.Close()

	result, err := s.backups.ImportReader(file, header.Filename)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return result, nil
}
