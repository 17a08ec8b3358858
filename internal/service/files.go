package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"eventhub/internal/blob"
	"eventhub/internal/common"
	"eventhub/internal/logging"
	"eventhub/internal/model"

	"github.com/google/uuid"
)

// ResumeExtensions is the resume upload allow-list.
var ResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// newKeySuffix keeps generated file names unique within one millisecond.
var newKeySuffix = func() string { return uuid.NewString()[:8] }

var errNoFile = fmt.Errorf("%w: no file uploaded", common.ErrValidation)

// Resumes stores resume files and links them to their owner.
type Resumes struct {
	resumes ResumeRepository
	users   UserRepository
	blobs   blob.Store
	log     *slog.Logger
}

func NewResumes(resumes ResumeRepository, users UserRepository, blobs blob.Store, log *slog.Logger) *Resumes {
	return &Resumes{resumes: resumes, users: users, blobs: blobs, log: log}
}

// Upload checks the extension before anything is written, stores the file,
// creates the record and appends it to the owner's list. The last two are
// separate writes; a failure between them leaves an orphaned record.
func (s *Resumes) Upload(ctx context.Context, userID string, fh *multipart.FileHeader) (*model.Resume, error) {
	const op = "service.Resumes.Upload"

	if fh == nil {
		return nil, fmt.Errorf("%s: %w", op, errNoFile)
	}
	original := filepath.Base(fh.Filename)
	ext := strings.ToLower(filepath.Ext(original))
	if !ResumeExtensions[ext] {
		return nil, fmt.Errorf("%s: %w: only PDF/DOC/DOCX files allowed", op, common.ErrValidation)
	}

	key := stamp() + "-" + original
	obj, err := putFile(ctx, s.blobs, key, fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r := &model.Resume{
		ID:        newID(),
		UserID:    userID,
		Filename:  original,
		Filepath:  obj.Path,
		CreatedAt: timeNow().UTC(),
	}
	if err := s.resumes.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.AppendResume(ctx, userID, r.ID); err != nil {
		s.log.ErrorContext(ctx, "resume stored but not linked to user",
			slog.String("user_id", userID), slog.String("resume_id", r.ID), logging.Err(err))
		return nil, fmt.Errorf("%s: link resume: %w", op, err)
	}
	return r, nil
}

func (s *Resumes) ListForUser(ctx context.Context, userID string) ([]model.Resume, error) {
	list, err := s.resumes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.Resumes.ListForUser: %w", err)
	}
	if list == nil {
		list = []model.Resume{}
	}
	return list, nil
}

// Uploads stores images. Unlike resumes there is no type restriction.
type Uploads struct {
	blobs blob.Store
}

func NewUploads(blobs blob.Store) *Uploads {
	return &Uploads{blobs: blobs}
}

// UploadImage stores the file as image-<unix millis>-<suffix><ext> and returns its URL.
func (s *Uploads) UploadImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	const op = "service.Uploads.UploadImage"

	if fh == nil {
		return "", fmt.Errorf("%s: %w", op, errNoFile)
	}
	key := "image-" + stamp() + strings.ToLower(filepath.Ext(fh.Filename))
	obj, err := putFile(ctx, s.blobs, key, fh)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return obj.URL, nil
}

func stamp() string {
	return strconv.FormatInt(timeNow().UnixMilli(), 10) + "-" + newKeySuffix()
}

func putFile(ctx context.Context, store blob.Store, key string, fh *multipart.FileHeader) (obj blob.Object, err error) {
	f, err := fh.Open()
	if err != nil {
		return blob.Object{}, fmt.Errorf("open upload: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return store.Put(ctx, key, f, fh.Size, fh.Header.Get("Content-Type"))
}
