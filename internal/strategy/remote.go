package strategy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"docshelf/internal/model"
	"docshelf/internal/repository"
	"docshelf/internal/storage"
)

// Remote keeps metadata in a SQL table and file contents in an object store.
type Remote struct {
	repo      repository.DocumentRepository
	objects   storage.Storage
	launcher  Launcher
	urlExpiry time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewRemote(repo repository.DocumentRepository, objects storage.Storage, launcher Launcher, urlExpiry time.Duration, log zerolog.Logger) *Remote {
	return &Remote{
		repo:      repo,
		objects:   objects,
		launcher:  launcher,
		urlExpiry: urlExpiry,
		log:       log,
		now:       time.Now,
	}
}

func (r *Remote) SaveDocuments(ctx context.Context, docs []model.Document) error {
	if err := r.repo.UpsertAll(ctx, docs); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	return nil
}

func (r *Remote) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	docs, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	return docs, nil
}

// UploadFile streams the contents to the object store under "{unix-millis}-{name}".
func (r *Remote) UploadFile(ctx context.Context, file model.FileUpload) (*model.UploadResult, error) {
	key := storage.ObjectKey(r.now(), file.Name)
	// a negative size streams with an unknown length
	info, err := r.objects.Put(ctx, key, file.Content, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", file.Name, err)
	}
	if info.Key != "" {
		key = info.Key
	}
	size := file.Size
	if size < 0 {
		size = max(info.Size, 0)
	}
	return &model.UploadResult{
		Name:        file.Name,
		Size:        size,
		ContentType: file.ContentType,
		StoragePath: key,
	}, nil
}

// DeleteFile removes the object and the metadata row. A row that is already gone is not an error.
func (r *Remote) DeleteFile(ctx context.Context, documentID string) error {
	doc, err := r.repo.FindByID(ctx, documentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find document %s: %w", documentID, err)
	}

	var objErr error
	if key := doc.Path(); key != "" {
		if err := r.objects.Delete(ctx, key); err != nil {
			objErr = fmt.Errorf("delete object %s: %w", key, err)
		}
	}
	if err := r.repo.Delete(ctx, documentID); err != nil {
		return errors.Join(objErr, fmt.Errorf("delete document %s: %w", documentID, err))
	}
	return objErr
}

// OpenFile resolves a time-limited URL for the object and asks the host to open it.
func (r *Remote) OpenFile(ctx context.Context, doc model.Document) error {
	key := doc.Path()
	if key == "" {
		return ErrPathNotFound
	}
	u, err := r.objects.PresignGet(ctx, key, r.urlExpiry)
	if err != nil {
		return fmt.Errorf("resolve url for %s: %w", key, err)
	}
	msg, err := r.launcher.OpenExternal(ctx, u)
	if err != nil {
		return fmt.Errorf("open url: %w", err)
	}
	if msg != "" {
		return errors.New(msg)
	}
	return nil
}
