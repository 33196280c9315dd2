package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
)

const imageField = "image"

// Images normalizes uploads and keeps them in the object store. A nil store
// means uploads are not configured.
type Images struct {
	processor *media.Processor
	store     media.Store
	audit     *audit.Dispatcher
}

func NewImages(processor *media.Processor, store media.Store, audit *audit.Dispatcher) *Images {
	return &Images{processor: processor, store: store, audit: audit}
}

// upload processes the multipart image of the request and stores it under a
// fresh key for entity/id.
func (m *Images) upload(c *gin.Context, companyID, userID uint, entity string, id uint) (string, error) {
	if m == nil || m.store == nil {
		return "", media.ErrImagesDisabled
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadBytes)
	fh, err := c.FormFile(imageField)
	if err != nil {
		return "", media.ErrInvalidImage
	}
	f, err := fh.Open()
	if err != nil {
		return "", media.ErrInvalidImage
	}
	defer f.Close()

	body, err := m.processor.Process(f)
	if err != nil {
		return "", err
	}

	key := media.NewKey(companyID, entity, id)
	if err := m.store.Put(c.Request.Context(), key, media.ContentType, body); err != nil {
		return "", err
	}

	entityID := id
	m.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    audit.ActionImage,
		Entity:    entity,
		EntityID:  &entityID,
		Metadata:  map[string]any{"key": key, "bytes": len(body)},
	})
	return key, nil
}

// serve writes the stored image behind key.
func (m *Images) serve(c *gin.Context, key string) error {
	if m == nil || m.store == nil {
		return media.ErrImagesDisabled
	}
	if key == "" {
		return httperr.ErrNotFound
	}

	body, err := m.store.Get(c.Request.Context(), key)
	if err != nil {
		return err
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, media.ContentType, body)
	return nil
}
