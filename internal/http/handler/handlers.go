package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"docregistro/internal/service"
	"docregistro/internal/upload"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type listResponse struct {
	Result  fiber.Map `json:"result"`
	Success bool      `json:"success"`
	Error   *string   `json:"error"`
}

// listEnvelope wraps data as {result:{data, msg, ...echo}, success:true, error:null}.
// Echoed params never overwrite data or msg.
func listEnvelope(data any, msg string, echo map[string]string) listResponse {
	result := fiber.Map{}
	for k, v := range echo {
		result[k] = v
	}
	result["data"] = data
	result["msg"] = msg
	return listResponse{Result: result, Success: true}
}

// Hello answers GET /.
func Hello() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Hello World!")
	}
}

// Acknowledge answers POST /.
func Acknowledge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Got a POST request")
	}
}

// HealthCheck reports readiness. With a nil db the catalog is in memory and always ready.
func HealthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.JSON(fiber.Map{"status": "healthy", "catalog": "fixture"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeFailure(c, fiber.StatusServiceUnavailable, "dependency unavailable")
		}
		return c.JSON(fiber.Map{"status": "healthy", "catalog": "postgres"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// receiveUpload reads the "file" part and hands it to the service.
func receiveUpload(c *fiber.Ctx, svc service.DocumentService, kind service.UploadKind, fixedName string) (*service.UploadResult, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, upload.NewMissingFile()
	}

	var fields map[string][]string
	if form, err := c.MultipartForm(); err == nil {
		fields = form.Value
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()

	return svc.Upload(c.UserContext(), service.UploadRequest{
		Kind:         kind,
		Reader:       f,
		OriginalName: fh.Filename,
		MediaType:    fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		FixedName:    fixedName,
		Fields:       fields,
	})
}

// UploadDocument accepts a multipart upload in field "file".
// An empty fixedName makes the service generate the returned file name.
//
// @Summary Upload a document or image
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "jpeg, png or pdf, up to 25 MiB"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} failurePayload
// @Failure 413 {object} failurePayload
// @Failure 415 {object} failurePayload
// @Router /requests/documents [post]
func UploadDocument(svc service.DocumentService, kind service.UploadKind, fixedName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := receiveUpload(c, svc, kind, fixedName)
		return funnel(c, err, func() error {
			return c.JSON(uploadResponse{Success: true, FileID: res.FileID, FileName: res.FileName})
		})
	}
}

// SendFile is the bare upload endpoint; it only confirms acceptance.
func SendFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := receiveUpload(c, svc, service.KindDocument, "")
		return funnel(c, err, func() error {
			return c.JSON(fiber.Map{"success": true})
		})
	}
}

func missingParameter(c *fiber.Ctx, name string) error {
	return writeFailure(c, fiber.StatusBadRequest, "Missing parameter: "+name)
}

// ListRequestDocuments lists synthetic documents for the request id in query param.
// @Summary List generated documents for a request
// @Produce json
// @Param requestId query string true "request id (echoed)"
// @Success 200 {object} listResponse
// @Failure 400 {object} failurePayload
// @Router /requests/documents [get]
func ListRequestDocuments(svc service.DocumentService, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := utils.CopyString(c.Query(param))
		docs, err := svc.ListRequestDocuments(c.UserContext(), requestID)
		if errors.Is(err, service.ErrMissingParameter) {
			return missingParameter(c, param)
		}
		if err != nil {
			return err
		}
		return c.JSON(listEnvelope(docs, "Documents retrieved", map[string]string{param: requestID}))
	}
}

// ListRequestPhotos lists synthetic photos for the request id in query param.
func ListRequestPhotos(svc service.DocumentService, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := utils.CopyString(c.Query(param))
		photos, err := svc.ListRequestPhotos(c.UserContext(), requestID)
		if errors.Is(err, service.ErrMissingParameter) {
			return missingParameter(c, param)
		}
		if err != nil {
			return err
		}
		return c.JSON(listEnvelope(photos, "Photos retrieved", map[string]string{param: requestID}))
	}
}

// GetPhoto returns one synthetic photo and echoes the photoId path param.
// @Summary Get a generated photo
// @Produce json
// @Param photoId path string true "photo id (echoed)"
// @Success 200 {object} listResponse
// @Failure 400 {object} failurePayload
// @Router /api/registro/photos/{photoId} [get]
func GetPhoto(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		photoID := utils.CopyString(c.Params("photoId"))
		photo, err := svc.GetPhoto(c.UserContext(), photoID)
		if errors.Is(err, service.ErrMissingParameter) {
			return missingParameter(c, "photoId")
		}
		if err != nil {
			return err
		}
		return c.JSON(listEnvelope([]any{photo}, "Photo retrieved", map[string]string{"photoId": photoID}))
	}
}

// DeleteDocument confirms deletion of a document.
// @Summary Confirm deletion of a document
// @Produce json
// @Param documentId path string true "document id"
// @Success 200 {object} messageResponse
// @Failure 400 {object} failurePayload
// @Router /requests/documents/{documentId} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return DeleteEntity(svc, service.DocumentEntity)
}

// DeletePhoto confirms deletion of a photo.
// @Summary Confirm deletion of a photo
// @Produce json
// @Param photoId path string true "photo id"
// @Success 200 {object} messageResponse
// @Failure 400 {object} failurePayload
// @Router /api/registro/photos/{photoId} [delete]
func DeletePhoto(svc service.DocumentService) fiber.Handler {
	return DeleteEntity(svc, service.PhotoEntity)
}

// DeleteEntity confirms deletion of the entity named by its path param.
func DeleteEntity(svc service.DocumentService, entity service.Entity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := utils.CopyString(c.Params(entity.Param))
		msg, err := svc.Delete(c.UserContext(), entity, id)
		if errors.Is(err, service.ErrInvalidID) {
			return writeFailure(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", entity.Param, id))
		}
		if err != nil {
			return err
		}
		return c.JSON(messageResponse{Success: true, Message: msg})
	}
}

// ListCatalog returns the document catalog; catId is echoed, not used to filter.
//
// @Summary List catalog documents for a category
// @Produce json
// @Param catId path string true "category id (echoed)"
// @Success 200 {object} listResponse
// @Failure 400 {object} failurePayload
// @Router /api/registro/cat_docs/{catId} [get]
func ListCatalog(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		catID := utils.CopyString(c.Params("catId"))
		entries, err := svc.List(c.UserContext(), catID)
		if errors.Is(err, service.ErrMissingParameter) {
			return missingParameter(c, "catId")
		}
		if err != nil {
			return err
		}
		return c.JSON(listEnvelope(entries, "Catalog documents retrieved", map[string]string{"catId": catID}))
	}
}
