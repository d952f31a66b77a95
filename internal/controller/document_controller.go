package controller

import (
	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/pkg/serverutils"
	"github.com/Nix128/asisten-pengawasan-apip/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	SignedUploadURL(ctx *fiber.Ctx) error
	UploadObject(ctx *fiber.Ctx) error
	Process(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	DownloadURL(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	jwtMiddleware   fiber.Handler
}

func NewDocumentController(documentService service.IDocumentService, jwtMiddleware fiber.Handler) IDocumentController {
	return &documentController{
		documentService: documentService,
		jwtMiddleware:   jwtMiddleware,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(c.jwtMiddleware)
	h.Post("upload", c.Upload)
	h.Post("upload-url", c.SignedUploadURL)
	h.Post("upload-object", c.UploadObject)
	h.Post("process", c.Process)
	h.Get("", c.List)
	h.Get(":id/download-url", c.DownloadURL)
	h.Delete(":id", c.Delete)
}

// Upload menerima multipart file ATAU body JSON berisi konten yang dipaste.
func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err == nil {
		documentName := ctx.FormValue("document_name", fileHeader.Filename)

		file, err := fileHeader.Open()
		if err != nil {
			return err
		}
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		res, err := c.documentService.UploadFile(ctx.Context(), documentName, contentType, file)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
	}

	var req dto.UploadDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.IngestContent(ctx.Context(), req.DocumentName, req.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *documentController) SignedUploadURL(ctx *fiber.Ctx) error {
	var req dto.SignedUploadURLRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.SignedUploadURL(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create signed upload url", res))
}

// UploadObject adalah fallback upload lewat API server untuk client yang tidak
// bisa memakai presigned URL (mis. object storage tidak terekspos ke browser).
func (c *documentController) UploadObject(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.documentService.UploadObject(
		ctx.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload object", res))
}

func (c *documentController) Process(ctx *fiber.Ctx) error {
	var req dto.ProcessDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Process(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success process document", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.documentService.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) DownloadURL(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document ID")
	}

	res, err := c.documentService.DownloadURL(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create download url", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document ID")
	}

	if err := c.documentService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}
