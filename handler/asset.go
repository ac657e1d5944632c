package handler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cinema_factory/apperror"
	"cinema_factory/helper"
	"cinema_factory/model"
	"cinema_factory/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const pdfLimit = 20 * 1024 * 1024

type ObjectStore interface {
	Upload(ctx context.Context, r io.Reader, folder string, resource model.ResourceType) (helper.UploadResult, error)
	Delete(ctx context.Context, publicID string, resource model.ResourceType) error
}

type AssetStore interface {
	ListItems(ctx context.Context, sectionKey, kind string) ([]model.Asset, error)
	AppendItem(ctx context.Context, sectionKey, kind string, item *model.Asset) error
	FindItem(ctx context.Context, sectionKey, kind, idOrPublicID string) (*model.Asset, error)
	RemoveItem(ctx context.Context, sectionKey, kind, idOrPublicID string) error
	SaveDiplomaPdf(ctx context.Context, sectionKey, name string, data []byte) (model.DiplomaPdf, error)
	DiplomaMeta(ctx context.Context, sectionKey string) (model.DiplomaPdf, error)
	LoadDiplomaPdf(ctx context.Context, sectionKey string) (string, []byte, error)
	ClearDiplomaPdf(ctx context.Context, sectionKey string) error
}

// AssetHandler serves every media collection of every section the same way.
type AssetHandler struct {
	Assets AssetStore
	Store  ObjectStore
}

func (h *AssetHandler) ListItems(c *fiber.Ctx) error {
	section, kind := c.Locals("section").(string), c.Locals("kind").(string)
	items, err := h.Assets.ListItems(c.UserContext(), section, kind)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *AssetHandler) Upload(c *fiber.Ctx) error {
	section, kind := c.Locals("section").(string), c.Locals("kind").(string)
	spec := c.Locals("kindSpec").(model.KindSpec)
	fields := c.Locals("assetFields").(map[string]string)

	fh, err := c.FormFile(spec.FileField())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("No %s uploaded", spec.FileField()), err)
	}
	if fh.Size > int64(spec.MaxBytes) {
		return utils.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "File too large",
			fmt.Errorf("%d bytes exceeds the %d byte limit", fh.Size, spec.MaxBytes))
	}
	f, err := fh.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot read upload", err)
	}
	defer f.Close()

	uploaded, err := h.Store.Upload(c.UserContext(), f, helper.UploadFolder(section, kind), spec.Resource)
	if err != nil {
		log.Errorw("object store upload failed", "section", section, "kind", kind, "error", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload failed", err)
	}

	item := &model.Asset{
		PublicId:    uploaded.PublicID,
		TitleLine:   strings.TrimSpace(fields["titleLine"]),
		Title:       strings.TrimSpace(fields["title"]),
		Description: strings.TrimSpace(fields["description"]),
		Category:    strings.TrimSpace(fields["category"]),
	}
	if spec.Resource == model.ResourceVideo {
		item.VideoUrl = uploaded.URL
	} else {
		item.ImageUrl = uploaded.URL
	}

	if err := h.Assets.AppendItem(c.UserContext(), section, kind, item); err != nil {
		if derr := h.Store.Delete(context.Background(), uploaded.PublicID, spec.Resource); derr != nil {
			log.Warnw("orphaned upload", "publicId", uploaded.PublicID, "error", derr)
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// DeleteItem removes the stored object first; the item stays listed if that fails.
func (h *AssetHandler) DeleteItem(c *fiber.Ctx) error {
	section, kind := c.Locals("section").(string), c.Locals("kind").(string)
	spec := c.Locals("kindSpec").(model.KindSpec)
	id := c.Params("id")

	item, err := h.Assets.FindItem(c.UserContext(), section, kind, id)
	if err != nil {
		return respondError(c, err)
	}
	publicID := item.PublicId
	if publicID == "" {
		publicID = helper.ExtractPublicID(item.ImageUrl + item.VideoUrl)
	}
	if publicID != "" {
		if err := h.Store.Delete(c.UserContext(), publicID, spec.Resource); err != nil {
			log.Errorw("object store delete failed", "publicId", publicID, "error", err)
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Delete failed", err)
		}
	}
	if err := h.Assets.RemoveItem(c.UserContext(), section, kind, item.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *AssetHandler) GetDiploma(c *fiber.Ctx) error {
	section := c.Locals("section").(string)
	images, err := h.Assets.ListItems(c.UserContext(), section, "diploma")
	if err != nil {
		return respondError(c, err)
	}
	meta, err := h.Assets.DiplomaMeta(c.UserContext(), section)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(model.Diploma{Images: images, DiplomaPdf: meta})
}

func (h *AssetHandler) UploadDiplomaPdf(c *fiber.Ctx) error {
	section := c.Locals("section").(string)
	fh, err := c.FormFile("pdf")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No PDF uploaded", err)
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only PDF files are accepted",
			fmt.Errorf("unexpected file %q", fh.Filename))
	}
	if fh.Size > pdfLimit {
		return utils.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "File too large",
			fmt.Errorf("%d bytes exceeds the %d byte limit", fh.Size, pdfLimit))
	}
	f, err := fh.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot read upload", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot read upload", err)
	}

	meta, err := h.Assets.SaveDiplomaPdf(c.UserContext(), section, fh.Filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "pdfName": meta.PdfName})
}

func (h *AssetHandler) ViewDiplomaPdf(c *fiber.Ctx) error {
	section := c.Locals("section").(string)
	name, data, err := h.Assets.LoadDiplomaPdf(c.UserContext(), section)
	if err != nil {
		if apperror.KindOf(err) == apperror.NotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "PDF not found"})
		}
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, strings.ReplaceAll(name, `"`, "")))
	return c.Send(data)
}

func (h *AssetHandler) DeleteDiplomaPdf(c *fiber.Ctx) error {
	section := c.Locals("section").(string)
	if err := h.Assets.ClearDiplomaPdf(c.UserContext(), section); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
