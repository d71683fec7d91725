package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"printo/internal/model"
	"printo/internal/service"
)

// BannerHandler serves the storefront banner routes. Writes are admin-only;
// the active list is public.
type BannerHandler struct {
	banners service.BannerService
}

// NewBannerHandler constructs a BannerHandler.
func NewBannerHandler(banners service.BannerService) *BannerHandler {
	return &BannerHandler{banners: banners}
}

// Create accepts multipart/form-data with fields title, link_url, and an
// image file under "image".
func (h *BannerHandler) Create(c *fiber.Ctx) error {
	title := c.FormValue("title")
	linkURL := c.FormValue("link_url")

	fh, err := c.FormFile("image")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "image file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}

	b, err := h.banners.Create(c.UserContext(), title, linkURL, f, fh.Filename, ct, fh.Size)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// List returns active banners with presigned image URLs. The route is
// public; inactive banners are only visible through the admin listing.
func (h *BannerHandler) List(c *fiber.Ctx) error {
	return h.render(c, true)
}

// ListAll returns every banner, inactive included. Mounted admin-only.
func (h *BannerHandler) ListAll(c *fiber.Ctx) error {
	return h.render(c, false)
}

func (h *BannerHandler) render(c *fiber.Ctx, activeOnly bool) error {
	banners, err := h.banners.List(c.UserContext(), activeOnly)
	if err != nil {
		return writeServiceError(c, err)
	}

	type bannerWithURL struct {
		model.Banner
		ImageURL string `json:"image_url,omitempty"`
	}
	out := make([]bannerWithURL, 0, len(banners))
	for _, b := range banners {
		url, err := h.banners.ImageURL(c.UserContext(), b.ImageKey)
		if err != nil {
			return writeServiceError(c, err)
		}
		out = append(out, bannerWithURL{Banner: b, ImageURL: url})
	}
	return c.JSON(fiber.Map{"data": out})
}

type bannerUpdateRequest struct {
	Title   string `json:"title"`
	LinkURL string `json:"link_url"`
	Active  *bool  `json:"active"`
}

func (h *BannerHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	var req bannerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}

	existing, err := h.banners.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if req.Title != "" {
		existing.Title = req.Title
	}
	existing.LinkURL = req.LinkURL
	if req.Active != nil {
		existing.Active = *req.Active
	}

	b, err := h.banners.Update(c.UserContext(), existing)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(b)
}

func (h *BannerHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	if err := h.banners.Delete(c.UserContext(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
