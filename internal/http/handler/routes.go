package handler

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"materialhub/internal/model"
	"materialhub/internal/service"
)

// downloadURLTTL bounds how long a presigned content URL stays valid.
const downloadURLTTL = 15 * time.Minute

// decisionRequest is the body for approve/reject endpoints.
type decisionRequest struct {
	ReviewerID string `json:"reviewer_id"`
	Comment    string `json:"comment"`
}

// rollbackRequest is the body for the rollback endpoint.
type rollbackRequest struct {
	ActorID string `json:"actor_id"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic; everything interesting
// lives in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, matSvc service.MaterialService) {
	// Health endpoint: checks DB connectivity only
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// List the slot specifications of one platform
	app.Get("/specs/:platform", func(c *fiber.Ctx) error {
		platform := model.Platform(c.Params("platform"))
		if !platform.Valid() {
			return writeError(c, fiber.StatusNotFound, "UNKNOWN_PLATFORM", "unknown platform")
		}
		return c.JSON(fiber.Map{"platform": platform, "slots": matSvc.Specs(platform)})
	})

	// Upload a material (multipart/form-data, field name: file).
	// A failed validation is a 422 carrying the full verdict, not an error.
	app.Post("/materials/:platform/:slot", func(c *fiber.Ctx) error {
		key, ok := slotKeyFromParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PLATFORM", "invalid platform")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		uploaderID := c.FormValue("uploader_id")
		if uploaderID == "" {
			return writeError(c, fiber.StatusBadRequest, "UPLOADER_REQUIRED", "uploader_id is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := matSvc.Upload(c.UserContext(), key, f, fh.Filename, uploaderID)
		if err != nil {
			return writeServiceError(c, err)
		}
		if !res.Verdict.Accepted {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(res)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	// List the full version history of a slot (oldest first)
	app.Get("/materials/:platform/:slot/versions", func(c *fiber.Ctx) error {
		key, ok := slotKeyFromParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PLATFORM", "invalid platform")
		}
		versions, err := matSvc.ListVersions(c.UserContext(), key)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"versions": versions})
	})

	// Get one version by sequence number
	app.Get("/materials/:platform/:slot/versions/:seq", func(c *fiber.Ctx) error {
		key, ok := slotKeyFromParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PLATFORM", "invalid platform")
		}
		seq, ok := sequenceFromParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SEQUENCE", "invalid sequence number")
		}
		version, err := matSvc.GetVersion(c.UserContext(), key, seq)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(version)
	})

	// Get the slot's current (live) version
	app.Get("/materials/:platform/:slot/current", func(c *fiber.Ctx) error {
		key, ok := slotKeyFromParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PLATFORM", "invalid platform")
		}
		version, err := matSvc.GetCurrent(c.UserContext(), key)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(version)
	})

	// Download one version's stored content. ?presign=true returns a
	// time-limited URL instead of streaming the bytes through the service.
	app.Get("/materials/:platform/:slot/versions/:seq/download", func(c *fiber.Ctx) error {
		key, ok := slotKeyFromParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PLATFORM", "invalid platform")
		}
		seq, ok := sequenceFromParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SEQUENCE", "invalid sequence number")
		}
		actorID := c.Query("actor_id")

		if c.QueryBool("presign") {
			url, version, err := matSvc.PresignDownload(c.UserContext(), key, seq, actorID, downloadURLTTL)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.JSON(fiber.Map{
				"url":                url,
				"expires_in_seconds": int(downloadURLTTL.Seconds()),
				"version":            version,
			})
		}

		rc, version, err := matSvc.Download(c.UserContext(), key, seq, actorID)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, version.Format.ContentType())
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", version.Filename))
		return c.SendStream(rc, int(version.ByteSize))
	})

	// Repoint the slot's current version to an existing historical one
	app.Post("/materials/:platform/:slot/versions/:seq/rollback", func(c *fiber.Ctx) error {
		key, ok := slotKeyFromParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PLATFORM", "invalid platform")
		}
		seq, ok := sequenceFromParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SEQUENCE", "invalid sequence number")
		}
		var req rollbackRequest
		if err := c.BodyParser(&req); err != nil || req.ActorID == "" {
			return writeError(c, fiber.StatusBadRequest, "ACTOR_REQUIRED", "actor_id is required")
		}
		if err := matSvc.Rollback(c.UserContext(), key, seq, req.ActorID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	// Approve a pending version, promoting it to current
	app.Post("/materials/:platform/:slot/versions/:seq/approve", func(c *fiber.Ctx) error {
		return decide(c, matSvc.Approve)
	})

	// Reject a pending version (comment mandatory)
	app.Post("/materials/:platform/:slot/versions/:seq/reject", func(c *fiber.Ctx) error {
		return decide(c, matSvc.Reject)
	})
}

// decide shares the param/body plumbing between approve and reject.
func decide(c *fiber.Ctx, fn func(context.Context, model.SlotKey, int, string, string) (*model.ApprovalRecord, error)) error {
	key, ok := slotKeyFromParams(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PLATFORM", "invalid platform")
	}
	seq, ok := sequenceFromParams(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "INVALID_SEQUENCE", "invalid sequence number")
	}
	var req decisionRequest
	if err := c.BodyParser(&req); err != nil || req.ReviewerID == "" {
		return writeError(c, fiber.StatusBadRequest, "REVIEWER_REQUIRED", "reviewer_id is required")
	}
	rec, err := fn(c.UserContext(), key, seq, req.ReviewerID, req.Comment)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(rec)
}

func slotKeyFromParams(c *fiber.Ctx) (model.SlotKey, bool) {
	platform := model.Platform(c.Params("platform"))
	if !platform.Valid() {
		return model.SlotKey{}, false
	}
	return model.SlotKey{Platform: platform, Slot: c.Params("slot")}, true
}

func sequenceFromParams(c *fiber.Ctx) (int, bool) {
	seq, err := strconv.Atoi(c.Params("seq"))
	if err != nil || seq < 1 {
		return 0, false
	}
	return seq, true
}
