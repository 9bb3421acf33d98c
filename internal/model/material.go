package model

import (
	"fmt"
	"time"
)

// Platform identifies a publication target store.
type Platform string

const (
	PlatformWebBrand          Platform = "web_brand"
	PlatformSamsungTizen      Platform = "samsung_tizen"
	PlatformLGWebOS           Platform = "lg_webos"
	PlatformAndroidGooglePlay Platform = "android_google_play"
	PlatformAmazonAppstore    Platform = "amazon_appstore"
	PlatformIOSTvOS           Platform = "ios_tvos_app_store"
)

// Platforms lists every supported platform in registry order.
func Platforms() []Platform {
	return []Platform{
		PlatformWebBrand,
		PlatformSamsungTizen,
		PlatformLGWebOS,
		PlatformAndroidGooglePlay,
		PlatformAmazonAppstore,
		PlatformIOSTvOS,
	}
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformWebBrand, PlatformSamsungTizen, PlatformLGWebOS,
		PlatformAndroidGooglePlay, PlatformAmazonAppstore, PlatformIOSTvOS:
		return true
	}
	return false
}

// SlotKey identifies one material slot: a named image role within a platform.
type SlotKey struct {
	Platform Platform `json:"platform"`
	Slot     string   `json:"slot"`
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s/%s", k.Platform, k.Slot)
}

// Format is an accepted encoding family.
type Format string

const (
	FormatPNG Format = "PNG"
	FormatJPG Format = "JPG"
	FormatSVG Format = "SVG"
)

// Ext returns the canonical file extension for the format, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPG:
		return "jpg"
	case FormatSVG:
		return "svg"
	}
	return "bin"
}

// Raster reports whether the format is pixel-based (margin checks apply only
// to raster content).
func (f Format) Raster() bool {
	return f == FormatPNG || f == FormatJPG
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

// Transparency is the tri-state alpha-channel requirement of a slot spec.
type Transparency string

const (
	TransparencyRequired   Transparency = "required"
	TransparencyForbidden  Transparency = "forbidden"
	TransparencyIrrelevant Transparency = "irrelevant"
)

// ApprovalState is the review lifecycle state of a material version.
// pending is the only non-terminal state; approved and rejected are final
// for that version — a correction is always a new upload.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalRejected ApprovalState = "rejected"
)

// Terminal reports whether the state admits no further transitions.
func (s ApprovalState) Terminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// MaterialVersion is one accepted upload in a slot's append-only history.
// Versions are never deleted; the slot's current pointer moves between them.
type MaterialVersion struct {
	SlotKey        SlotKey       `json:"slot_key"`
	SequenceNumber int           `json:"sequence_number"`
	ContentRef     string        `json:"content_ref"`
	Checksum       string        `json:"checksum"`
	Filename       string        `json:"filename"`
	Format         Format        `json:"format"`
	ByteSize       int64         `json:"byte_size"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	HasAlpha       bool          `json:"has_alpha"`
	UploaderID     string        `json:"uploader_id"`
	Status         ApprovalState `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ApprovalRecord tracks the review decision for one material version.
// Created alongside the version in state pending; mutated only by the
// approve/reject transitions, never deleted.
type ApprovalRecord struct {
	SlotKey        SlotKey       `json:"slot_key"`
	SequenceNumber int           `json:"sequence_number"`
	State          ApprovalState `json:"state"`
	ReviewerID     string        `json:"reviewer_id,omitempty"`
	Comment        string        `json:"comment,omitempty"`
	DecidedAt      *time.Time    `json:"decided_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}
