package spec

import "materialhub/internal/model"

func pngSpec(p model.Platform, slot string, w, h int, t model.Transparency, margin int) PlatformSlotSpec {
	return PlatformSlotSpec{
		Key:            model.SlotKey{Platform: p, Slot: slot},
		AllowedFormats: []model.Format{model.FormatPNG},
		Width:          w,
		Height:         h,
		Transparency:   t,
		MaxBytes:       MaxBytesCeiling,
		Margin:         margin,
		Revision:       1,
	}
}

func svgSpec(p model.Platform, slot string, w, h int, t model.Transparency) PlatformSlotSpec {
	return PlatformSlotSpec{
		Key:            model.SlotKey{Platform: p, Slot: slot},
		AllowedFormats: []model.Format{model.FormatSVG},
		Width:          w,
		Height:         h,
		Transparency:   t,
		MaxBytes:       MaxBytesCeiling,
		Revision:       1,
	}
}

// builtinSpecs is the source of truth for store asset requirements, one entry
// per (platform, slot). Slots without an explicit transparency requirement
// forbid it: a stray alpha channel (or an SVG with fill:none/rgba markers)
// breaks opaque-background store renderers.
var builtinSpecs = []PlatformSlotSpec{
	// Web brand assets.
	pngSpec(model.PlatformWebBrand, "logo", 482, 108, model.TransparencyRequired, 0),
	pngSpec(model.PlatformWebBrand, "logo_top", 400, 377, model.TransparencyRequired, 0),
	pngSpec(model.PlatformWebBrand, "placeholder", 220, 160, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformWebBrand, "background", 3480, 2160, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformWebBrand, "splash", 3480, 2160, model.TransparencyForbidden, 0),

	// Samsung Tizen. The launcher icon needs breathing room around the mark,
	// so its margin band is transparent and the slot requires alpha.
	pngSpec(model.PlatformSamsungTizen, "launcher_icon", 400, 400, model.TransparencyRequired, 50),
	pngSpec(model.PlatformSamsungTizen, "splash", 3840, 2160, model.TransparencyForbidden, 0),

	// LG webOS.
	pngSpec(model.PlatformLGWebOS, "icon_80", 80, 80, model.TransparencyRequired, 25),
	pngSpec(model.PlatformLGWebOS, "large_icon", 130, 130, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformLGWebOS, "background", 1920, 1080, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformLGWebOS, "splash", 1920, 1080, model.TransparencyForbidden, 0),

	// Android / Google Play.
	pngSpec(model.PlatformAndroidGooglePlay, "default_logo_services", 430, 314, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformAndroidGooglePlay, "default_logo_vod", 300, 440, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformAndroidGooglePlay, "logo_home", 1200, 472, model.TransparencyRequired, 0),
	pngSpec(model.PlatformAndroidGooglePlay, "logo_watermark", 1200, 472, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformAndroidGooglePlay, "background", 1920, 1080, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformAndroidGooglePlay, "background_mobile", 1080, 1920, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformAndroidGooglePlay, "logo_splash", 1000, 1000, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformAndroidGooglePlay, "radio_background", 1920, 1080, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformAndroidGooglePlay, "play_feature_graphic", 1024, 500, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformAndroidGooglePlay, "play_banner_tv", 1280, 720, model.TransparencyForbidden, 0),

	// Amazon Appstore.
	pngSpec(model.PlatformAmazonAppstore, "app_icon", 1280, 720, model.TransparencyForbidden, 0),
	pngSpec(model.PlatformAmazonAppstore, "background", 1920, 1080, model.TransparencyForbidden, 0),

	// iOS / tvOS App Store takes vector assets.
	svgSpec(model.PlatformIOSTvOS, "store_logo", 1920, 1080, model.TransparencyRequired),
	svgSpec(model.PlatformIOSTvOS, "logo_top", 400, 377, model.TransparencyForbidden),
	svgSpec(model.PlatformIOSTvOS, "background_mobile", 4688, 10150, model.TransparencyForbidden),
	svgSpec(model.PlatformIOSTvOS, "background", 3480, 2160, model.TransparencyForbidden),
}
